package auth

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	CtxSessionKey = "session"
	CtxClaimsKey  = "claims"
)

func JWTMiddleware(secret string, guard *Guard, revoker *Revoker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header missing")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header must be 'Bearer <token>'")
		}

		claims, err := ParseToken(secret, parts[1])
		if err != nil || claims.Scope != "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		return admit(c, claims, guard, revoker)
	}
}

// StreamTicketMiddleware admits GET /api/events?ticket=<ticket>. Only tickets
// from GenerateStreamTicket are accepted, never session tokens.
func StreamTicketMiddleware(secret string, guard *Guard, revoker *Revoker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ticket := c.Query("ticket")
		if ticket == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Stream ticket missing")
		}

		claims, err := ParseToken(secret, ticket)
		if err != nil || claims.Scope != ScopeEvents {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired stream ticket")
		}

		return admit(c, claims, guard, revoker)
	}
}

func admit(c *fiber.Ctx, claims *JWTCustomClaims, guard *Guard, revoker *Revoker) error {
	session, err := verify(c.UserContext(), claims, guard, revoker)
	if err != nil {
		return authError(err)
	}

	c.Locals(CtxSessionKey, session)
	c.Locals(CtxClaimsKey, claims)
	return c.Next()
}

func verify(ctx context.Context, claims *JWTCustomClaims, guard *Guard, revoker *Revoker) (*Session, error) {
	if revoker != nil {
		revoked, err := revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, ErrTokenRevoked
		}
	}

	return guard.Evaluate(ctx, &Principal{
		UserID:  claims.UserID,
		Email:   claims.Email,
		TokenID: claims.ID,
	})
}

// SessionFrom returns the session admitted by JWTMiddleware.
func SessionFrom(c *fiber.Ctx) (*Session, error) {
	session, ok := c.Locals(CtxSessionKey).(*Session)
	if !ok || session == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Not signed in")
	}
	return session, nil
}

func authError(err error) error {
	switch {
	case errors.Is(err, ErrTokenRevoked):
		return fiber.NewError(fiber.StatusUnauthorized, "Session has ended, please sign in again")
	case errors.Is(err, ErrNotRestaurant):
		return fiber.NewError(fiber.StatusForbidden, "This panel is only accessible for restaurant accounts.")
	case errors.Is(err, ErrProfileNotFound):
		return fiber.NewError(fiber.StatusForbidden, "User data not found.")
	case errors.Is(err, ErrProfileUnavailable), errors.Is(err, ErrAnonymous):
		return fiber.NewError(fiber.StatusUnauthorized, "Not signed in")
	default:
		// revocation lookup failed, fail closed
		log.Printf("[ERROR] session check failed: %v", err)
		return fiber.NewError(fiber.StatusUnauthorized, "Session could not be verified")
	}
}
