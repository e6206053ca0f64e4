package auth

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"restaurant-panel/internal/models"

	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func LoginHandler(a *Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Email = normalizeEmail(body.Email)
		if body.Email == "" || !strings.Contains(body.Email, "@") {
			return fiber.NewError(fiber.StatusBadRequest, "Please enter a valid email address.")
		}
		if body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Password is required.")
		}

		res, err := a.Login(c.UserContext(), body.Email, body.Password)
		if err != nil {
			var throttled *ThrottledError
			switch {
			case errors.As(err, &throttled):
				c.Set(fiber.HeaderRetryAfter, fmt.Sprint(throttled.WaitSeconds))
				return fiber.NewError(fiber.StatusTooManyRequests, "Too many failed attempts. Please try again later.")
			case errors.Is(err, ErrInvalidCredentials):
				return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password.")
			case errors.Is(err, ErrNotRestaurant), errors.Is(err, ErrProfileNotFound):
				return authError(err)
			default:
				log.Printf("[ERROR] login: %v", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Login failed. Please try again.")
			}
		}

		return c.JSON(fiber.Map{
			"token": res.Token,
			"user":  profileView(res.Session.Profile),
		})
	}
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := SessionFrom(c)
		if err != nil {
			return err
		}
		return c.JSON(profileView(session.Profile))
	}
}

// POST /api/auth/logout
func LogoutHandler(revoker *Revoker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(CtxClaimsKey).(*JWTCustomClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Not signed in")
		}

		if err := revoker.Revoke(c.UserContext(), claims.ID, claims.ExpiresAt.Time); err != nil {
			log.Printf("[ERROR] logout: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to log out. Please try again.")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// profileView is what the panel shows on the settings page.
func profileView(u *models.User) map[string]any {
	return map[string]any{
		"id":            u.ID,
		"name":          u.Name,
		"email":         u.Email,
		"phone":         u.Phone,
		"type":          u.Type,
		"profile_image": u.ProfileImage,
	}
}

// POST /api/events/ticket
func StreamTicketHandler(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(CtxClaimsKey).(*JWTCustomClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Not signed in")
		}

		ticket, ticketClaims, err := GenerateStreamTicket(secret, claims, time.Now())
		if err != nil {
			log.Printf("[ERROR] stream ticket: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Live updates are unavailable")
		}
		return c.JSON(fiber.Map{
			"ticket":     ticket,
			"expires_at": ticketClaims.ExpiresAt.Time,
		})
	}
}
