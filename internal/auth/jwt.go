package auth

import (
	"fmt"
	"strconv"
	"time"

	"restaurant-panel/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenTTL  = 24 * time.Hour
	ticketTTL = time.Minute

	// ScopeEvents marks a ticket that only opens the live update stream.
	ScopeEvents = "events"
)

type JWTCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Scope  string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

func GenerateToken(secret string, user *models.User, now time.Time) (string, *JWTCustomClaims, error) {
	claims := &JWTCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			// jti lets a single token be revoked on logout
			ID:        strconv.FormatUint(uint64(user.ID), 10) + "-" + strconv.FormatInt(now.UnixNano(), 36),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := sign(secret, claims)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// GenerateStreamTicket derives a short-lived events ticket from a session
// token. EventSource cannot send headers, so the ticket travels in the query
// string. It shares the session's jti, logging out revokes both.
func GenerateStreamTicket(secret string, session *JWTCustomClaims, now time.Time) (string, *JWTCustomClaims, error) {
	exp := now.Add(ticketTTL)
	if session.ExpiresAt != nil && session.ExpiresAt.Time.Before(exp) {
		exp = session.ExpiresAt.Time
	}
	claims := &JWTCustomClaims{
		UserID: session.UserID,
		Email:  session.Email,
		Scope:  ScopeEvents,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := sign(secret, claims)
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

func sign(secret string, claims *JWTCustomClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseToken(secret, tokenStr string) (*JWTCustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*JWTCustomClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
