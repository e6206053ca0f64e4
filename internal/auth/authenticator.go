package auth

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Authenticator is the credential side of the auth provider: it checks the
// password, runs the guard and issues a token.
type Authenticator struct {
	Secret   string
	Profiles ProfileStore
	Guard    *Guard
	Throttle *Throttle
	Now      func() time.Time
}

func NewAuthenticator(secret string, profiles ProfileStore, guard *Guard, throttle *Throttle) *Authenticator {
	return &Authenticator{
		Secret:   secret,
		Profiles: profiles,
		Guard:    guard,
		Throttle: throttle,
		Now:      time.Now,
	}
}

type LoginResult struct {
	Token   string
	Session *Session
}

func (a *Authenticator) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)

	if a.Throttle != nil {
		wait, err := a.Throttle.WaitSeconds(ctx, email)
		if err != nil {
			log.Printf("[WARN] login throttle lookup failed: %v", err)
		} else if wait > 0 {
			return nil, &ThrottledError{WaitSeconds: wait}
		}
	}

	user, err := a.Profiles.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrProfileNotFound) {
		return nil, err
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		a.recordFailure(ctx, email)
		return nil, ErrInvalidCredentials
	}
	a.recordSuccess(ctx, email)

	session, err := a.Guard.Evaluate(ctx, &Principal{UserID: user.ID, Email: user.Email})
	if err != nil {
		return nil, err
	}

	token, claims, err := GenerateToken(a.Secret, user, a.Now())
	if err != nil {
		return nil, err
	}
	session.TokenID = claims.ID

	return &LoginResult{Token: token, Session: session}, nil
}

func (a *Authenticator) recordFailure(ctx context.Context, email string) {
	if a.Throttle == nil {
		return
	}
	if err := a.Throttle.RecordFailure(ctx, email); err != nil {
		log.Printf("[WARN] could not record failed login: %v", err)
	}
}

func (a *Authenticator) recordSuccess(ctx context.Context, email string) {
	if a.Throttle == nil {
		return
	}
	if err := a.Throttle.RecordSuccess(ctx, email); err != nil {
		log.Printf("[WARN] could not reset login throttle: %v", err)
	}
}

// HashPassword is used by seeding and tests; profiles are created elsewhere.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
