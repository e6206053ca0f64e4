package auth

import (
	"context"
	"errors"
	"log"

	"restaurant-panel/internal/models"
)

// Principal is whoever the auth provider says is signed in.
type Principal struct {
	UserID  uint
	Email   string
	TokenID string
}

// Session is handed to every manager once the guard has admitted a principal.
type Session struct {
	RestaurantID uint
	Profile      *models.User
	TokenID      string
}

type ProfileStore interface {
	GetProfile(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// Guard decides whether a principal may use the panel.
type Guard struct {
	Profiles ProfileStore
}

func NewGuard(profiles ProfileStore) *Guard {
	return &Guard{Profiles: profiles}
}

// Evaluate is the only place a session is admitted or cleared. It runs on
// every auth-state change, which for a stateless API means every request.
// Any failure to read the profile denies access.
func (g *Guard) Evaluate(ctx context.Context, p *Principal) (*Session, error) {
	if p == nil {
		return nil, ErrAnonymous
	}

	profile, err := g.Profiles.GetProfile(ctx, p.UserID)
	if errors.Is(err, ErrProfileNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		log.Printf("[ERROR] fetching profile %d: %v", p.UserID, err)
		return nil, ErrProfileUnavailable
	}
	if !profile.IsRestaurant() {
		return nil, ErrNotRestaurant
	}

	return &Session{
		RestaurantID: profile.ID,
		Profile:      profile,
		TokenID:      p.TokenID,
	}, nil
}
