package auth

import (
	"context"
	"errors"
	"strings"

	"restaurant-panel/internal/models"

	"gorm.io/gorm"
)

var _ ProfileStore = (*GormProfileStore)(nil)

// GormProfileStore reads profiles from the users table.
type GormProfileStore struct {
	DB *gorm.DB
}

func NewGormProfileStore(db *gorm.DB) *GormProfileStore {
	return &GormProfileStore{DB: db}
}

func (s *GormProfileStore) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormProfileStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &user, nil
}
