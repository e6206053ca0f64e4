package auth

import (
	"context"

	"restaurant-panel/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockProfileStore struct {
	mock.Mock
}

func (m *mockProfileStore) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockProfileStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}
