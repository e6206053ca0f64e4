package products

import (
	"context"
	"time"

	"restaurant-panel/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) List(ctx context.Context, restaurantID uint, search string) ([]models.Product, error) {
	args := m.Called(ctx, restaurantID, search)
	list, _ := args.Get(0).([]models.Product)
	return list, args.Error(1)
}

func (m *mockRepository) Get(ctx context.Context, restaurantID, id uint) (*models.Product, error) {
	args := m.Called(ctx, restaurantID, id)
	p, _ := args.Get(0).(*models.Product)
	return p, args.Error(1)
}

func (m *mockRepository) Create(ctx context.Context, p *models.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockRepository) Update(ctx context.Context, p *models.Product, version time.Time) error {
	args := m.Called(ctx, p, version)
	return args.Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, restaurantID, id uint) error {
	args := m.Called(ctx, restaurantID, id)
	return args.Error(0)
}

func (m *mockRepository) Count(ctx context.Context, restaurantID uint) (int64, error) {
	args := m.Called(ctx, restaurantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]models.Category)
	return list, args.Error(1)
}
