package orders

import (
	"context"

	"restaurant-panel/internal/audit"
	"restaurant-panel/internal/events"
	"restaurant-panel/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) List(ctx context.Context, restaurantID uint, q ListQuery) ([]models.Order, error) {
	args := m.Called(ctx, restaurantID, q)
	list, _ := args.Get(0).([]models.Order)
	return list, args.Error(1)
}

func (m *mockRepository) Count(ctx context.Context, restaurantID uint) (int64, error) {
	args := m.Called(ctx, restaurantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepository) Get(ctx context.Context, restaurantID, orderID uint) (*models.Order, error) {
	args := m.Called(ctx, restaurantID, orderID)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

func (m *mockRepository) ApplyTransition(ctx context.Context, t Transition) (*TransitionResult, error) {
	args := m.Called(ctx, t)
	res, _ := args.Get(0).(*TransitionResult)
	return res, args.Error(1)
}

func (m *mockRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

type recordedAudit struct {
	entries []audit.LogOptions
}

func (r *recordedAudit) WriteLog(_ context.Context, opts audit.LogOptions) error {
	r.entries = append(r.entries, opts)
	return nil
}

type recordedEvents struct {
	sent []events.StatusChanged
}

func (r *recordedEvents) PublishStatusChanged(_ context.Context, msg events.StatusChanged) error {
	r.sent = append(r.sent, msg)
	return nil
}
