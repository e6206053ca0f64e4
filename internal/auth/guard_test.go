package auth

import (
	"context"
	"errors"
	"testing"

	"restaurant-panel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGuard_Evaluate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		principal   *Principal
		setupMock   func(*mockProfileStore)
		wantErr     error
		wantSession bool
	}{
		{
			name:      "no principal",
			principal: nil,
			setupMock: func(m *mockProfileStore) {},
			wantErr:   ErrAnonymous,
		},
		{
			name:      "restaurant admitted",
			principal: &Principal{UserID: 7, TokenID: "jti"},
			setupMock: func(m *mockProfileStore) {
				m.On("GetProfile", mock.Anything, uint(7)).
					Return(&models.User{ID: 7, Type: models.ProfileTypeRestaurant}, nil).Once()
			},
			wantSession: true,
		},
		{
			name:      "customer rejected",
			principal: &Principal{UserID: 8},
			setupMock: func(m *mockProfileStore) {
				m.On("GetProfile", mock.Anything, uint(8)).
					Return(&models.User{ID: 8, Type: models.ProfileTypeCustomer}, nil).Once()
			},
			wantErr: ErrNotRestaurant,
		},
		{
			name:      "profile missing",
			principal: &Principal{UserID: 9},
			setupMock: func(m *mockProfileStore) {
				m.On("GetProfile", mock.Anything, uint(9)).Return(nil, ErrProfileNotFound).Once()
			},
			wantErr: ErrProfileNotFound,
		},
		{
			name:      "fetch failure fails closed",
			principal: &Principal{UserID: 10},
			setupMock: func(m *mockProfileStore) {
				m.On("GetProfile", mock.Anything, uint(10)).Return(nil, errors.New("connection reset")).Once()
			},
			wantErr: ErrProfileUnavailable,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			store := new(mockProfileStore)
			testCase.setupMock(store)

			session, err := NewGuard(store).Evaluate(ctx, testCase.principal)

			if testCase.wantSession {
				require.NoError(t, err)
				assert.Equal(t, uint(7), session.RestaurantID)
				assert.Equal(t, "jti", session.TokenID)
			} else {
				assert.ErrorIs(t, err, testCase.wantErr)
				assert.Nil(t, session)
			}
			store.AssertExpectations(t)
		})
	}
}
