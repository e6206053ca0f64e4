package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"restaurant-panel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeStatusChanged(t *testing.T) {
	at := time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC)
	m, err := encodeStatusChanged(StatusChanged{
		OrderID:         55,
		RestaurantID:    3,
		From:            models.OrderPlaced,
		To:              models.OrderAccepted,
		At:              at,
		ShortProductIDs: []uint{9},
	})
	require.NoError(t, err)

	assert.Equal(t, "55", string(m.Key))

	var decoded StatusChanged
	require.NoError(t, json.Unmarshal(m.Value, &decoded))
	assert.Equal(t, TypeStatusChanged, decoded.Type)
	assert.Equal(t, models.OrderAccepted, decoded.To)
	assert.Equal(t, []uint{9}, decoded.ShortProductIDs)
	assert.True(t, at.Equal(decoded.At))
}

func TestEmit_NopAndNil(t *testing.T) {
	assert.NotPanics(t, func() {
		Emit(context.Background(), NopPublisher{}, StatusChanged{OrderID: 1})
		Emit(context.Background(), nil, StatusChanged{OrderID: 1})
	})
}
