package orders

import (
	"testing"
	"time"

	"restaurant-panel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func istanbul(t *testing.T) *time.Location {
	loc, err := time.LoadLocation("Europe/Istanbul")
	require.NoError(t, err)
	return loc
}

func TestDateRangeBounds(t *testing.T) {
	loc := istanbul(t)
	// 01:30 in Istanbul is still the previous day in UTC
	now := time.Date(2025, 3, 10, 22, 30, 0, 0, time.UTC)
	midnight := time.Date(2025, 3, 11, 0, 0, 0, 0, loc)

	from, to := RangeToday.Bounds(now, loc)
	assert.True(t, midnight.Equal(from))
	assert.True(t, to.IsZero())

	from, to = RangeYesterday.Bounds(now, loc)
	assert.True(t, midnight.AddDate(0, 0, -1).Equal(from))
	assert.True(t, midnight.Equal(to))

	from, _ = RangeWeek.Bounds(now, loc)
	assert.True(t, midnight.AddDate(0, 0, -7).Equal(from))

	from, to = RangeAll.Bounds(now, loc)
	assert.True(t, from.IsZero())
	assert.True(t, to.IsZero())
}

func TestFilterMatch(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, loc)

	todayPending := &models.Order{Status: models.OrderPending, CreatedAt: now.Add(-time.Hour)}
	lastWeekAccepted := &models.Order{Status: models.OrderAccepted, CreatedAt: now.AddDate(0, 0, -3)}
	old := &models.Order{Status: models.OrderReached, CreatedAt: now.AddDate(0, -2, 0)}

	tests := []struct {
		name   string
		filter Filter
		order  *models.Order
		want   bool
	}{
		{"placed matches pending", Filter{Status: models.OrderPlaced}, todayPending, true},
		{"status mismatch", Filter{Status: models.OrderRefused}, todayPending, false},
		{"today and week overlap", Filter{Range: RangeToday}, todayPending, true},
		{"today and week overlap, week side", Filter{Range: RangeWeek}, todayPending, true},
		{"outside today", Filter{Range: RangeToday}, lastWeekAccepted, false},
		{"inside week", Filter{Range: RangeWeek}, lastWeekAccepted, true},
		{"yesterday excludes today", Filter{Range: RangeYesterday}, todayPending, false},
		{"month excludes older", Filter{Range: RangeMonth}, old, false},
		{"all", Filter{Range: RangeAll}, old, true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, testCase.filter.Match(testCase.order, now, loc))
		})
	}
}

func TestParseDateRange(t *testing.T) {
	r, ok := ParseDateRange("")
	assert.True(t, ok)
	assert.Equal(t, RangeAll, r)

	_, ok = ParseDateRange("decade")
	assert.False(t, ok)
}

func TestSortNewestFirst(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	list := []models.Order{
		{ID: 1, CreatedAt: base},
		{ID: 2, CreatedAt: base.Add(time.Hour)},
		{ID: 3, CreatedAt: base},
	}

	SortNewestFirst(list)

	assert.Equal(t, []uint{2, 3, 1}, []uint{list[0].ID, list[1].ID, list[2].ID})
}
