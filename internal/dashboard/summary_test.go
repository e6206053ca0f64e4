package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"restaurant-panel/internal/auth"
	"restaurant-panel/internal/models"
	"restaurant-panel/internal/orders"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday noon
var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func order(id uint, status models.OrderStatus, createdAt time.Time, amount float64) models.Order {
	return models.Order{ID: id, Status: status, CreatedAt: createdAt, Amount: amount}
}

func TestSummarize(t *testing.T) {
	list := []models.Order{
		order(1, models.OrderPlaced, now.Add(-time.Hour), 100),
		order(2, models.OrderPending, now.Add(-2*time.Hour), 50),
		order(3, models.OrderDelivered, now.AddDate(0, 0, -3), 30),
		order(4, models.OrderReached, now.AddDate(0, 0, -20), 999),
	}

	s := Summarize(list, 12, now, time.UTC)

	assert.Equal(t, Stats{
		TodayOrders:   2,
		TodayRevenue:  150,
		PendingOrders: 2,
		TotalProducts: 12,
		WeeklyRevenue: 180,
		WeeklyOrders:  3,
		TotalOrders:   4,
		TotalRevenue:  1179,
	}, s.Stats)
}

func TestSummarize_WeekStartsAtMidnight(t *testing.T) {
	// seven days ago at 01:00 is after local midnight seven days ago
	list := []models.Order{order(1, models.OrderReached, now.AddDate(0, 0, -7).Add(-11*time.Hour), 10)}

	s := Summarize(list, 0, now, time.UTC)

	assert.Equal(t, 1, s.Stats.WeeklyOrders)
	assert.Equal(t, 0, s.Stats.TodayOrders)
}

func TestSummarize_RecentFive(t *testing.T) {
	var list []models.Order
	for i := 1; i <= 7; i++ {
		list = append(list, order(uint(i), models.OrderPlaced, now.Add(-time.Duration(8-i)*time.Minute), 1))
	}

	s := Summarize(list, 0, now, time.UTC)

	require.Len(t, s.Recent, 5)
	assert.Equal(t, uint(7), s.Recent[0].ID)
	assert.Equal(t, uint(3), s.Recent[4].ID)
	// input order untouched
	assert.Equal(t, uint(1), list[0].ID)
}

func TestRevenueChart_Daily(t *testing.T) {
	list := []models.Order{
		order(1, models.OrderPlaced, now, 40),
		order(2, models.OrderPlaced, now.Add(-time.Hour), 10.25),
		order(3, models.OrderReached, now.AddDate(0, 0, -6), 5),
		order(4, models.OrderReached, now.AddDate(0, 0, -8), 1000),
	}

	chart := RevenueChart(list, PeriodDaily, 7, now, time.UTC)

	assert.Equal(t, "2025-03-04", chart.From)
	assert.Equal(t, "2025-03-10", chart.To)
	require.Len(t, chart.Points, 7)
	assert.Equal(t, ChartPoint{Label: "2025-03-04", Orders: 1, Revenue: 5}, chart.Points[0])
	assert.Equal(t, 2, chart.Points[6].Orders)
	assert.Equal(t, ChartTotals{Orders: 3, Revenue: 55.25}, chart.GrandTotals)
}

func TestChartWindow(t *testing.T) {
	from, to := ChartWindow(PeriodWeekly, 2, now, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC), to)

	from, to = ChartWindow(PeriodMonthly, 3, now, time.UTC)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), to)
}

type fakeOrders struct {
	list []models.Order
	got  orders.ListQuery
}

func (f *fakeOrders) List(_ context.Context, _ uint, q orders.ListQuery) ([]models.Order, error) {
	f.got = q
	return f.list, nil
}

type fakeProducts int64

func (f fakeProducts) Count(context.Context, uint) (int64, error) { return int64(f), nil }

func newTestApp(src OrderSource) *fiber.App {
	timeNow = func() time.Time { return now }
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(auth.CtxSessionKey, &auth.Session{RestaurantID: 7})
		return c.Next()
	})
	app.Get("/api/dashboard", SummaryHandler(src, fakeProducts(4), time.UTC))
	app.Get("/api/dashboard/revenue-chart", RevenueChartHandler(src, time.UTC))
	return app
}

func TestSummaryHandler(t *testing.T) {
	src := &fakeOrders{list: []models.Order{order(1, models.OrderPlaced, now, 100)}}

	resp, err := newTestApp(src).Test(httptest.NewRequest(http.MethodGet, "/api/dashboard", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body Summary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(4), body.Stats.TotalProducts)
	assert.Equal(t, 100.0, body.Stats.TodayRevenue)
	assert.Len(t, body.Recent, 1)
}

func TestRevenueChartHandler(t *testing.T) {
	src := &fakeOrders{}
	app := newTestApp(src)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/dashboard/revenue-chart?period=monthly", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), src.got.From)

	var body ChartResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Points, 12)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/dashboard/revenue-chart?count=-1", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
