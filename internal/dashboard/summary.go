package dashboard

import (
	"sort"
	"time"

	"restaurant-panel/internal/models"
	"restaurant-panel/internal/money"
	"restaurant-panel/internal/orders"
)

const recentLimit = 5

type Stats struct {
	TodayOrders   int     `json:"today_orders"`
	TodayRevenue  float64 `json:"today_revenue"`
	PendingOrders int     `json:"pending_orders"`
	TotalProducts int64   `json:"total_products"`
	WeeklyRevenue float64 `json:"weekly_revenue"`
	WeeklyOrders  int     `json:"weekly_orders"`
	TotalOrders   int     `json:"total_orders"`
	TotalRevenue  float64 `json:"total_revenue"`
}

type Summary struct {
	Stats  Stats          `json:"stats"`
	Recent []models.Order `json:"recent_orders"`
}

// Summarize partitions all orders of a restaurant relative to now. The today
// and week windows overlap: an order from this morning counts in both.
func Summarize(list []models.Order, productCount int64, now time.Time, loc *time.Location) Summary {
	startOfToday := orders.StartOfDay(now, loc)
	startOfWeek := startOfToday.AddDate(0, 0, -7)

	stats := Stats{TotalOrders: len(list), TotalProducts: productCount}
	for i := range list {
		o := &list[i]
		stats.TotalRevenue += o.Amount
		if !o.CreatedAt.Before(startOfToday) {
			stats.TodayOrders++
			stats.TodayRevenue += o.Amount
		}
		if !o.CreatedAt.Before(startOfWeek) {
			stats.WeeklyOrders++
			stats.WeeklyRevenue += o.Amount
		}
		if orders.IsPending(o.Status) {
			stats.PendingOrders++
		}
	}
	stats.TodayRevenue = money.Round2(stats.TodayRevenue)
	stats.WeeklyRevenue = money.Round2(stats.WeeklyRevenue)
	stats.TotalRevenue = money.Round2(stats.TotalRevenue)

	recent := make([]models.Order, len(list))
	copy(recent, list)
	orders.SortNewestFirst(recent)
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	return Summary{Stats: stats, Recent: recent}
}

type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

type ChartPoint struct {
	Label   string  `json:"label"` // first day of the bucket
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type ChartTotals struct {
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type ChartResponse struct {
	Period      string       `json:"period"`
	From        string       `json:"from"`
	To          string       `json:"to"`
	Points      []ChartPoint `json:"points"`
	GrandTotals ChartTotals  `json:"grand_totals"`
}

// ChartWindow returns the first bucket start and the exclusive end for count
// buckets of the period ending with the current one.
func ChartWindow(period Period, count int, now time.Time, loc *time.Location) (time.Time, time.Time) {
	today := orders.StartOfDay(now, loc)
	switch period {
	case PeriodWeekly:
		monday := today.AddDate(0, 0, -((int(today.Weekday()) + 6) % 7))
		return monday.AddDate(0, 0, -7*(count-1)), monday.AddDate(0, 0, 7)
	case PeriodMonthly:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, loc)
		return first.AddDate(0, -(count - 1), 0), first.AddDate(0, 1, 0)
	}
	return today.AddDate(0, 0, -(count - 1)), today.AddDate(0, 0, 1)
}

func next(period Period, t time.Time) time.Time {
	switch period {
	case PeriodWeekly:
		return t.AddDate(0, 0, 7)
	case PeriodMonthly:
		return t.AddDate(0, 1, 0)
	}
	return t.AddDate(0, 0, 1)
}

// RevenueChart buckets order revenue. Empty buckets are kept so the chart
// has a point for every day, week or month in the window.
func RevenueChart(list []models.Order, period Period, count int, now time.Time, loc *time.Location) ChartResponse {
	start, end := ChartWindow(period, count, now, loc)

	var bounds []time.Time
	for t := start; t.Before(end); t = next(period, t) {
		bounds = append(bounds, t)
	}
	points := make([]ChartPoint, len(bounds))
	for i, b := range bounds {
		points[i].Label = b.Format("2006-01-02")
	}

	var grand ChartTotals
	for i := range list {
		created := list[i].CreatedAt.In(loc)
		if created.Before(start) || !created.Before(end) {
			continue
		}
		// last bucket whose start is not after created
		idx := sort.Search(len(bounds), func(j int) bool { return bounds[j].After(created) }) - 1
		if idx < 0 {
			continue
		}
		points[idx].Orders++
		points[idx].Revenue += list[i].Amount
		grand.Orders++
		grand.Revenue += list[i].Amount
	}
	for i := range points {
		points[i].Revenue = money.Round2(points[i].Revenue)
	}
	grand.Revenue = money.Round2(grand.Revenue)

	return ChartResponse{
		Period:      string(period),
		From:        start.Format("2006-01-02"),
		To:          end.AddDate(0, 0, -1).Format("2006-01-02"),
		Points:      points,
		GrandTotals: grand,
	}
}
