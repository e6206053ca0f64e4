package dashboard

import (
	"context"
	"log"
	"time"

	"restaurant-panel/internal/auth"
	"restaurant-panel/internal/models"
	"restaurant-panel/internal/orders"

	"github.com/gofiber/fiber/v2"
)

type OrderSource interface {
	List(ctx context.Context, restaurantID uint, q orders.ListQuery) ([]models.Order, error)
}

type ProductCounter interface {
	Count(ctx context.Context, restaurantID uint) (int64, error)
}

var timeNow = time.Now

// GET /api/dashboard
func SummaryHandler(src OrderSource, products ProductCounter, loc *time.Location) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := auth.SessionFrom(c)
		if err != nil {
			return err
		}

		list, err := src.List(c.UserContext(), session.RestaurantID, orders.ListQuery{})
		if err != nil {
			log.Printf("[ERROR] dashboard orders for restaurant %d: %v", session.RestaurantID, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Dashboard could not be loaded")
		}
		productCount, err := products.Count(c.UserContext(), session.RestaurantID)
		if err != nil {
			log.Printf("[ERROR] dashboard product count for restaurant %d: %v", session.RestaurantID, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Dashboard could not be loaded")
		}

		return c.JSON(Summarize(list, productCount, timeNow(), loc))
	}
}

// GET /api/dashboard/revenue-chart?period=daily&count=7
func RevenueChartHandler(src OrderSource, loc *time.Location) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := auth.SessionFrom(c)
		if err != nil {
			return err
		}

		period := Period(c.Query("period", "daily"))
		var count int
		switch period {
		case PeriodWeekly:
			count = 8
		case PeriodMonthly:
			count = 12
		default:
			period = PeriodDaily
			count = 7
		}
		if c.Query("count") != "" {
			count = c.QueryInt("count", 0)
			if count <= 0 || count > 366 {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid count")
			}
		}

		now := timeNow()
		start, _ := ChartWindow(period, count, now, loc)
		list, err := src.List(c.UserContext(), session.RestaurantID, orders.ListQuery{From: start})
		if err != nil {
			log.Printf("[ERROR] revenue chart for restaurant %d: %v", session.RestaurantID, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Data could not be aggregated")
		}

		return c.JSON(RevenueChart(list, period, count, now, loc))
	}
}
