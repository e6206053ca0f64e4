// Package payouts shows the payouts the payroll process made to a restaurant.
package payouts

import (
	"context"
	"log"
	"sort"

	"restaurant-panel/internal/auth"
	"restaurant-panel/internal/models"
	"restaurant-panel/internal/money"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Repository interface {
	List(ctx context.Context, restaurantID uint) ([]models.Payout, error)
}

type GormRepository struct {
	DB *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{DB: db}
}

func (r *GormRepository) List(ctx context.Context, restaurantID uint) ([]models.Payout, error) {
	var list []models.Payout
	err := r.DB.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("date DESC").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

type Stats struct {
	TotalPaid float64 `json:"total_paid"`
	Pending   float64 `json:"pending"`
	Count     int     `json:"count"`
}

// Summarize totals completed and pending payouts. Failed payouts are counted
// but add to neither sum.
func Summarize(list []models.Payout) Stats {
	s := Stats{Count: len(list)}
	for _, p := range list {
		switch p.Status {
		case models.PayoutCompleted:
			s.TotalPaid += p.Amount
		case models.PayoutPending:
			s.Pending += p.Amount
		}
	}
	s.TotalPaid = money.Round2(s.TotalPaid)
	s.Pending = money.Round2(s.Pending)
	return s
}

// SortByDateDesc puts the newest payout first.
func SortByDateDesc(list []models.Payout) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Date.After(list[j].Date)
	})
}

type PayoutResponse struct {
	models.Payout
	AmountText string `json:"amount_text"`
}

// GET /api/payouts
func ListPayoutsHandler(repo Repository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, err := auth.SessionFrom(c)
		if err != nil {
			return err
		}

		list, err := repo.List(c.UserContext(), session.RestaurantID)
		if err != nil {
			log.Printf("[ERROR] payouts for restaurant %d: %v", session.RestaurantID, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Payouts could not be loaded")
		}
		SortByDateDesc(list)

		out := make([]PayoutResponse, 0, len(list))
		for _, p := range list {
			out = append(out, PayoutResponse{Payout: p, AmountText: money.FormatTRY(p.Amount)})
		}
		return c.JSON(fiber.Map{
			"payouts": out,
			"stats":   Summarize(list),
		})
	}
}
