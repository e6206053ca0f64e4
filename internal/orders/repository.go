package orders

import (
	"context"
	"errors"
	"time"

	"restaurant-panel/internal/models"

	"gorm.io/gorm"
)

// StockAdjustment is one conditional decrement of a product's meals_count.
type StockAdjustment struct {
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Name      string `json:"name"`
}

// Transition moves one order to To, provided it is still in one of From.
type Transition struct {
	RestaurantID uint
	OrderID      uint
	From         []models.OrderStatus
	To           models.OrderStatus
	At           time.Time
	Adjustments  []StockAdjustment
}

type TransitionResult struct {
	// Shortages are the adjustments that were skipped for lack of stock.
	Shortages []StockAdjustment
}

type ListQuery struct {
	Statuses []models.OrderStatus
	From     time.Time
	To       time.Time
}

type Repository interface {
	List(ctx context.Context, restaurantID uint, q ListQuery) ([]models.Order, error)
	Count(ctx context.Context, restaurantID uint) (int64, error)
	Get(ctx context.Context, restaurantID, orderID uint) (*models.Order, error)
	ApplyTransition(ctx context.Context, t Transition) (*TransitionResult, error)
	Create(ctx context.Context, order *models.Order) error
}

type GormRepository struct {
	DB *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{DB: db}
}

var _ Repository = (*GormRepository)(nil)

func (r *GormRepository) List(ctx context.Context, restaurantID uint, q ListQuery) ([]models.Order, error) {
	dbq := r.DB.WithContext(ctx).Preload("Items").Where("restaurant_id = ?", restaurantID)
	if len(q.Statuses) > 0 {
		dbq = dbq.Where("status IN ?", q.Statuses)
	}
	if !q.From.IsZero() {
		dbq = dbq.Where("created_at >= ?", q.From)
	}
	if !q.To.IsZero() {
		dbq = dbq.Where("created_at < ?", q.To)
	}

	var list []models.Order
	if err := dbq.Order("created_at DESC, id DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *GormRepository) Count(ctx context.Context, restaurantID uint) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Order{}).Where("restaurant_id = ?", restaurantID).Count(&n).Error
	return n, err
}

func (r *GormRepository) Get(ctx context.Context, restaurantID, orderID uint) (*models.Order, error) {
	var o models.Order
	err := r.DB.WithContext(ctx).Preload("Items").
		Where("id = ? AND restaurant_id = ?", orderID, restaurantID).
		First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// ApplyTransition writes the status and the stock decrements in a single
// transaction. The status update is a compare-and-set on From; if another
// request moved the order first nothing is written and ErrConflict is
// returned. A decrement that would take meals_count below zero matches no row
// and is reported as a shortage instead of failing the transition.
func (r *GormRepository) ApplyTransition(ctx context.Context, t Transition) (*TransitionResult, error) {
	result := &TransitionResult{}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{"status": t.To}
		if col := TimestampColumn(t.To); col != "" {
			updates[col] = t.At
		}

		res := tx.Model(&models.Order{}).
			Where("id = ? AND restaurant_id = ? AND status IN ?", t.OrderID, t.RestaurantID, t.From).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}

		for _, adj := range t.Adjustments {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND restaurant_id = ? AND meals_count >= ?", adj.ProductID, t.RestaurantID, adj.Quantity).
				UpdateColumns(map[string]any{
					"meals_count": gorm.Expr("meals_count - ?", adj.Quantity),
					"updated_at":  t.At,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				result.Shortages = append(result.Shortages, adj)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *GormRepository) Create(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}
