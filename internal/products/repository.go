package products

import (
	"context"
	"errors"
	"strings"
	"time"

	"restaurant-panel/internal/models"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("product not found")
	ErrConflict = errors.New("product was changed in the meantime")
)

type Repository interface {
	List(ctx context.Context, restaurantID uint, search string) ([]models.Product, error)
	Get(ctx context.Context, restaurantID, id uint) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product, version time.Time) error
	Delete(ctx context.Context, restaurantID, id uint) error
	Count(ctx context.Context, restaurantID uint) (int64, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
}

type GormRepository struct {
	DB *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{DB: db}
}

var _ Repository = (*GormRepository)(nil)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *GormRepository) List(ctx context.Context, restaurantID uint, search string) ([]models.Product, error) {
	dbq := r.DB.WithContext(ctx).Where("restaurant_id = ?", restaurantID)
	if q := strings.TrimSpace(search); q != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
		dbq = dbq.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern)
	}

	var list []models.Product
	if err := dbq.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *GormRepository) Get(ctx context.Context, restaurantID, id uint) (*models.Product, error) {
	var p models.Product
	err := r.DB.WithContext(ctx).Where("id = ? AND restaurant_id = ?", id, restaurantID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormRepository) Create(ctx context.Context, p *models.Product) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

// Update replaces the form fields of a product owned by p.RestaurantID,
// provided its updated_at still equals version. Accepting an order moves
// updated_at too, so a form saved over a stock decrement gets ErrConflict.
func (r *GormRepository) Update(ctx context.Context, p *models.Product, version time.Time) error {
	res := r.DB.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND restaurant_id = ? AND updated_at = ?", p.ID, p.RestaurantID, version).
		Updates(map[string]any{
			"name":         p.Name,
			"description":  p.Description,
			"category":     p.Category,
			"price_before": p.PriceBefore,
			"price_after":  p.PriceAfter,
			"discount":     p.Discount,
			"meals_count":  p.MealsCount,
			"order_day":    p.OrderDay,
			"image_url":    p.ImageURL,
			"updated_at":   p.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

// Delete removes the product for good. Orders keep their own copy of the
// item name and price, so nothing cascades.
func (r *GormRepository) Delete(ctx context.Context, restaurantID, id uint) error {
	res := r.DB.WithContext(ctx).Where("id = ? AND restaurant_id = ?", id, restaurantID).Delete(&models.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepository) Count(ctx context.Context, restaurantID uint) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Product{}).Where("restaurant_id = ?", restaurantID).Count(&n).Error
	return n, err
}

func (r *GormRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var list []models.Category
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
