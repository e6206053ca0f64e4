package models

import "time"

// OrderDay: when the meals of a product can be ordered.
type OrderDay string

const (
	OrderDayToday    OrderDay = "today"
	OrderDayTomorrow OrderDay = "tomorrow"
)

type Product struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RestaurantID uint      `gorm:"index;not null" json:"idrestaurant"`
	Name         string    `gorm:"size:150;not null" json:"name"`
	Description  string    `gorm:"size:1000" json:"description"`
	Category     string    `gorm:"size:100;index" json:"category"`
	PriceBefore  float64   `gorm:"not null" json:"-"`
	PriceAfter   float64   `gorm:"not null" json:"-"`
	Discount     int       `gorm:"not null;default:0" json:"discount"`     // percent, 0-100
	MealsCount   int       `gorm:"not null;default:0" json:"meals_count"`  // available units, decremented on accept
	OrderDay     OrderDay  `gorm:"size:20;not null;default:today" json:"order_day"`
	ImageURL     string    `gorm:"size:500" json:"image_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Price is the nested before/after pair the panel works with.
type Price struct {
	Before float64 `json:"before"`
	After  float64 `json:"after"`
}

func (p *Product) Price() Price {
	return Price{Before: p.PriceBefore, After: p.PriceAfter}
}

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;unique" json:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
