package models

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderPlaced    OrderStatus = "placed"
	OrderPending   OrderStatus = "pending" // older clients write "pending" instead of "placed"
	OrderAccepted  OrderStatus = "accepted"
	OrderPreparing OrderStatus = "preparing"
	OrderDelivered OrderStatus = "delivered"
	OrderReached   OrderStatus = "reached"
	OrderRefused   OrderStatus = "refused"
)

// Order is created by the ordering client and only moved through its
// status lifecycle by the panel.
type Order struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	RestaurantID uint        `gorm:"<-:create;index;not null" json:"restaurant_id"`
	Status       OrderStatus `gorm:"size:20;not null;index" json:"status"`

	Name    string `gorm:"size:150" json:"name"`
	Phone   string `gorm:"size:50" json:"phone"`
	Email   string `gorm:"size:150" json:"email"`
	Address string `gorm:"size:500" json:"address"`

	// Legacy totals, either may be missing depending on the client version.
	PriceAfter *float64 `gorm:"column:price_after" json:"priceafter"`
	Total      *float64 `json:"total"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	AcceptedAt  *time.Time `json:"accepted_at"`
	DeliveredAt *time.Time `json:"delivered_at"`
	ReachedAt   *time.Time `json:"reached_at"`
	RefusedAt   *time.Time `json:"refused_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Amount is ResolveAmount, filled once when the row is loaded.
	Amount float64 `gorm:"-" json:"amount"`
}

type OrderItem struct {
	ID         uint     `gorm:"primaryKey" json:"-"`
	OrderID    uint     `gorm:"index;not null" json:"-"`
	ProductID  *uint    `gorm:"index" json:"product_id"`
	Name       string   `gorm:"size:150" json:"name"`
	Quantity   int      `gorm:"not null;default:1" json:"quantity"`
	PriceAfter float64  `json:"price_after"`
	Price      *float64 `json:"price,omitempty"`
}

// Units returns the ordered quantity; a missing quantity counts as one.
func (i OrderItem) Units() int {
	if i.Quantity <= 0 {
		return 1
	}
	return i.Quantity
}

// UnitPrice is what a receipt shows for the line.
func (i OrderItem) UnitPrice() float64 {
	if i.PriceAfter != 0 {
		return i.PriceAfter
	}
	if i.Price != nil {
		return *i.Price
	}
	return 0
}

// ResolveAmount picks the monetary total of an order. The first source that
// is set wins: priceafter, then total, then the sum of the item lines.
// Sources are never mixed.
func ResolveAmount(o *Order) float64 {
	if o.PriceAfter != nil && *o.PriceAfter != 0 {
		return *o.PriceAfter
	}
	if o.Total != nil && *o.Total != 0 {
		return *o.Total
	}
	var sum float64
	for _, it := range o.Items {
		sum += it.PriceAfter * float64(it.Units())
	}
	return sum
}

// AfterFind runs after preloads, so Items are already populated here.
func (o *Order) AfterFind(tx *gorm.DB) error {
	o.Amount = ResolveAmount(o)
	return nil
}

// Normalize fills derived fields on an order that did not come from the database.
func (o *Order) Normalize() {
	if o.Status == "" {
		o.Status = OrderPlaced
	}
	o.Amount = ResolveAmount(o)
}
