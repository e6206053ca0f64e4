package models

import "time"

type PayoutStatus string

const (
	PayoutPending   PayoutStatus = "pending"
	PayoutCompleted PayoutStatus = "completed"
	PayoutFailed    PayoutStatus = "failed"
)

// Payout is written by the payroll process; the panel only reads it.
type Payout struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	RestaurantID uint         `gorm:"index;not null" json:"restaurant_id"`
	Amount       float64      `gorm:"not null" json:"amount"`
	Status       PayoutStatus `gorm:"size:20;not null;index" json:"status"`
	Date         time.Time    `gorm:"index" json:"date"`
	Period       string       `gorm:"size:50" json:"period"` // e.g. "2025-11-01 / 2025-11-15"
	CreatedAt    time.Time    `json:"-"`
}
