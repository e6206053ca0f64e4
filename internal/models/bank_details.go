package models

import "time"

// BankDetails: payout account of a restaurant. One row per restaurant,
// upserted by the panel and never deleted.
type BankDetails struct {
	RestaurantID  uint      `gorm:"primaryKey;autoIncrement:false" json:"restaurant_id"`
	BankName      string    `gorm:"size:100;not null" json:"bank_name"`
	AccountHolder string    `gorm:"size:150" json:"account_holder"`
	IBAN          string    `gorm:"column:iban;size:34;not null" json:"iban"`
	SwiftCode     string    `gorm:"size:11" json:"swift_code"`
	AccountNumber string    `gorm:"size:50" json:"account_number"`
	UpdatedAt     time.Time `json:"updated_at"`
}
