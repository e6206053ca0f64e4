package models

import "time"

// ProfileType is the `type` field written by the mobile app on onboarding.
type ProfileType string

const (
	ProfileTypeRestaurant ProfileType = "restaurant"
	ProfileTypeCustomer   ProfileType = "customer"
)

// User: restaurant profile. Created by the onboarding flow, read-only here.
type User struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	Name           string      `gorm:"size:100;not null" json:"name"`
	Email          string      `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone          string      `gorm:"size:50" json:"phone"`
	Type           ProfileType `gorm:"size:20;not null;index" json:"type"`
	PasswordHash   string      `gorm:"size:255;not null" json:"-"`
	ProfileImage   string      `gorm:"size:500" json:"profile_image"`
	TelegramChatID *int64      `json:"-"` // new-order alerts, optional
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// IsRestaurant reports whether the profile may use the panel.
func (u *User) IsRestaurant() bool {
	return u != nil && u.Type == ProfileTypeRestaurant
}
