// Package bank keeps the single payout account record of each restaurant.
package bank

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"restaurant-panel/internal/audit"
	"restaurant-panel/internal/auth"
	"restaurant-panel/internal/models"
	"restaurant-panel/internal/notify"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrMissingRequired = errors.New("bank name and IBAN are required")

type Repository interface {
	Get(ctx context.Context, restaurantID uint) (*models.BankDetails, error)
	Upsert(ctx context.Context, d *models.BankDetails) error
}

type GormRepository struct {
	DB *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{DB: db}
}

// Get returns nil without error when the restaurant has not saved details yet.
func (r *GormRepository) Get(ctx context.Context, restaurantID uint) (*models.BankDetails, error) {
	var d models.BankDetails
	err := r.DB.WithContext(ctx).Where("restaurant_id = ?", restaurantID).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *GormRepository) Upsert(ctx context.Context, d *models.BankDetails) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "restaurant_id"}},
		UpdateAll: true,
	}).Create(d).Error
}

type Input struct {
	BankName      string `json:"bank_name"`
	AccountHolder string `json:"account_holder"`
	IBAN          string `json:"iban"`
	SwiftCode     string `json:"swift_code"`
	AccountNumber string `json:"account_number"`
}

// Normalize trims every field and strips spaces out of the IBAN.
func (in Input) Normalize() Input {
	return Input{
		BankName:      strings.TrimSpace(in.BankName),
		AccountHolder: strings.TrimSpace(in.AccountHolder),
		IBAN:          strings.ToUpper(strings.Join(strings.Fields(in.IBAN), "")),
		SwiftCode:     strings.ToUpper(strings.TrimSpace(in.SwiftCode)),
		AccountNumber: strings.TrimSpace(in.AccountNumber),
	}
}

func (in Input) Validate() error {
	if in.BankName == "" || in.IBAN == "" {
		return ErrMissingRequired
	}
	return nil
}

type Service struct {
	Repo     Repository
	Audit    audit.Recorder
	Notifier notify.Publisher
	Now      func() time.Time
}

func NewService(repo Repository, recorder audit.Recorder, notifier notify.Publisher) *Service {
	return &Service{Repo: repo, Audit: recorder, Notifier: notifier, Now: time.Now}
}

func (s *Service) Get(ctx context.Context, restaurantID uint) (*models.BankDetails, error) {
	return s.Repo.Get(ctx, restaurantID)
}

// Save validates before touching the store; an invalid form writes nothing.
func (s *Service) Save(ctx context.Context, session *auth.Session, in Input) (*models.BankDetails, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	before, err := s.Repo.Get(ctx, session.RestaurantID)
	if err != nil {
		// only the audit snapshot depends on it
		log.Printf("[WARN] reading bank details before save for restaurant %d: %v", session.RestaurantID, err)
	}

	d := &models.BankDetails{
		RestaurantID:  session.RestaurantID,
		BankName:      in.BankName,
		AccountHolder: in.AccountHolder,
		IBAN:          in.IBAN,
		SwiftCode:     in.SwiftCode,
		AccountNumber: in.AccountNumber,
		UpdatedAt:     s.Now(),
	}
	if err := s.Repo.Upsert(ctx, d); err != nil {
		return nil, err
	}

	action := models.AuditActionUpdate
	var beforeData any
	if before == nil {
		action = models.AuditActionCreate
	} else {
		beforeData = before
	}
	var userName string
	if session.Profile != nil {
		userName = session.Profile.Name
	}
	audit.Write(ctx, s.Audit, audit.LogOptions{
		RestaurantID: session.RestaurantID,
		UserID:       session.RestaurantID,
		UserName:     userName,
		EntityType:   "bank_details",
		EntityID:     session.RestaurantID,
		Action:       action,
		Description:  "Bank details saved",
		Before:       beforeData,
		After:        d,
	})
	notify.Notify(ctx, s.Notifier, session.RestaurantID, notify.TopicBank, session.RestaurantID)
	return d, nil
}
