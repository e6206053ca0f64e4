package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"restaurant-panel/internal/models"

	"gorm.io/gorm"
)

type LogOptions struct {
	RestaurantID uint
	UserID       uint
	UserName     string
	EntityType   string
	EntityID     uint
	Action       models.AuditAction
	Description  string
	Before       any
	After        any
}

// Recorder persists audit entries. Services take this instead of a *gorm.DB
// so they can be tested without a database.
type Recorder interface {
	WriteLog(ctx context.Context, opts LogOptions) error
}

type GormRecorder struct {
	DB *gorm.DB
}

func NewGormRecorder(db *gorm.DB) *GormRecorder {
	return &GormRecorder{DB: db}
}

func (r *GormRecorder) WriteLog(ctx context.Context, opts LogOptions) error {
	entry := buildEntry(opts)
	if err := r.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("audit log could not be saved: %w", err)
	}
	return nil
}

func buildEntry(opts LogOptions) models.AuditLog {
	return models.AuditLog{
		RestaurantID: opts.RestaurantID,
		UserID:       opts.UserID,
		UserName:     opts.UserName,
		EntityType:   opts.EntityType,
		EntityID:     opts.EntityID,
		Action:       opts.Action,
		Description:  opts.Description,
		BeforeData:   snapshot(opts.Before),
		AfterData:    snapshot(opts.After),
	}
}

// jsonb columns reject the empty string, so absent snapshots are stored as null.
func snapshot(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

// Write records an entry and only logs a failure. The audited change has
// already been committed by the time this runs.
func Write(ctx context.Context, r Recorder, opts LogOptions) {
	if r == nil {
		return
	}
	if err := r.WriteLog(ctx, opts); err != nil {
		log.Printf("[WARN] %v (%s %s/%d)", err, opts.Action, opts.EntityType, opts.EntityID)
	}
}

// ListFilter narrows the audit log of one restaurant.
type ListFilter struct {
	EntityType string
	EntityID   uint
	Limit      int
}

func (r *GormRecorder) List(ctx context.Context, restaurantID uint, f ListFilter) ([]models.AuditLog, error) {
	q := r.DB.WithContext(ctx).Model(&models.AuditLog{}).Where("restaurant_id = ?", restaurantID)
	if f.EntityType != "" {
		q = q.Where("entity_type = ?", f.EntityType)
	}
	if f.EntityID > 0 {
		q = q.Where("entity_id = ?", f.EntityID)
	}
	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var logs []models.AuditLog
	if err := q.Order("created_at DESC").Limit(limit).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
