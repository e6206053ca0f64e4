package products

import (
	"context"
	"fmt"
	"time"

	"restaurant-panel/internal/audit"
	"restaurant-panel/internal/auth"
	"restaurant-panel/internal/models"
	"restaurant-panel/internal/notify"
)

type Service struct {
	Repo     Repository
	Audit    audit.Recorder
	Notifier notify.Publisher
	Now      func() time.Time
}

func NewService(repo Repository, recorder audit.Recorder, notifier notify.Publisher) *Service {
	return &Service{Repo: repo, Audit: recorder, Notifier: notifier, Now: time.Now}
}

// now is truncated to what Postgres stores, so the updated_at handed to the
// panel compares equal when it comes back.
func (s *Service) now() time.Time {
	return s.Now().Truncate(time.Microsecond)
}

func (s *Service) List(ctx context.Context, restaurantID uint, search string) ([]models.Product, error) {
	return s.Repo.List(ctx, restaurantID, search)
}

func (s *Service) Get(ctx context.Context, restaurantID, id uint) (*models.Product, error) {
	return s.Repo.Get(ctx, restaurantID, id)
}

func (s *Service) Create(ctx context.Context, session *auth.Session, in ProductInput) (*models.Product, error) {
	p := &models.Product{RestaurantID: session.RestaurantID}
	if err := in.Apply(p); err != nil {
		return nil, err
	}
	now := s.now()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.record(ctx, session, p.ID, models.AuditActionCreate, fmt.Sprintf("Product created: %s", p.Name), nil, p)
	return p, nil
}

func (s *Service) Update(ctx context.Context, session *auth.Session, id uint, in ProductInput) (*models.Product, error) {
	existing, err := s.Repo.Get(ctx, session.RestaurantID, id)
	if err != nil {
		return nil, err
	}
	if in.UpdatedAt != nil && !in.UpdatedAt.Equal(existing.UpdatedAt) {
		return nil, ErrConflict
	}
	before := snapshot(existing)

	updated := *existing
	if err := in.Apply(&updated); err != nil {
		return nil, err
	}
	updated.UpdatedAt = s.now()

	if err := s.Repo.Update(ctx, &updated, existing.UpdatedAt); err != nil {
		return nil, err
	}

	s.record(ctx, session, id, models.AuditActionUpdate, fmt.Sprintf("Product updated: %s", updated.Name), before, snapshot(&updated))
	return &updated, nil
}

func (s *Service) Delete(ctx context.Context, session *auth.Session, id uint) error {
	existing, err := s.Repo.Get(ctx, session.RestaurantID, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, session.RestaurantID, id); err != nil {
		return err
	}

	s.record(ctx, session, id, models.AuditActionDelete, fmt.Sprintf("Product deleted: %s", existing.Name), snapshot(existing), nil)
	return nil
}

func (s *Service) Categories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *Service) record(ctx context.Context, session *auth.Session, id uint, action models.AuditAction, desc string, before, after any) {
	var userName string
	if session.Profile != nil {
		userName = session.Profile.Name
	}
	audit.Write(ctx, s.Audit, audit.LogOptions{
		RestaurantID: session.RestaurantID,
		UserID:       session.RestaurantID,
		UserName:     userName,
		EntityType:   "product",
		EntityID:     id,
		Action:       action,
		Description:  desc,
		Before:       before,
		After:        after,
	})
	notify.Notify(ctx, s.Notifier, session.RestaurantID, notify.TopicProducts, id)
}

// ProductResponse is a product with its nested price, as the panel reads it.
type ProductResponse struct {
	*models.Product
	Price models.Price `json:"price"`
}

func snapshot(p *models.Product) ProductResponse {
	cp := *p
	return ProductResponse{Product: &cp, Price: cp.Price()}
}
