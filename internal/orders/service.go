package orders

import (
	"context"
	"fmt"
	"log"
	"time"

	"restaurant-panel/internal/audit"
	"restaurant-panel/internal/auth"
	"restaurant-panel/internal/events"
	"restaurant-panel/internal/models"
	"restaurant-panel/internal/notify"
)

type Service struct {
	Repo     Repository
	Audit    audit.Recorder
	Notifier notify.Publisher
	Events   events.Publisher
	Location *time.Location
	Now      func() time.Time
}

func NewService(repo Repository, recorder audit.Recorder, notifier notify.Publisher, publisher events.Publisher, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		Repo:     repo,
		Audit:    recorder,
		Notifier: notifier,
		Events:   publisher,
		Location: loc,
		Now:      time.Now,
	}
}

type ListResult struct {
	Orders []models.Order `json:"orders"`
	Count  int            `json:"count"`
	Total  int64          `json:"total"` // all orders of the restaurant, unfiltered
}

func (s *Service) List(ctx context.Context, restaurantID uint, f Filter) (*ListResult, error) {
	from, to := f.Range.Bounds(s.Now(), s.Location)
	list, err := s.Repo.List(ctx, restaurantID, ListQuery{
		Statuses: statusesFor(f.Status),
		From:     from,
		To:       to,
	})
	if err != nil {
		return nil, err
	}
	total, err := s.Repo.Count(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	SortNewestFirst(list)
	return &ListResult{Orders: list, Count: len(list), Total: total}, nil
}

func (s *Service) Get(ctx context.Context, restaurantID, orderID uint) (*models.Order, error) {
	return s.Repo.Get(ctx, restaurantID, orderID)
}

type StatusResult struct {
	Order     *models.Order     `json:"order"`
	Shortages []StockAdjustment `json:"shortages"`
}

// UpdateStatus moves an order one step along its lifecycle. Accepting an
// order also takes the ordered quantities out of product stock in the same
// transaction; lines whose product lacks stock are skipped and reported.
func (s *Service) UpdateStatus(ctx context.Context, session *auth.Session, orderID uint, to models.OrderStatus) (*StatusResult, error) {
	order, err := s.Repo.Get(ctx, session.RestaurantID, orderID)
	if err != nil {
		return nil, err
	}
	from := order.Status
	if !CanTransition(from, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, from, to)
	}

	now := s.Now()
	t := Transition{
		RestaurantID: session.RestaurantID,
		OrderID:      order.ID,
		From:         Predecessors(to),
		To:           to,
		At:           now,
	}
	if to == models.OrderAccepted {
		t.Adjustments = stockAdjustments(order.Items)
	}

	res, err := s.Repo.ApplyTransition(ctx, t)
	if err != nil {
		return nil, err
	}
	for _, short := range res.Shortages {
		log.Printf("[WARN] order %d accepted without stock for product %d (%s), wanted %d",
			order.ID, short.ProductID, short.Name, short.Quantity)
	}

	updated, err := s.Repo.Get(ctx, session.RestaurantID, order.ID)
	if err != nil {
		// committed already, answer with what we know
		log.Printf("[WARN] reloading order %d after status change: %v", order.ID, err)
		order.Status = to
		updated = order
	}

	s.afterTransition(ctx, session, order.ID, from, to, now, res.Shortages)

	shortages := res.Shortages
	if shortages == nil {
		shortages = []StockAdjustment{}
	}
	return &StatusResult{Order: updated, Shortages: shortages}, nil
}

func stockAdjustments(items []models.OrderItem) []StockAdjustment {
	var out []StockAdjustment
	for _, it := range items {
		if it.ProductID == nil {
			continue
		}
		out = append(out, StockAdjustment{ProductID: *it.ProductID, Quantity: it.Units(), Name: it.Name})
	}
	return out
}

func (s *Service) afterTransition(ctx context.Context, session *auth.Session, orderID uint, from, to models.OrderStatus, at time.Time, shortages []StockAdjustment) {
	var userName string
	if session.Profile != nil {
		userName = session.Profile.Name
	}
	audit.Write(ctx, s.Audit, audit.LogOptions{
		RestaurantID: session.RestaurantID,
		UserID:       session.RestaurantID,
		UserName:     userName,
		EntityType:   "order",
		EntityID:     orderID,
		Action:       models.AuditActionStatus,
		Description:  fmt.Sprintf("Order #%d: %s -> %s", orderID, Label(from), Label(to)),
		Before:       map[string]any{"status": from},
		After:        map[string]any{"status": to, "shortages": shortages},
	})

	notify.Notify(ctx, s.Notifier, session.RestaurantID, notify.TopicOrders, orderID)

	var short []uint
	for _, a := range shortages {
		short = append(short, a.ProductID)
	}
	events.Emit(ctx, s.Events, events.StatusChanged{
		OrderID:         orderID,
		RestaurantID:    session.RestaurantID,
		From:            from,
		To:              to,
		At:              at,
		ShortProductIDs: short,
	})
}

// Ingest stores an order coming from the ordering client.
func (s *Service) Ingest(ctx context.Context, order *models.Order) error {
	if order.RestaurantID == 0 {
		return fmt.Errorf("%w: restaurant id missing", ErrInvalidOrder)
	}
	order.ID = 0
	if order.Status == "" {
		order.Status = models.OrderPlaced
	}
	if !IsPending(order.Status) {
		return fmt.Errorf("%w: new orders must be placed, got %q", ErrInvalidOrder, order.Status)
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = s.Now()
	}
	order.AcceptedAt, order.DeliveredAt, order.ReachedAt, order.RefusedAt = nil, nil, nil, nil
	for i := range order.Items {
		order.Items[i].ID = 0
		order.Items[i].OrderID = 0
	}
	order.Normalize()

	if err := s.Repo.Create(ctx, order); err != nil {
		return err
	}
	notify.Notify(ctx, s.Notifier, order.RestaurantID, notify.TopicOrders, order.ID)
	return nil
}
