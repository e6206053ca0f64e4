package orders

import (
	"sort"
	"time"

	"restaurant-panel/internal/models"
)

type DateRange string

const (
	RangeAll       DateRange = "all"
	RangeToday     DateRange = "today"
	RangeYesterday DateRange = "yesterday"
	RangeWeek      DateRange = "week"
	RangeMonth     DateRange = "month"
)

func ParseDateRange(v string) (DateRange, bool) {
	switch DateRange(v) {
	case "", RangeAll:
		return RangeAll, true
	case RangeToday, RangeYesterday, RangeWeek, RangeMonth:
		return DateRange(v), true
	}
	return "", false
}

// StartOfDay is local midnight of t in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// Bounds returns [from, to) for the range; a zero time means unbounded.
func (r DateRange) Bounds(now time.Time, loc *time.Location) (from, to time.Time) {
	today := StartOfDay(now, loc)
	switch r {
	case RangeToday:
		return today, time.Time{}
	case RangeYesterday:
		return today.AddDate(0, 0, -1), today
	case RangeWeek:
		return today.AddDate(0, 0, -7), time.Time{}
	case RangeMonth:
		return today.AddDate(0, -1, 0), time.Time{}
	}
	return time.Time{}, time.Time{}
}

// Filter selects orders for the list view. An empty Status means all.
type Filter struct {
	Status models.OrderStatus
	Range  DateRange
}

// statusesFor expands a filter status to the stored values it matches.
// "placed" also matches the legacy "pending".
func statusesFor(s models.OrderStatus) []models.OrderStatus {
	if s == "" {
		return nil
	}
	if IsPending(s) {
		return []models.OrderStatus{models.OrderPlaced, models.OrderPending}
	}
	return []models.OrderStatus{s}
}

// Match applies the filter in memory; it mirrors what the repository query does.
func (f Filter) Match(o *models.Order, now time.Time, loc *time.Location) bool {
	if statuses := statusesFor(f.Status); statuses != nil {
		ok := false
		for _, s := range statuses {
			if o.Status == s {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	from, to := f.Range.Bounds(now, loc)
	if !from.IsZero() && o.CreatedAt.Before(from) {
		return false
	}
	if !to.IsZero() && !o.CreatedAt.Before(to) {
		return false
	}
	return true
}

// SortNewestFirst orders by created_at descending, ties by id descending.
func SortNewestFirst(list []models.Order) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID > list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}
