package orders

import (
	"strings"

	"restaurant-panel/internal/models"
)

// transitions lists the legal next states. Anything not listed is refused,
// including every move out of reached and refused.
var transitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderPlaced:    {models.OrderAccepted, models.OrderRefused},
	models.OrderPending:   {models.OrderAccepted, models.OrderRefused},
	models.OrderAccepted:  {models.OrderDelivered},
	models.OrderPreparing: {models.OrderDelivered},
	models.OrderDelivered: {models.OrderReached},
}

var labels = map[models.OrderStatus]string{
	models.OrderPlaced:    "Placed",
	models.OrderPending:   "Placed",
	models.OrderAccepted:  "Accepted",
	models.OrderPreparing: "Preparing",
	models.OrderDelivered: "Delivered",
	models.OrderReached:   "Reached",
	models.OrderRefused:   "Refused",
}

// NextStatuses returns the actions the panel offers for an order in status s.
func NextStatuses(s models.OrderStatus) []models.OrderStatus {
	next := transitions[s]
	out := make([]models.OrderStatus, len(next))
	copy(out, next)
	return out
}

func CanTransition(from, to models.OrderStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Predecessors returns every status from which to can be reached. It is the
// set the status compare-and-set is checked against.
func Predecessors(to models.OrderStatus) []models.OrderStatus {
	var out []models.OrderStatus
	for _, from := range allStatuses {
		if CanTransition(from, to) {
			out = append(out, from)
		}
	}
	return out
}

func IsTerminal(s models.OrderStatus) bool {
	return s == models.OrderReached || s == models.OrderRefused
}

func IsPending(s models.OrderStatus) bool {
	return s == models.OrderPlaced || s == models.OrderPending
}

func Label(s models.OrderStatus) string {
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}

// TimestampColumn is the column stamped when an order enters status s.
func TimestampColumn(s models.OrderStatus) string {
	switch s {
	case models.OrderAccepted:
		return "accepted_at"
	case models.OrderDelivered:
		return "delivered_at"
	case models.OrderReached:
		return "reached_at"
	case models.OrderRefused:
		return "refused_at"
	}
	return ""
}

var allStatuses = []models.OrderStatus{
	models.OrderPlaced,
	models.OrderPending,
	models.OrderAccepted,
	models.OrderPreparing,
	models.OrderDelivered,
	models.OrderReached,
	models.OrderRefused,
}

func ParseStatus(v string) (models.OrderStatus, bool) {
	s := models.OrderStatus(strings.ToLower(strings.TrimSpace(v)))
	for _, known := range allStatuses {
		if s == known {
			return s, true
		}
	}
	return "", false
}
