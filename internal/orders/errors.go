package orders

import "errors"

var (
	ErrNotFound          = errors.New("order not found")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrConflict          = errors.New("order status changed concurrently")
	ErrInvalidOrder      = errors.New("invalid order")
)
