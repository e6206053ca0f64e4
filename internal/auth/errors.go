package auth

import "errors"

var (
	ErrAnonymous          = errors.New("no signed-in principal")
	ErrProfileNotFound    = errors.New("user data not found")
	ErrProfileUnavailable = errors.New("profile could not be loaded")
	ErrNotRestaurant      = errors.New("profile is not a restaurant account")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

// ThrottledError is returned while a login cooldown is running.
type ThrottledError struct {
	WaitSeconds int
}

func (e *ThrottledError) Error() string {
	return "too many failed attempts"
}
