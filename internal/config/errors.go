package config

import "errors"

var (
	errMissingSecret = errors.New("JWT_SECRET is not set, it is required in production")
	errShortSecret   = errors.New("JWT_SECRET must be at least 32 characters long")
)
