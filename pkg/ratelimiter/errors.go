package ratelimiter

import "errors"

var (
	ErrInvalidCapacity       = errors.New("ratelimiter: capacity must be positive")
	ErrInvalidRefillRate     = errors.New("ratelimiter: refill rate must be positive")
	ErrInvalidRefillInterval = errors.New("ratelimiter: refill interval must be positive")
	ErrInvalidTokenCount     = errors.New("ratelimiter: invalid token count")
	ErrNilStore              = errors.New("ratelimiter: store is nil")
	ErrStoreUnavailable      = errors.New("ratelimiter: store unavailable")
)
