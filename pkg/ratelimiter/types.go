package ratelimiter

import (
	"context"
	"time"
)

// Config defines a token bucket. Nested into app config with an envPrefix,
// e.g. `envPrefix:"SIGNUP_RATE_LIMIT_"`.
type Config struct {
	Capacity       int           `env:"CAPACITY" envDefault:"10"`
	RefillRate     int           `env:"REFILL_RATE" envDefault:"1"`
	RefillInterval time.Duration `env:"REFILL_INTERVAL" envDefault:"6s"`
}

// Enabled reports whether limiting is on. A zero capacity turns it off.
func (c Config) Enabled() bool {
	return c.Capacity > 0
}

func (c Config) validate() error {
	switch {
	case c.Capacity <= 0:
		return ErrInvalidCapacity
	case c.RefillRate <= 0:
		return ErrInvalidRefillRate
	case c.RefillInterval <= 0:
		return ErrInvalidRefillInterval
	}
	return nil
}

// Result is the outcome of one limit check.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Allowed reports whether the request fit in the bucket.
func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter is how long to wait before the next token; 0 when allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(0, time.Until(r.ResetAt))
}

// Store persists bucket state. A negative remaining count means the request
// did not fit; a denied request leaves the bucket untouched.
type Store interface {
	ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (remaining int, resetAt time.Time, err error)
	Reset(ctx context.Context, key string) error
}

// refill returns the token count after the intervals elapsed since
// lastRefill, and the new refill mark. Elapsed intervals are capped so the
// multiplication cannot overflow.
func refill(tokens int, lastRefill, now time.Time, config Config) (int, time.Time) {
	maxIntervals := int64(config.Capacity/config.RefillRate + 1)
	intervals := int(min(int64(now.Sub(lastRefill)/config.RefillInterval), maxIntervals))
	if intervals <= 0 {
		return tokens, lastRefill
	}
	return min(tokens+intervals*config.RefillRate, config.Capacity), now
}
