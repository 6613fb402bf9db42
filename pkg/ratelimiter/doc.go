// Package ratelimiter provides token bucket rate limiting with in-memory and
// Redis storage and an HTTP middleware.
//
// A bucket holds up to Capacity tokens and gains RefillRate tokens every
// RefillInterval. Each request takes one token; a request that would drive
// the count below zero is rejected with 429 and a Retry-After header.
//
//	store := ratelimiter.NewRedisStore(rdb) // or NewMemoryStore()
//	bucket, err := ratelimiter.NewBucket(store, cfg, ratelimiter.WithKeyPrefix("signup:"))
//	if err != nil {
//		return err
//	}
//	r.With(ratelimiter.Middleware(bucket, ratelimiter.ByIP)).Post("/", h)
//
// Both stores apply the same refill rule, so switching backends does not
// change observable limits.
package ratelimiter
