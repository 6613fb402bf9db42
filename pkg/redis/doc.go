// Package redis connects the optional go-redis client that backs the shared
// feed cache and the rate-limit buckets.
package redis
