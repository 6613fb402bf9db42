package timeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ghtimeline/timeline/pkg/cache"
	"github.com/ghtimeline/timeline/pkg/logger"
)

const previewKey = "feed:latest"

// Cache stores recently fetched event lists.
type Cache interface {
	Get(ctx context.Context, key string) ([]Event, bool, error)
	Set(ctx context.Context, key string, events []Event, ttl time.Duration) error
}

// MemoryCache is a process-local Cache.
type MemoryCache struct {
	lru *cache.LRU[string, []Event]
}

func NewMemoryCache(capacity int) *MemoryCache {
	return &MemoryCache{lru: cache.New[string, []Event](capacity)}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]Event, bool, error) {
	events, ok := m.lru.Get(key)
	return events, ok, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, events []Event, ttl time.Duration) error {
	m.lru.Set(key, events, ttl)
	return nil
}

// RedisCache shares cached event lists across instances as JSON values.
type RedisCache struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisCache(client redis.UniversalClient, prefix string) *RedisCache {
	if prefix == "" {
		prefix = "ghtimeline:"
	}
	return &RedisCache{client: client, prefix: prefix}
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]Event, bool, error) {
	raw, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	var events []Event
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, false, fmt.Errorf("decode cached events: %w", err)
	}
	return events, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, events []Event, ttl time.Duration) error {
	raw, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("encode events: %w", err)
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := r.client.Set(ctx, r.prefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// CachedFetcher serves Fetch from cache while the entry is fresh. Cache
// failures are logged and fall through to the upstream fetcher.
type CachedFetcher struct {
	next    Fetcher
	cache   Cache
	ttl     time.Duration
	log     *slog.Logger
	metrics *Metrics
}

func NewCachedFetcher(next Fetcher, c Cache, ttl time.Duration, log *slog.Logger, m *Metrics) *CachedFetcher {
	if log == nil {
		log = slog.Default()
	}
	return &CachedFetcher{next: next, cache: c, ttl: ttl, log: log, metrics: m}
}

func (f *CachedFetcher) Fetch(ctx context.Context) ([]Event, error) {
	if f.cache == nil || f.ttl <= 0 {
		return f.next.Fetch(ctx)
	}

	events, ok, err := f.cache.Get(ctx, previewKey)
	if err != nil {
		f.log.WarnContext(ctx, "preview cache read failed", logger.Error(err))
	}
	f.metrics.observeCache(ok)
	if ok {
		return events, nil
	}

	events, err = f.next.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := f.cache.Set(ctx, previewKey, events, f.ttl); err != nil {
		f.log.WarnContext(ctx, "preview cache write failed", logger.Error(err))
	}
	return events, nil
}
