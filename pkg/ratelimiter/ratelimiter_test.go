package ratelimiter_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghtimeline/timeline/pkg/ratelimiter"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func TestMemoryStore_ConsumeTokens(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	config := ratelimiter.Config{Capacity: 10, RefillRate: 2, RefillInterval: time.Second}

	t.Run("new bucket starts full", func(t *testing.T) {
		t.Parallel()
		clock := newClock()
		store := ratelimiter.NewMemoryStore(ratelimiter.WithClock(clock.Now), ratelimiter.WithCleanupInterval(0))

		remaining, resetAt, err := store.ConsumeTokens(ctx, "k", 3, config)
		require.NoError(t, err)
		assert.Equal(t, 7, remaining)
		assert.Equal(t, clock.Now().Add(time.Second), resetAt)
	})

	t.Run("denied request reports shortfall without debiting", func(t *testing.T) {
		t.Parallel()
		clock := newClock()
		store := ratelimiter.NewMemoryStore(ratelimiter.WithClock(clock.Now), ratelimiter.WithCleanupInterval(0))

		remaining, _, err := store.ConsumeTokens(ctx, "k", 4, config)
		require.NoError(t, err)
		assert.Equal(t, 6, remaining)

		remaining, _, err = store.ConsumeTokens(ctx, "k", 8, config)
		require.NoError(t, err)
		assert.Equal(t, -2, remaining)

		remaining, _, err = store.ConsumeTokens(ctx, "k", 6, config)
		require.NoError(t, err)
		assert.Equal(t, 0, remaining)
	})

	t.Run("denied requests do not delay recovery", func(t *testing.T) {
		t.Parallel()
		clock := newClock()
		store := ratelimiter.NewMemoryStore(ratelimiter.WithClock(clock.Now), ratelimiter.WithCleanupInterval(0))
		tight := ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second}

		remaining, _, err := store.ConsumeTokens(ctx, "k", 1, tight)
		require.NoError(t, err)
		require.Equal(t, 0, remaining)

		for range 5 {
			remaining, _, err = store.ConsumeTokens(ctx, "k", 1, tight)
			require.NoError(t, err)
			assert.Equal(t, -1, remaining)
		}

		clock.Advance(time.Second)
		remaining, _, err = store.ConsumeTokens(ctx, "k", 1, tight)
		require.NoError(t, err)
		assert.Equal(t, 0, remaining)
	})

	t.Run("refills per elapsed interval up to capacity", func(t *testing.T) {
		t.Parallel()
		clock := newClock()
		store := ratelimiter.NewMemoryStore(ratelimiter.WithClock(clock.Now), ratelimiter.WithCleanupInterval(0))

		remaining, _, err := store.ConsumeTokens(ctx, "k", 10, config)
		require.NoError(t, err)
		assert.Equal(t, 0, remaining)

		clock.Advance(1500 * time.Millisecond)
		remaining, _, err = store.ConsumeTokens(ctx, "k", 0, config)
		require.NoError(t, err)
		assert.Equal(t, 2, remaining)

		clock.Advance(time.Hour)
		remaining, _, err = store.ConsumeTokens(ctx, "k", 0, config)
		require.NoError(t, err)
		assert.Equal(t, 10, remaining)
	})

	t.Run("reset drops bucket", func(t *testing.T) {
		t.Parallel()
		store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))

		_, _, err := store.ConsumeTokens(ctx, "k", 5, config)
		require.NoError(t, err)
		require.Equal(t, 1, store.Len())
		require.NoError(t, store.Reset(ctx, "k"))
		assert.Equal(t, 0, store.Len())
	})
}

func TestMemoryStore_Close(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(time.Millisecond))
	store.Close()
	store.Close()
}

func TestNewBucket_Validation(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))

	tests := []struct {
		name   string
		store  ratelimiter.Store
		config ratelimiter.Config
		err    error
	}{
		{"nil store", nil, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second}, ratelimiter.ErrNilStore},
		{"zero capacity", store, ratelimiter.Config{RefillRate: 1, RefillInterval: time.Second}, ratelimiter.ErrInvalidCapacity},
		{"zero rate", store, ratelimiter.Config{Capacity: 1, RefillInterval: time.Second}, ratelimiter.ErrInvalidRefillRate},
		{"zero interval", store, ratelimiter.Config{Capacity: 1, RefillRate: 1}, ratelimiter.ErrInvalidRefillInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ratelimiter.NewBucket(tt.store, tt.config)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestBucket_AllowAndStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	config := ratelimiter.Config{Capacity: 2, RefillRate: 1, RefillInterval: time.Minute}

	signup, err := ratelimiter.NewBucket(store, config, ratelimiter.WithKeyPrefix("signup:"))
	require.NoError(t, err)
	trigger, err := ratelimiter.NewBucket(store, config, ratelimiter.WithKeyPrefix("trigger:"))
	require.NoError(t, err)

	for range 2 {
		res, err := signup.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
		assert.Zero(t, res.RetryAfter())
	}

	res, err := signup.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, res.Allowed())
	assert.Equal(t, 2, res.Limit)
	assert.Greater(t, res.RetryAfter(), time.Duration(0))

	res, err = trigger.Status(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Remaining)

	_, err = signup.AllowN(ctx, "1.2.3.4", 0)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)

	require.NoError(t, signup.Reset(ctx, "1.2.3.4"))
	res, err = signup.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Remaining)
}

type failingStore struct{}

func (failingStore) ConsumeTokens(context.Context, string, int, ratelimiter.Config) (int, time.Time, error) {
	return 0, time.Time{}, errors.New("connection refused")
}

func (failingStore) Reset(context.Context, string) error { return nil }

func TestBucket_StoreError(t *testing.T) {
	t.Parallel()

	b, err := ratelimiter.NewBucket(failingStore{}, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second})
	require.NoError(t, err)

	_, err = b.Allow(context.Background(), "k")
	assert.ErrorIs(t, err, ratelimiter.ErrStoreUnavailable)
}

func TestConfig_Enabled(t *testing.T) {
	t.Parallel()

	assert.True(t, ratelimiter.Config{Capacity: 1}.Enabled())
	assert.False(t, ratelimiter.Config{}.Enabled())
}
