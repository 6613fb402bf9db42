package cache_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghtimeline/timeline/pkg/cache"
)

func TestLRU_Basic(t *testing.T) {
	t.Parallel()

	c := cache.New[string, int](2)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("a", 1, 0)
	c.Set("b", 2, 0)
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	c.Set("a", 10, 0)
	v, _ = c.Get("a")
	assert.Equal(t, 10, v)
	assert.Equal(t, 2, c.Len())

	assert.True(t, c.Delete("a"))
	assert.False(t, c.Delete("a"))
	assert.Equal(t, 1, c.Len())
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	var evicted []string
	c := cache.New(2, cache.WithEvictCallback(func(k string, _ int) {
		evicted = append(evicted, k)
	}))

	c.Set("a", 1, 0)
	c.Set("b", 2, 0)
	_, _ = c.Get("a")
	c.Set("c", 3, 0)

	_, ok := c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, []string{"b"}, evicted)
}

func TestLRU_TTL(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	advance := func(d time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(d)
	}

	c := cache.New(4, cache.WithClock[string, string](clock))
	c.Set("short", "x", time.Minute)
	c.Set("forever", "y", 0)

	advance(59 * time.Second)
	_, ok := c.Get("short")
	assert.True(t, ok)

	advance(time.Second)
	_, ok = c.Get("short")
	assert.False(t, ok, "entry expires exactly at its deadline")
	assert.Equal(t, 1, c.Len())

	advance(24 * time.Hour)
	v, ok := c.Get("forever")
	assert.True(t, ok)
	assert.Equal(t, "y", v)

	c.Set("forever", "z", time.Second)
	advance(2 * time.Second)
	_, ok = c.Get("forever")
	assert.False(t, ok, "overwrite replaces expiry")
}

func TestLRU_Clear(t *testing.T) {
	t.Parallel()

	count := 0
	c := cache.New(3, cache.WithEvictCallback(func(string, int) { count++ }))
	c.Set("a", 1, 0)
	c.Set("b", 2, 0)
	c.Clear()

	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 2, count)
}

func TestNew_PanicsOnInvalidCapacity(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { cache.New[string, int](0) })
}

func TestLRU_Concurrent(t *testing.T) {
	t.Parallel()

	c := cache.New[string, int](50)
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				key := fmt.Sprintf("k%d", (i*j)%80)
				c.Set(key, j, time.Minute)
				_, _ = c.Get(key)
			}
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 50)
}
