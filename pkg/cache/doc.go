// Package cache provides a generic, thread-safe LRU cache with optional
// per-entry expiry.
//
//	c := cache.New[string, []byte](16)
//	c.Set("preview", body, 2*time.Minute)
//	if v, ok := c.Get("preview"); ok {
//		// fresh hit
//	}
//
// When the cache is full, Set evicts the least recently used entry. Expired
// entries are removed when they are next read.
package cache
