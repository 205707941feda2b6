// Package ristretto implements the upstream response cache using
// dgraph-io/ristretto as an in-process TTL cache.
package ristretto

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// ResponseCache stores raw upstream provider responses keyed by request URL.
type ResponseCache struct {
	c *ristretto.Cache[string, []byte]
}

// New creates a ristretto-backed response cache. maxSizeMB is the maximum
// total size of cached response bodies in megabytes.
func New(maxSizeMB int64) (*ResponseCache, error) {
	maxCost := maxSizeMB << 20
	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: maxCost / 100 * 10, // ~10x expected items
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &ResponseCache{c: c}, nil
}

// Get retrieves a cached response body.
func (rc *ResponseCache) Get(_ context.Context, key string) (data []byte, ok bool) {
	return rc.c.Get(key)
}

// Set stores a response body with the given TTL.
func (rc *ResponseCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	rc.c.SetWithTTL(key, value, int64(len(value)), ttl)
}

// Wait blocks until buffered writes are applied. Used by tests that read
// straight after a Set.
func (rc *ResponseCache) Wait() {
	rc.c.Wait()
}

// Close shuts down the cache and releases resources.
func (rc *ResponseCache) Close() {
	rc.c.Close()
}
