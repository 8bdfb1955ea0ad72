// Package cache stores rendered menu artifacts.
//
// Rendering a diagram through Graphviz dominates the cost of most commands, so
// the CLI and the server keep rendered SVGs keyed by a hash of their DOT
// source. [FileCache] persists entries across CLI runs, [MemoryCache] serves a
// single long-running process and [Nop] disables caching.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// GetOrCompute returns the cached value for key, or calls compute and stores
// its result. Cache errors fall through to compute.
func GetOrCompute(ctx context.Context, c Cache, key string, ttl time.Duration, compute func() ([]byte, error)) ([]byte, bool, error) {
	if data, ok, err := c.Get(ctx, key); err == nil && ok {
		return data, true, nil
	}
	data, err := compute()
	if err != nil {
		return nil, false, err
	}
	_ = c.Set(ctx, key, data, ttl)
	return data, false, nil
}

// Nop stores nothing and always misses. It backs --no-cache.
var Nop Cache = nop{}

type nop struct{}

func (nop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (nop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (nop) Delete(context.Context, string) error { return nil }
func (nop) Close() error { return nil }
