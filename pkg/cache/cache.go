// Package cache stores solve results and rendered artifacts between runs.
//
// The CLI uses a [FileCache] under the user cache directory, the server can
// share a [RedisCache] between instances, and [NullCache] disables caching.
// Keys come from a [Keyer] so every backend sees the same key space.
//
//	c, _ := cache.NewFileCache(dir)
//	k := cache.NewDefaultKeyer()
//	key := k.SolveKey("C2H6", cache.SolveKeyOpts{Mode: "first"})
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. A miss is reported as hit == false with
	// a nil error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Default entry lifetimes.
const (
	// SolveTTL applies to enumerated structures. Results are deterministic,
	// so the limit only bounds disk usage.
	SolveTTL = 7 * 24 * time.Hour

	// ArtifactTTL applies to rendered SVG, PNG and DOT output.
	ArtifactTTL = 24 * time.Hour
)

// NullCache stores nothing. It backs --no-cache and the "none" backend.
type NullCache struct{}

// NewNullCache returns a cache on which every Get misses.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
