// Package cache provides response caching for the npms.io client.
//
// The [Cache] interface stores opaque byte payloads under string keys with a
// per-entry TTL. Three backends are provided:
//
//   - file: per-entry JSON files under a cache directory, for CLI usage
//   - redis: shared cache for repeated large assembly runs
//   - null: no-op backend for tests and cache-disabled runs
//
// Keys are hashed before hitting the backend, so arbitrary package names
// (including scoped names with slashes) are safe to use as keys.
package cache

import (
	"context"
	"time"
)

// Cache stores byte payloads under string keys with expiration.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and fresh; expired or missing entries are a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Scoped returns a view of c that prefixes every key, keeping different
// data sources (package documents, search pages) from colliding.
func Scoped(c Cache, prefix string) Cache {
	return &scoped{inner: c, prefix: prefix}
}

type scoped struct {
	inner  Cache
	prefix string
}

func (s *scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.prefix+key, data, ttl)
}

func (s *scoped) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

func (s *scoped) Close() error { return s.inner.Close() }
