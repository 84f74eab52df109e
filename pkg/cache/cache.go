// Package cache stores computed graph statistics between runs.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (server deployments)
//   - [MongoCache]: a MongoDB collection with a TTL index
//   - [NullCache]: never stores anything (--no-cache)
//
// All backends implement [Cache]. A miss is reported as (nil, false, nil);
// errors are reserved for backend failures, which callers treat as misses.
//
// # Keys
//
// A [Keyer] derives keys from the content hash of the input edge list and
// the options that affect the result, so changing either yields a new key.
// [ScopedKeyer] adds a prefix for shared backends.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with expiration.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// TTLs for cached artifacts.
const (
	// TTLStats applies to computed statistics. Results depend only on the
	// input bytes and options, so they stay valid for a long time.
	TTLStats = 30 * 24 * time.Hour

	// TTLRender applies to rendered DOT and SVG output.
	TTLRender = 7 * 24 * time.Hour
)

// Key types reported to observability hooks.
const (
	KeyTypeStats  = "stats"
	KeyTypeRender = "render"
)
