// Package cache stores loaded datasets, computed layouts, and rendered
// artifacts so repeated runs over the same input skip the work.
//
// Three backends implement [Cache]:
//
//   - [FileCache] keeps entries on disk and is used by the CLI.
//   - [RedisCache] keeps entries in Redis and is used by the HTTP server.
//   - [NullCache] stores nothing and disables caching.
//
// Keys are produced by a [Keyer]. They are content addressed: a dataset key
// is derived from the hash of the uploaded bytes, a layout key from the
// dataset hash plus layout options, and an artifact key from the layout hash
// plus render options.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values per entry kind.
const (
	TTLDataset  = 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiration.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value stored under key. The boolean reports whether
	// the key was present; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
