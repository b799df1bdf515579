// Package cache provides byte-level caching for computed gallery
// payloads: rendered album JSON and layout results.
//
// Three backends are provided:
//   - FileCache: entries on disk, for the CLI and single-node serving
//   - RedisCache: shared cache for multi-instance deployments
//   - NullCache: no-op, for tests and --no-cache runs
//
// Keys are built with the helpers in keys.go so every caller derives
// them the same way.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads under string keys with optional
// expiry.
type Cache interface {
	// Get retrieves a value. The second return value reports whether
	// the key was found (and unexpired).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any underlying resources.
	Close() error
}
