// Package cache provides byte-oriented caching with pluggable backends.
//
// The fetch engine caches repository responses (existence probes, directory
// listings) so repeated resolutions do not hammer the remote repository.
// Three backends are provided:
//   - file: directory of hashed entries, the default for CLI use
//   - redis: shared cache for multi-instance deployments
//   - null: no-op cache for tests or when caching is disabled
//
// Values are opaque byte slices; callers JSON-encode what they store.
// Entries carry a TTL; an expired entry behaves like a miss.
package cache

import (
	"context"
	"time"
)

// Cache is the backend interface.
//
// Get returns (data, true, nil) on a hit, (nil, false, nil) on a miss or
// expired entry, and a non-nil error only for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
