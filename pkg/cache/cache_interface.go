package cache

import (
	"context"
	"time"
)

// Cache defines the contract for the cache layer.
// The API deploys with a process-local in-memory implementation; the
// interface keeps a swap to an external store possible.
type Cache interface {
	// Get reads a cached value into dest.
	// Returns: (found bool, error)
	// - found = true: cache hit, data unmarshaled into dest
	// - found = false: cache miss, dest untouched
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the given keys.
	Delete(ctx context.Context, keys ...string) error

	// Clear empties the cache unconditionally. Called after every
	// create/update/delete; there is no per-entity invalidation.
	Clear(ctx context.Context) error

	// Prune drops expired entries and reports how many were removed.
	Prune(ctx context.Context) (int, error)

	// Ping checks the backing store is reachable.
	Ping(ctx context.Context) error
}
