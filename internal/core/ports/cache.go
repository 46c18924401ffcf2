package ports

import (
	"context"
	"time"
)

// BlobCache is the durable key-value cache contract used for the persistent
// photo tier. Implementations should degrade gracefully (returning an error
// without crashing callers) so resolution can fall through to the next tier.
type BlobCache interface {
	// Get returns the raw bytes for key. ok=false if not found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value for key with TTL (0 or negative means no expiration).
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes the key; absence is not an error.
	Delete(ctx context.Context, key string) error
}
