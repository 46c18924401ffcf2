package redis

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// BlobCache implements ports.BlobCache on Redis. It backs the persistent
// photo tier: entries are written without expiry and keyed by venue id under
// a namespace prefix.
type BlobCache struct {
	r      redis.Cmdable
	prefix string
}

// NewBlobCache creates a Redis-backed blob cache namespaced by prefix.
func NewBlobCache(r redis.Cmdable, prefix string) *BlobCache {
	return &BlobCache{r: r, prefix: prefix}
}

func (c *BlobCache) namespaced(key string) string {
	if c.prefix == "" {
		return key
	}
	return c.prefix + ":" + key
}

// Get implements BlobCache.Get.
func (c *BlobCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.r.Get(ctx, c.namespaced(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Set implements BlobCache.Set.
func (c *BlobCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.r.Set(ctx, c.namespaced(key), value, ttl).Err()
}

// Delete implements BlobCache.Delete.
func (c *BlobCache) Delete(ctx context.Context, key string) error {
	return c.r.Del(ctx, c.namespaced(key)).Err()
}
