package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a Cache backed by a shared Redis instance. Values are stored as
// JSON so multiple service replicas observe the same cached state.
//
// Redis does not implement Watcher; change notification is an in-process
// concern served by Memory.
type Redis[V any] struct {
	client redis.UniversalClient
	prefix string
}

// NewRedis creates a Redis-backed cache. The prefix namespaces keys so
// unrelated caches can share one Redis database.
func NewRedis[V any](client redis.UniversalClient, prefix string) *Redis[V] {
	if client == nil {
		panic("cache: redis client is required")
	}
	return &Redis[V]{client: client, prefix: prefix}
}

func (c *Redis[V]) key(key string) string {
	if c.prefix == "" {
		return key
	}
	return c.prefix + ":" + key
}

// Get returns the cached value for key. A missing key is not an error.
func (c *Redis[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V
	raw, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return zero, false, nil
		}
		return zero, false, errors.Join(ErrCacheUnavailable, err)
	}

	var value V
	if err := json.Unmarshal(raw, &value); err != nil {
		// A corrupt entry is treated as a miss; the caller will refetch
		// and overwrite it.
		return zero, false, nil
	}
	return value, true, nil
}

// Set stores value under key. Redis requires a positive expiry for SET with
// TTL; a zero ttl stores the value without expiry.
func (c *Redis[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Join(ErrEncodingFailed, err)
	}
	if err := c.client.Set(ctx, c.key(key), raw, ttl).Err(); err != nil {
		return errors.Join(ErrCacheUnavailable, err)
	}
	return nil
}

// Invalidate removes the entry for key.
func (c *Redis[V]) Invalidate(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return errors.Join(ErrCacheUnavailable, err)
	}
	return nil
}
