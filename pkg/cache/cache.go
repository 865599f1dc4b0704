package cache

import (
	"context"
	"time"
)

// Cache is a capability interface for short-lived key/value caching.
// Implementations are constructed once per process and passed by reference;
// there is no package-level singleton.
//
// A zero ttl on Set stores the value without expiry.
type Cache[V any] interface {
	// Get returns the cached value and whether a non-expired entry exists.
	Get(ctx context.Context, key string) (V, bool, error)

	// Set stores a value under key with the given time-to-live.
	Set(ctx context.Context, key string, value V, ttl time.Duration) error

	// Invalidate removes the entry for key, if any. Used after mutating
	// actions so callers do not have to wait out the staleness window.
	Invalidate(ctx context.Context, key string) error
}

// Watcher is implemented by caches that support change notification.
// The returned unsubscribe function must be called on teardown to avoid
// leaked listeners.
type Watcher[V any] interface {
	// Watch registers fn to be called whenever the entry for key changes.
	// On Set fn receives the new value with ok=true; on Invalidate it
	// receives the zero value with ok=false.
	Watch(key string, fn func(value V, ok bool)) (unsubscribe func())
}
