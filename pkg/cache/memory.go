package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type memoryEntry[V any] struct {
	key       string
	value     V
	expiresAt time.Time // zero means no expiry
}

// Memory is a thread-safe in-process cache with per-entry TTL and an
// optional capacity bound. When a capacity is set and reached, the least
// recently used entry is evicted.
type Memory[V any] struct {
	capacity int // 0 means unbounded
	items    map[string]*list.Element
	eviction *list.List
	mu       sync.Mutex

	watchMu  sync.Mutex
	watchers map[string]map[int]func(V, bool)
	watchSeq int

	now func() time.Time
}

// MemoryOption configures a Memory cache.
type MemoryOption[V any] func(*Memory[V])

// WithCapacity bounds the number of entries. Must be positive.
func WithCapacity[V any](n int) MemoryOption[V] {
	if n <= 0 {
		panic("cache capacity must be positive")
	}
	return func(c *Memory[V]) { c.capacity = n }
}

// NewMemory creates an in-process cache.
func NewMemory[V any](opts ...MemoryOption[V]) *Memory[V] {
	c := &Memory[V]{
		items:    make(map[string]*list.Element),
		eviction: list.New(),
		watchers: make(map[string]map[int]func(V, bool)),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get retrieves a value and marks it as recently used.
// Expired entries are removed lazily on access.
func (c *Memory[V]) Get(_ context.Context, key string) (V, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	elem, ok := c.items[key]
	if !ok {
		return zero, false, nil
	}

	entry := elem.Value.(*memoryEntry[V])
	if !entry.expiresAt.IsZero() && c.now().After(entry.expiresAt) {
		c.removeElement(elem)
		return zero, false, nil
	}

	c.eviction.MoveToFront(elem)
	return entry.value, true, nil
}

// Set adds or updates a value. A zero ttl stores the value without expiry.
func (c *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	if elem, ok := c.items[key]; ok {
		c.eviction.MoveToFront(elem)
		entry := elem.Value.(*memoryEntry[V])
		entry.value = value
		entry.expiresAt = expiresAt
	} else {
		entry := &memoryEntry[V]{key: key, value: value, expiresAt: expiresAt}
		elem := c.eviction.PushFront(entry)
		c.items[key] = elem

		if c.capacity > 0 && c.eviction.Len() > c.capacity {
			c.evictOldest()
		}
	}
	c.mu.Unlock()

	c.notify(key, value, true)
	return nil
}

// Invalidate removes the entry for key, if any.
func (c *Memory[V]) Invalidate(_ context.Context, key string) error {
	c.mu.Lock()
	elem, ok := c.items[key]
	if ok {
		c.removeElement(elem)
	}
	c.mu.Unlock()

	if ok {
		var zero V
		c.notify(key, zero, false)
	}
	return nil
}

// Watch registers fn for change notifications on key. The returned function
// removes the registration; callers must invoke it on teardown.
func (c *Memory[V]) Watch(key string, fn func(value V, ok bool)) (unsubscribe func()) {
	c.watchMu.Lock()
	defer c.watchMu.Unlock()

	c.watchSeq++
	id := c.watchSeq
	if c.watchers[key] == nil {
		c.watchers[key] = make(map[int]func(V, bool))
	}
	c.watchers[key][id] = fn

	return func() {
		c.watchMu.Lock()
		defer c.watchMu.Unlock()
		if fns, ok := c.watchers[key]; ok {
			delete(fns, id)
			if len(fns) == 0 {
				delete(c.watchers, key)
			}
		}
	}
}

// Len returns the number of entries currently held, including entries that
// have expired but not yet been evicted.
func (c *Memory[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eviction.Len()
}

// notify runs watcher callbacks synchronously outside the entry lock so a
// callback may call back into the cache without deadlocking.
func (c *Memory[V]) notify(key string, value V, ok bool) {
	c.watchMu.Lock()
	fns := make([]func(V, bool), 0, len(c.watchers[key]))
	for _, fn := range c.watchers[key] {
		fns = append(fns, fn)
	}
	c.watchMu.Unlock()

	for _, fn := range fns {
		fn(value, ok)
	}
}

func (c *Memory[V]) evictOldest() {
	if elem := c.eviction.Back(); elem != nil {
		c.removeElement(elem)
	}
}

func (c *Memory[V]) removeElement(elem *list.Element) {
	c.eviction.Remove(elem)
	entry := elem.Value.(*memoryEntry[V])
	delete(c.items, entry.key)
}
