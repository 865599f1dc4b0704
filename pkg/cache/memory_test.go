package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/growthlab/pkg/cache"
)

func TestMemory_SetGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := cache.NewMemory[string]()

	require.NoError(t, c.Set(ctx, "k", "v", 0))

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", got)

	_, ok, err = c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_TTLExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := cache.NewMemory[int]()

	require.NoError(t, c.Set(ctx, "k", 42, 15*time.Millisecond))

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok, "entry should be fresh inside the TTL window")

	time.Sleep(30 * time.Millisecond)

	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "entry must not be served past its TTL")
}

func TestMemory_Invalidate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := cache.NewMemory[string]()

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	require.NoError(t, c.Invalidate(ctx, "k"))

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_CapacityEvictsLRU(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := cache.NewMemory(cache.WithCapacity[string](2))

	require.NoError(t, c.Set(ctx, "a", "1", 0))
	require.NoError(t, c.Set(ctx, "b", "2", 0))

	// Touch "a" so "b" becomes the eviction candidate.
	_, _, _ = c.Get(ctx, "a")

	require.NoError(t, c.Set(ctx, "c", "3", 0))

	_, ok, _ := c.Get(ctx, "b")
	assert.False(t, ok, "least recently used entry should be evicted")

	_, ok, _ = c.Get(ctx, "a")
	assert.True(t, ok)
	_, ok, _ = c.Get(ctx, "c")
	assert.True(t, ok)
}

func TestMemory_Watch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := cache.NewMemory[string]()

	type event struct {
		value string
		ok    bool
	}
	var events []event
	unsubscribe := c.Watch("k", func(value string, ok bool) {
		events = append(events, event{value, ok})
	})

	require.NoError(t, c.Set(ctx, "k", "v1", 0))
	require.NoError(t, c.Invalidate(ctx, "k"))

	require.Len(t, events, 2)
	assert.Equal(t, event{"v1", true}, events[0])
	assert.Equal(t, event{"", false}, events[1])

	// No notifications after unsubscribe.
	unsubscribe()
	require.NoError(t, c.Set(ctx, "k", "v2", 0))
	assert.Len(t, events, 2)
}

func TestMemory_WatchOtherKeyNotNotified(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := cache.NewMemory[string]()

	called := false
	unsubscribe := c.Watch("other", func(string, bool) { called = true })
	defer unsubscribe()

	require.NoError(t, c.Set(ctx, "k", "v", 0))
	assert.False(t, called)
}
