package entitlement_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/growthlab/svc/entitlement"
)

func testCatalog(t *testing.T) *entitlement.Catalog {
	t.Helper()
	catalog, err := entitlement.NewCatalog([]entitlement.Plan{
		{
			ID:       "growth-monthly",
			Type:     entitlement.PlanGrowth,
			Duration: entitlement.DurationMonthly,
			PriceID:  "pri_growth_m",
			Name:     "Growth",
			Public:   true,
		},
		{
			ID:       "standard-quarterly",
			Type:     entitlement.PlanStandard,
			Duration: entitlement.DurationQuarterly,
			PriceID:  "pri_standard_q",
			Name:     "Standard",
			Public:   true,
		},
	})
	require.NoError(t, err)
	return catalog
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("anonymous viewer resolves inactive", func(t *testing.T) {
		t.Parallel()
		resolver := entitlement.NewResolver(entitlement.NewMemorySource(), testCatalog(t))

		ent, err := resolver.Resolve(context.Background(), uuid.Nil)
		require.NoError(t, err)
		assert.Equal(t, entitlement.Inactive(), ent)
	})

	t.Run("user without subscription resolves inactive", func(t *testing.T) {
		t.Parallel()
		resolver := entitlement.NewResolver(entitlement.NewMemorySource(), testCatalog(t))

		ent, err := resolver.Resolve(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.Equal(t, entitlement.Inactive(), ent)
		assert.False(t, ent.HasPaidAccess())
	})

	t.Run("active subscription resolves plan from price ID", func(t *testing.T) {
		t.Parallel()
		source := entitlement.NewMemorySource()
		userID := uuid.New()
		renewal := time.Now().AddDate(0, 1, 0)
		source.Put(userID, entitlement.Record{
			PriceID:     "pri_growth_m",
			Status:      "active",
			RenewalDate: &renewal,
		})

		resolver := entitlement.NewResolver(source, testCatalog(t))
		ent, err := resolver.Resolve(context.Background(), userID)
		require.NoError(t, err)
		assert.True(t, ent.Active)
		assert.Equal(t, entitlement.PlanGrowth, ent.EffectivePlan())
		assert.Equal(t, entitlement.DurationMonthly, ent.Duration)
	})

	t.Run("trialing subscription grants access", func(t *testing.T) {
		t.Parallel()
		source := entitlement.NewMemorySource()
		userID := uuid.New()
		source.Put(userID, entitlement.Record{PriceID: "pri_standard_q", Status: "trialing"})

		resolver := entitlement.NewResolver(source, testCatalog(t))
		ent, err := resolver.Resolve(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, entitlement.PlanStandard, ent.EffectivePlan())
	})

	t.Run("cancelled subscription keeps access until period end", func(t *testing.T) {
		t.Parallel()
		source := entitlement.NewMemorySource()
		userID := uuid.New()
		periodEnd := time.Now().AddDate(0, 0, 10)
		source.Put(userID, entitlement.Record{
			PriceID:           "pri_growth_m",
			Status:            "canceled",
			CancelAtPeriodEnd: true,
			RenewalDate:       &periodEnd,
		})

		resolver := entitlement.NewResolver(source, testCatalog(t))
		ent, err := resolver.Resolve(context.Background(), userID)
		require.NoError(t, err)
		assert.True(t, ent.Active)
		assert.True(t, ent.CancelAtPeriodEnd)
		assert.Equal(t, entitlement.PlanGrowth, ent.EffectivePlan())
	})

	t.Run("cancelled subscription past period end is inactive", func(t *testing.T) {
		t.Parallel()
		source := entitlement.NewMemorySource()
		userID := uuid.New()
		periodEnd := time.Now().AddDate(0, 0, -1)
		source.Put(userID, entitlement.Record{
			PriceID:     "pri_growth_m",
			Status:      "canceled",
			RenewalDate: &periodEnd,
		})

		resolver := entitlement.NewResolver(source, testCatalog(t))
		ent, err := resolver.Resolve(context.Background(), userID)
		require.NoError(t, err)
		assert.False(t, ent.Active)
		assert.Equal(t, entitlement.PlanNone, ent.EffectivePlan())
	})

	t.Run("unknown price ID resolves inactive", func(t *testing.T) {
		t.Parallel()
		source := entitlement.NewMemorySource()
		userID := uuid.New()
		source.Put(userID, entitlement.Record{PriceID: "pri_retired", Status: "active"})

		resolver := entitlement.NewResolver(source, testCatalog(t))
		ent, err := resolver.Resolve(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, entitlement.Inactive(), ent)
	})

	t.Run("past_due subscription is inactive", func(t *testing.T) {
		t.Parallel()
		source := entitlement.NewMemorySource()
		userID := uuid.New()
		source.Put(userID, entitlement.Record{PriceID: "pri_growth_m", Status: "past_due"})

		resolver := entitlement.NewResolver(source, testCatalog(t))
		ent, err := resolver.Resolve(context.Background(), userID)
		require.NoError(t, err)
		assert.False(t, ent.Active)
	})
}

type failingSource struct {
	err error
}

func (s *failingSource) Lookup(context.Context, uuid.UUID) (*entitlement.Record, error) {
	return nil, s.err
}

func TestResolver_FailClosed(t *testing.T) {
	t.Parallel()

	source := &failingSource{err: errors.New("billing provider unreachable")}
	resolver := entitlement.NewResolver(source, testCatalog(t))

	ent, err := resolver.Resolve(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, entitlement.Inactive(), ent)
}

func TestResolver_CacheAndInvalidate(t *testing.T) {
	t.Parallel()

	source := entitlement.NewMemorySource()
	userID := uuid.New()
	source.Put(userID, entitlement.Record{PriceID: "pri_growth_m", Status: "active"})

	resolver := entitlement.NewResolver(source, testCatalog(t))
	ctx := context.Background()

	ent, err := resolver.Resolve(ctx, userID)
	require.NoError(t, err)
	require.True(t, ent.Active)

	// Subscription ends at the provider. Within the staleness window the
	// cached value is still served until an explicit invalidation.
	source.Delete(userID)

	ent, err = resolver.Resolve(ctx, userID)
	require.NoError(t, err)
	assert.True(t, ent.Active, "stale value served inside the TTL window")

	require.NoError(t, resolver.Invalidate(ctx, userID))

	ent, err = resolver.Resolve(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, entitlement.Inactive(), ent)
}

type countingSource struct {
	lookups atomic.Int64
	release chan struct{}
	record  entitlement.Record
}

func (s *countingSource) Lookup(context.Context, uuid.UUID) (*entitlement.Record, error) {
	s.lookups.Add(1)
	<-s.release
	rec := s.record
	return &rec, nil
}

func TestResolver_SingleFlight(t *testing.T) {
	t.Parallel()

	source := &countingSource{
		release: make(chan struct{}),
		record:  entitlement.Record{PriceID: "pri_growth_m", Status: "active"},
	}
	resolver := entitlement.NewResolver(source, testCatalog(t))

	const concurrency = 16
	var wg sync.WaitGroup
	userID := uuid.New()
	results := make([]entitlement.Entitlement, concurrency)

	for i := range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ent, err := resolver.Resolve(context.Background(), userID)
			assert.NoError(t, err)
			results[i] = ent
		}()
	}

	// Let the goroutines pile up behind the in-flight lookup, then unblock.
	time.Sleep(50 * time.Millisecond)
	close(source.release)
	wg.Wait()

	assert.Equal(t, int64(1), source.lookups.Load(), "concurrent resolves share one lookup")
	for _, ent := range results {
		assert.True(t, ent.Active)
	}
}

func TestResolver_Watch(t *testing.T) {
	t.Parallel()

	source := entitlement.NewMemorySource()
	userID := uuid.New()
	source.Put(userID, entitlement.Record{PriceID: "pri_growth_m", Status: "active"})

	resolver := entitlement.NewResolver(source, testCatalog(t))

	var mu sync.Mutex
	var events []bool
	unsubscribe := resolver.Watch(userID, func(_ entitlement.Entitlement, ok bool) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, ok)
	})
	defer unsubscribe()

	ctx := context.Background()
	_, err := resolver.Resolve(ctx, userID)
	require.NoError(t, err)
	require.NoError(t, resolver.Invalidate(ctx, userID))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []bool{true, false}, events)
}
