package billing

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/growthlab/svc/entitlement"
)

// Subscription is the locally mirrored billing state for one user. Webhooks
// are the only writer; entitlement resolution is the main reader. Mirroring
// locally keeps the read path off the provider's API.
type Subscription struct {
	UserID            uuid.UUID  `json:"userId"`
	ProviderSubID     string     `json:"providerSubId"`
	PriceID           string     `json:"priceId"`
	Status            string     `json:"status"`
	CancelAtPeriodEnd bool       `json:"cancelAtPeriodEnd"`
	CancelAt          *time.Time `json:"cancelAt"`
	RenewalDate       *time.Time `json:"renewalDate"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// SubscriptionStore persists mirrored subscriptions keyed by user.
type SubscriptionStore interface {
	// Upsert inserts or replaces the user's subscription.
	Upsert(ctx context.Context, sub Subscription) error

	// Get returns the user's subscription, or (nil, nil) when absent.
	Get(ctx context.Context, userID uuid.UUID) (*Subscription, error)
}

// Source adapts a SubscriptionStore to entitlement.BillingSource.
type Source struct {
	store SubscriptionStore
}

// NewSource wraps a subscription store for entitlement resolution.
func NewSource(store SubscriptionStore) *Source {
	return &Source{store: store}
}

// Lookup implements entitlement.BillingSource.
func (s *Source) Lookup(ctx context.Context, userID uuid.UUID) (*entitlement.Record, error) {
	sub, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, nil
	}
	return &entitlement.Record{
		PriceID:           sub.PriceID,
		Status:            sub.Status,
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
		CancelAt:          sub.CancelAt,
		RenewalDate:       sub.RenewalDate,
	}, nil
}

// MemorySubscriptionStore is an in-memory SubscriptionStore for local
// development and tests.
type MemorySubscriptionStore struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]Subscription
}

// NewMemorySubscriptionStore returns an empty MemorySubscriptionStore.
func NewMemorySubscriptionStore() *MemorySubscriptionStore {
	return &MemorySubscriptionStore{subs: make(map[uuid.UUID]Subscription)}
}

func (s *MemorySubscriptionStore) Upsert(_ context.Context, sub Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[sub.UserID] = sub
	return nil
}

func (s *MemorySubscriptionStore) Get(_ context.Context, userID uuid.UUID) (*Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subs[userID]
	if !ok {
		return nil, nil
	}
	out := sub
	return &out, nil
}
