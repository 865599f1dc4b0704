package entitlement

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/growthlab/pkg/cache"
	"github.com/dmitrymomot/growthlab/pkg/logger"
)

// Record is the raw subscription state reported by the billing layer for one
// user. A nil Record means no subscription exists.
type Record struct {
	PriceID           string     `json:"price_id"`
	Status            string     `json:"status"` // provider status: active, trialing, past_due, canceled, ...
	CancelAtPeriodEnd bool       `json:"cancel_at_period_end"`
	CancelAt          *time.Time `json:"cancel_at"`
	RenewalDate       *time.Time `json:"renewal_date"`
}

// BillingSource reads the current subscription record for a user.
// Implementations return (nil, nil) when the user has no subscription;
// absence is normal state, not an error.
type BillingSource interface {
	Lookup(ctx context.Context, userID uuid.UUID) (*Record, error)
}

// isActiveAt reports whether the record grants access at the given time.
// A cancelled subscription keeps access until the end of the paid period;
// past_due and unknown statuses are denied (fail-closed).
func (r *Record) isActiveAt(now time.Time) bool {
	if r == nil {
		return false
	}
	switch r.Status {
	case "active", "trialing":
		return true
	case "canceled", "cancelled":
		return r.RenewalDate != nil && now.Before(*r.RenewalDate)
	default:
		return false
	}
}

// DefaultTTL is the accepted staleness bound for resolved entitlements.
// Within this window a plan change is only observed after an explicit
// Invalidate (the billing webhook does this); without invalidation the stale
// value may be served until the window expires.
const DefaultTTL = 5 * time.Minute

// Resolver resolves a user's entitlement from billing state with a
// short-lived cache and request deduplication: concurrent resolves for the
// same user share one in-flight lookup.
type Resolver struct {
	source  BillingSource
	catalog *Catalog
	cache   cache.Cache[Entitlement]
	ttl     time.Duration
	group   singleflight.Group
	log     *slog.Logger
	now     func() time.Time
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithCache replaces the default in-process cache, e.g. with a Redis-backed
// one shared between replicas.
func WithCache(c cache.Cache[Entitlement]) ResolverOption {
	return func(r *Resolver) {
		if c != nil {
			r.cache = c
		}
	}
}

// WithTTL overrides the default staleness window.
func WithTTL(d time.Duration) ResolverOption {
	return func(r *Resolver) {
		if d > 0 {
			r.ttl = d
		}
	}
}

// WithLogger supplies a logger for lookup failures.
func WithLogger(log *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// NewResolver creates a Resolver. Panics if source or catalog is nil to fail
// fast during initialization.
func NewResolver(source BillingSource, catalog *Catalog, opts ...ResolverOption) *Resolver {
	if source == nil {
		panic("entitlement: BillingSource is required")
	}
	if catalog == nil {
		panic("entitlement: Catalog is required")
	}

	r := &Resolver{
		source:  source,
		catalog: catalog,
		cache:   cache.NewMemory[Entitlement](),
		ttl:     DefaultTTL,
		log:     slog.New(slog.DiscardHandler),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the viewer's current entitlement.
//
// An absent viewer (uuid.Nil) resolves to the inactive entitlement, never an
// error. On billing transport failure the previously cached value is served
// if still fresh; otherwise the inactive entitlement is returned. The
// resolver never fails open to paid access.
func (r *Resolver) Resolve(ctx context.Context, userID uuid.UUID) (Entitlement, error) {
	if userID == uuid.Nil {
		return Inactive(), nil
	}

	key := userID.String()

	if ent, ok, err := r.cache.Get(ctx, key); err == nil && ok {
		return ent, nil
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		rec, err := r.source.Lookup(ctx, userID)
		if err != nil {
			return Entitlement{}, err
		}

		ent := r.normalize(rec)
		if cerr := r.cache.Set(ctx, key, ent, r.ttl); cerr != nil {
			r.log.WarnContext(ctx, "failed to cache entitlement", logger.Error(cerr), logger.UserID(userID))
		}
		return ent, nil
	})
	if err != nil {
		// Fail closed: a viewer whose billing state cannot be read is
		// treated as unsubscribed rather than surfacing an error page.
		r.log.ErrorContext(ctx, "entitlement lookup failed", logger.Error(err), logger.UserID(userID))
		return Inactive(), nil
	}

	return v.(Entitlement), nil
}

// Invalidate drops the cached entitlement for a user. Called after any
// mutating billing action (plan change, cancellation) so the next resolve
// observes fresh state instead of waiting out the staleness window.
func (r *Resolver) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return nil
	}
	return r.cache.Invalidate(ctx, userID.String())
}

// Watch registers fn for entitlement change notifications for one user.
// Notifications fire on cache updates and invalidations. The returned
// unsubscribe function must be called on teardown. When the configured cache
// does not support watching, Watch returns a no-op unsubscribe and fn is
// never called.
func (r *Resolver) Watch(userID uuid.UUID, fn func(ent Entitlement, ok bool)) (unsubscribe func()) {
	w, ok := r.cache.(cache.Watcher[Entitlement])
	if !ok {
		return func() {}
	}
	return w.Watch(userID.String(), fn)
}

// normalize maps a raw billing record to the entitlement shape. A nil record
// and an unknown price ID both normalize to inactive.
func (r *Resolver) normalize(rec *Record) Entitlement {
	if rec == nil {
		return Inactive()
	}

	active := rec.isActiveAt(r.now())

	plan, ok := r.catalog.ByPriceID(rec.PriceID)
	if !ok {
		// The provider reported a price we do not sell; grant nothing.
		return Inactive()
	}

	return Entitlement{
		PlanType:          plan.Type,
		Duration:          plan.Duration,
		Active:            active,
		CancelAtPeriodEnd: rec.CancelAtPeriodEnd,
		CancelAt:          rec.CancelAt,
		RenewalDate:       rec.RenewalDate,
	}
}
