package billing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/growthlab/pkg/pg"
)

// PgSubscriptionStore implements SubscriptionStore over a Postgres pool.
type PgSubscriptionStore struct {
	pool *pgxpool.Pool
}

// NewPgSubscriptionStore creates a Postgres-backed subscription store.
func NewPgSubscriptionStore(pool *pgxpool.Pool) *PgSubscriptionStore {
	return &PgSubscriptionStore{pool: pool}
}

func (s *PgSubscriptionStore) Upsert(ctx context.Context, sub Subscription) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO subscriptions (user_id, provider_sub_id, price_id, status, cancel_at_period_end, cancel_at, renewal_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (user_id) DO UPDATE SET
			provider_sub_id = EXCLUDED.provider_sub_id,
			price_id = EXCLUDED.price_id,
			status = EXCLUDED.status,
			cancel_at_period_end = EXCLUDED.cancel_at_period_end,
			cancel_at = EXCLUDED.cancel_at,
			renewal_date = EXCLUDED.renewal_date,
			updated_at = now()`,
		sub.UserID, sub.ProviderSubID, sub.PriceID, sub.Status,
		sub.CancelAtPeriodEnd, sub.CancelAt, sub.RenewalDate,
	)
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (s *PgSubscriptionStore) Get(ctx context.Context, userID uuid.UUID) (*Subscription, error) {
	var sub Subscription
	err := s.pool.QueryRow(ctx, `
		SELECT user_id, provider_sub_id, price_id, status, cancel_at_period_end, cancel_at, renewal_date, updated_at
		FROM subscriptions WHERE user_id = $1`, userID,
	).Scan(
		&sub.UserID, &sub.ProviderSubID, &sub.PriceID, &sub.Status,
		&sub.CancelAtPeriodEnd, &sub.CancelAt, &sub.RenewalDate, &sub.UpdatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	return &sub, nil
}
