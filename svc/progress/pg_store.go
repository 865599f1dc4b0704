package progress

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore implements Store over a Postgres pool. The progress table carries
// a unique key on (user_id, article_id); the upsert rides on it.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore creates a Postgres-backed progress store.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

func (s *PgStore) Upsert(ctx context.Context, userID uuid.UUID, articleID string, status Status) (Record, error) {
	var rec Record
	err := s.pool.QueryRow(ctx, `
		INSERT INTO progress (user_id, article_id, status, completed_at, updated_at)
		VALUES ($1, $2, $3, CASE WHEN $3 = 'done' THEN now() END, now())
		ON CONFLICT (user_id, article_id) DO UPDATE SET
			status = EXCLUDED.status,
			completed_at = CASE
				WHEN EXCLUDED.status = 'done' AND progress.status = 'done' THEN progress.completed_at
				WHEN EXCLUDED.status = 'done' THEN now()
				ELSE NULL
			END,
			updated_at = now()
		RETURNING user_id, article_id, status, completed_at, updated_at`,
		userID, articleID, string(status),
	).Scan(&rec.UserID, &rec.ArticleID, &rec.Status, &rec.CompletedAt, &rec.UpdatedAt)
	if err != nil {
		return Record{}, errors.Join(ErrStoreUnavailable, err)
	}
	return rec, nil
}

func (s *PgStore) CountDone(ctx context.Context, userID uuid.UUID, articleIDs []string) (int, error) {
	if len(articleIDs) == 0 {
		return 0, nil
	}

	var count int
	err := s.pool.QueryRow(ctx, `
		SELECT count(*) FROM progress
		WHERE user_id = $1 AND status = 'done' AND article_id = ANY($2)`,
		userID, articleIDs,
	).Scan(&count)
	if err != nil {
		return 0, errors.Join(ErrStoreUnavailable, err)
	}
	return count, nil
}

func (s *PgStore) List(ctx context.Context, userID uuid.UUID) ([]Record, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT user_id, article_id, status, completed_at, updated_at
		FROM progress WHERE user_id = $1 ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.UserID, &rec.ArticleID, &rec.Status, &rec.CompletedAt, &rec.UpdatedAt); err != nil {
			return nil, errors.Join(ErrStoreUnavailable, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	return out, nil
}
