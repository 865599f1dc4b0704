package content

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/growthlab/pkg/pg"
)

// PgStore implements Store over a Postgres pool.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore creates a Postgres-backed content store.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

const articleColumns = `id, title, description, type, categories, access_level, body, slug, video_id, created_at, updated_at, published`

func (s *PgStore) GetArticle(ctx context.Context, id string) (Article, error) {
	return s.getArticle(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1`, id)
}

func (s *PgStore) GetArticleBySlug(ctx context.Context, slug string) (Article, error) {
	return s.getArticle(ctx, `SELECT `+articleColumns+` FROM articles WHERE slug = $1`, slug)
}

func (s *PgStore) getArticle(ctx context.Context, query, arg string) (Article, error) {
	var a Article
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&a.ID, &a.Title, &a.Description, &a.Type, &a.Categories, &a.AccessLevel,
		&a.Body, &a.Slug, &a.VideoID, &a.CreatedAt, &a.UpdatedAt, &a.Published,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return Article{}, ErrArticleNotFound
		}
		return Article{}, errors.Join(ErrStoreUnavailable, err)
	}
	return a, nil
}

func (s *PgStore) UpsertArticle(ctx context.Context, a Article) (bool, error) {
	var created bool
	err := s.pool.QueryRow(ctx, `
		INSERT INTO articles (`+articleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			type = EXCLUDED.type,
			categories = EXCLUDED.categories,
			access_level = EXCLUDED.access_level,
			body = EXCLUDED.body,
			slug = EXCLUDED.slug,
			video_id = EXCLUDED.video_id,
			updated_at = EXCLUDED.updated_at,
			published = EXCLUDED.published
		RETURNING (xmax = 0)`,
		a.ID, a.Title, a.Description, a.Type, a.Categories, string(a.AccessLevel),
		a.Body, a.Slug, a.VideoID, a.CreatedAt, a.UpdatedAt, a.Published,
	).Scan(&created)
	if err != nil {
		return false, errors.Join(ErrStoreUnavailable, err)
	}
	return created, nil
}

func (s *PgStore) GetLesson(ctx context.Context, id string) (Lesson, error) {
	var l Lesson
	err := s.pool.QueryRow(ctx,
		`SELECT id, title, slug FROM lessons WHERE id = $1`, id,
	).Scan(&l.ID, &l.Title, &l.Slug)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return Lesson{}, ErrLessonNotFound
		}
		return Lesson{}, errors.Join(ErrStoreUnavailable, err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT q.id, q.title, q.slug, COALESCE(array_agg(qa.article_id ORDER BY qa.position) FILTER (WHERE qa.article_id IS NOT NULL), '{}')
		FROM quests q
		LEFT JOIN quest_articles qa ON qa.quest_id = q.id
		WHERE q.lesson_id = $1
		GROUP BY q.id, q.title, q.slug, q.position
		ORDER BY q.position`, id)
	if err != nil {
		return Lesson{}, errors.Join(ErrStoreUnavailable, err)
	}
	defer rows.Close()

	for rows.Next() {
		var q Quest
		if err := rows.Scan(&q.ID, &q.Title, &q.Slug, &q.ArticleIDs); err != nil {
			return Lesson{}, errors.Join(ErrStoreUnavailable, err)
		}
		l.Quests = append(l.Quests, q)
	}
	if err := rows.Err(); err != nil {
		return Lesson{}, errors.Join(ErrStoreUnavailable, err)
	}
	return l, nil
}

func (s *PgStore) ListLessons(ctx context.Context) ([]Lesson, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, title, slug FROM lessons ORDER BY position`)
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var out []Lesson
	for rows.Next() {
		var l Lesson
		if err := rows.Scan(&l.ID, &l.Title, &l.Slug); err != nil {
			return nil, errors.Join(ErrStoreUnavailable, err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	return out, nil
}
