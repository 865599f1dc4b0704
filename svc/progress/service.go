package progress

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/growthlab/pkg/cache"
	"github.com/dmitrymomot/growthlab/pkg/logger"
	"github.com/dmitrymomot/growthlab/svc/content"
)

// LessonSource provides the lesson hierarchy for rollups. Implemented by
// content.Service.
type LessonSource interface {
	Lesson(ctx context.Context, id string) (content.Lesson, error)
}

// DefaultSummaryTTL bounds how long a lesson summary may be served without
// recomputation. Upserts invalidate eagerly; the TTL only covers writes from
// other replicas.
const DefaultSummaryTTL = time.Minute

// Service records article progress and rolls it up into per-lesson
// summaries.
type Service struct {
	store   Store
	lessons LessonSource
	bands   Bands
	cache   cache.Cache[Summary]
	ttl     time.Duration
	log     *slog.Logger

	mu     sync.Mutex
	cached map[uuid.UUID][]string // lesson summaries cached per user
}

// Option configures a Service.
type Option func(*Service)

// WithBands overrides the growth-stage thresholds.
func WithBands(b Bands) Option {
	return func(s *Service) {
		s.bands = b
	}
}

// WithSummaryCache replaces the default in-process summary cache.
func WithSummaryCache(c cache.Cache[Summary]) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithSummaryTTL overrides the summary cache TTL.
func WithSummaryTTL(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// WithLogger supplies a logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService creates the progress service. Panics if store or lessons is
// nil to fail fast during initialization.
func NewService(store Store, lessons LessonSource, opts ...Option) *Service {
	if store == nil {
		panic("progress: Store is required")
	}
	if lessons == nil {
		panic("progress: LessonSource is required")
	}

	s := &Service{
		store:   store,
		lessons: lessons,
		bands:   DefaultBands,
		cache:   cache.NewMemory[Summary](),
		ttl:     DefaultSummaryTTL,
		log:     slog.New(slog.DiscardHandler),
		cached:  make(map[uuid.UUID][]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upsert records the user's status on one article. The write is idempotent
// per (user, article); CompletedAt is decided server-side. Cached lesson
// summaries for the user are invalidated so the next rollup sees the write.
func (s *Service) Upsert(ctx context.Context, userID uuid.UUID, articleID string, status Status) (Record, error) {
	if userID == uuid.Nil {
		return Record{}, ErrMissingUser
	}
	if articleID == "" {
		return Record{}, ErrMissingArticle
	}
	if !status.Valid() {
		return Record{}, ErrInvalidStatus
	}

	rec, err := s.store.Upsert(ctx, userID, articleID, status)
	if err != nil {
		return Record{}, err
	}

	s.invalidateSummaries(ctx, userID)
	return rec, nil
}

// LessonProgress returns the user's rollup for one lesson. Anonymous
// viewers get the empty summary without touching the store.
func (s *Service) LessonProgress(ctx context.Context, userID uuid.UUID, lessonID string) (Summary, error) {
	lesson, err := s.lessons.Lesson(ctx, lessonID)
	if err != nil {
		return Summary{}, err
	}
	if userID == uuid.Nil {
		return Summary{}, nil
	}

	key := summaryKey(userID, lessonID)
	if summary, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		return summary, nil
	}

	articleIDs := lesson.ArticleIDs()
	done, err := s.store.CountDone(ctx, userID, articleIDs)
	if err != nil {
		return Summary{}, err
	}

	summary := Calculate(len(articleIDs), done, s.bands)
	if err := s.cache.Set(ctx, key, summary, s.ttl); err != nil {
		s.log.WarnContext(ctx, "failed to cache lesson summary",
			logger.Error(err), logger.UserID(userID), logger.LessonID(lessonID))
	} else {
		s.rememberCached(userID, lessonID)
	}
	return summary, nil
}

// List returns all progress records for the user.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]Record, error) {
	if userID == uuid.Nil {
		return nil, ErrMissingUser
	}
	return s.store.List(ctx, userID)
}

func (s *Service) rememberCached(userID uuid.UUID, lessonID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.cached[userID] {
		if id == lessonID {
			return
		}
	}
	s.cached[userID] = append(s.cached[userID], lessonID)
}

func (s *Service) invalidateSummaries(ctx context.Context, userID uuid.UUID) {
	s.mu.Lock()
	lessonIDs := s.cached[userID]
	delete(s.cached, userID)
	s.mu.Unlock()

	for _, lessonID := range lessonIDs {
		if err := s.cache.Invalidate(ctx, summaryKey(userID, lessonID)); err != nil {
			s.log.WarnContext(ctx, "failed to invalidate lesson summary",
				logger.Error(err), logger.UserID(userID), logger.LessonID(lessonID))
		}
	}
}

func summaryKey(userID uuid.UUID, lessonID string) string {
	return userID.String() + ":" + lessonID
}
