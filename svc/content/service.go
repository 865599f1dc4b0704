package content

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/growthlab/pkg/logger"
	"github.com/dmitrymomot/growthlab/svc/entitlement"
)

// memberOnlyReason is the human-readable denial attached to preview and
// denied outcomes.
const memberOnlyReason = "This content is available to members only."

// DefaultPreviewLength caps the free preview excerpt, in runes.
const DefaultPreviewLength = 600

// Resolver resolves the viewer's entitlement. Implemented by
// entitlement.Resolver.
type Resolver interface {
	Resolve(ctx context.Context, userID uuid.UUID) (entitlement.Entitlement, error)
}

// Searcher queries the article search index.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]SearchHit, error)
}

// Service is the server-side authority for content access. It owns the
// three-way fetch outcome: granted, preview, denied.
type Service struct {
	store      Store
	resolver   Resolver
	search     Searcher
	previewLen int
	log        *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithSearch attaches a search backend to the service.
func WithSearch(s Searcher) ServiceOption {
	return func(svc *Service) {
		svc.search = s
	}
}

// WithPreviewLength overrides the preview excerpt cap.
func WithPreviewLength(runes int) ServiceOption {
	return func(svc *Service) {
		if runes > 0 {
			svc.previewLen = runes
		}
	}
}

// WithServiceLogger supplies a logger.
func WithServiceLogger(log *slog.Logger) ServiceOption {
	return func(svc *Service) {
		if log != nil {
			svc.log = log
		}
	}
}

// NewService creates the content service. Panics if store or resolver is
// nil to fail fast during initialization.
func NewService(store Store, resolver Resolver, opts ...ServiceOption) *Service {
	if store == nil {
		panic("content: Store is required")
	}
	if resolver == nil {
		panic("content: Resolver is required")
	}

	s := &Service{
		store:      store,
		resolver:   resolver,
		previewLen: DefaultPreviewLength,
		log:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch returns the access-gated outcome for one article.
//
// Free articles are granted to any viewer. Gated articles are granted only
// to an active subscriber; everyone else gets a truncated preview, or a
// plain denial when no excerpt can be cut. Unknown or unpublished IDs are
// hard failures (ErrArticleNotFound), not denials.
func (s *Service) Fetch(ctx context.Context, userID uuid.UUID, id string) (Result, error) {
	a, err := s.store.GetArticle(ctx, id)
	if err != nil {
		return Result{}, err
	}
	if !a.Published {
		return Result{}, ErrArticleNotFound
	}

	if !a.Gated() {
		return GrantedResult(a), nil
	}

	ent, err := s.resolver.Resolve(ctx, userID)
	if err != nil {
		// Gating stays closed when entitlement cannot be resolved.
		s.log.ErrorContext(ctx, "entitlement resolution failed during fetch",
			logger.Error(err), logger.UserID(userID), logger.ArticleID(id))
		ent = entitlement.Inactive()
	}

	if ent.HasPaidAccess() {
		return GrantedResult(a), nil
	}

	excerpt := previewExcerpt(a.Body, s.previewLen)
	if excerpt == "" {
		return DeniedResult(memberOnlyReason), nil
	}

	preview := a
	preview.Body = excerpt
	return PreviewResult(preview, memberOnlyReason), nil
}

// FetchBySlug is Fetch keyed by the article's slug.
func (s *Service) FetchBySlug(ctx context.Context, userID uuid.UUID, slug string) (Result, error) {
	a, err := s.store.GetArticleBySlug(ctx, slug)
	if err != nil {
		return Result{}, err
	}
	return s.Fetch(ctx, userID, a.ID)
}

// Lesson returns the lesson with its quest tree. Used for navigation and by
// the progress rollup.
func (s *Service) Lesson(ctx context.Context, id string) (Lesson, error) {
	return s.store.GetLesson(ctx, id)
}

// Search queries the article index. Returns ErrSearchUnavailable when no
// search backend is configured.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]SearchHit, error) {
	if s.search == nil {
		return nil, ErrSearchUnavailable
	}
	return s.search.Search(ctx, query, limit)
}

// previewExcerpt cuts a free preview from a gated body. The excerpt is
// bounded by max runes and by half the body, so short gated articles are
// never leaked in full. Cuts prefer a paragraph boundary, then a word
// boundary. Returns "" when no meaningful excerpt can be cut.
func previewExcerpt(body string, max int) string {
	runes := []rune(body)
	limit := min(max, len(runes)/2)
	if limit <= 0 {
		return ""
	}

	head := string(runes[:limit])

	// Prefer ending on a complete paragraph.
	if i := strings.LastIndex(head, "</p>"); i > 0 {
		return head[:i+len("</p>")]
	}
	if i := strings.LastIndex(head, "\n\n"); i > 0 {
		return head[:i]
	}

	if i := strings.LastIndexByte(head, ' '); i > 0 {
		head = head[:i]
	}
	return strings.TrimSpace(head) + "…"
}
