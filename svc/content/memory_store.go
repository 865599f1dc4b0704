package content

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore is an in-memory Store for local development and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	articles map[string]Article
	lessons  map[string]Lesson
	order    []string // lesson insertion order
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		articles: make(map[string]Article),
		lessons:  make(map[string]Lesson),
	}
}

func (s *MemoryStore) GetArticle(_ context.Context, id string) (Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.articles[id]
	if !ok {
		return Article{}, ErrArticleNotFound
	}
	return cloneArticle(a), nil
}

func (s *MemoryStore) GetArticleBySlug(_ context.Context, slug string) (Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.articles {
		if a.Slug == slug {
			return cloneArticle(a), nil
		}
	}
	return Article{}, ErrArticleNotFound
}

func (s *MemoryStore) UpsertArticle(_ context.Context, a Article) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.articles[a.ID]
	s.articles[a.ID] = cloneArticle(a)
	return !exists, nil
}

func (s *MemoryStore) GetLesson(_ context.Context, id string) (Lesson, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.lessons[id]
	if !ok {
		return Lesson{}, ErrLessonNotFound
	}
	return cloneLesson(l), nil
}

func (s *MemoryStore) ListLessons(_ context.Context) ([]Lesson, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Lesson, 0, len(s.order))
	for _, id := range s.order {
		l := s.lessons[id]
		out = append(out, Lesson{ID: l.ID, Title: l.Title, Slug: l.Slug})
	}
	return out, nil
}

// PutLesson stores or replaces a lesson with its quest tree.
func (s *MemoryStore) PutLesson(l Lesson) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.lessons[l.ID]; !exists {
		s.order = append(s.order, l.ID)
	}
	s.lessons[l.ID] = cloneLesson(l)
}

func cloneArticle(a Article) Article {
	a.Categories = slices.Clone(a.Categories)
	return a
}

func cloneLesson(l Lesson) Lesson {
	quests := make([]Quest, len(l.Quests))
	for i, q := range l.Quests {
		q.ArticleIDs = slices.Clone(q.ArticleIDs)
		quests[i] = q
	}
	l.Quests = quests
	return l
}
