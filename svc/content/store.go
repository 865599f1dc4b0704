package content

import "context"

// Store reads and writes the content catalog. Reads serve the fetch path;
// writes exist for the import pipeline only.
type Store interface {
	// GetArticle returns the article with the given ID.
	// Returns ErrArticleNotFound when absent.
	GetArticle(ctx context.Context, id string) (Article, error)

	// GetArticleBySlug returns the article with the given slug.
	// Returns ErrArticleNotFound when absent.
	GetArticleBySlug(ctx context.Context, slug string) (Article, error)

	// UpsertArticle inserts or replaces an article keyed by ID.
	// Reports whether a new row was created.
	UpsertArticle(ctx context.Context, a Article) (created bool, err error)

	// GetLesson returns the lesson with its quest tree.
	// Returns ErrLessonNotFound when absent.
	GetLesson(ctx context.Context, id string) (Lesson, error)

	// ListLessons returns all lessons ordered by position, without quest
	// trees loaded.
	ListLessons(ctx context.Context) ([]Lesson, error)
}
