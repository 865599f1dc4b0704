package progress

import "errors"

var (
	// ErrInvalidStatus indicates a status outside todo/in-progress/done.
	ErrInvalidStatus = errors.New("invalid progress status")
	// ErrMissingUser indicates an upsert without an authenticated user.
	ErrMissingUser = errors.New("user is required")
	// ErrMissingArticle indicates an upsert without an article ID.
	ErrMissingArticle = errors.New("article is required")
	// ErrStoreUnavailable indicates the progress store could not be reached.
	ErrStoreUnavailable = errors.New("progress store unavailable")
)
