package content

import "errors"

var (
	// ErrArticleNotFound indicates no article exists for the given ID.
	ErrArticleNotFound = errors.New("article not found")
	// ErrLessonNotFound indicates no lesson exists for the given ID.
	ErrLessonNotFound = errors.New("lesson not found")
	// ErrStoreUnavailable indicates the content store could not be reached.
	ErrStoreUnavailable = errors.New("content store unavailable")
	// ErrSearchUnavailable indicates the search backend could not be reached
	// or rejected the query.
	ErrSearchUnavailable = errors.New("search unavailable")
	// ErrMalformedResponse indicates a fetch envelope that carries neither
	// content nor an error flag.
	ErrMalformedResponse = errors.New("malformed content response")
)
