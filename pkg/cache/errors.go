package cache

import "errors"

var (
	// ErrCacheUnavailable indicates the backing store could not be reached.
	ErrCacheUnavailable = errors.New("cache backend unavailable")
	// ErrEncodingFailed indicates the value could not be serialized for storage.
	ErrEncodingFailed = errors.New("failed to encode cache value")
)
