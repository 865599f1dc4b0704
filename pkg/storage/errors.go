package storage

import "errors"

var (
	ErrInvalidConfig      = errors.New("storage: bucket and region are required")
	ErrFailedToLoadConfig = errors.New("storage: failed to load AWS configuration")
	ErrEmptyKey           = errors.New("storage: object key is empty")
	ErrAccessDenied       = errors.New("storage: access denied")
	ErrBucketNotFound     = errors.New("storage: bucket not found")
	ErrServiceUnavailable = errors.New("storage: service unavailable")
	ErrOperationTimeout   = errors.New("storage: operation timed out")
	ErrOperationCanceled  = errors.New("storage: operation canceled")
)
