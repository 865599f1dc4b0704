package config

import "errors"

var (
	// ErrParsingConfig wraps env tag parsing failures, including missing
	// required variables.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrNilPointer is returned when Load is given a nil destination.
	ErrNilPointer = errors.New("nil pointer provided to config loader")
)
