package entitlement

import "errors"

var (
	ErrEmptyCatalog = errors.New("plan catalog is empty")
	ErrInvalidPlan  = errors.New("invalid plan configuration")
)
