package handler

import (
	"context"
	"errors"
	"net/http"
)

// Error taxonomy for request handling. Services classify their failures into
// these kinds at the boundary; the HTTP layer maps each kind to a status
// code. Clients key off the response body, not the status, so the mapping is
// informative rather than load-bearing.
var (
	// ErrBadRequest indicates the request body or parameters were malformed.
	ErrBadRequest = errors.New("bad request")
	// ErrUnauthorized indicates the viewer could not be identified.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden indicates the viewer is identified but not entitled.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNetwork indicates an upstream dependency could not be reached.
	ErrNetwork = errors.New("upstream unavailable")
	// ErrUnknown is the fallback for unclassified server failures.
	ErrUnknown = errors.New("internal error")
)

// StatusCode maps a classified error to an HTTP status. Unclassified errors
// map to 500.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNetwork), errors.Is(err, context.DeadlineExceeded):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
