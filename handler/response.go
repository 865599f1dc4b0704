package handler

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ErrorBody is the wire shape for failed requests. Error is always true so
// clients can branch on the field without inspecting the HTTP status.
type ErrorBody struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// JSON writes v as a JSON response with the given status code. Encoding
// failures after the header is written cannot be reported to the client and
// are ignored.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes err as the standard error envelope using StatusCode for the
// HTTP status. The client-facing message is the taxonomy sentinel's text;
// wrapped internal detail stays out of the response.
func Error(w http.ResponseWriter, err error) {
	JSON(w, StatusCode(err), ErrorBody{Error: true, Message: publicMessage(err)})
}

// publicMessage reduces a classified error to its sentinel text so internal
// wrapping detail never leaks to clients.
func publicMessage(err error) string {
	for _, kind := range []error{ErrBadRequest, ErrUnauthorized, ErrForbidden, ErrNotFound, ErrNetwork} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return ErrUnknown.Error()
}

// Decode parses the request body into v. Unknown fields are rejected so
// client typos surface as errors instead of silently dropped input.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Join(ErrBadRequest, err)
	}
	return nil
}
