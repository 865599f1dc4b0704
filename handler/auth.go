package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// TokenVerifier validates a bearer token and returns the user it belongs to.
// Session issuance lives outside this service; the verifier is injected by
// the binary that wires the router.
type TokenVerifier func(ctx context.Context, token string) (uuid.UUID, error)

type userIDContextKey struct{}

// SetUserID stores the authenticated user ID in the context.
func SetUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDContextKey{}, userID)
}

// UserFromContext returns the authenticated user ID, or uuid.Nil for an
// anonymous viewer.
func UserFromContext(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(userIDContextKey{}).(uuid.UUID)
	return id
}

// Auth returns middleware that resolves the Authorization bearer token into
// a user ID. A missing or invalid token does not reject the request: the
// viewer proceeds as anonymous and downstream gating resolves them to the
// inactive entitlement. Endpoints that require identity check
// UserFromContext themselves.
func Auth(verify TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token != "" && verify != nil {
				if userID, err := verify(r.Context(), token); err == nil && userID != uuid.Nil {
					r = r.WithContext(SetUserID(r.Context(), userID))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return h[len(prefix):]
	}
	return ""
}
