package requestid_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/growthlab/pkg/requestid"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("generates id when absent", func(t *testing.T) {
		t.Parallel()
		var got string
		h := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = requestid.FromContext(r.Context())
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NotEmpty(t, got)
		_, err := uuid.Parse(got)
		assert.NoError(t, err)
		assert.Equal(t, got, rec.Header().Get(requestid.Header))
	})

	t.Run("reuses valid client id", func(t *testing.T) {
		t.Parallel()
		var got string
		h := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = requestid.FromContext(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(requestid.Header, "client-id-42")
		h.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, "client-id-42", got)
	})

	t.Run("replaces malformed client id", func(t *testing.T) {
		t.Parallel()
		var got string
		h := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = requestid.FromContext(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(requestid.Header, "bad id with spaces")
		h.ServeHTTP(httptest.NewRecorder(), req)

		assert.NotEqual(t, "bad id with spaces", got)
		assert.NotEmpty(t, got)
	})
}

func TestFromContext_Empty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, requestid.FromContext(t.Context()))
}
