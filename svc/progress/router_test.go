package progress_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/growthlab/handler"
	"github.com/dmitrymomot/growthlab/svc/progress"
)

func authedRequest(method, target, body string, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if userID != uuid.Nil {
		req = req.WithContext(handler.SetUserID(req.Context(), userID))
	}
	return req
}

func TestRouter_Upsert(t *testing.T) {
	t.Parallel()

	newRouter := func() http.Handler {
		return progress.Router(progress.NewService(progress.NewMemoryStore(), testLessons()))
	}

	t.Run("records status", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		newRouter().ServeHTTP(rec, authedRequest(http.MethodPost, "/", `{"taskId":"a1","status":"done"}`, uuid.New()))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"status":"done"}`, rec.Body.String())
	})

	t.Run("anonymous rejected", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		newRouter().ServeHTTP(rec, authedRequest(http.MethodPost, "/", `{"taskId":"a1","status":"done"}`, uuid.Nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var resp struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.NotEmpty(t, resp.Error)
	})

	t.Run("mismatched userId rejected", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		body := `{"userId":"` + uuid.NewString() + `","taskId":"a1","status":"done"}`
		newRouter().ServeHTTP(rec, authedRequest(http.MethodPost, "/", body, uuid.New()))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("matching userId accepted", func(t *testing.T) {
		t.Parallel()
		userID := uuid.New()
		rec := httptest.NewRecorder()
		body := `{"userId":"` + userID.String() + `","taskId":"a1","status":"in-progress"}`
		newRouter().ServeHTTP(rec, authedRequest(http.MethodPost, "/", body, userID))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"status":"in-progress"}`, rec.Body.String())
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		newRouter().ServeHTTP(rec, authedRequest(http.MethodPost, "/", `{"taskId":"a1","status":"finished"}`, uuid.New()))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRouter_LessonProgress(t *testing.T) {
	t.Parallel()

	svc := progress.NewService(progress.NewMemoryStore(), testLessons())
	r := progress.Router(svc)
	userID := uuid.New()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, authedRequest(http.MethodPost, "/", `{"taskId":"a1","status":"done"}`, userID))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, authedRequest(http.MethodGet, "/lesson/l1", "", userID))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"completionRate":25,"growthStage":2}`, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, authedRequest(http.MethodGet, "/lesson/nope", "", userID))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
