package content

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/growthlab/handler"
)

// Router exposes the content endpoints.
//
// POST /fetch       — access-gated article fetch, FetchResponse envelope.
// GET  /search?q=   — full-text article search.
// GET  /lessons     — lesson list for navigation.
// GET  /lessons/{id} — one lesson with its quest tree.
func Router(svc *Service) chi.Router {
	r := chi.NewRouter()

	r.Post("/fetch", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			ID string `json:"id"`
		}
		if err := handler.Decode(req, &body); err != nil {
			handler.Error(w, err)
			return
		}
		if body.ID == "" {
			handler.Error(w, handler.ErrBadRequest)
			return
		}

		result, err := svc.Fetch(req.Context(), handler.UserFromContext(req.Context()), body.ID)
		if err != nil {
			handler.Error(w, classify(err))
			return
		}

		status := http.StatusOK
		if result.Kind() != KindGranted {
			status = http.StatusForbidden
		}
		handler.JSON(w, status, EncodeResult(result))
	})

	r.Get("/search", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query().Get("q")
		if q == "" {
			handler.Error(w, handler.ErrBadRequest)
			return
		}
		limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

		hits, err := svc.Search(req.Context(), q, limit)
		if err != nil {
			handler.Error(w, classify(err))
			return
		}
		handler.JSON(w, http.StatusOK, map[string]any{"results": hits})
	})

	r.Get("/lessons", func(w http.ResponseWriter, req *http.Request) {
		lessons, err := svc.store.ListLessons(req.Context())
		if err != nil {
			handler.Error(w, classify(err))
			return
		}
		handler.JSON(w, http.StatusOK, map[string]any{"lessons": lessons})
	})

	r.Get("/lessons/{id}", func(w http.ResponseWriter, req *http.Request) {
		lesson, err := svc.Lesson(req.Context(), chi.URLParam(req, "id"))
		if err != nil {
			handler.Error(w, classify(err))
			return
		}
		handler.JSON(w, http.StatusOK, lesson)
	})

	return r
}

// classify maps content errors onto the boundary taxonomy.
func classify(err error) error {
	switch {
	case errors.Is(err, ErrArticleNotFound), errors.Is(err, ErrLessonNotFound):
		return errors.Join(handler.ErrNotFound, err)
	case errors.Is(err, ErrStoreUnavailable), errors.Is(err, ErrSearchUnavailable):
		return errors.Join(handler.ErrNetwork, err)
	default:
		return errors.Join(handler.ErrUnknown, err)
	}
}
