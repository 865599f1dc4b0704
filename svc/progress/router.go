package progress

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/growthlab/handler"
	"github.com/dmitrymomot/growthlab/svc/content"
)

// upsertRequest mirrors the progress-upsert wire contract. The userId field
// is accepted for compatibility but must match the authenticated session
// when present.
type upsertRequest struct {
	UserID string `json:"userId"`
	TaskID string `json:"taskId"`
	Status Status `json:"status"`
}

type upsertResponse struct {
	Success bool   `json:"success"`
	Status  Status `json:"status,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Router exposes the progress endpoints.
//
// POST /             — upsert one article's status, {success, status?, error?}.
// GET  /lesson/{id}  — lesson rollup {completionRate, growthStage}.
// GET  /             — all records for the viewer.
func Router(svc *Service) chi.Router {
	r := chi.NewRouter()

	r.Post("/", func(w http.ResponseWriter, req *http.Request) {
		var body upsertRequest
		if err := handler.Decode(req, &body); err != nil {
			handler.JSON(w, http.StatusBadRequest, upsertResponse{Error: "malformed request"})
			return
		}

		userID := handler.UserFromContext(req.Context())
		if userID == uuid.Nil {
			handler.JSON(w, http.StatusUnauthorized, upsertResponse{Error: "sign in required"})
			return
		}
		if body.UserID != "" && body.UserID != userID.String() {
			handler.JSON(w, http.StatusForbidden, upsertResponse{Error: "cannot record progress for another user"})
			return
		}

		rec, err := svc.Upsert(req.Context(), userID, body.TaskID, body.Status)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, ErrStoreUnavailable) {
				status = http.StatusBadGateway
			}
			handler.JSON(w, status, upsertResponse{Error: err.Error()})
			return
		}
		handler.JSON(w, http.StatusOK, upsertResponse{Success: true, Status: rec.Status})
	})

	r.Get("/lesson/{id}", func(w http.ResponseWriter, req *http.Request) {
		summary, err := svc.LessonProgress(req.Context(), handler.UserFromContext(req.Context()), chi.URLParam(req, "id"))
		if err != nil {
			handler.Error(w, classify(err))
			return
		}
		handler.JSON(w, http.StatusOK, summary)
	})

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		userID := handler.UserFromContext(req.Context())
		if userID == uuid.Nil {
			handler.Error(w, handler.ErrUnauthorized)
			return
		}

		records, err := svc.List(req.Context(), userID)
		if err != nil {
			handler.Error(w, classify(err))
			return
		}
		handler.JSON(w, http.StatusOK, map[string]any{"records": records})
	})

	return r
}

func classify(err error) error {
	switch {
	case errors.Is(err, content.ErrLessonNotFound):
		return errors.Join(handler.ErrNotFound, err)
	case errors.Is(err, ErrStoreUnavailable), errors.Is(err, content.ErrStoreUnavailable):
		return errors.Join(handler.ErrNetwork, err)
	case errors.Is(err, ErrMissingUser):
		return errors.Join(handler.ErrUnauthorized, err)
	default:
		return errors.Join(handler.ErrUnknown, err)
	}
}
