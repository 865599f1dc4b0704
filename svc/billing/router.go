package billing

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/growthlab/handler"
	"github.com/dmitrymomot/growthlab/svc/entitlement"
)

// CheckoutProvider creates hosted checkout sessions. Implemented by
// PaddleProvider.
type CheckoutProvider interface {
	CreateCheckoutLink(ctx context.Context, req CheckoutRequest) (*CheckoutLink, error)
}

// Router exposes the billing endpoints.
//
// POST /checkout         — create a hosted checkout link for a plan.
// POST /webhooks/paddle  — provider webhook sink.
func Router(provider CheckoutProvider, catalog *entitlement.Catalog, webhook *WebhookHandler) chi.Router {
	r := chi.NewRouter()

	r.Post("/checkout", func(w http.ResponseWriter, req *http.Request) {
		var body struct {
			PlanID string `json:"planId"`
			Email  string `json:"email"`
		}
		if err := handler.Decode(req, &body); err != nil {
			handler.Error(w, err)
			return
		}

		userID := handler.UserFromContext(req.Context())
		if userID == uuid.Nil {
			handler.Error(w, handler.ErrUnauthorized)
			return
		}

		plan, ok := catalog.ByID(body.PlanID)
		if !ok {
			handler.Error(w, handler.ErrNotFound)
			return
		}

		link, err := provider.CreateCheckoutLink(req.Context(), CheckoutRequest{
			PriceID: plan.PriceID,
			UserID:  userID,
			Email:   body.Email,
		})
		if err != nil {
			handler.Error(w, handler.ErrNetwork)
			return
		}
		handler.JSON(w, http.StatusOK, link)
	})

	r.Method(http.MethodPost, "/webhooks/paddle", webhook)

	return r
}
