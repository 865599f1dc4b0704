package entitlement

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/growthlab/handler"
)

// Router exposes the entitlement read endpoint.
//
// GET / resolves the viewer's entitlement. Anonymous viewers receive the
// inactive entitlement with a 200; resolution never fails the request.
func Router(resolver *Resolver) chi.Router {
	r := chi.NewRouter()

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		ent, err := resolver.Resolve(req.Context(), handler.UserFromContext(req.Context()))
		if err != nil {
			handler.Error(w, err)
			return
		}
		handler.JSON(w, http.StatusOK, ent)
	})

	r.Get("/plans", func(w http.ResponseWriter, req *http.Request) {
		handler.JSON(w, http.StatusOK, resolver.catalog.Public())
	})

	return r
}
