// internal/app/features/payments/routes.go
package payments

import (
	"github.com/dalemusser/classhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter mounted under /payments.
func Routes(h *Handler, p *authz.Policy) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.ServeCreate)
	r.With(p.Require(authz.OwnerOrAdmin, authz.QueryOwner("email"))).Get("/", h.ServeList)
	r.With(p.Require(authz.AdminOnly, nil)).Get("/export", h.ServeExport)
	return r
}

// IntentRoutes is mounted under /create-payment-intent.
func IntentRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.ServeCreateIntent)
	return r
}
