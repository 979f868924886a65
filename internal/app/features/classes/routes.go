// internal/app/features/classes/routes.go
package classes

import (
	"github.com/dalemusser/classhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter mounted under /classes.
// The static /approve paths are registered alongside the {email} and {id}
// patterns; chi matches static segments first.
func Routes(h *Handler, p *authz.Policy) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.ServeCreate)
	r.Get("/approve", h.ServeApproved)
	r.With(p.Require(authz.OwnerOrAdmin, authz.PathOwner("email"))).Get("/{email}", h.ServeByInstructor)

	r.Group(func(r chi.Router) {
		r.Use(p.Require(authz.AdminOnly, nil))
		r.Get("/", h.ServeList)
		r.Patch("/approve/{id}", h.ServeApprove)
		r.Patch("/deny/{id}", h.ServeDeny)
		r.Patch("/{id}", h.ServeFeedback)
	})
	return r
}
