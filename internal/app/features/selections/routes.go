// internal/app/features/selections/routes.go
package selections

import (
	"github.com/dalemusser/classhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter mounted under /selectedClass.
func Routes(h *Handler, p *authz.Policy) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.ServeCreate)
	r.With(p.Require(authz.OwnerOrAdmin, authz.QueryOwner("email"))).Get("/", h.ServeList)
	r.Delete("/{id}", h.ServeDelete)
	r.With(p.Require(authz.AdminOnly, nil)).Delete("/", h.ServeDeleteAll)
	return r
}
