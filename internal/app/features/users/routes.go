// internal/app/features/users/routes.go
package users

import (
	"github.com/dalemusser/classhub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter mounted under /users.
func Routes(h *Handler, p *authz.Policy) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.ServeCreate)
	r.With(p.Require(authz.AdminOnly, nil)).Get("/", h.ServeList)
	r.With(p.Require(authz.OwnerOrAdmin, authz.PathOwner("email"))).Get("/active/{email}", h.ServeActive)

	r.Group(func(r chi.Router) {
		r.Use(p.Require(authz.AdminOnly, nil))
		r.Patch("/admin/{id}", h.ServeMakeAdmin)
		r.Patch("/instructor/{id}", h.ServeMakeInstructor)
		r.Delete("/{id}", h.ServeDelete)
	})
	return r
}

// InstructorRoutes is mounted under /instructors.
func InstructorRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeInstructors)
	return r
}

// StudentRoutes is mounted under /student.
func StudentRoutes(h *Handler, p *authz.Policy) chi.Router {
	r := chi.NewRouter()
	r.With(p.Require(authz.AdminOnly, nil)).Get("/", h.ServeStudents)
	return r
}
