// internal/app/features/users/list.go
package users

import (
	"net/http"

	"github.com/dalemusser/classhub/internal/app/system/respond"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"github.com/dalemusser/classhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// ServeList handles GET /users.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list users")
	defer cancel()

	docs, err := h.Users.List(ctx)
	if err != nil {
		h.ErrLog.Fail(w, r, "list users", err)
		return
	}
	respond.OK(w, http.StatusOK, docs)
}

// ServeInstructors handles GET /instructors, newest first.
func (h *Handler) ServeInstructors(w http.ResponseWriter, r *http.Request) {
	h.serveRole(w, r, models.RoleInstructor)
}

// ServeStudents handles GET /student, newest first.
func (h *Handler) ServeStudents(w http.ResponseWriter, r *http.Request) {
	h.serveRole(w, r, models.RoleStudent)
}

func (h *Handler) serveRole(w http.ResponseWriter, r *http.Request, role string) {
	op := "list " + role + "s"
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, op)
	defer cancel()

	docs, err := h.Users.ListByRole(ctx, role)
	if err != nil {
		h.ErrLog.Fail(w, r, op, err)
		return
	}
	respond.OK(w, http.StatusOK, docs)
}

// ServeActive handles GET /users/active/{email}.
// Answers data:null with 200 when no user has that email.
func (h *Handler) ServeActive(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "find user by email")
	defer cancel()

	doc, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		h.ErrLog.Fail(w, r, "find user by email", err)
		return
	}
	respond.OK(w, http.StatusOK, doc)
}
