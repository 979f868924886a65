// internal/app/features/classes/list.go
package classes

import (
	"net/http"

	"github.com/dalemusser/classhub/internal/app/system/respond"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"github.com/dalemusser/classhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// ServeList handles GET /classes (every class, any status).
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list classes")
	defer cancel()

	docs, err := h.Classes.List(ctx)
	if err != nil {
		h.ErrLog.Fail(w, r, "list classes", err)
		return
	}
	respond.OK(w, http.StatusOK, docs)
}

// ServeApproved handles GET /classes/approve, the public catalog.
func (h *Handler) ServeApproved(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list approved classes")
	defer cancel()

	docs, err := h.Classes.ListByStatus(ctx, models.ClassApproved)
	if err != nil {
		h.ErrLog.Fail(w, r, "list approved classes", err)
		return
	}
	respond.OK(w, http.StatusOK, docs)
}

// ServeByInstructor handles GET /classes/{email}.
func (h *Handler) ServeByInstructor(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list instructor classes")
	defer cancel()

	docs, err := h.Classes.ListByInstructor(ctx, email)
	if err != nil {
		h.ErrLog.Fail(w, r, "list instructor classes", err)
		return
	}
	respond.OK(w, http.StatusOK, docs)
}
