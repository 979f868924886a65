// internal/app/features/users/edit.go
package users

import (
	"net/http"

	"github.com/dalemusser/classhub/internal/app/store/docstore"
	"github.com/dalemusser/classhub/internal/app/system/respond"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"github.com/dalemusser/classhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ServeMakeAdmin handles PATCH /users/admin/{id}.
func (h *Handler) ServeMakeAdmin(w http.ResponseWriter, r *http.Request) {
	h.setRole(w, r, models.RoleAdmin)
}

// ServeMakeInstructor handles PATCH /users/instructor/{id}.
func (h *Handler) ServeMakeInstructor(w http.ResponseWriter, r *http.Request) {
	h.setRole(w, r, models.RoleInstructor)
}

func (h *Handler) setRole(w http.ResponseWriter, r *http.Request, role string) {
	op := "set user role " + role
	id, err := docstore.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Fail(w, r, op, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, op)
	defer cancel()

	res, err := h.Users.SetRole(ctx, id, role)
	if err != nil {
		h.ErrLog.Fail(w, r, op, err)
		return
	}

	h.Log.Info("user role updated",
		zap.String("user_id", id.Hex()),
		zap.String("role", role),
		zap.Int64("matched", res.MatchedCount))
	respond.OK(w, http.StatusOK, res)
}
