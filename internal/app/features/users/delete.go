// internal/app/features/users/delete.go
package users

import (
	"net/http"

	"github.com/dalemusser/classhub/internal/app/store/docstore"
	"github.com/dalemusser/classhub/internal/app/system/respond"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ServeDelete handles DELETE /users/{id}.
// The user's classes, selections and payments are left in place.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	id, err := docstore.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Fail(w, r, "delete user", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete user")
	defer cancel()

	res, err := h.Users.Delete(ctx, id)
	if err != nil {
		h.ErrLog.Fail(w, r, "delete user", err)
		return
	}

	h.Log.Info("user deleted", zap.String("user_id", id.Hex()), zap.Int64("deleted", res.DeletedCount))
	respond.OK(w, http.StatusOK, res)
}
