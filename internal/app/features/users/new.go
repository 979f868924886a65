// internal/app/features/users/new.go
package users

import (
	"net/http"

	"github.com/dalemusser/classhub/internal/app/system/inputval"
	"github.com/dalemusser/classhub/internal/app/system/respond"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"github.com/dalemusser/classhub/internal/domain/models"
	"go.uber.org/zap"
)

// ServeCreate handles POST /users.
// The signup document is stored as sent; a second signup with the same
// email creates a second user.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	doc, err := inputval.Document(r)
	if err != nil {
		h.ErrLog.Fail(w, r, "insert user", err)
		return
	}
	if err := inputval.Check(doc, &models.User{}); err != nil {
		h.ErrLog.Fail(w, r, "insert user", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "insert user")
	defer cancel()

	res, err := h.Users.Create(ctx, doc)
	if err != nil {
		h.ErrLog.Fail(w, r, "insert user", err)
		return
	}

	h.Log.Info("user created", zap.String("user_id", res.InsertedID.Hex()))
	respond.OK(w, http.StatusOK, res)
}
