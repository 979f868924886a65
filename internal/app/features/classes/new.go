// internal/app/features/classes/new.go
package classes

import (
	"net/http"

	"github.com/dalemusser/classhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/classhub/internal/app/system/inputval"
	"github.com/dalemusser/classhub/internal/app/system/respond"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"github.com/dalemusser/classhub/internal/domain/models"
	"go.uber.org/zap"
)

// ServeCreate handles POST /classes.
// A submission without a status is stored as pending.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	doc, err := inputval.Document(r)
	if err != nil {
		h.ErrLog.Fail(w, r, "insert class", err)
		return
	}
	if err := inputval.Check(doc, &models.Class{}); err != nil {
		h.ErrLog.Fail(w, r, "insert class", err)
		return
	}
	if fb, ok := doc["feedback"].(string); ok {
		doc["feedback"] = htmlsanitize.Sanitize(fb)
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "insert class")
	defer cancel()

	res, err := h.Classes.Create(ctx, doc)
	if err != nil {
		h.ErrLog.Fail(w, r, "insert class", err)
		return
	}

	h.Log.Info("class submitted",
		zap.String("class_id", res.InsertedID.Hex()),
		zap.Any("instructor", doc["instructorEmail"]))
	respond.OK(w, http.StatusOK, res)
}
