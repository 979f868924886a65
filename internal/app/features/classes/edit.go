// internal/app/features/classes/edit.go
package classes

import (
	"net/http"

	"github.com/dalemusser/classhub/internal/app/store/docstore"
	"github.com/dalemusser/classhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/classhub/internal/app/system/inputval"
	"github.com/dalemusser/classhub/internal/app/system/respond"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"github.com/dalemusser/classhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ServeApprove handles PATCH /classes/approve/{id}.
func (h *Handler) ServeApprove(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, models.ClassApproved)
}

// ServeDeny handles PATCH /classes/deny/{id}.
func (h *Handler) ServeDeny(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, models.ClassDenied)
}

// setStatus overwrites the status whatever it currently is; approving a
// denied class is allowed.
func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, status string) {
	op := "set class status " + status
	id, err := docstore.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Fail(w, r, op, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, op)
	defer cancel()

	res, err := h.Classes.SetStatus(ctx, id, status)
	if err != nil {
		h.ErrLog.Fail(w, r, op, err)
		return
	}

	h.Log.Info("class status updated",
		zap.String("class_id", id.Hex()),
		zap.String("status", status),
		zap.Int64("matched", res.MatchedCount))
	respond.OK(w, http.StatusOK, res)
}

// ServeFeedback handles PATCH /classes/{id} with body {"feedback": "..."}.
func (h *Handler) ServeFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := docstore.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Fail(w, r, "set class feedback", err)
		return
	}
	doc, err := inputval.Document(r)
	if err != nil {
		h.ErrLog.Fail(w, r, "set class feedback", err)
		return
	}
	var body models.ClassFeedback
	if err := inputval.Check(doc, &body); err != nil {
		h.ErrLog.Fail(w, r, "set class feedback", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "set class feedback")
	defer cancel()

	res, err := h.Classes.SetFeedback(ctx, id, htmlsanitize.Sanitize(body.Feedback))
	if err != nil {
		h.ErrLog.Fail(w, r, "set class feedback", err)
		return
	}
	respond.OK(w, http.StatusOK, res)
}
