// internal/app/features/selections/handler.go
package selections

import (
	"net/http"

	apierrors "github.com/dalemusser/classhub/internal/app/features/errors"
	"github.com/dalemusser/classhub/internal/app/store/docstore"
	selectionstore "github.com/dalemusser/classhub/internal/app/store/selections"
	"github.com/dalemusser/classhub/internal/app/system/inputval"
	"github.com/dalemusser/classhub/internal/app/system/respond"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"github.com/dalemusser/classhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves a student's selected classes (their cart).
type Handler struct {
	Selections *selectionstore.Store
	ErrLog     *apierrors.ErrorLogger
	Log        *zap.Logger
}

func NewHandler(selections *selectionstore.Store, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Selections: selections,
		ErrLog:     errLog,
		Log:        logger,
	}
}

// ServeCreate handles POST /selectedClass.
// Selecting the same class twice stores two records.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	doc, err := inputval.Document(r)
	if err != nil {
		h.ErrLog.Fail(w, r, "insert selection", err)
		return
	}
	if err := inputval.Check(doc, &models.SelectedClass{}); err != nil {
		h.ErrLog.Fail(w, r, "insert selection", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "insert selection")
	defer cancel()

	res, err := h.Selections.Create(ctx, doc)
	if err != nil {
		h.ErrLog.Fail(w, r, "insert selection", err)
		return
	}
	respond.OK(w, http.StatusOK, res)
}

// ServeList handles GET /selectedClass[?email=].
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list selections")
	defer cancel()

	docs, err := h.Selections.List(ctx, email)
	if err != nil {
		h.ErrLog.Fail(w, r, "list selections", err)
		return
	}
	respond.OK(w, http.StatusOK, docs)
}

// ServeDelete handles DELETE /selectedClass/{id}.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	id, err := docstore.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.Fail(w, r, "delete selection", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "delete selection")
	defer cancel()

	res, err := h.Selections.Delete(ctx, id)
	if err != nil {
		h.ErrLog.Fail(w, r, "delete selection", err)
		return
	}
	respond.OK(w, http.StatusOK, res)
}

// ServeDeleteAll handles DELETE /selectedClass[?email=].
// Without ?email every selection of every student is removed.
func (h *Handler) ServeDeleteAll(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "delete selections")
	defer cancel()

	res, err := h.Selections.DeleteAll(ctx, email)
	if err != nil {
		h.ErrLog.Fail(w, r, "delete selections", err)
		return
	}

	h.Log.Warn("selections bulk deleted",
		zap.String("student", email),
		zap.Bool("all_students", email == ""),
		zap.Int64("deleted", res.DeletedCount))
	respond.OK(w, http.StatusOK, res)
}
