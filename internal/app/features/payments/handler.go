// internal/app/features/payments/handler.go
package payments

import (
	"net/http"

	apierrors "github.com/dalemusser/classhub/internal/app/features/errors"
	paymentstore "github.com/dalemusser/classhub/internal/app/store/payments"
	"github.com/dalemusser/classhub/internal/app/system/inputval"
	"github.com/dalemusser/classhub/internal/app/system/paygate"
	"github.com/dalemusser/classhub/internal/app/system/respond"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"github.com/dalemusser/classhub/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves payment intents, payment records and the payments
// export.
type Handler struct {
	Payments *paymentstore.Store
	Gateway  paygate.Gateway
	ErrLog   *apierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(payments *paymentstore.Store, gateway paygate.Gateway, errLog *apierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Payments: payments,
		Gateway:  gateway,
		ErrLog:   errLog,
		Log:      logger,
	}
}

// ServeCreate handles POST /payments.
// The record is stored as sent; selections for the paid classes are not
// touched, the client clears them separately.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	doc, err := inputval.Document(r)
	if err != nil {
		h.ErrLog.Fail(w, r, "insert payment", err)
		return
	}
	if err := inputval.Check(doc, &models.Payment{}); err != nil {
		h.ErrLog.Fail(w, r, "insert payment", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "insert payment")
	defer cancel()

	res, err := h.Payments.Create(ctx, doc)
	if err != nil {
		h.ErrLog.Fail(w, r, "insert payment", err)
		return
	}

	h.Log.Info("payment recorded",
		zap.String("payment_id", res.InsertedID.Hex()),
		zap.Any("transaction_id", doc["transactionId"]))
	respond.OK(w, http.StatusOK, res)
}

// ServeList handles GET /payments[?email=], newest date first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list payments")
	defer cancel()

	docs, err := h.Payments.List(ctx, email)
	if err != nil {
		h.ErrLog.Fail(w, r, "list payments", err)
		return
	}
	respond.OK(w, http.StatusOK, docs)
}
