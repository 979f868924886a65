// internal/app/features/payments/intent.go
package payments

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"

	"github.com/dalemusser/classhub/internal/app/system/inputval"
	"github.com/dalemusser/classhub/internal/app/system/respond"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"github.com/dalemusser/classhub/internal/domain/models"
	"github.com/spf13/cast"
)

// ServeCreateIntent handles POST /create-payment-intent with {"price": n}.
// price may arrive as a number or a numeric string; booleans, NaN and
// infinities are rejected. Every call creates a new intent.
func (h *Handler) ServeCreateIntent(w http.ResponseWriter, r *http.Request) {
	doc, err := inputval.Document(r)
	if err != nil {
		h.ErrLog.Fail(w, r, "create payment intent", err)
		return
	}
	price, err := intentPrice(doc["price"])
	if err != nil {
		h.ErrLog.Fail(w, r, "create payment intent",
			&inputval.ValidationError{Fields: map[string]string{"price": "must be a number"}})
		return
	}
	req := models.IntentRequest{Price: price}
	if err := inputval.Struct(&req); err != nil {
		h.ErrLog.Fail(w, r, "create payment intent", err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Gateway(), h.Log, "create payment intent")
	defer cancel()

	intent, err := h.Gateway.CreateIntent(ctx, req.Price)
	if err != nil {
		h.ErrLog.Fail(w, r, "create payment intent", err)
		return
	}
	respond.OK(w, http.StatusOK, intent)
}

// intentPrice accepts only a JSON number or a numeric string.
func intentPrice(v any) (float64, error) {
	switch v.(type) {
	case json.Number, string:
	default:
		return 0, fmt.Errorf("price has type %T", v)
	}
	price, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("price %v is not finite", v)
	}
	return price, nil
}
