package health

import (
	"context"
	"net/http"

	apierrors "github.com/dalemusser/classhub/internal/app/features/errors"
	"github.com/dalemusser/classhub/internal/app/system/respond"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Handler pings the store on behalf of load balancers and uptime checks.
type Handler struct {
	Client *mongo.Client
	Log    *zap.Logger
}

func NewHandler(client *mongo.Client, logger *zap.Logger) *Handler {
	return &Handler{Client: client, Log: logger}
}

// Status is the data payload of a healthy answer.
type Status struct {
	Database string `json:"database"`
}

// Serve handles GET /health with the usual envelope:
// 200 {"status":"ok","data":{"database":"connected"}} or
// 503 with code store_unavailable. The ping error is logged, not returned.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health check: store ping failed", zap.Error(err))
		respond.Error(w, http.StatusServiceUnavailable, respond.ErrorBody{
			Code:    apierrors.CodeUnavailable,
			Message: "The database is unavailable.",
		})
		return
	}
	respond.OK(w, http.StatusOK, Status{Database: "connected"})
}
