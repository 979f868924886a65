package home

import (
	"net/http"

	"go.uber.org/zap"
)

// Banner is the liveness text answered at GET /.
const Banner = "TPBD -server on the work"

// Handler serves the root liveness route.
type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{Log: logger}
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – liveness                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(Banner))
}
