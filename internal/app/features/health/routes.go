// internal/app/features/health/routes.go
package health

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted under /health. HEAD answers with the
// status code alone for load balancer probes.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Serve)
	r.Head("/", h.Serve)
	return r
}
