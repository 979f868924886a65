// Package reqlog tags every request with an id and writes one access log
// line per request.
package reqlog

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Header carries the request id in both directions. An incoming value is
// reused so ids can be correlated across services.
const Header = "X-Request-ID"

type ctxKey struct{}

// ID returns the request id stored by Middleware, or "".
func ID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Middleware assigns the request id and logs method, path, status, size
// and duration when the handler returns.
func Middleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(Header)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(Header, id)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logger.Info("request",
				zap.String("request_id", id),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("took", time.Since(start)))
		})
	}
}
