package reqlog_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/classhub/internal/app/system/reqlog"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMiddleware_AssignsID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	var seen string
	h := reqlog.Middleware(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = reqlog.ID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/users", nil))

	got := rec.Header().Get(reqlog.Header)
	if _, err := uuid.Parse(got); err != nil {
		t.Fatalf("response id %q is not a uuid: %v", got, err)
	}
	if seen != got {
		t.Errorf("context id = %q, header id = %q", seen, got)
	}

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("log entries = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusTeapot) || fields["path"] != "/users" {
		t.Errorf("log fields = %v", fields)
	}
}

func TestMiddleware_ReusesIncomingID(t *testing.T) {
	h := reqlog.Middleware(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(reqlog.Header, "upstream-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get(reqlog.Header); got != "upstream-123" {
		t.Errorf("id = %q, want upstream-123", got)
	}
}
