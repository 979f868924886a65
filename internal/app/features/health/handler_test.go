package health_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apierrors "github.com/dalemusser/classhub/internal/app/features/errors"
	"github.com/dalemusser/classhub/internal/app/features/health"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"github.com/dalemusser/classhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func TestServe_DatabaseConnected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := health.NewHandler(db.Client(), zap.NewNop())

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()

	handler.Serve(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want %q", ct, "application/json")
	}

	var status health.Status
	env := testutil.DecodeEnvelope(t, rec, &status)
	if env.Status != "ok" || status.Database != "connected" {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestServe_DatabaseDown(t *testing.T) {
	timeouts.Configure(timeouts.Config{Ping: 300 * time.Millisecond})
	t.Cleanup(timeouts.Reset)

	// Nothing listens on port 1; Connect is lazy so it succeeds.
	client, err := mongo.Connect(context.Background(), options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(200*time.Millisecond))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	handler := health.NewHandler(client, zap.NewNop())
	rec := httptest.NewRecorder()
	handler.Serve(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}
	testutil.AssertErrorCode(t, rec, apierrors.CodeUnavailable)
	if env := testutil.DecodeEnvelope(t, rec, nil); env.Data != nil {
		t.Errorf("error answer carries data: %s", rec.Body.String())
	}
}

func TestRoutes_Head(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := health.Routes(health.NewHandler(db.Client(), zap.NewNop()))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("HEAD", "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("HEAD /health: got %d, want %d", rec.Code, http.StatusOK)
	}
}
