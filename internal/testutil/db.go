// Package testutil holds helpers shared by package tests: a throwaway
// MongoDB database per test, document fixtures, and request helpers.
package testutil

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DefaultTestURI is used when CLASSHUB_TEST_MONGO_URI is not set.
const DefaultTestURI = "mongodb://localhost:27017"

// TestContext returns a context bounded for a single test's store calls.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// SetupTestDB connects to the test MongoDB and returns a freshly named
// database that is dropped when the test ends. Tests are skipped when no
// server answers a ping.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("CLASSHUB_TEST_MONGO_URI")
	if uri == "" {
		uri = DefaultTestURI
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(2*time.Second))
	if err != nil {
		t.Skipf("mongo unavailable (%s): %v", uri, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		t.Skipf("mongo unavailable (%s): %v", uri, err)
	}

	name := "classhub_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	db := client.Database(name)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}
