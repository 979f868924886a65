package validators_test

import (
	"testing"

	"github.com/dalemusser/classhub/internal/app/system/validators"
	"github.com/dalemusser/classhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesCollections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}
	have := map[string]bool{}
	for _, n := range names {
		have[n] = true
	}
	for _, want := range []string{"users", "classes", "selectedClasses", "payments"} {
		if !have[want] {
			t.Errorf("collection %q not created", want)
		}
	}
}

func TestEnsureAll_ClassStatusEnum(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	classes := db.Collection("classes")
	_, err := classes.InsertOne(ctx, bson.M{"title": "T", "instructorEmail": "i@example.com", "status": "archived"})
	if err == nil {
		t.Error("expected insert with unknown status to be rejected")
	}

	// Extra fields are accepted.
	_, err = classes.InsertOne(ctx, bson.M{"title": "T", "instructorEmail": "i@example.com", "status": "pending", "level": 3})
	if err != nil {
		t.Errorf("valid insert rejected: %v", err)
	}
}
