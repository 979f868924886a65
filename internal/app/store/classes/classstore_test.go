package classstore_test

import (
	"testing"

	classstore "github.com/dalemusser/classhub/internal/app/store/classes"
	"github.com/dalemusser/classhub/internal/domain/models"
	"github.com/dalemusser/classhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create_DefaultsPending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := classstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, bson.M{"title": "Go 101", "instructorEmail": "i@example.com"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, bson.M{"title": "Rust", "instructorEmail": "i@example.com", "status": models.ClassApproved}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	pending, err := store.ListByStatus(ctx, models.ClassPending)
	if err != nil {
		t.Fatalf("ListByStatus failed: %v", err)
	}
	if len(pending) != 1 || pending[0]["title"] != "Go 101" {
		t.Errorf("pending = %v", pending)
	}
}

func TestStore_ListByStatus_OnlyApproved(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := classstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateClass(ctx, "A", "i@example.com", models.ClassApproved)
	fixtures.CreateClass(ctx, "P", "i@example.com", models.ClassPending)
	fixtures.CreateClass(ctx, "D", "i@example.com", models.ClassDenied)

	docs, err := store.ListByStatus(ctx, models.ClassApproved)
	if err != nil {
		t.Fatalf("ListByStatus failed: %v", err)
	}
	if len(docs) != 1 || docs[0]["status"] != models.ClassApproved {
		t.Errorf("approved = %v", docs)
	}
}

func TestStore_ListByInstructor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := classstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateClass(ctx, "Mine", "me@example.com", models.ClassPending)
	fixtures.CreateClass(ctx, "Theirs", "other@example.com", models.ClassPending)

	docs, err := store.ListByInstructor(ctx, "me@example.com")
	if err != nil {
		t.Fatalf("ListByInstructor failed: %v", err)
	}
	if len(docs) != 1 || docs[0]["title"] != "Mine" {
		t.Errorf("docs = %v", docs)
	}
}

func TestStore_StatusAndFeedbackAreIndependent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := classstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := fixtures.CreateClass(ctx, "Go", "i@example.com", models.ClassPending)

	if _, err := store.SetFeedback(ctx, c.ID, "needs a syllabus"); err != nil {
		t.Fatalf("SetFeedback failed: %v", err)
	}
	res, err := store.SetStatus(ctx, c.ID, models.ClassDenied)
	if err != nil || res.MatchedCount != 1 {
		t.Fatalf("SetStatus = %+v, %v", res, err)
	}

	var got models.Class
	if err := db.Collection(classstore.CollectionName).FindOne(ctx, bson.M{"_id": c.ID}).Decode(&got); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Status != models.ClassDenied || got.Feedback != "needs a syllabus" || got.Title != "Go" {
		t.Errorf("class = %+v", got)
	}

	miss, err := store.SetStatus(ctx, primitive.NewObjectID(), models.ClassApproved)
	if err != nil || miss.MatchedCount != 0 {
		t.Errorf("SetStatus(unknown) = %+v, %v", miss, err)
	}
}
