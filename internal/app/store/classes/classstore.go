package classstore

import (
	"context"

	"github.com/dalemusser/classhub/internal/app/store/docstore"
	"github.com/dalemusser/classhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CollectionName is the Mongo collection holding classes.
const CollectionName = "classes"

type Store struct {
	docs *docstore.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{docs: docstore.New(db, CollectionName)}
}

// Create inserts an instructor's class submission. A document without a
// status is stored as pending.
func (s *Store) Create(ctx context.Context, doc bson.M) (docstore.InsertResult, error) {
	if st, _ := doc["status"].(string); st == "" {
		doc["status"] = models.ClassPending
	}
	return s.docs.Insert(ctx, doc)
}

// List returns every class.
func (s *Store) List(ctx context.Context) ([]bson.M, error) {
	return s.docs.List(ctx, nil, "")
}

// ListByInstructor returns the classes submitted under email.
func (s *Store) ListByInstructor(ctx context.Context, email string) ([]bson.M, error) {
	return s.docs.List(ctx, bson.M{"instructorEmail": email}, "")
}

// ListByStatus returns the classes in one status.
func (s *Store) ListByStatus(ctx context.Context, status string) ([]bson.M, error) {
	return s.docs.List(ctx, bson.M{"status": status}, "")
}

// SetStatus overwrites a class's status without looking at its current one.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (docstore.UpdateResult, error) {
	return s.docs.SetFields(ctx, id, bson.M{"status": status})
}

// SetFeedback attaches admin feedback. Independent of status.
func (s *Store) SetFeedback(ctx context.Context, id primitive.ObjectID, feedback string) (docstore.UpdateResult, error) {
	return s.docs.SetFields(ctx, id, bson.M{"feedback": feedback})
}
