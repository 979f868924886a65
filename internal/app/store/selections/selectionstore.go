package selectionstore

import (
	"context"

	"github.com/dalemusser/classhub/internal/app/store/docstore"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CollectionName is the Mongo collection holding class selections.
const CollectionName = "selectedClasses"

type Store struct {
	docs *docstore.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{docs: docstore.New(db, CollectionName)}
}

// Create records a student's selection.
func (s *Store) Create(ctx context.Context, doc bson.M) (docstore.InsertResult, error) {
	return s.docs.Insert(ctx, doc)
}

// List returns every selection, or only one student's when email is set.
func (s *Store) List(ctx context.Context, studentEmail string) ([]bson.M, error) {
	return s.docs.List(ctx, studentFilter(studentEmail), "")
}

// Delete removes one selection.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (docstore.DeleteResult, error) {
	return s.docs.DeleteByID(ctx, id)
}

// DeleteAll clears the collection, or one student's selections when email
// is set.
func (s *Store) DeleteAll(ctx context.Context, studentEmail string) (docstore.DeleteResult, error) {
	return s.docs.DeleteMany(ctx, studentFilter(studentEmail))
}

func studentFilter(email string) bson.M {
	if email == "" {
		return bson.M{}
	}
	return bson.M{"studentEmail": email}
}
