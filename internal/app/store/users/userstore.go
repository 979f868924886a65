package userstore

import (
	"context"

	"github.com/dalemusser/classhub/internal/app/store/docstore"
	"github.com/dalemusser/classhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CollectionName is the Mongo collection holding users.
const CollectionName = "users"

type Store struct {
	docs *docstore.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{docs: docstore.New(db, CollectionName)}
}

// Create inserts a signup document as submitted. Email uniqueness is not
// enforced.
func (s *Store) Create(ctx context.Context, doc bson.M) (docstore.InsertResult, error) {
	return s.docs.Insert(ctx, doc)
}

// List returns every user.
func (s *Store) List(ctx context.Context) ([]bson.M, error) {
	return s.docs.List(ctx, nil, "")
}

// ListByRole returns users with the given role, newest first.
func (s *Store) ListByRole(ctx context.Context, role string) ([]bson.M, error) {
	return s.docs.List(ctx, bson.M{"role": role}, "_id")
}

// GetByEmail returns the first user with exactly this email, or nil.
func (s *Store) GetByEmail(ctx context.Context, email string) (bson.M, error) {
	return s.docs.FindOne(ctx, bson.M{"email": email})
}

// SetRole overwrites a user's role. The target's existence and current
// role are not checked; an unknown id reports zero matches.
func (s *Store) SetRole(ctx context.Context, id primitive.ObjectID, role string) (docstore.UpdateResult, error) {
	return s.docs.SetFields(ctx, id, bson.M{"role": role})
}

// Delete removes a user by id.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (docstore.DeleteResult, error) {
	return s.docs.DeleteByID(ctx, id)
}

// RoleOf returns the role stored for email. found is false when no user
// has that email; an empty stored role is reported as RoleUndefined.
func (s *Store) RoleOf(ctx context.Context, email string) (role string, found bool, err error) {
	doc, err := s.GetByEmail(ctx, email)
	if err != nil || doc == nil {
		return "", false, err
	}
	role, _ = doc["role"].(string)
	if role == "" {
		role = models.RoleUndefined
	}
	return role, true, nil
}
