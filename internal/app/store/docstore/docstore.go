// Package docstore is the thin Mongo layer under the entity stores.
//
// Every method issues exactly one driver call. Documents are bson.M so that
// fields a caller sends beyond the entity schema survive the round trip.
// Results mirror the driver's acknowledgment shapes.
package docstore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrInvalidID is returned when an id string is not an ObjectID hex.
var ErrInvalidID = errors.New("invalid id")

// ParseID coerces a path or body id into an ObjectID.
func ParseID(hex string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, hex)
	}
	return oid, nil
}

// InsertResult acknowledges a single insert.
type InsertResult struct {
	Acknowledged bool               `json:"acknowledged"`
	InsertedID   primitive.ObjectID `json:"insertedId"`
}

// UpdateResult reports how many documents an update matched and changed.
// An unknown id is MatchedCount 0, not an error.
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult reports how many documents were removed.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// Collection wraps one named collection.
type Collection struct {
	c *mongo.Collection
}

func New(db *mongo.Database, name string) *Collection {
	return &Collection{c: db.Collection(name)}
}

// Name returns the underlying collection name.
func (s *Collection) Name() string { return s.c.Name() }

// Insert stores doc with a fresh _id. doc is modified in place.
func (s *Collection) Insert(ctx context.Context, doc bson.M) (InsertResult, error) {
	id := primitive.NewObjectID()
	doc["_id"] = id
	if _, err := s.c.InsertOne(ctx, doc); err != nil {
		return InsertResult{}, fmt.Errorf("%s: insert: %w", s.c.Name(), err)
	}
	return InsertResult{Acknowledged: true, InsertedID: id}, nil
}

// List returns every document matching filter. A nil filter matches all.
// When sortDesc is non-empty results are ordered by that field descending.
// The result is never nil.
func (s *Collection) List(ctx context.Context, filter bson.M, sortDesc string) ([]bson.M, error) {
	if filter == nil {
		filter = bson.M{}
	}
	opts := options.Find()
	if sortDesc != "" {
		opts.SetSort(bson.D{{Key: sortDesc, Value: -1}})
	}
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", s.c.Name(), err)
	}
	defer cur.Close(ctx)

	docs := make([]bson.M, 0)
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", s.c.Name(), err)
	}
	return docs, nil
}

// FindOne returns the first document matching filter, or nil when there is
// none.
func (s *Collection) FindOne(ctx context.Context, filter bson.M) (bson.M, error) {
	var doc bson.M
	err := s.c.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: find one: %w", s.c.Name(), err)
	}
	return doc, nil
}

// SetFields merges set into the document with the given id. Fields not
// named in set are untouched.
func (s *Collection) SetFields(ctx context.Context, id primitive.ObjectID, set bson.M) (UpdateResult, error) {
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return UpdateResult{}, fmt.Errorf("%s: update: %w", s.c.Name(), err)
	}
	return UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}

// DeleteByID removes a single document.
func (s *Collection) DeleteByID(ctx context.Context, id primitive.ObjectID) (DeleteResult, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return DeleteResult{}, fmt.Errorf("%s: delete: %w", s.c.Name(), err)
	}
	return DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

// DeleteMany removes every document matching filter. A nil or empty filter
// clears the collection; callers expose that only on a dedicated route.
func (s *Collection) DeleteMany(ctx context.Context, filter bson.M) (DeleteResult, error) {
	if filter == nil {
		filter = bson.M{}
	}
	res, err := s.c.DeleteMany(ctx, filter)
	if err != nil {
		return DeleteResult{}, fmt.Errorf("%s: delete many: %w", s.c.Name(), err)
	}
	return DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

// Count returns the number of documents matching filter.
func (s *Collection) Count(ctx context.Context, filter bson.M) (int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	n, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("%s: count: %w", s.c.Name(), err)
	}
	return n, nil
}
