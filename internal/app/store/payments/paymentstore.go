package paymentstore

import (
	"context"
	"fmt"

	"github.com/dalemusser/classhub/internal/app/store/docstore"
	"github.com/dalemusser/classhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the Mongo collection holding payments.
const CollectionName = "payments"

type Store struct {
	c    *mongo.Collection
	docs *docstore.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:    db.Collection(CollectionName),
		docs: docstore.New(db, CollectionName),
	}
}

// Create records a confirmed payment as submitted.
func (s *Store) Create(ctx context.Context, doc bson.M) (docstore.InsertResult, error) {
	return s.docs.Insert(ctx, doc)
}

// List returns payments, newest date first, optionally for one payer.
func (s *Store) List(ctx context.Context, email string) ([]bson.M, error) {
	filter := bson.M{}
	if email != "" {
		filter["email"] = email
	}
	return s.docs.List(ctx, filter, "date")
}

// ListTyped decodes every payment into models.Payment, newest date first.
// Fields outside the schema are dropped; used by the spreadsheet export.
// Documents that do not fit the schema (written around the API) are not
// returned; their ids come back in skipped.
func (s *Store) ListTyped(ctx context.Context) (payments []models.Payment, skipped []string, err error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, nil, fmt.Errorf("%s: find: %w", CollectionName, err)
	}
	defer cur.Close(ctx)

	payments = make([]models.Payment, 0)
	for cur.Next(ctx) {
		var p models.Payment
		if err := cur.Decode(&p); err != nil {
			skipped = append(skipped, rawID(cur.Current))
			continue
		}
		payments = append(payments, p)
	}
	if err := cur.Err(); err != nil {
		return nil, nil, fmt.Errorf("%s: decode: %w", CollectionName, err)
	}
	return payments, skipped, nil
}

func rawID(doc bson.Raw) string {
	v, err := doc.LookupErr("_id")
	if err != nil {
		return ""
	}
	if oid, ok := v.ObjectIDOK(); ok {
		return oid.Hex()
	}
	return v.String()
}
