// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	classstore "github.com/dalemusser/classhub/internal/app/store/classes"
	paymentstore "github.com/dalemusser/classhub/internal/app/store/payments"
	selectionstore "github.com/dalemusser/classhub/internal/app/store/selections"
	userstore "github.com/dalemusser/classhub/internal/app/store/users"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
Errors are aggregated so every problem is visible at once.

None of the indexes are unique: users.email in particular is allowed to
repeat, and lookups by email return the first match.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	sets := []struct {
		coll   string
		models []mongo.IndexModel
	}{
		{userstore.CollectionName, usersIndexes()},
		{classstore.CollectionName, classesIndexes()},
		{selectionstore.CollectionName, selectionsIndexes()},
		{paymentstore.CollectionName, paymentsIndexes()},
	}
	for _, s := range sets {
		if err := ensureIndexSet(ctx, db.Collection(s.coll), s.models); err != nil {
			problems = append(problems, s.coll+": "+err.Error())
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Reconcile a set of desired indexes for one collection                      */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name string `bson:"name"`
	Key  bson.D `bson:"key"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func listExisting(ctx context.Context, coll *mongo.Collection) (map[string]existingIndex, error) {
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := map[string]existingIndex{}
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		out[keySig(idx.Key)] = idx
	}
	return out, cur.Err()
}

// ensureIndexSet creates each missing index. An index with the same keys
// under another name is dropped and recreated with the desired name.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	existing, err := listExisting(ctx, coll)
	if err != nil {
		// A missing collection lists as an error on some servers; create anyway.
		existing = map[string]existingIndex{}
	}

	var errs []string
	for _, m := range models {
		name := *m.Options.Name
		sig := keySig(m.Keys.(bson.D))
		start := time.Now()

		if ex, ok := existing[sig]; ok {
			if ex.Name == name {
				zap.L().Info("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", name),
					zap.String("keys", sig))
				continue
			}
			zap.L().Info("renaming index to align with desired name",
				zap.String("collection", coll.Name()),
				zap.String("from", ex.Name),
				zap.String("to", name))
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): rename drop failed: %v", coll.Name(), name, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			zap.L().Warn("index ensure failed",
				zap.String("collection", coll.Name()),
				zap.String("name", name),
				zap.String("keys", sig),
				zap.Error(err))
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), name, err))
			continue
		}
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                              */
/* -------------------------------------------------------------------------- */

func idx(name string, keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetName(name)}
}

func usersIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		// GET /users/active/{email} and every policy role lookup.
		idx("idx_users_email", bson.D{{Key: "email", Value: 1}}),
		// /instructors and /student: filter by role, newest first.
		idx("idx_users_role_id", bson.D{{Key: "role", Value: 1}, {Key: "_id", Value: -1}}),
	}
}

func classesIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		idx("idx_classes_instructoremail", bson.D{{Key: "instructorEmail", Value: 1}}),
		idx("idx_classes_status", bson.D{{Key: "status", Value: 1}}),
	}
}

func selectionsIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		idx("idx_selectedclasses_studentemail", bson.D{{Key: "studentEmail", Value: 1}}),
	}
}

func paymentsIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		idx("idx_payments_email_date", bson.D{{Key: "email", Value: 1}, {Key: "date", Value: -1}}),
		idx("idx_payments_date", bson.D{{Key: "date", Value: -1}}),
	}
}
