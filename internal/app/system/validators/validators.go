// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	classstore "github.com/dalemusser/classhub/internal/app/store/classes"
	paymentstore "github.com/dalemusser/classhub/internal/app/store/payments"
	selectionstore "github.com/dalemusser/classhub/internal/app/store/selections"
	userstore "github.com/dalemusser/classhub/internal/app/store/users"
	"github.com/dalemusser/classhub/internal/domain/models"
	"github.com/samber/lo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates the four collections (if missing) and attaches light
// JSON-Schema validators. Schemas only constrain named fields; extra
// fields are always accepted. Servers without collMod support are logged
// and skipped.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isUnsupported(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	ensure(userstore.CollectionName, usersSchema())
	ensure(classstore.CollectionName, classesSchema())
	ensure(selectionstore.CollectionName, selectionsSchema())
	ensure(paymentstore.CollectionName, paymentsSchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// ensureCollection reports created==true only when it made the collection.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	names, listErr := db.ListCollectionNames(ctx, bson.M{"name": name})
	if listErr == nil && lo.Contains(names, name) {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		if isNamespaceExists(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

// setValidator uses validationLevel "moderate" so documents written before
// the validator existed can still be updated.
func setValidator(ctx context.Context, db *mongo.Database, name string, schema bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: schema},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

func commandFailed(err error, codes []int32, phrases ...string) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && lo.Contains(codes, ce.Code) {
		return true
	}
	s := strings.ToLower(err.Error())
	return lo.SomeBy(phrases, func(p string) bool { return strings.Contains(s, p) })
}

func isNamespaceExists(err error) bool {
	return commandFailed(err, []int32{48}, "already exists", "namespace exists")
}

// isUnsupported covers DocumentDB-style deployments without collMod
// validators (NoSuchCommand 59, CommandNotSupported 115).
func isUnsupported(err error) bool {
	return commandFailed(err, []int32{59, 115}, "no such command", "not implemented", "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

var stringType = bson.M{"bsonType": "string"}

var numberType = bson.M{"bsonType": bson.A{"double", "int", "long", "decimal"}}

func usersSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"email"},
			"properties": bson.M{
				"email": stringType,
				"name":  stringType,
				"role": bson.M{
					"enum": bson.A{models.RoleStudent, models.RoleInstructor, models.RoleAdmin, models.RoleUndefined},
				},
			},
		},
	}
}

func classesSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"title", "instructorEmail", "status"},
			"properties": bson.M{
				"title":           stringType,
				"instructorEmail": stringType,
				"price":           numberType,
				"availableSeats":  numberType,
				"status": bson.M{
					"enum": bson.A{models.ClassPending, models.ClassApproved, models.ClassDenied},
				},
				"feedback": stringType,
			},
		},
	}
}

func selectionsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"classId", "studentEmail"},
			"properties": bson.M{
				"classId":      stringType,
				"studentEmail": stringType,
				"price":        numberType,
			},
		},
	}
}

func paymentsSchema() bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"email", "transactionId"},
			"properties": bson.M{
				"email":         stringType,
				"transactionId": stringType,
				"amount":        numberType,
				"classIds":      bson.M{"bsonType": "array", "items": stringType},
			},
		},
	}
}
