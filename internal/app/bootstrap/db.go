// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/classhub/internal/app/system/indexes"
	"github.com/dalemusser/classhub/internal/app/system/paygate"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"github.com/dalemusser/classhub/internal/app/system/validators"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB creates the shared Mongo client and the payment gateway.
//
// The client is pinged once. A failed ping is logged and startup goes on:
// the driver reconnects on its own and /health reports the state.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		logger.Error("MongoDB connect failed", zap.Error(err))
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		logger.Warn("MongoDB ping failed; continuing", zap.Error(err))
	} else {
		logger.Info("connected to MongoDB",
			zap.String("database", appCfg.MongoDatabase),
			zap.Uint64("max_pool", appCfg.MongoMaxPoolSize))
	}

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
		Gateway:       paygate.NewStripe(appCfg.StripeSecretKey, appCfg.PaymentCurrency, nil, logger),
	}, nil
}

// EnsureSchema creates the collections, their validators and indexes.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := validators.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("collection validators failed", zap.Error(err))
		return err
	}
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("index setup failed", zap.Error(err))
		return err
	}
	return nil
}
