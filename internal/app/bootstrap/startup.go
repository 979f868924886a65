// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	userstore "github.com/dalemusser/classhub/internal/app/store/users"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"github.com/dalemusser/classhub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.AdminEmail == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, timeouts.Medium())
	defer cancel()
	return ensureAdmin(ctx, deps, appCfg.AdminEmail, logger)
}

// ensureAdmin gives email the admin role, creating the user when no user
// has that email. Only the first user with the email is touched.
func ensureAdmin(ctx context.Context, deps DBDeps, email string, logger *zap.Logger) error {
	users := userstore.New(deps.MongoDatabase)

	doc, err := users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}

	if doc == nil {
		res, err := users.Create(ctx, bson.M{
			"name":  "Administrator",
			"email": email,
			"role":  models.RoleAdmin,
		})
		if err != nil {
			return fmt.Errorf("ensure admin: %w", err)
		}
		logger.Info("created admin user", zap.String("email", email), zap.String("user_id", res.InsertedID.Hex()))
		return nil
	}

	if role, _ := doc["role"].(string); role == models.RoleAdmin {
		logger.Info("admin user already present", zap.String("email", email))
		return nil
	}

	id, ok := doc["_id"].(primitive.ObjectID)
	if !ok {
		return fmt.Errorf("ensure admin: user %s has a non-ObjectID _id", email)
	}
	if _, err := users.SetRole(ctx, id, models.RoleAdmin); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	logger.Info("promoted user to admin", zap.String("email", email), zap.String("user_id", id.Hex()))
	return nil
}
