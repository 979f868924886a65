// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/classhub/internal/app/system/paygate"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
// One client is shared by every request for the life of the process.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
	Gateway       paygate.Gateway
}
