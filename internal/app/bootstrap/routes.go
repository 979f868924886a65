// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	classesfeature "github.com/dalemusser/classhub/internal/app/features/classes"
	errorsfeature "github.com/dalemusser/classhub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/classhub/internal/app/features/health"
	homefeature "github.com/dalemusser/classhub/internal/app/features/home"
	paymentsfeature "github.com/dalemusser/classhub/internal/app/features/payments"
	selectionsfeature "github.com/dalemusser/classhub/internal/app/features/selections"
	usersfeature "github.com/dalemusser/classhub/internal/app/features/users"
	classstore "github.com/dalemusser/classhub/internal/app/store/classes"
	paymentstore "github.com/dalemusser/classhub/internal/app/store/payments"
	selectionstore "github.com/dalemusser/classhub/internal/app/store/selections"
	userstore "github.com/dalemusser/classhub/internal/app/store/users"
	"github.com/dalemusser/classhub/internal/app/system/authz"
	"github.com/dalemusser/classhub/internal/app/system/reqlog"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. Every feature shares one ErrorLogger and
// one route Policy whose role lookups read the users collection.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	mode, err := authz.ParseMode(appCfg.PolicyMode)
	if err != nil {
		return nil, err
	}

	db := deps.MongoDatabase
	users := userstore.New(db)

	errLog := errorsfeature.NewErrorLogger(logger)
	policy := authz.New(mode, users, errLog.Deny, logger)
	logger.Info("route policy configured", zap.String("mode", string(mode)))

	r := chi.NewRouter()

	r.Use(reqlog.Middleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{reqlog.Header},
		MaxAge:         300,
	}))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Liveness text
	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	// Accounts
	usersHandler := usersfeature.NewHandler(users, errLog, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler, policy))
	r.Mount("/instructors", usersfeature.InstructorRoutes(usersHandler))
	r.Mount("/student", usersfeature.StudentRoutes(usersHandler, policy))

	// Classes and the approval workflow
	classesHandler := classesfeature.NewHandler(classstore.New(db), errLog, logger)
	r.Mount("/classes", classesfeature.Routes(classesHandler, policy))

	// Cart
	selectionsHandler := selectionsfeature.NewHandler(selectionstore.New(db), errLog, logger)
	r.Mount("/selectedClass", selectionsfeature.Routes(selectionsHandler, policy))

	// Payments
	paymentsHandler := paymentsfeature.NewHandler(paymentstore.New(db), deps.Gateway, errLog, logger)
	r.Mount("/create-payment-intent", paymentsfeature.IntentRoutes(paymentsHandler))
	r.Mount("/payments", paymentsfeature.Routes(paymentsHandler, policy))

	return r, nil
}
