// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework side: ports, TLS, logging level and request limits. Everything
// below is specific to classhub.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoUser        string // Injected into MongoURI when set
	MongoPass        string // Injected into MongoURI with MongoUser
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connections in the shared client pool
	MongoMinPoolSize uint64 // Connections kept warm

	// Payment gateway
	StripeSecretKey string // Stripe secret API key (sk_live_… / sk_test_…)
	PaymentCurrency string // ISO currency code for payment intents (default usd)

	// Route policy: "open" allows every caller, "enforce" checks roles.
	PolicyMode string

	// AdminEmail is promoted to (or created as) an admin on startup so that
	// an enforce-mode deployment has someone who can call admin routes.
	AdminEmail string
}
