// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/dalemusser/classhub/internal/app/system/authz"
	"github.com/dalemusser/classhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// DefaultHTTPPort is the listen port when neither --http_port,
// CLASSHUB_HTTP_PORT nor PORT is set.
const DefaultHTTPPort = 5000

// waffleDefaultHTTPPort is the http_port default registered by WAFFLE.
const waffleDefaultHTTPPort = 8080

// appConfigKeys defines the configuration keys for classhub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, stripe_secret_key, etc.
//   - Environment variables: CLASSHUB_MONGO_URI, CLASSHUB_STRIPE_SECRET_KEY, etc.
//   - Command-line flags: --mongo_uri, --stripe_secret_key, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_user", Default: "", Desc: "MongoDB username (injected into mongo_uri when set)"},
	{Name: "mongo_pass", Default: "", Desc: "MongoDB password"},
	{Name: "mongo_database", Default: "techProgrammerBD", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Payment gateway
	{Name: "stripe_secret_key", Default: "", Desc: "Stripe secret API key"},
	{Name: "payment_currency", Default: "usd", Desc: "Currency for payment intents"},

	// Route policy
	{Name: "policy_mode", Default: "open", Desc: "Route policy: 'open' (allow all) or 'enforce' (role checks)"},
	{Name: "admin_email", Default: "", Desc: "Email promoted to admin on startup (creates the user if missing)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, CLASSHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CLASSHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	flagSet := false
	if f := pflag.Lookup("http_port"); f != nil {
		flagSet = f.Changed
	}
	if err := resolveHTTPPort(coreCfg, os.Getenv, flagSet); err != nil {
		return nil, AppConfig{}, err
	}
	logger.Info("http port resolved", zap.Int("http_port", coreCfg.HTTP.HTTPPort))

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoUser:        appValues.String("mongo_user"),
		MongoPass:        appValues.String("mongo_pass"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		StripeSecretKey: appValues.String("stripe_secret_key"),
		PaymentCurrency: strings.ToLower(strings.TrimSpace(appValues.String("payment_currency"))),

		PolicyMode: appValues.String("policy_mode"),
		AdminEmail: strings.TrimSpace(appValues.String("admin_email")),
	}

	// TIMEOUT_* overrides apply before ConnectDB pings the store.
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		cur := timeouts.Current()
		logger.Info("operation timeouts overridden from environment",
			zap.Int("overrides", n),
			zap.Duration("ping", cur.Ping),
			zap.Duration("short", cur.Short),
			zap.Duration("medium", cur.Medium),
			zap.Duration("gateway", cur.Gateway))
	}

	if appCfg.MongoUser != "" {
		uri, err := withCredentials(appCfg.MongoURI, appCfg.MongoUser, appCfg.MongoPass)
		if err != nil {
			return nil, AppConfig{}, fmt.Errorf("mongo_uri: %w", err)
		}
		appCfg.MongoURI = uri
		logger.Info("injected MongoDB credentials into URI", zap.String("mongo_user", appCfg.MongoUser))
	}

	return coreCfg, appCfg, nil
}

// resolveHTTPPort applies the PORT fallback and the classhub default.
// Precedence: --http_port, CLASSHUB_HTTP_PORT, PORT, then DefaultHTTPPort.
// A config file that sets http_port to WAFFLE's own default is treated as unset.
func resolveHTTPPort(cfg *config.CoreConfig, getenv func(string) string, flagSet bool) error {
	if flagSet || strings.TrimSpace(getenv("CLASSHUB_HTTP_PORT")) != "" {
		return nil
	}
	if raw := strings.TrimSpace(getenv("PORT")); raw != "" {
		port, err := cast.ToIntE(raw)
		if err != nil || port < 1 || port > 65535 {
			return fmt.Errorf("PORT %q is not a valid port", raw)
		}
		cfg.HTTP.HTTPPort = port
		return nil
	}
	if cfg.HTTP.HTTPPort == waffleDefaultHTTPPort || cfg.HTTP.HTTPPort == 0 {
		cfg.HTTP.HTTPPort = DefaultHTTPPort
	}
	return nil
}

// withCredentials returns uri with user and pass as its userinfo,
// replacing any credentials already present.
func withCredentials(uri, user, pass string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", err
	}
	u.User = url.UserPassword(user, pass)
	return u.String(), nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.MongoDatabase == "" {
		return fmt.Errorf("mongo_database must not be empty")
	}

	if appCfg.MongoMinPoolSize > appCfg.MongoMaxPoolSize {
		return fmt.Errorf("mongo_min_pool_size (%d) exceeds mongo_max_pool_size (%d)",
			appCfg.MongoMinPoolSize, appCfg.MongoMaxPoolSize)
	}

	if _, err := authz.ParseMode(appCfg.PolicyMode); err != nil {
		return err
	}

	if appCfg.StripeSecretKey == "" {
		logger.Warn("stripe_secret_key is empty; payment intents will fail until it is set")
	}

	return nil
}
