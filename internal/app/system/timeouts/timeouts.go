// Package timeouts holds the deadlines applied to store and gateway calls.
//
// Handlers wrap every blocking call in context.WithTimeout using one of
// these values:
//   - Ping: connectivity checks
//   - Short: single-document reads and writes
//   - Medium: unbounded list queries, bulk deletes, exports
//   - Gateway: calls to the payment gateway
package timeouts

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultPing    = 2 * time.Second
	DefaultShort   = 5 * time.Second
	DefaultMedium  = 15 * time.Second
	DefaultGateway = 20 * time.Second
)

var (
	mu      sync.RWMutex
	ping    = DefaultPing
	short   = DefaultShort
	medium  = DefaultMedium
	gateway = DefaultGateway
)

func Ping() time.Duration    { return get(&ping) }
func Short() time.Duration   { return get(&short) }
func Medium() time.Duration  { return get(&medium) }
func Gateway() time.Duration { return get(&gateway) }

func get(d *time.Duration) time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return *d
}

// Config holds timeout overrides. Zero values keep the current setting.
type Config struct {
	Ping    time.Duration
	Short   time.Duration
	Medium  time.Duration
	Gateway time.Duration
}

// Configure applies the non-zero values in cfg.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	set(&ping, cfg.Ping)
	set(&short, cfg.Short)
	set(&medium, cfg.Medium)
	set(&gateway, cfg.Gateway)
}

func set(dst *time.Duration, v time.Duration) {
	if v > 0 {
		*dst = v
	}
}

// Reset restores the defaults. Tests use it after Configure.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping, short, medium, gateway = DefaultPing, DefaultShort, DefaultMedium, DefaultGateway
}

// Current returns the active configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{Ping: ping, Short: short, Medium: medium, Gateway: gateway}
}

// ConfigureFromEnv reads TIMEOUT_PING, TIMEOUT_SHORT, TIMEOUT_MEDIUM and
// TIMEOUT_GATEWAY (Go duration strings). Invalid or non-positive values are
// ignored. It returns how many values were applied.
func ConfigureFromEnv() int {
	var cfg Config
	n := 0
	for key, dst := range map[string]*time.Duration{
		"TIMEOUT_PING":    &cfg.Ping,
		"TIMEOUT_SHORT":   &cfg.Short,
		"TIMEOUT_MEDIUM":  &cfg.Medium,
		"TIMEOUT_GATEWAY": &cfg.Gateway,
	} {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			*dst = d
			n++
		}
	}
	Configure(cfg)
	return n
}

// WithTimeout is context.WithTimeout whose cancel func logs a warning when
// the deadline was what ended the operation.
//
//	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "export payments")
//	defer cancel()
func WithTimeout(parent context.Context, d time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, d)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", d))
		}
		cancel()
	}
}
