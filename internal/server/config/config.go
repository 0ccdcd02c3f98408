// Package config handles configuration for the gallery server: defaults,
// an optional JSON file, environment variables (optionally from .env) and
// finally command-line flags, each layer overriding the previous one.
package config

import (
	"errors"
	"time"
)

// Config holds runtime settings for the gallery server.
//
// Fields:
//   - EndpointAddrHTTP / EndpointAddrGRPC: bind addresses of the two transports.
//   - DatabaseDSN: PostgreSQL URL (postgres://...) or SQLite DSN (file path, file:...).
//   - SecretKey: HMAC secret for signing session tokens (HS256). Has no default.
//   - TokenValidityDuration: lifetime of a session token.
//   - CookieSecure: mark the session cookie Secure (enable behind TLS).
//   - HideForeignRecords: answer "not found" instead of "forbidden" for
//     drawings owned by someone else.
//   - LoginRatePerMinute: accepted login attempts per minute; 0 disables limiting.
//   - MaxBodyBytes: upper bound for HTTP request bodies.
type Config struct {
	EndpointAddrHTTP      string
	EndpointAddrGRPC      string
	DatabaseDSN           string
	SecretKey             string
	TokenValidityDuration time.Duration
	CookieSecure          bool
	HideForeignRecords    bool
	LoginRatePerMinute    int
	MaxBodyBytes          int64
}

// LoadDefaults populates Config with development defaults. SecretKey is
// intentionally left empty so the server refuses to start without one.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = "file:gallery.db"
	c.SecretKey = ""
	c.TokenValidityDuration = 7 * 24 * time.Hour
	c.CookieSecure = false
	c.HideForeignRecords = false
	c.LoginRatePerMinute = 30
	c.MaxBodyBytes = 10 << 20
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and command-line flags.
// Malformed input panics, as with any other startup misconfiguration.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// Validate reports settings the server cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key is not set"))
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database dsn is not set"))
	}
	if c.TokenValidityDuration <= 0 {
		errs = append(errs, errors.New("token validity duration must be positive"))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("max body bytes must be positive"))
	}
	if c.LoginRatePerMinute < 0 {
		errs = append(errs, errors.New("login rate must not be negative"))
	}
	return errors.Join(errs...)
}
