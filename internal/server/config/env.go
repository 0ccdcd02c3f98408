package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvHTTPAddr      = "GALLERY_HTTP_ADDR"
	EnvGRPCAddr      = "GALLERY_GRPC_ADDR"
	EnvDatabaseDSN   = "GALLERY_DATABASE_DSN"
	EnvSecretKey     = "GALLERY_SECRET_KEY"
	EnvTokenValidity = "GALLERY_TOKEN_VALIDITY"
	EnvCookieSecure  = "GALLERY_COOKIE_SECURE"
	EnvHideForeign   = "GALLERY_HIDE_FOREIGN_RECORDS"
	EnvLoginRate     = "GALLERY_LOGIN_RATE_PER_MINUTE"
	EnvMaxBodyBytes  = "GALLERY_MAX_BODY_BYTES"

	// EnvLegacySecret is honoured when EnvSecretKey is not set.
	EnvLegacySecret = "JWT_SECRET"
)

// envFile is the dotenv file loaded before reading the environment.
// Variables already present in the process environment win.
var envFile = ".env"

func parseEnv(config *Config) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Errorf("load %s: %w", envFile, err))
	}
	if err := applyEnv(config, os.LookupEnv); err != nil {
		panic(err)
	}
}

func applyEnv(config *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvHTTPAddr); ok {
		config.EndpointAddrHTTP = v
	}
	if v, ok := lookup(EnvGRPCAddr); ok {
		config.EndpointAddrGRPC = v
	}
	if v, ok := lookup(EnvDatabaseDSN); ok {
		config.DatabaseDSN = v
	}
	if v, ok := lookup(EnvLegacySecret); ok {
		config.SecretKey = v
	}
	if v, ok := lookup(EnvSecretKey); ok {
		config.SecretKey = v
	}
	if v, ok := lookup(EnvTokenValidity); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTokenValidity, err)
		}
		config.TokenValidityDuration = d
	}
	if v, ok := lookup(EnvCookieSecure); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCookieSecure, err)
		}
		config.CookieSecure = b
	}
	if v, ok := lookup(EnvHideForeign); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvHideForeign, err)
		}
		config.HideForeignRecords = b
	}
	if v, ok := lookup(EnvLoginRate); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvLoginRate, err)
		}
		config.LoginRatePerMinute = n
	}
	if v, ok := lookup(EnvMaxBodyBytes); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxBodyBytes, err)
		}
		config.MaxBodyBytes = n
	}
	return nil
}
