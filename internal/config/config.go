// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvListen        = "ANTOJO_LISTEN"
	EnvRemoteURL     = "ANTOJO_REMOTE_URL"
	EnvRemoteTimeout = "ANTOJO_REMOTE_TIMEOUT"
	EnvCatalogDB     = "ANTOJO_CATALOG_DB"
	EnvLogLevel      = "ANTOJO_LOG_LEVEL"
)

// Defaults.
const (
	DefaultListen        = ":8080"
	DefaultRemoteTimeout = 3 * time.Second
	DefaultLogLevel      = "info"
)

// Config holds everything the binaries need to start.
type Config struct {
	// Listen is the HTTP bind address.
	Listen string

	// RemoteURL is the base URL of the remote interpretation service.
	// Empty means the local pipeline runs unconditionally.
	RemoteURL string

	// RemoteTimeout bounds each remote call.
	RemoteTimeout time.Duration

	// CatalogDB is a SQLite database path for the dish catalog. Empty
	// means the embedded catalog is used.
	CatalogDB string

	// LogLevel is a zerolog level name (trace..panic).
	LogLevel string
}

// Load reads configuration from the environment. A .env file in the
// working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Listen:        getenv(EnvListen, DefaultListen),
		RemoteURL:     os.Getenv(EnvRemoteURL),
		RemoteTimeout: DefaultRemoteTimeout,
		CatalogDB:     os.Getenv(EnvCatalogDB),
		LogLevel:      getenv(EnvLogLevel, DefaultLogLevel),
	}

	if raw := os.Getenv(EnvRemoteTimeout); raw != "" {
		d, err := parseTimeout(raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", EnvRemoteTimeout, err)
		}
		cfg.RemoteTimeout = d
	}

	return cfg, nil
}

// parseTimeout accepts either a Go duration ("2s", "500ms") or a bare
// number of seconds.
func parseTimeout(raw string) (time.Duration, error) {
	if secs, err := strconv.Atoi(raw); err == nil {
		if secs <= 0 {
			return 0, fmt.Errorf("timeout must be positive, got %d", secs)
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive, got %s", d)
	}
	return d, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
