// Package config handles loading application configuration from environment
// variables. All config is centralized here so no other package reads env
// vars directly. Sensible defaults are provided for development.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration. Populated from environment
// variables at startup. Passed to other packages via dependency injection.
type Config struct {
	// Env is the runtime environment: "development" or "production".
	Env string

	// Port is the HTTP listen port (default: 8080).
	Port int

	// BaseURL is the public-facing URL used for links and redirects.
	BaseURL string

	// LogLevel controls log verbosity: "debug", "info", "warn", "error".
	LogLevel string

	// AllowedHosts restricts which Host headers are served. Empty means
	// any host (development). Mirrors the hosts the reverse proxy exposes.
	AllowedHosts []string

	// API holds settings for the reservation backend API.
	API APIConfig

	// Redis holds Redis connection settings for the per-visitor UI state.
	Redis RedisConfig

	// State holds UI state persistence settings.
	State StateConfig
}

// APIConfig holds the reservation backend connection parameters. Every
// outbound call shares these; no other package reads API env vars.
type APIConfig struct {
	// BaseURL is the backend root (default: "http://localhost:5000").
	// All endpoints live under <BaseURL>/api/.
	BaseURL string

	// Timeout is the fixed per-request timeout (default: 10s).
	Timeout time.Duration

	// SessionCookie is the name of the backend's session cookie. The
	// front-end only checks for its presence; the backend validates it.
	SessionCookie string
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	// URL is the Redis connection URL (e.g., "redis://localhost:6379").
	URL string
}

// StateConfig holds settings for the per-visitor UI state store.
type StateConfig struct {
	// TTL is how long an idle visitor's UI state is retained.
	TTL time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	cfg := &Config{
		Env:          getEnv("ENV", "development"),
		Port:         getEnvInt("PORT", 8080),
		BaseURL:      getEnv("BASE_URL", "http://localhost:8080"),
		LogLevel:     getEnv("LOG_LEVEL", "debug"),
		AllowedHosts: splitHosts(getEnv("ALLOWED_HOSTS", "")),

		API: APIConfig{
			BaseURL:       getEnv("API_BASE_URL", "http://localhost:5000"),
			Timeout:       getEnvDuration("API_TIMEOUT", 10*time.Second),
			SessionCookie: getEnv("API_SESSION_COOKIE", "session"),
		},

		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", "redis://localhost:6379"),
		},

		State: StateConfig{
			TTL: getEnvDuration("STATE_TTL", 12*time.Hour),
		},
	}

	// The API base URL feeds both the outbound client and the /api proxy
	// target; reject it here so startup fails instead of the first request.
	if u, err := url.Parse(cfg.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("API_BASE_URL %q is not a valid URL", cfg.API.BaseURL)
	}

	// Validate required fields in production. Case-insensitive check catches
	// common variants like "Production", "prod", etc.
	envLower := strings.ToLower(cfg.Env)
	if envLower == "production" || envLower == "prod" {
		if os.Getenv("API_BASE_URL") == "" {
			return nil, fmt.Errorf("API_BASE_URL is required in production")
		}
		if cfg.API.Timeout <= 0 {
			return nil, fmt.Errorf("API_TIMEOUT must be positive")
		}
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Env)
	return env == "development" || env == "dev"
}

// splitHosts parses a comma-separated host list, dropping empty entries.
func splitHosts(raw string) []string {
	if raw == "" {
		return nil
	}
	var hosts []string
	for _, h := range strings.Split(raw, ",") {
		h = strings.TrimSpace(h)
		if h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}

// --- Helper functions for reading environment variables ---

// getEnv reads a string env var or returns the default.
func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvInt reads an integer env var or returns the default.
func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvDuration reads a duration env var (e.g., "10s") or returns the default.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
