package config

import (
	"fmt"
	"net/url"
	"time"

	"client_tracker_backend/pkg/utils"

	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	// Version is reported by the health endpoint.
	Version = "1.0.0"
)

// Config holds every runtime setting of the API process.
type Config struct {
	Port            string
	Environment     string
	LogLevel        string
	APIPrefix       string
	StorageDriver   string
	DatabaseURL     string
	AutoMigrate     bool
	FrontendURL     string
	ExtraOrigins    []string
	RateLimitWindow time.Duration
	RateLimitMax    int
	BodyLimitBytes  int64
	MetricsEnabled  bool
	ShutdownTimeout time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		Port:            utils.Getenv("PORT", "3001"),
		Environment:     utils.Getenv("APP_ENV", "development"),
		LogLevel:        utils.Getenv("LOG_LEVEL", "info"),
		APIPrefix:       utils.Getenv("API_PREFIX", "/api"),
		StorageDriver:   utils.Getenv("STORAGE_DRIVER", StorageDriverPostgres),
		DatabaseURL:     utils.Getenv("DATABASE_URL", ""),
		AutoMigrate:     utils.GetenvBool("DB_AUTO_MIGRATE", true),
		FrontendURL:     utils.Getenv("FRONTEND_URL", "http://localhost:3000"),
		ExtraOrigins:    utils.GetenvList("CORS_ALLOWED_ORIGINS"),
		RateLimitWindow: utils.GetenvDuration("RATE_LIMIT_WINDOW_MS", 15*time.Minute),
		RateLimitMax:    utils.GetenvInt("RATE_LIMIT_MAX", 100),
		BodyLimitBytes:  int64(utils.GetenvInt("BODY_LIMIT_BYTES", 10<<20)),
		MetricsEnabled:  utils.GetenvBool("METRICS_ENABLED", true),
		ShutdownTimeout: utils.GetenvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = postgresURL(
			utils.Getenv("DB_HOST", "localhost"),
			utils.Getenv("DB_PORT", "5432"),
			utils.Getenv("DB_USER", "client_tracker"),
			utils.Getenv("DB_PASSWORD", "client_tracker"),
			utils.Getenv("DB_NAME", "client_tracker"),
			utils.Getenv("DB_SSLMODE", "disable"),
		)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q (want %q or %q)", c.StorageDriver, StorageDriverPostgres, StorageDriverMemory)
	}
	if c.RateLimitMax < 1 {
		return fmt.Errorf("RATE_LIMIT_MAX must be positive, got %d", c.RateLimitMax)
	}
	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW_MS must be positive, got %s", c.RateLimitWindow)
	}
	if c.BodyLimitBytes < 1 {
		return fmt.Errorf("BODY_LIMIT_BYTES must be positive, got %d", c.BodyLimitBytes)
	}
	return nil
}

// IsDevelopment reports whether error details may be exposed to callers.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func postgresURL(host, port, user, password, dbname, sslmode string) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, password),
		Host:     host + ":" + port,
		Path:     "/" + dbname,
		RawQuery: "sslmode=" + url.QueryEscape(sslmode),
	}
	return u.String()
}
