package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port string
	Env  string

	Upstream UpstreamConfig
	TCS      TCSConfig
	DB       DatabaseConfig
	Redis    RedisConfig
	AMQP     AMQPConfig
	Session  SessionConfig
	Worker   WorkerConfig

	CORSOrigins []string
}

// UpstreamConfig points at the storefront REST API the dashboard fronts.
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

// TCSConfig points at the carrier label service.
type TCSConfig struct {
	BaseURL string
	Timeout time.Duration
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// AMQPConfig contains the optional order-event broker settings. Publishing
// is disabled when URL is empty.
type AMQPConfig struct {
	URL   string
	Queue string
}

// SessionConfig controls server-side admin sessions.
type SessionConfig struct {
	// FallbackTTL bounds sessions whose upstream token carries no exp claim.
	FallbackTTL time.Duration
}

// WorkerConfig contains interval configuration for background workers.
type WorkerConfig struct {
	CatalogSyncInterval  time.Duration
	SessionSweepInterval time.Duration
	CatalogCacheTTL      time.Duration
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")

	// Upstream storefront API
	cfg.Upstream = UpstreamConfig{
		BaseURL: getEnv("UPSTREAM_API_URL", ""),
	}

	// TCS carrier service
	cfg.TCS = TCSConfig{
		BaseURL: getEnv("TCS_BASE_URL", ""),
	}

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// AMQP (optional)
	cfg.AMQP = AMQPConfig{
		URL:   getEnv("AMQP_URL", ""),
		Queue: getEnv("AMQP_ORDER_QUEUE", "order-status"),
	}

	// CORS
	if raw := getEnv("CORS_ORIGINS", "http://localhost:3000"); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
			}
		}
	}

	// Durations
	var err error
	if cfg.Upstream.Timeout, err = parseDurationEnv("UPSTREAM_TIMEOUT", "30s"); err != nil {
		return nil, fmt.Errorf("invalid UPSTREAM_TIMEOUT: %w", err)
	}
	if cfg.TCS.Timeout, err = parseDurationEnv("TCS_TIMEOUT", "30s"); err != nil {
		return nil, fmt.Errorf("invalid TCS_TIMEOUT: %w", err)
	}
	if cfg.Session.FallbackTTL, err = parseDurationEnv("SESSION_FALLBACK_TTL", "24h"); err != nil {
		return nil, fmt.Errorf("invalid SESSION_FALLBACK_TTL: %w", err)
	}
	if cfg.Worker.CatalogSyncInterval, err = parseDurationEnv("CATALOG_SYNC_INTERVAL", "15m"); err != nil {
		return nil, fmt.Errorf("invalid CATALOG_SYNC_INTERVAL: %w", err)
	}
	if cfg.Worker.SessionSweepInterval, err = parseDurationEnv("SESSION_SWEEP_INTERVAL", "10m"); err != nil {
		return nil, fmt.Errorf("invalid SESSION_SWEEP_INTERVAL: %w", err)
	}
	if cfg.Worker.CatalogCacheTTL, err = parseDurationEnv("CATALOG_CACHE_TTL", "30m"); err != nil {
		return nil, fmt.Errorf("invalid CATALOG_CACHE_TTL: %w", err)
	}

	// Basic validation.
	if cfg.Upstream.BaseURL == "" {
		return nil, errors.New("UPSTREAM_API_URL must be set")
	}
	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
		return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
