// Package config reads the server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"smartisp.net/console/pkg/database"
	"smartisp.net/console/pkg/redis"
)

// Store backends for the persisted key-value data.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

const defaultJWTSecret = "your-super-secret-key-change-in-production"

type Config struct {
	Port         string
	LogLevel     string
	StoreBackend string
	SQLitePath   string
	Database     database.Config
	Redis        redis.Config

	JWTSecret         string
	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string

	LoginDelay      time.Duration
	ExportDelay     time.Duration
	SaveDelay       time.Duration
	LogFeedInterval time.Duration

	RateLimit       int
	RateLimitWindow time.Duration
	SeedData        bool
	AllowedOrigins  []string
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration from a lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	e := env{get: getenv}

	cfg := &Config{
		Port:         e.str("PORT", "8080"),
		LogLevel:     e.str("LOG_LEVEL", "INFO"),
		StoreBackend: strings.ToLower(e.str("STORE_BACKEND", BackendMemory)),
		SQLitePath:   e.str("SQLITE_PATH", "console.db"),
		Database: database.Config{
			Host:     e.str("DB_HOST", "localhost"),
			Port:     e.str("DB_PORT", "5432"),
			User:     e.str("DB_USER", "postgres"),
			Password: e.str("DB_PASSWORD", "password"),
			Name:     e.str("DB_NAME", "isp_console"),
			SSLMode:  e.str("DB_SSLMODE", "disable"),
		},
		Redis: redis.Config{
			Host:     e.str("REDIS_HOST", "localhost"),
			Port:     e.str("REDIS_PORT", "6379"),
			Password: e.str("REDIS_PASSWORD", ""),
			DB:       e.num("REDIS_DB", 0),
		},
		JWTSecret:         e.str("JWT_SECRET", defaultJWTSecret),
		AdminUsername:     e.str("ADMIN_USERNAME", "admin"),
		AdminPassword:     e.str("ADMIN_PASSWORD", "admin"),
		AdminPasswordHash: e.str("ADMIN_PASSWORD_HASH", ""),
		LoginDelay:        e.duration("LOGIN_DELAY", 1200*time.Millisecond),
		ExportDelay:       e.duration("EXPORT_DELAY", 2*time.Second),
		SaveDelay:         e.duration("SAVE_DELAY", 800*time.Millisecond),
		LogFeedInterval:   e.duration("LOG_FEED_INTERVAL", 5*time.Second),
		RateLimit:         e.num("RATE_LIMIT", 120),
		RateLimitWindow:   e.duration("RATE_LIMIT_WINDOW", time.Minute),
		SeedData:          e.flag("SEED_DATA", true),
		AllowedOrigins:    e.list("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}
	if len(e.errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(e.errs, "; "))
	}

	switch cfg.StoreBackend {
	case BackendMemory, BackendRedis, BackendPostgres, BackendSQLite:
	default:
		return nil, fmt.Errorf("invalid configuration: unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	if cfg.LogFeedInterval <= 0 {
		return nil, fmt.Errorf("invalid configuration: LOG_FEED_INTERVAL must be positive")
	}
	return cfg, nil
}

type env struct {
	get  func(string) string
	errs []string
}

func (e *env) str(key, defaultValue string) string {
	if v := strings.TrimSpace(e.get(key)); v != "" {
		return v
	}
	return defaultValue
}

func (e *env) num(key string, defaultValue int) int {
	v := e.str(key, "")
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Sprintf("%s: %v", key, err))
		return defaultValue
	}
	return n
}

func (e *env) flag(key string, defaultValue bool) bool {
	v := e.str(key, "")
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Sprintf("%s: %v", key, err))
		return defaultValue
	}
	return b
}

func (e *env) duration(key string, defaultValue time.Duration) time.Duration {
	v := e.str(key, "")
	if v == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Sprintf("%s: %v", key, err))
		return defaultValue
	}
	return d
}

func (e *env) list(key string, defaultValue []string) []string {
	v := e.str(key, "")
	if v == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
