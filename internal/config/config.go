package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port string
	Env  string

	DB      DatabaseConfig
	Storage StorageConfig
	Redis   RedisConfig
	Cache   CacheConfig
	Worker  WorkerConfig
}

// DatabaseConfig contains PostgreSQL connection parameters. Two credential
// pairs are required: the restricted role used for all reads and the
// privileged role used for all writes. The split is a security invariant,
// not an optimization, so both are explicit here instead of living in
// ambient globals.
type DatabaseConfig struct {
	Host    string
	Port    string
	Name    string
	SSLMode string

	ReadUser      string
	ReadPassword  string
	WriteUser     string
	WritePassword string
}

// StorageConfig contains Supabase storage parameters for image uploads.
// When URL or ServiceRoleKey is empty, the upload path is disabled.
type StorageConfig struct {
	URL            string
	ServiceRoleKey string
	Bucket         string
}

// RedisConfig contains Redis connection parameters. An empty Host disables
// the list cache entirely.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// CacheConfig controls the list-response cache.
type CacheConfig struct {
	TTL time.Duration
}

// WorkerConfig contains interval configuration for background workers.
type WorkerConfig struct {
	CalendarSweepInterval time.Duration
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

	// Database
	cfg.DB = DatabaseConfig{
		Host:          getEnv("DB_HOST", ""),
		Port:          getEnv("DB_PORT", "5432"),
		Name:          getEnv("DB_NAME", ""),
		SSLMode:       getEnv("DB_SSLMODE", "require"),
		ReadUser:      getEnv("DB_READ_USER", ""),
		ReadPassword:  getEnv("DB_READ_PASSWORD", ""),
		WriteUser:     getEnv("DB_WRITE_USER", ""),
		WritePassword: getEnv("DB_WRITE_PASSWORD", ""),
	}

	// Supabase storage
	cfg.Storage = StorageConfig{
		URL:            getEnv("SUPABASE_URL", ""),
		ServiceRoleKey: getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
		Bucket:         getEnv("STORAGE_BUCKET", "moremori-images"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", ""),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	var err error
	if cfg.Cache.TTL, err = parseDurationEnv("CACHE_TTL", "60s"); err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	if cfg.Worker.CalendarSweepInterval, err = parseDurationEnv("CALENDAR_SWEEP_INTERVAL", "1h"); err != nil {
		return nil, fmt.Errorf("invalid CALENDAR_SWEEP_INTERVAL: %w", err)
	}

	// Basic validation for DB parameters — keeps messages concise and helpful.
	if cfg.DB.Host == "" || cfg.DB.Name == "" {
		return nil, errors.New("database configuration incomplete: ensure DB_HOST and DB_NAME are set")
	}
	if cfg.DB.ReadUser == "" || cfg.DB.WriteUser == "" {
		return nil, errors.New("database credentials incomplete: ensure DB_READ_USER and DB_WRITE_USER are set")
	}

	return cfg, nil
}

// StorageEnabled reports whether upload configuration is complete.
func (c *Config) StorageEnabled() bool {
	return c.Storage.URL != "" && c.Storage.ServiceRoleKey != ""
}

// CacheEnabled reports whether the Redis list cache is configured.
func (c *Config) CacheEnabled() bool {
	return c.Redis.Host != ""
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
