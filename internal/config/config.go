package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	Port string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	Storage              string
	Location             *time.Location
	CacheTTL             time.Duration
	CacheRefreshInterval time.Duration
	RateLimit            int
	LogLevel             log.Level

	// IngestTokenSecret signs scraper tokens. Empty disables ingestion.
	IngestTokenSecret string
	IngestTokenIssuer string
	IngestTokenTTL    time.Duration
	IngestRateLimit   int
}

const minIngestSecretLen = 32

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)

	cfg := &Config{
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBName:        os.Getenv("DB_NAME"),
		Port:          getEnv("PORT", "8080"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		Storage:       getEnv("STORAGE", StoragePostgres),

		IngestTokenSecret: os.Getenv("INGEST_TOKEN_SECRET"),
		IngestTokenIssuer: getEnv("INGEST_TOKEN_ISSUER", "gym-occupancy"),
	}

	var err error

	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.RateLimit, err = getInt("RATE_LIMIT", 100); err != nil {
		return nil, err
	}
	if cfg.IngestRateLimit, err = getInt("INGEST_RATE_LIMIT", 30); err != nil {
		return nil, err
	}
	if cfg.IngestTokenTTL, err = getDuration("INGEST_TOKEN_TTL", 365*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.IngestTokenSecret != "" && len(cfg.IngestTokenSecret) < minIngestSecretLen {
		return nil, fmt.Errorf("INGEST_TOKEN_SECRET must be at least %d bytes", minIngestSecretLen)
	}
	if cfg.CacheTTL, err = getDuration("CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.CacheRefreshInterval, err = getDuration("CACHE_REFRESH_INTERVAL", time.Minute); err != nil {
		return nil, err
	}

	cfg.Location = time.Local
	if tz := os.Getenv("DASHBOARD_TZ"); tz != "" {
		if cfg.Location, err = time.LoadLocation(tz); err != nil {
			return nil, fmt.Errorf("invalid DASHBOARD_TZ %q: %w", tz, err)
		}
	}

	cfg.LogLevel = log.InfoLevel
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		if cfg.LogLevel, err = log.ParseLevel(lvl); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", lvl, err)
		}
	}

	switch cfg.Storage {
	case StoragePostgres, StorageMemory:
	default:
		return nil, fmt.Errorf("invalid STORAGE %q (must be %s or %s)", cfg.Storage, StoragePostgres, StorageMemory)
	}

	return cfg, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
