package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port           int
	Env            string
	RequestTimeout time.Duration

	// CORS
	AllowedOrigins []string

	// Stores: Postgres master data, ClickHouse match history
	PostgresURL   string
	ClickHouseURL string
	RedisURL      string // empty selects the in-process cache

	// Cache
	CacheBreakerTimeout  time.Duration
	CacheBreakerFailures int
	CacheSweepInterval   time.Duration

	// Engine
	BatchConcurrency int
	MatchHistory     int

	// Invalidation pool
	WorkerCount   int
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration

	// Rate limiting
	RateLimitPerSecond int
	RateLimitBurst     int

	// Admin
	AdminToken string
}

// Load reads the environment. POSTGRES_URL and CLICKHOUSE_URL are required;
// everything else has a default.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnvInt("PORT", 8080),
		Env:            getEnv("ENV", "development"),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 15*time.Second),

		RedisURL: os.Getenv("REDIS_URL"),

		CacheBreakerTimeout:  getEnvDuration("CACHE_BREAKER_TIMEOUT", 30*time.Second),
		CacheBreakerFailures: getEnvInt("CACHE_BREAKER_FAILURES", 5),
		CacheSweepInterval:   getEnvDuration("CACHE_SWEEP_INTERVAL", time.Minute),

		BatchConcurrency: getEnvInt("BATCH_CONCURRENCY", 8),
		MatchHistory:     getEnvInt("MATCH_HISTORY", 60),

		WorkerCount:   getEnvInt("WORKER_COUNT", 2),
		QueueSize:     getEnvInt("QUEUE_SIZE", 10000),
		BatchSize:     getEnvInt("BATCH_SIZE", 200),
		FlushInterval: getEnvDuration("FLUSH_INTERVAL", 1*time.Second),

		RateLimitPerSecond: getEnvInt("RATE_LIMIT_PER_SECOND", 100),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 200),

		AdminToken: os.Getenv("ADMIN_TOKEN"),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	for _, o := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	// Both stores are mandatory
	var err error
	if cfg.PostgresURL, err = getEnvRequired("POSTGRES_URL"); err != nil {
		return nil, err
	}
	if cfg.ClickHouseURL, err = getEnvRequired("CLICKHOUSE_URL"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsProduction reports whether production logging and defaults apply
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvRequired(key string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("missing required environment variable: %s", key)
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
