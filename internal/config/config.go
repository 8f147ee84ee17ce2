package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string

	// ReportTimezone is the IANA timezone used for calendar and
	// hour-of-day bucketing. Bucket boundaries depend on it, so it is
	// explicit configuration, never a hidden default.
	ReportTimezone string

	RedisAddr     string // Empty disables the report cache
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	RateLimit       int
	RateLimitWindow time.Duration
}

// Load reads the configuration from the environment.
func Load() *Config {
	cfg := &Config{
		Port:            getEnv("PORT", ":8080"),
		DBPath:          getEnv("DB_PATH", "./data/presence.db"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		ReportTimezone:  getEnv("REPORT_TIMEZONE", "UTC"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		CacheTTL:        time.Duration(getEnvInt("CACHE_TTL_SECONDS", 300)) * time.Second,
		RateLimit:       getEnvInt("RATE_LIMIT", 120),
		RateLimitWindow: time.Minute,
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
