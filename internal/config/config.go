package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the e-waste map server
type Config struct {
	Port        int
	DatabaseURL string

	// Geocoder configuration passed through to the map page
	Geocoder       string
	GeocoderAPIKey string

	SessionSecret string
	SessionTTL    time.Duration

	Debug bool

	// RedisURL enables the login rate limiter when non-empty
	RedisURL        string
	LoginRateLimit  int
	LoginRateWindow time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:        getEnvAsInt("PORT", 5000),
		DatabaseURL: normalizeDatabaseURL(getEnv("DATABASE_URL", "ewaste.db")),

		Geocoder:       getEnv("GEOCODER", "nominatim"),
		GeocoderAPIKey: getEnv("GEOCODER_API_KEY", ""),

		SessionSecret: getEnv("SESSION_SECRET", "ewaste-secret-key-change-in-production"),
		SessionTTL:    time.Duration(getEnvAsInt("SESSION_TTL_HOURS", 24)) * time.Hour,

		Debug: getEnvAsBool("DEBUG", false),

		RedisURL:        getEnv("REDIS_URL", ""),
		LoginRateLimit:  getEnvAsInt("LOGIN_RATE_LIMIT", 5),
		LoginRateWindow: time.Duration(getEnvAsInt("LOGIN_RATE_WINDOW", 60)) * time.Second,
	}
}

// IsPostgres reports whether the configured database is Postgres rather
// than the default SQLite file.
func (c *Config) IsPostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgresql://")
}

// normalizeDatabaseURL rewrites Heroku-style postgres:// URLs to the
// postgresql:// scheme the driver expects.
func normalizeDatabaseURL(url string) string {
	if strings.HasPrefix(url, "postgres://") {
		return "postgresql://" + strings.TrimPrefix(url, "postgres://")
	}
	return url
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
