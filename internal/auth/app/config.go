package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	JWTSecret string // Required: base64-encoded HMAC-SHA-512 signing key (>= 64 decoded bytes)

	AccessTokenValidity  time.Duration // Optional: access credential lifetime (default: 30m)
	RefreshTokenValidity time.Duration // Optional: refresh credential lifetime (default: 7d)

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./auth.db)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		JWTSecret:            os.Getenv("AUTH_JWT_SECRET"),
		AccessTokenValidity:  getEnvDurationOrDefault("AUTH_ACCESS_TOKEN_VALIDITY", 30*time.Minute),
		RefreshTokenValidity: getEnvDurationOrDefault("AUTH_REFRESH_TOKEN_VALIDITY", 7*24*time.Hour),
		DatabaseFile:         getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer seconds, matching the original property files
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
