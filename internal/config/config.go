// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Config holds all application configuration.
type Config struct {
	// Server
	Port string

	// Security. APISecretKey is the shared secret the gateway sends in
	// X-Api-Key; requests carrying anything else are rejected.
	APISecretKey string `validate:"required"`

	// AI provider
	GeminiAPIKey string `validate:"required"`

	// Quota store. Empty means in-memory counters; any redis:// URL
	// switches to Redis-backed counters shared across instances.
	RedisURL string

	// Uploads
	MaxFileSizeMB int `validate:"gt=0"`

	// Logging
	LogLevel    string
	Development bool
}

// Load loads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8000"),
		APISecretKey:  os.Getenv("API_SECRET_KEY"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		RedisURL:      os.Getenv("REDIS_URL"),
		MaxFileSizeMB: getEnvInt("MAX_FILE_SIZE_MB", 5),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		Development:   getEnvBool("DEVELOPMENT", false),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// MaxFileSizeBytes returns the analysis upload limit in bytes.
func (c *Config) MaxFileSizeBytes() int {
	return c.MaxFileSizeMB * 1024 * 1024
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
