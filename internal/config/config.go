// Package config provides configuration management for the bookkeeping
// service. It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Defaults applied when the environment is silent.
const (
	DefaultPort   = "8093"
	DefaultDBPath = "./data/bookkeeping.db"
)

// Config represents the application configuration.
type Config struct {
	// Port the HTTP server listens on.
	Port string
	// DBPath is the SQLite database file.
	DBPath string
	// ChartPath is an optional YAML chart of accounts seeded at startup.
	ChartPath string
	// LargeEntryThreshold flags entry deletions above this amount.
	// Zero selects the engine default.
	LargeEntryThreshold float64
	Debug               bool
}

// Load loads configuration from environment variables. It automatically
// loads a .env file from the current directory if available; a custom path
// can be given instead.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Ignore a missing .env; plain environment variables still apply.
		_ = godotenv.Load()
	}

	threshold, err := parseFloatEnv("LARGE_ENTRY_THRESHOLD", 0)
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:                getEnvOrDefault("PORT", DefaultPort),
		DBPath:              getEnvOrDefault("DB_PATH", DefaultDBPath),
		ChartPath:           os.Getenv("CHART_PATH"),
		LargeEntryThreshold: threshold,
		Debug:               os.Getenv("DEBUG") == "true",
	}, nil
}

// getEnvOrDefault returns the environment variable or a default when unset.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseFloatEnv parses a float64 environment variable, returning
// defaultValue when it is unset.
func parseFloatEnv(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric value for %s: %s", key, value)
	}
	return parsed, nil
}
