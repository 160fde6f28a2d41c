package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Valuation ValuationConfig
	PriceFeed PriceFeedConfig
	Secrets   SecretsConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// ValuationConfig holds valuation engine policy settings.
// FiatCodes are excluded from crypto variation processing.
type ValuationConfig struct {
	FiatCodes []string
}

// PriceFeedConfig holds the coin price feed client settings.
// SyncSchedule is a cron expression for the daily quote sync job.
type PriceFeedConfig struct {
	BaseURL      string
	QuoteAsset   string
	SyncSchedule string
}

// SecretsConfig holds encryption key material.
// FernetKey encrypts exchange API credentials at rest.
type SecretsConfig struct {
	FernetKey string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/painel.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Valuation: ValuationConfig{
			FiatCodes: splitList(getEnv("FIAT_CODES", "USD,BRL")),
		},
		PriceFeed: PriceFeedConfig{
			BaseURL:      getEnv("PRICE_FEED_URL", "https://api.coingecko.com/api/v3"),
			QuoteAsset:   getEnv("PRICE_FEED_QUOTE", "usd"),
			SyncSchedule: getEnv("PRICE_SYNC_SCHEDULE", "0 1 * * *"),
		},
		Secrets: SecretsConfig{
			FernetKey: os.Getenv("FERNET_KEY"),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// splitList splits a comma-separated environment value into trimmed entries.
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
