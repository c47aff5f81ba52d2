// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Upstream award search API
	SearchURL      string
	TaxURL         string
	APIKey         string
	BearerTokens   []string
	UserAgents     []string
	FetchTimeout   time.Duration
	CurrencyCode   string
	ProgramRegion  string
	EmissionOrigin string

	// Dispatch queue
	QueueTick     time.Duration
	QueueCooldown time.Duration

	// Results
	DefaultMaxResults int

	// MongoDB
	MongoURI string
	MongoDB  string

	// PostgreSQL (region reference data)
	PostgresURI string

	// Redis (fetch cache)
	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	// Chat gateway
	NotifyEndpoint string
	NotifyToken    string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		SearchURL:      getEnv("SMILES_SEARCH_URL", "https://api-air-flightsearch-blue.smiles.com.br/v1/airlines/search"),
		TaxURL:         getEnv("SMILES_TAX_URL", "https://api-airlines-boarding-tax-blue.smiles.com.br/v1/airlines/flight/boardingtax"),
		APIKey:         getEnv("SMILES_API_KEY", ""),
		BearerTokens:   getEnvAsList("SMILES_BEARER_TOKENS", ""),
		UserAgents:     getEnvAsList("SEARCH_USER_AGENTS", defaultUserAgent),
		FetchTimeout:   time.Duration(getEnvAsInt("FETCH_TIMEOUT", 40)) * time.Second,
		CurrencyCode:   getEnv("CURRENCY_CODE", "ARS"),
		ProgramRegion:  getEnv("PROGRAM_REGION", "ar"),
		EmissionOrigin: getEnv("EMISSION_ORIGIN", "https://www.smiles.com.ar"),

		QueueTick:     time.Duration(getEnvAsInt("QUEUE_TICK_MS", 500)) * time.Millisecond,
		QueueCooldown: time.Duration(getEnvAsInt("QUEUE_COOLDOWN", 65)) * time.Second,

		DefaultMaxResults: getEnvAsInt("MAX_RESULTS", 10),

		MongoURI: getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "awardsearch"),

		PostgresURI: getEnv("POSTGRES_DSN", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		CacheTTL:      time.Duration(getEnvAsInt("CACHE_TTL", 300)) * time.Second,

		NotifyEndpoint: getEnv("NOTIFY_ENDPOINT", ""),
		NotifyToken:    getEnv("NOTIFY_TOKEN", ""),
	}

	return config, nil
}

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/116.0.0.0 Safari/537.36"

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}
