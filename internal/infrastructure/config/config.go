// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
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

	// MongoDB (booking alert store)
	MongoURI string
	MongoDB  string

	// PostgreSQL (subscription store)
	PostgresURI string

	// Gmail
	GmailClientID     string
	GmailClientSecret string
	GmailRefreshToken string

	// Sync
	SyncInterval     time.Duration
	LookbackDays     int
	DeepLookbackDays int
	RetryDelay       time.Duration
	FetchChunkSize   int
	CacheTTL         time.Duration

	// Push relay
	PushServiceURL string
	PushToken      string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		MongoURI: getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "courtcast"),

		PostgresURI: getEnv("POSTGRES_DSN", ""),

		GmailClientID:     getEnv("GMAIL_CLIENT_ID", ""),
		GmailClientSecret: getEnv("GMAIL_CLIENT_SECRET", ""),
		GmailRefreshToken: getEnv("GMAIL_REFRESH_TOKEN", ""),

		SyncInterval:     time.Duration(getEnvAsInt("SYNC_INTERVAL", 300)) * time.Second,
		LookbackDays:     getEnvAsInt("LOOKBACK_DAYS", 2),
		DeepLookbackDays: getEnvAsInt("DEEP_LOOKBACK_DAYS", 30),
		RetryDelay:       time.Duration(getEnvAsInt("RETRY_DELAY", 20)) * time.Second,
		FetchChunkSize:   getEnvAsInt("FETCH_CHUNK_SIZE", 20),
		CacheTTL:         time.Duration(getEnvAsInt("CACHE_TTL", 30)) * time.Second,

		PushServiceURL: getEnv("PUSH_SERVICE_URL", ""),
		PushToken:      getEnv("PUSH_TOKEN", ""),
	}

	return config, nil
}

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
