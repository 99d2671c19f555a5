package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application.
// The values are loaded from environment variables once at startup and the
// struct is passed explicitly to every constructor that needs it.
type AppConfig struct {
	// Core settings
	Port         string
	DatabasePath string
	LogLevel     string

	// Market data (Finnhub-compatible) settings
	FinnhubAPIKey     string
	MarketDataBaseURL string
	UpstreamTimeout   time.Duration

	// AI analysis settings
	GeminiAPIKey string

	// Frontend URL for CORS
	FrontendBaseURL string
}

// DefaultMode returns the mode a request runs in when the caller does not ask
// for one explicitly: REAL only when both live API keys are configured,
// mirroring the env detection the frontend performs at startup.
func (c *AppConfig) DefaultMode() string {
	if c.FinnhubAPIKey != "" && c.GeminiAPIKey != "" {
		return "REAL"
	}
	return "MOCK"
}

// LoadConfig loads configuration from environment variables or a .env file.
// It centralizes all configuration logic for the application.
func LoadConfig() *AppConfig {
	// 1. Try loading from the current directory (standard behavior)
	errEnv := godotenv.Load()

	// 2. If not found, try loading from the parent directory (common when running from /backend)
	if errEnv != nil {
		errEnv = godotenv.Load("../.env")
	}

	if errEnv != nil {
		if os.IsNotExist(errEnv) {
			log.Println("Info: No .env file found in current or parent directory. Relying on OS environment variables (expected in production).")
		} else {
			log.Printf("Warning: Error loading .env file: %v. Relying on OS environment variables.", errEnv)
		}
	} else {
		log.Println(".env file loaded successfully.")
	}

	log.Println("Loading application configuration...")

	cfg := &AppConfig{
		// Core
		Port:         getEnv("PORT", "8080"),
		DatabasePath: getEnv("DATABASE_PATH", "./alphatrade.db"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),

		// Market data
		FinnhubAPIKey:     getEnv("FINNHUB_API_KEY", ""),
		MarketDataBaseURL: getEnv("MARKET_DATA_BASE_URL", "https://finnhub.io/api/v1"),
		UpstreamTimeout:   getEnvAsDuration("UPSTREAM_TIMEOUT", 10*time.Second),

		// AI analysis
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),

		// Frontend
		FrontendBaseURL: getEnv("APP_BASE_URL", "http://localhost:3000"),
	}

	log.Printf("Configuration loaded: Port=%s, LogLevel=%s, DBPath=%s, DefaultMode=%s",
		cfg.Port, cfg.LogLevel, cfg.DatabasePath, cfg.DefaultMode())
	return cfg
}

// getEnv retrieves an environment variable or returns a fallback value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvAsDuration retrieves an environment variable as a time.Duration or returns a fallback.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("Invalid duration value for %s ('%s'), using default: %s", key, valueStr, fallback)
	return fallback
}
