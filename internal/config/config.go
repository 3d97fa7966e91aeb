package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string

	// Document store configuration
	StoreURL        string // base URL of the path-addressed JSON document store, no trailing slash
	IdentityURL     string // identity provider REST endpoint
	WebAPIKey       string // identity provider API key
	UpstreamTimeout time.Duration

	// Blob store configuration
	BlobBucket        string
	BlobRegion        string
	BlobEndpoint      string // optional custom endpoint (local S3-compatible backends)
	BlobPublicBaseURL string // optional; derived from bucket+region when empty
	BlobAccessKey     string
	BlobSecretKey     string
	PresignTTL        time.Duration

	// Session configuration
	SessionIdle time.Duration

	// Analytics configuration
	WindowMonths    int
	ForecastHorizon int
	TopScenes       int

	// Scene directory configuration
	MainBuilding string
}

// Load loads configuration from environment variables.
// In development a .env file is honored when present.
func Load() (*Config, error) {
	if getEnv("GO_ENV", "development") == "development" {
		// a missing .env is fine, plain env vars still apply
		_ = godotenv.Load()
	}

	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		StoreURL:          trimTrailingSlash(getEnv("STORE_URL", "")),
		IdentityURL:       trimTrailingSlash(getEnv("IDENTITY_URL", "https://identitytoolkit.googleapis.com/v1")),
		WebAPIKey:         getEnv("WEB_API_KEY", ""),
		UpstreamTimeout:   time.Duration(getEnvAsInt("UPSTREAM_TIMEOUT_SECONDS", 10)) * time.Second,
		BlobBucket:        getEnv("BLOB_BUCKET", ""),
		BlobRegion:        getEnv("BLOB_REGION", ""),
		BlobEndpoint:      getEnv("BLOB_ENDPOINT", ""),
		BlobPublicBaseURL: trimTrailingSlash(getEnv("BLOB_PUBLIC_BASE_URL", "")),
		BlobAccessKey:     getEnv("BLOB_ACCESS_KEY", ""),
		BlobSecretKey:     getEnv("BLOB_SECRET_KEY", ""),
		PresignTTL:        time.Duration(getEnvAsInt("PRESIGN_TTL_MINUTES", 10)) * time.Minute,
		SessionIdle:       time.Duration(getEnvAsInt("SESSION_IDLE_HOURS", 2)) * time.Hour,
		WindowMonths:      getEnvAsInt("ANALYTICS_WINDOW_MONTHS", 6),
		ForecastHorizon:   getEnvAsInt("ANALYTICS_FORECAST_MONTHS", 3),
		TopScenes:         getEnvAsInt("ANALYTICS_TOP_SCENES", 5),
		MainBuilding:      getEnv("MAIN_BUILDING", "Campus"),
	}

	// Validate required fields
	if cfg.StoreURL == "" {
		return nil, fmt.Errorf("STORE_URL is required")
	}
	if cfg.WebAPIKey == "" {
		return nil, fmt.Errorf("WEB_API_KEY is required")
	}
	if cfg.BlobBucket == "" {
		return nil, fmt.Errorf("BLOB_BUCKET is required")
	}
	if cfg.WindowMonths < 1 {
		return nil, fmt.Errorf("ANALYTICS_WINDOW_MONTHS must be at least 1")
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func trimTrailingSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
