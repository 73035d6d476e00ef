package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// App
	AppName string

	// Gemini assistant
	GeminiAPIKey     string
	GeminiModel      string
	GeminiBaseURL    string
	AssistantTimeout time.Duration

	// Simulated seller reply
	ReplyDelay time.Duration

	// Image analysis preprocessing
	ImageMaxDimension int
	ImageMaxSizeMB    int
}

// Load configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file, ignoring errors if it doesn't exist
	godotenv.Load()

	cfg := &Config{}

	var err error

	// Helper function to get env var or default
	getEnv := func(key, defaultValue string) string {
		if value, exists := os.LookupEnv(key); exists {
			return value
		}
		return defaultValue
	}

	// Helper function to get required env var
	getRequiredEnv := func(key string) (string, error) {
		value, exists := os.LookupEnv(key)
		if !exists {
			return "", fmt.Errorf("missing required environment variable: %s", key)
		}
		return value, nil
	}

	cfg.AppName = getEnv("APP_NAME", "CampusConnect NG")
	cfg.GeminiAPIKey, err = getRequiredEnv("GEMINI_API_KEY")
	if err != nil {
		return nil, err
	}
	cfg.GeminiModel = getEnv("GEMINI_MODEL", "gemini-2.5-flash")
	cfg.GeminiBaseURL = getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com")

	assistantTimeoutSeconds, err := strconv.ParseInt(getEnv("GEMINI_TIMEOUT_SECONDS", "30"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid GEMINI_TIMEOUT_SECONDS: %w", err)
	}
	cfg.AssistantTimeout = time.Duration(assistantTimeoutSeconds) * time.Second

	replyDelayMs, err := strconv.ParseInt(getEnv("REPLY_DELAY_MS", "1500"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid REPLY_DELAY_MS: %w", err)
	}
	cfg.ReplyDelay = time.Duration(replyDelayMs) * time.Millisecond

	cfg.ImageMaxDimension, err = strconv.Atoi(getEnv("IMAGE_MAX_DIMENSION", "2048"))
	if err != nil {
		return nil, fmt.Errorf("invalid IMAGE_MAX_DIMENSION: %w", err)
	}

	cfg.ImageMaxSizeMB, err = strconv.Atoi(getEnv("IMAGE_MAX_SIZE_MB", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid IMAGE_MAX_SIZE_MB: %w", err)
	}

	return cfg, nil
}
