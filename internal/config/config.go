package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	// Server
	HTTPAddr string
	LogLevel string

	// Database
	DatabaseURL string

	// Gemini API
	GeminiAPIKey         string
	GeminiModelText      string // text generation, e.g. gemini-2.5-flash
	GeminiModelImage     string // high-quality image generation, e.g. gemini-3-pro-image-preview
	GeminiModelImageFast string // fast image generation, e.g. gemini-2.5-flash-image

	// Upstream retry (quota/rate-limit failures only)
	LLMMaxRetries     int
	LLMRetryBaseDelay time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		GeminiAPIKey:         getEnv("GEMINI_API_KEY", ""),
		GeminiModelText:      getEnv("GEMINI_MODEL_TEXT", "gemini-2.5-flash"),
		GeminiModelImage:     getEnv("GEMINI_MODEL_IMAGE", "gemini-3-pro-image-preview"),
		GeminiModelImageFast: getEnv("GEMINI_MODEL_IMAGE_FAST", "gemini-2.5-flash-image"),

		LLMMaxRetries:     getEnvInt("LLM_MAX_RETRIES", 3),
		LLMRetryBaseDelay: getEnvDuration("LLM_RETRY_BASE_DELAY", 2*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
