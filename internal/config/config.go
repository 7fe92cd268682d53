package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Config holds process configuration read from the environment. The
// behavior core never reads these directly; main constructs collaborators
// from them and injects handles.
type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	// Reasoning model
	LLMProvider     string
	ModelName       string
	OpenAIAPIKey    string
	AnthropicAPIKey string

	// Persistence
	MongoURL string
	DBName   string

	// Optional read cache; empty disables caching.
	RedisURL string
}

// Load reads configuration from environment variables with defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8001"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LLMProvider:     getEnv("LLM_PROVIDER", "openai"),
		ModelName:       getEnv("MODEL_NAME", "gpt-4o-mini"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		MongoURL:        getEnv("MONGO_URL", "mongodb://localhost:27017"),
		DBName:          getEnv("DB_NAME", "los_santos"),
		RedisURL:        os.Getenv("REDIS_URL"),
	}

	if cfg.MongoURL == "" {
		return nil, fmt.Errorf("MONGO_URL cannot be empty")
	}
	if cfg.DBName == "" {
		return nil, fmt.Errorf("DB_NAME cannot be empty")
	}
	return cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
