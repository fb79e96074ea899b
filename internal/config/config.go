package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/acework2u/ai-smart-plants/internal/logger"
)

type Config struct {
	HTTPPort     string
	GeminiAPIKey string
	OpenAIAPIKey string
	MockAnalysis bool
	Storage      StorageConfig
	DB           DBConfig
	Redis        RedisConfig
	Logger       LoggerConfig
}

// StorageConfig selects the snapshot persistence backend.
type StorageConfig struct {
	Backend string // "postgres", "redis" or "memory"
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Host string
	Port string
}

type LoggerConfig struct {
	Level      logger.LogLevel
	OutputPath string
	Format     string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return logger.LevelDebug
	case "info":
		return logger.LevelInfo
	case "warn", "warning":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

func parseBool(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:     getEnvOrDefault("HTTP_PORT", "8080"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		MockAnalysis: parseBool(getEnvOrDefault("MOCK_ANALYSIS", "true")),
		Storage: StorageConfig{
			Backend: strings.ToLower(getEnvOrDefault("STORAGE_BACKEND", "memory")),
		},
		DB: DBConfig{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: getEnvOrDefault("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrDefault("DB_NAME", "smart_plants"),
		},
		Redis: RedisConfig{
			Host: getEnvOrDefault("REDIS_HOST", "localhost"),
			Port: getEnvOrDefault("REDIS_PORT", "6379"),
		},
		Logger: LoggerConfig{
			Level:      parseLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "stdout"),
			Format:     getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}

	switch cfg.Storage.Backend {
	case "postgres", "redis", "memory":
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	if !cfg.MockAnalysis && cfg.GeminiAPIKey == "" && cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("real analysis requires GEMINI_API_KEY or OPENAI_API_KEY")
	}

	return cfg, nil
}
