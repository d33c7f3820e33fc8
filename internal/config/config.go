package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	API     APIConfig
	Session SessionConfig
	Log     LogConfig
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SessionConfig struct {
	TTL  time.Duration
	File string
}

type LogConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	// Load .env if it exists (local dev), ignore if not
	_ = godotenv.Load()

	cfg := &Config{
		API: APIConfig{
			BaseURL: getEnv("HEALTH_API_URL", "http://localhost:8000/api"),
			Timeout: getEnvAsDuration("HEALTH_API_TIMEOUT", 10*time.Second),
		},
		Session: SessionConfig{
			TTL:  getEnvAsDuration("SESSION_TTL", 30*time.Minute),
			File: getEnv("SESSION_FILE", defaultSessionFile()),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "INFO"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	return cfg, nil
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".healthdash-session.json"
	}
	return filepath.Join(dir, "healthdash", "session.json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
