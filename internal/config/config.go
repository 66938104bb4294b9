package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	CORSOrigins string
	TablePrefix string
	// Auth
	AuthSecret string
	TokenTTL   time.Duration
	// AI integrations
	OpenAIAPIKey     string
	OpenAIModel      string
	ElevenLabsAPIKey string
	AudioDir         string
	// Moderation scan intervals
	SermonScanInterval time.Duration
	PrayerScanInterval time.Duration
	// Logging
	LogDir      string
	LogMaxFiles int
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		DatabaseURL: getEnv("DATABASE_URL", ""),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix: getTablePrefix(env),
		AuthSecret:  getEnv("AUTH_SECRET", ""),
		TokenTTL:    getDuration("TOKEN_TTL", 24*time.Hour),
		// AI integrations
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:      getEnv("OPENAI_MODEL", "gpt-4o"),
		ElevenLabsAPIKey: getEnv("ELEVENLABS_API_KEY", ""),
		AudioDir:         getEnv("AUDIO_DIR", "public/audio"),
		// Moderation scans
		SermonScanInterval: getDuration("SERMON_SCAN_INTERVAL", 12*time.Hour),
		PrayerScanInterval: getDuration("PRAYER_SCAN_INTERVAL", 6*time.Hour),
		// Logging
		LogDir:      getEnv("LOG_DIR", ""),
		LogMaxFiles: getInt("LOG_MAX_FILES", 7),
	}
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
