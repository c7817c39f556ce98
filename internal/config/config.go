package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultTextModel  = "gemini-2.5-flash"
	DefaultImageModel = "imagen-3.0-generate-002"
	DefaultLogFile    = ".quill/quill.log"
)

// Config is the process configuration read from the environment
type Config struct {
	AI  AIConfig
	Log LogConfig
}

type AIConfig struct {
	APIKey     string
	TextModel  string
	ImageModel string
	CacheSize  int
}

type LogConfig struct {
	File  string
	Debug bool
}

// Load reads .env when present, then the environment
func Load() *Config {
	// A missing .env is normal; the environment alone is enough.
	_ = godotenv.Load()

	return &Config{
		AI: AIConfig{
			APIKey:     APIKey(),
			TextModel:  getEnv("QUILL_TEXT_MODEL", DefaultTextModel),
			ImageModel: getEnv("QUILL_IMAGE_MODEL", DefaultImageModel),
			CacheSize:  getEnvAsInt("QUILL_AI_CACHE_SIZE", 128),
		},
		Log: LogConfig{
			File:  getEnv("QUILL_LOG_FILE", DefaultLogFile),
			Debug: getEnvAsBool("QUILL_DEBUG", false),
		},
	}
}

// APIKey returns the Gemini key. The .env file is read again on every
// call and wins over the environment, so a key fixed while the editor runs
// is picked up by the next reauthorization.
func APIKey() string {
	if env, err := godotenv.Read(); err == nil {
		if v := strings.TrimSpace(env["GEMINI_API_KEY"]); v != "" {
			return v
		}
	}
	if v := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); v != "" {
		return v
	}
	return strings.TrimSpace(os.Getenv("GOOGLE_API_KEY"))
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}
