// Package config loads application settings from the environment,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/mahideveloper1/Video-editor-assignment/internal/timeline"
)

// Config holds every tunable the server and CLI read.
type Config struct {
	Host string
	Port int

	// LLM oracle
	Provider     string // "openai", "anthropic", or "gemini"
	Model        string
	OpenAIKey    string
	AnthropicKey string
	GeminiKey    string

	// Storage
	UploadDir string
	OutputDir string

	// Sessions
	SessionTTL time.Duration
	RedisAddr  string // empty selects the in-memory store
	RedisDB    int

	// Silence detection
	NoiseThreshold     string
	MinSilenceDuration float64

	DefaultStyle timeline.Style
}

// Load reads configuration from the environment. A .env file in the
// working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Host: getenv("HOST", "0.0.0.0"),
		Port: getenvInt("PORT", 8000),

		Provider:     getenv("LLM_PROVIDER", "openai"),
		Model:        os.Getenv("LLM_MODEL"),
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		GeminiKey:    os.Getenv("GEMINI_API_KEY"),

		UploadDir: getenv("UPLOAD_DIR", "uploads"),
		OutputDir: getenv("OUTPUT_DIR", "outputs"),

		SessionTTL: time.Duration(getenvInt("SESSION_TTL", 3600)) * time.Second,
		RedisAddr:  os.Getenv("REDIS_ADDR"),
		RedisDB:    getenvInt("REDIS_DB", 0),

		NoiseThreshold:     getenv("SILENCE_NOISE_THRESHOLD", "-30dB"),
		MinSilenceDuration: getenvFloat("SILENCE_MIN_DURATION", 1.0),

		DefaultStyle: timeline.Style{
			FontFamily: getenv("DEFAULT_FONT_FAMILY", "Arial"),
			FontSize:   getenvInt("DEFAULT_FONT_SIZE", 32),
			FontColor:  getenv("DEFAULT_FONT_COLOR", "white"),
			Position:   timeline.Position(getenv("DEFAULT_SUBTITLE_POSITION", "bottom")),
		},
	}

	for _, dir := range []string{cfg.UploadDir, cfg.OutputDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return cfg, nil
}

// APIKey returns the key matching the configured provider.
func (c *Config) APIKey() string {
	switch c.Provider {
	case "anthropic":
		return c.AnthropicKey
	case "gemini", "google":
		return c.GeminiKey
	default:
		return c.OpenAIKey
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getenvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
