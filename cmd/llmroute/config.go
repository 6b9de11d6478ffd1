package main

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	ai "github.com/secondbrainhq/llmrouter"
)

// Config holds process configuration loaded from environment
// variables.
type Config struct {
	// OpenRouterKey authenticates against OpenRouter. OpenAIKey is the
	// fallback credential, matching the older scripts.
	OpenRouterKey string `env:"OPENROUTER_API_KEY"`
	OpenAIKey     string `env:"OPENAI_API_KEY"`

	BaseURL string        `env:"LLMROUTE_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	QuotaDB string        `env:"LLMROUTE_QUOTA_DB" envDefault:"quota_tracker.db"`
	Timeout time.Duration `env:"LLMROUTE_TIMEOUT" envDefault:"60s"`
}

// loadConfig reads .env files if present, then parses the environment.
func loadConfig() (*Config, error) {
	godotenv.Load()
	godotenv.Load(".env.backup")

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// APIKey returns the credential to use, preferring OpenRouter. A
// missing key is a fatal configuration error, reported before any
// network attempt.
func (c *Config) APIKey() (string, error) {
	if c.OpenRouterKey != "" {
		return c.OpenRouterKey, nil
	}
	if c.OpenAIKey != "" {
		return c.OpenAIKey, nil
	}
	return "", ai.NewConfigError("OPENROUTER_API_KEY environment variable not set")
}
