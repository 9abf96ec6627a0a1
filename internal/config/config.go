package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the environment driven configuration for the chat gateway.
type Config struct {
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"chat-gateway"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	EnableTracing   bool          `env:"ENABLE_TRACING" envDefault:"false"`
	OTLPEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	AccessKey       string `env:"ACCESS_KEY"`
	TokenSecret     string `env:"TOKEN_SECRET"`
	TokenTTLSeconds int    `env:"TOKEN_TTL_SECONDS" envDefault:"86400"`

	LLMProvider  string `env:"LLM_PROVIDER" envDefault:"gemini"`
	SystemPrompt string `env:"SYSTEM_PROMPT" envDefault:"You are a helpful assistant for a themed chat about cooking. Answer concisely and safely."`

	GeminiAPIKey  string `env:"GEMINI_API_KEY"`
	GeminiModel   string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`

	OpenRouterAPIKey  string `env:"OPENROUTER_API_KEY"`
	OpenRouterModel   string `env:"OPENROUTER_MODEL" envDefault:"openai/gpt-4.1-mini"`
	OpenRouterBaseURL string `env:"OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api"`

	DBPath          string        `env:"DB_PATH" envDefault:"data/chat.db"`
	ProviderTimeout time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"30s"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	if strings.TrimSpace(cfg.AccessKey) == "" {
		return nil, fmt.Errorf("ACCESS_KEY is required")
	}
	if strings.TrimSpace(cfg.TokenSecret) == "" {
		return nil, fmt.Errorf("TOKEN_SECRET is required")
	}
	if cfg.TokenTTLSeconds <= 0 {
		cfg.TokenTTLSeconds = 86400
	}
	if cfg.ProviderTimeout <= 0 {
		cfg.ProviderTimeout = 30 * time.Second
	}

	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// TokenTTL returns the token lifetime as a duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLSeconds) * time.Second
}
