package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	// Auth for /api routes; empty disables it.
	APIKey string

	// Generation
	LLMProvider       string
	AnthropicAPIKey   string
	AnthropicModel    string
	AnthropicBaseURL  string
	OpenAIAPIKey      string
	OpenAIModel       string
	OpenAIBaseURL     string
	MaxTokens         int
	Temperature       float64
	GenerationTimeout time.Duration // 0 means no deadline
	GenerationRetries int

	// Prompt templates
	PromptTemplates string
	PromptVersion   string

	// Sessions
	HistoryCapacity int
	SessionTTL      time.Duration

	// Export
	DocumentTitle string
	PDFFontPath   string

	LogLevel slog.Level
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("BATNA_API_KEY"),

		LLMProvider:       strings.ToLower(envOr("LLM_PROVIDER", "anthropic")),
		AnthropicAPIKey:   os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:    envOr("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),
		AnthropicBaseURL:  os.Getenv("ANTHROPIC_BASE_URL"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:       envOr("OPENAI_MODEL", "gpt-4o"),
		OpenAIBaseURL:     os.Getenv("OPENAI_BASE_URL"),
		MaxTokens:         envInt("MAX_TOKENS", 4096),
		Temperature:       envFloat("TEMPERATURE", 0.7),
		GenerationTimeout: envDuration("GENERATION_TIMEOUT", 0),
		GenerationRetries: envInt("GENERATION_RETRIES", 0),

		PromptTemplates: os.Getenv("PROMPT_TEMPLATES"),
		PromptVersion:   os.Getenv("PROMPT_VERSION"),

		HistoryCapacity: envInt("HISTORY_CAPACITY", 10),
		SessionTTL:      envDuration("SESSION_TTL", 24*time.Hour),

		DocumentTitle: envOr("DOCUMENT_TITLE", "BATNA Document"),
		PDFFontPath:   os.Getenv("PDF_FONT_PATH"),

		LogLevel: envLevel("LOG_LEVEL", slog.LevelInfo),
	}

	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 4096
	}
	if cfg.GenerationTimeout < 0 {
		cfg.GenerationTimeout = 0
	}
	if cfg.GenerationRetries < 0 {
		cfg.GenerationRetries = 0
	}
	if cfg.HistoryCapacity <= 0 {
		cfg.HistoryCapacity = 10
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	switch c.LLMProvider {
	case "anthropic", "claude":
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required")
		}
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required")
		}
	default:
		return fmt.Errorf("LLM_PROVIDER must be anthropic or openai, got %q", c.LLMProvider)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("TEMPERATURE must be between 0 and 2")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envLevel(key string, fallback slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(v)); err == nil {
			return l
		}
	}
	return fallback
}
