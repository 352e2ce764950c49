package generate

import (
	"fmt"
	"strings"

	"github.com/dgallion1/batnadoc/internal/config"
)

// Provider is a generator backed by a remote model.
type Provider interface {
	Generator
	Model() string
	LatencyStats() *LLMStats
	Close()
}

func (c *ClaudeClient) LatencyStats() *LLMStats { return c.Stats }

func (c *OpenAIClient) LatencyStats() *LLMStats { return c.Stats }

// FromConfig builds the provider selected by cfg.LLMProvider.
func FromConfig(cfg config.Config) (Provider, error) {
	switch strings.ToLower(cfg.LLMProvider) {
	case "", "anthropic", "claude":
		return NewClaudeClient(ClaudeConfig{
			APIKey:      cfg.AnthropicAPIKey,
			Model:       cfg.AnthropicModel,
			BaseURL:     cfg.AnthropicBaseURL,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
			Timeout:     cfg.GenerationTimeout,
		}), nil
	case "openai":
		c, err := NewOpenAIClient(OpenAIConfig{
			APIKey:      cfg.OpenAIAPIKey,
			BaseURL:     cfg.OpenAIBaseURL,
			Model:       cfg.OpenAIModel,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
			Timeout:     cfg.GenerationTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("openai provider: %w", err)
		}
		return c, nil
	}
	return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
}
