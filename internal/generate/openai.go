package generate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIClient generates through any OpenAI-compatible chat completion API.
type OpenAIClient struct {
	client      *openai.Client
	httpClient  *http.Client
	model       string
	maxTokens   int
	temperature float32

	Stats *LLMStats
}

// OpenAIConfig configures an OpenAIClient. BaseURL selects a compatible
// provider; empty means api.openai.com.
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

func NewOpenAIClient(cfg OpenAIConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 4096
	}

	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	httpClient := &http.Client{Timeout: cfg.Timeout}
	config.HTTPClient = httpClient

	return &OpenAIClient{
		client:      openai.NewClientWithConfig(config),
		httpClient:  httpClient,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: float32(cfg.Temperature),
		Stats:       NewLLMStats(time.Hour),
	}, nil
}

// Model returns the configured model name.
func (c *OpenAIClient) Model() string { return c.model }

// Close releases idle connections.
func (c *OpenAIClient) Close() {
	c.httpClient.CloseIdleConnections()
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (text string, err error) {
	start := time.Now()
	defer func() { c.Stats.Observe(time.Since(start), err) }()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && (apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= 500) {
			return "", &RetryableError{StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
		}
		return "", fmt.Errorf("openai api: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
