package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "LLM_PROVIDER", "HISTORY_CAPACITY", "GENERATION_TIMEOUT", "GENERATION_RETRIES", "TEMPERATURE", "LOG_LEVEL", "SESSION_TTL"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Port != "8090" {
		t.Errorf("expected port 8090, got %q", cfg.Port)
	}
	if cfg.LLMProvider != "anthropic" {
		t.Errorf("expected anthropic provider, got %q", cfg.LLMProvider)
	}
	if cfg.HistoryCapacity != 10 {
		t.Errorf("expected history capacity 10, got %d", cfg.HistoryCapacity)
	}
	if cfg.GenerationTimeout != 0 || cfg.GenerationRetries != 0 {
		t.Errorf("expected no timeout and no retries by default, got %v/%d", cfg.GenerationTimeout, cfg.GenerationRetries)
	}
	if cfg.Temperature != 0.7 {
		t.Errorf("expected temperature 0.7, got %v", cfg.Temperature)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("expected 24h session ttl, got %v", cfg.SessionTTL)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info level, got %v", cfg.LogLevel)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("HISTORY_CAPACITY", "3")
	t.Setenv("GENERATION_TIMEOUT", "90s")
	t.Setenv("GENERATION_RETRIES", "2")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TEMPERATURE", "0.2")

	cfg := Load()
	if cfg.LLMProvider != "openai" {
		t.Errorf("expected openai, got %q", cfg.LLMProvider)
	}
	if cfg.HistoryCapacity != 3 {
		t.Errorf("expected capacity 3, got %d", cfg.HistoryCapacity)
	}
	if cfg.GenerationTimeout != 90*time.Second || cfg.GenerationRetries != 2 {
		t.Errorf("unexpected generation policy %v/%d", cfg.GenerationTimeout, cfg.GenerationRetries)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.LogLevel)
	}
	if cfg.Temperature != 0.2 {
		t.Errorf("expected temperature 0.2, got %v", cfg.Temperature)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("HISTORY_CAPACITY", "-4")
	t.Setenv("GENERATION_RETRIES", "many")
	t.Setenv("GENERATION_TIMEOUT", "-1s")

	cfg := Load()
	if cfg.HistoryCapacity != 10 {
		t.Errorf("expected fallback capacity, got %d", cfg.HistoryCapacity)
	}
	if cfg.GenerationRetries != 0 || cfg.GenerationTimeout != 0 {
		t.Errorf("expected fallback generation policy, got %v/%d", cfg.GenerationTimeout, cfg.GenerationRetries)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic ok", Config{LLMProvider: "anthropic", AnthropicAPIKey: "k", Temperature: 0.7}, false},
		{"anthropic missing key", Config{LLMProvider: "anthropic"}, true},
		{"openai ok", Config{LLMProvider: "openai", OpenAIAPIKey: "k"}, false},
		{"openai missing key", Config{LLMProvider: "openai", AnthropicAPIKey: "k"}, true},
		{"unknown provider", Config{LLMProvider: "other", AnthropicAPIKey: "k"}, true},
		{"bad temperature", Config{LLMProvider: "anthropic", AnthropicAPIKey: "k", Temperature: 3}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
