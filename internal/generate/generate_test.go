package generate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/batnadoc/internal/config"
)

func claudeServer(t *testing.T, handler http.HandlerFunc) *ClaudeClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClaudeClient(ClaudeConfig{APIKey: "test-key", Model: "test-model", BaseURL: srv.URL, Temperature: 0.7})
}

func TestClaudeClient_Generate(t *testing.T) {
	var got anthropicRequest
	c := claudeServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"content":[{"type":"text","text":"1. EXECUTIVE SUMMARY"},{"type":"text","text":"\n\nBody."}]}`))
	})

	text, err := c.Generate(context.Background(), "the prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "1. EXECUTIVE SUMMARY\n\nBody." {
		t.Errorf("unexpected text %q", text)
	}
	if got.Model != "test-model" || got.MaxTokens != 4096 || got.Temperature != 0.7 {
		t.Errorf("unexpected request %+v", got)
	}
	if len(got.Messages) != 1 || got.Messages[0].Content != "the prompt" || got.Messages[0].Role != "user" {
		t.Errorf("unexpected messages %+v", got.Messages)
	}
	if c.LatencyStats().Snapshot().Count != 1 {
		t.Error("expected call to be recorded in stats")
	}
}

func TestClaudeClient_RetryableStatus(t *testing.T) {
	c := claudeServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"type":"rate_limit_error","message":"slow down"}}`))
	})
	_, err := c.Generate(context.Background(), "p")
	if !IsRetryable(err) {
		t.Fatalf("expected retryable error, got %v", err)
	}
	if c.LatencyStats().Snapshot().Failures != 1 {
		t.Error("expected failure to be recorded in stats")
	}
}

func TestClaudeClient_ClientError(t *testing.T) {
	c := claudeServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"type":"authentication_error","message":"bad key"}}`))
	})
	_, err := c.Generate(context.Background(), "p")
	if err == nil || IsRetryable(err) {
		t.Fatalf("expected non-retryable error, got %v", err)
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("expected status in error, got %v", err)
	}
}

func TestClaudeClient_ErrorBody(t *testing.T) {
	c := claudeServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"type":"overloaded_error","message":"busy"}}`))
	})
	if _, err := c.Generate(context.Background(), "p"); err == nil || !strings.Contains(err.Error(), "overloaded_error") {
		t.Fatalf("expected claude error, got %v", err)
	}
}

func TestClaudeClient_ContextCancelled(t *testing.T) {
	done := make(chan struct{})
	c := claudeServer(t, func(w http.ResponseWriter, r *http.Request) {
		// The request context is only cancelled on hang-up once the body
		// has been consumed.
		io.Copy(io.Discard, r.Body)
		select {
		case <-r.Context().Done():
		case <-done:
		}
	})
	// Runs before the server's Close cleanup.
	t.Cleanup(func() { close(done) })
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := c.Generate(ctx, "p"); err == nil {
		t.Fatal("expected error when context expires")
	}
}

func TestRetrying_RetriesTransientErrors(t *testing.T) {
	calls := 0
	g := Func(func(ctx context.Context, prompt string) (string, error) {
		calls++
		if calls < 3 {
			return "", &RetryableError{StatusCode: 503}
		}
		return "done", nil
	})
	r := &Retrying{Next: g, Retries: 2, backoff: func(int) time.Duration { return 0 }}

	text, err := r.Generate(context.Background(), "p")
	if err != nil || text != "done" {
		t.Fatalf("expected success after retries, got %q, %v", text, err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestRetrying_GivesUp(t *testing.T) {
	calls := 0
	g := Func(func(ctx context.Context, prompt string) (string, error) {
		calls++
		return "", &RetryableError{StatusCode: 500}
	})
	r := &Retrying{Next: g, Retries: 1, backoff: func(int) time.Duration { return 0 }}
	if _, err := r.Generate(context.Background(), "p"); !IsRetryable(err) {
		t.Fatalf("expected last retryable error, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}

func TestRetrying_PermanentErrorNotRetried(t *testing.T) {
	calls := 0
	permanent := errors.New("quota exceeded")
	g := Func(func(ctx context.Context, prompt string) (string, error) {
		calls++
		return "", permanent
	})
	r := &Retrying{Next: g, Retries: 3, backoff: func(int) time.Duration { return 0 }}
	if _, err := r.Generate(context.Background(), "p"); !errors.Is(err, permanent) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestWithRetries_ZeroIsPassthrough(t *testing.T) {
	g := Func(func(ctx context.Context, prompt string) (string, error) { return "x", nil })
	if _, ok := WithRetries(g, 0, nil).(Func); !ok {
		t.Error("expected generator returned unchanged for zero retries")
	}
}

func TestBackoff_Bounds(t *testing.T) {
	for attempt := 0; attempt < 8; attempt++ {
		d := Backoff(attempt)
		if d < time.Second || d > 45*time.Second {
			t.Errorf("attempt %d: backoff %v out of range", attempt, d)
		}
	}
}

func TestFromConfig(t *testing.T) {
	p, err := FromConfig(config.Config{LLMProvider: "anthropic", AnthropicModel: "m1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*ClaudeClient); !ok || p.Model() != "m1" {
		t.Errorf("expected claude client for m1, got %T %q", p, p.Model())
	}

	p, err = FromConfig(config.Config{LLMProvider: "openai", OpenAIAPIKey: "k", OpenAIModel: "gpt-x"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*OpenAIClient); !ok || p.Model() != "gpt-x" {
		t.Errorf("expected openai client for gpt-x, got %T", p)
	}

	if _, err := FromConfig(config.Config{LLMProvider: "openai"}); err == nil {
		t.Error("expected error without openai key")
	}
	if _, err := FromConfig(config.Config{LLMProvider: "mystery"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}
