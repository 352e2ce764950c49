package generate

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"
)

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var retryErr *RetryableError
	return errors.As(err, &retryErr)
}

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}

// Retrying retries transient failures of the wrapped generator. Retries is
// the number of extra attempts; zero calls the generator once.
type Retrying struct {
	Next    Generator
	Retries int
	Log     *slog.Logger

	backoff func(int) time.Duration
}

// WithRetries wraps g so retryable errors are attempted up to retries more
// times. It returns g unchanged when retries is not positive.
func WithRetries(g Generator, retries int, log *slog.Logger) Generator {
	if retries <= 0 {
		return g
	}
	return &Retrying{Next: g, Retries: retries, Log: log}
}

func (r *Retrying) Generate(ctx context.Context, prompt string) (string, error) {
	backoff := r.backoff
	if backoff == nil {
		backoff = Backoff
	}

	var lastErr error
	for attempt := 0; attempt <= r.Retries; attempt++ {
		text, err := r.Next.Generate(ctx, prompt)
		if err == nil || !IsRetryable(err) {
			return text, err
		}
		lastErr = err
		if attempt == r.Retries {
			break
		}
		if r.Log != nil {
			r.Log.Warn("retryable generation error", "attempt", attempt, "error", err)
		}
		select {
		case <-time.After(backoff(attempt)):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "", lastErr
}
