package llm

import (
	"context"
	"errors"
	"io"
	"math"
	"math/rand"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"google.golang.org/genai"
)

// RetryConfig configures retry behavior.
type RetryConfig struct {
	MaxAttempts int
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
}

// DefaultRetryConfig returns sensible defaults for rate limit retries.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		BaseBackoff: 1 * time.Second,
		MaxBackoff:  20 * time.Second,
	}
}

// RetryProvider wraps a provider with automatic retry on transient errors.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WrapWithRetry wraps a provider with retry logic.
func WrapWithRetry(p Provider, config RetryConfig) Provider {
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}
	return &RetryProvider{inner: p, config: config}
}

func (r *RetryProvider) Name() string {
	return r.inner.Name()
}

// Unwrap returns the wrapped provider.
func (r *RetryProvider) Unwrap() Provider {
	return r.inner
}

// Stream retries the whole request when it fails with a transient error.
// Text already forwarded from a failed attempt is not retracted; an
// EventRetry tells consumers to reset any accumulated output.
func (r *RetryProvider) Stream(ctx context.Context, req Request) (Stream, error) {
	return newEventStream(ctx, func(ctx context.Context, events chan<- Event) error {
		var lastErr error

		for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
			stream, err := r.inner.Stream(ctx, req)
			if err == nil {
				err = r.forwardEvents(ctx, stream, events)
				if err == nil {
					return nil
				}
			}
			if !isRetryable(err) {
				return err
			}
			lastErr = err

			if ctx.Err() != nil {
				return ctx.Err()
			}
			if attempt >= r.config.MaxAttempts {
				break
			}

			wait := r.calculateBackoff(attempt, lastErr)
			if err := send(ctx, events, Event{
				Type:             EventRetry,
				RetryAttempt:     attempt,
				RetryMaxAttempts: r.config.MaxAttempts,
				RetryWaitSecs:    wait.Seconds(),
			}); err != nil {
				return err
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}

		return lastErr
	}), nil
}

// forwardEvents reads events from the inner stream and forwards them.
func (r *RetryProvider) forwardEvents(ctx context.Context, stream Stream, events chan<- Event) error {
	defer stream.Close()

	for {
		event, err := stream.Recv()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if event.Type == EventError && event.Err != nil {
			return event.Err
		}
		if err := send(ctx, events, event); err != nil {
			return err
		}
	}
}

// isRetryable returns true if the error is a transient error worth retrying.
func isRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, ErrNoAPIKey) {
		return false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
		return false
	}

	errStr := strings.ToLower(err.Error())
	for _, marker := range []string{
		"429", "rate limit", "too many requests", "resource_exhausted",
		"502", "bad gateway", "503", "service unavailable", "overloaded",
		"connection refused", "connection reset", "timeout", "deadline exceeded",
		"temporary failure", "no such host",
	} {
		if strings.Contains(errStr, marker) {
			return true
		}
	}
	return false
}

// retryAfterRegex matches Retry-After values in error messages.
var retryAfterRegex = regexp.MustCompile(`(?i)retry[- ]?after[:\s]+(\d+)`)

// calculateBackoff computes the wait duration for a retry attempt.
func (r *RetryProvider) calculateBackoff(attempt int, err error) time.Duration {
	if err != nil {
		if matches := retryAfterRegex.FindStringSubmatch(err.Error()); len(matches) > 1 {
			if secs, parseErr := strconv.Atoi(matches[1]); parseErr == nil && secs > 0 {
				return min(time.Duration(secs)*time.Second, r.config.MaxBackoff)
			}
		}
	}

	// Exponential backoff: base * 2^(attempt-1), +/- 25% jitter
	backoff := float64(r.config.BaseBackoff) * math.Pow(2, float64(attempt-1))
	backoff += (rand.Float64() - 0.5) * 0.5 * backoff
	if backoff > float64(r.config.MaxBackoff) {
		backoff = float64(r.config.MaxBackoff)
	}
	return time.Duration(backoff)
}
