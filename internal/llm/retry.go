package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// RetryConfig configures RetryGenerator.
type RetryConfig struct {
	MaxRetries int           // 0 disables retries
	RetryDelay time.Duration // first backoff step
	MaxDelay   time.Duration // backoff cap
	Timeout    time.Duration // per attempt, 0 means none
}

// RetryGenerator adds per-attempt timeouts and exponential backoff to a
// Generator. Only transient failures are retried.
type RetryGenerator struct {
	inner  Generator
	config RetryConfig
}

// NewRetryGenerator wraps inner.
func NewRetryGenerator(inner Generator, cfg RetryConfig) *RetryGenerator {
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 200 * time.Millisecond
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = 5 * time.Second
	}
	return &RetryGenerator{inner: inner, config: cfg}
}

func (r *RetryGenerator) Name() string  { return r.inner.Name() }
func (r *RetryGenerator) Model() string { return r.inner.Model() }

// Generate implements Generator.
func (r *RetryGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(r.backoff(attempt)):
			}
		}

		attemptCtx, cancel := ctx, context.CancelFunc(func() {})
		if r.config.Timeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		}
		text, err := r.inner.Generate(attemptCtx, system, user)
		cancel()
		if err == nil {
			return text, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if !isRetryable(err) {
			return "", err
		}
	}
	return "", fmt.Errorf("max retries (%d) exceeded: %w", r.config.MaxRetries, lastErr)
}

func (r *RetryGenerator) backoff(attempt int) time.Duration {
	d := r.config.RetryDelay
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= r.config.MaxDelay {
			return r.config.MaxDelay
		}
	}
	return d
}

func isRetryable(err error) bool {
	if errors.Is(err, ErrMissingCredentials) || errors.Is(err, context.Canceled) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Retryable()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
