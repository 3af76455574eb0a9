package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Generator is a text-completion capability. Implementations are selected
// once at construction; callers never branch on the provider.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
	Name() string
	Model() string
}

var (
	// ErrMissingCredentials signals that no API key was configured.
	ErrMissingCredentials = errors.New("missing LLM credentials")
	// ErrGeneration signals a provider-side failure.
	ErrGeneration = errors.New("answer generation failed")
	// ErrUnknownProvider signals an unregistered provider name.
	ErrUnknownProvider = errors.New("unknown LLM provider")
)

// StatusError is an HTTP-level provider failure.
type StatusError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d %s: %s", e.Provider, e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

func (e *StatusError) Unwrap() error { return ErrGeneration }

// Retryable reports whether the status indicates a transient condition.
func (e *StatusError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}
