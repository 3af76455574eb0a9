package llm

import (
	"fmt"
	"os"
	"time"
)

// Config configures a Generator.
type Config struct {
	Provider  string
	Model     string
	APIKey    string
	APIKeyEnv string
	BaseURL   string
	MaxTokens int

	Timeout    time.Duration // per attempt
	MaxRetries int
	RetryDelay time.Duration
}

// DefaultModels maps providers to the model used when none is configured.
var DefaultModels = map[string]string{
	"anthropic": "claude-3-haiku-20240307",
	"openai":    "gpt-3.5-turbo",
}

// DefaultKeyEnv maps providers to the environment variable holding the key.
var DefaultKeyEnv = map[string]string{
	"anthropic": "ANTHROPIC_API_KEY",
	"openai":    "OPENAI_API_KEY",
}

// DefaultMaxTokens bounds answer length.
const DefaultMaxTokens = 500

// Resolve fills defaults and reads the API key from the environment when it
// is not set explicitly.
func (c Config) Resolve() (Config, error) {
	if c.Model == "" {
		c.Model = DefaultModels[c.Provider]
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.APIKeyEnv == "" {
		c.APIKeyEnv = DefaultKeyEnv[c.Provider]
	}
	if c.APIKey == "" && c.APIKeyEnv != "" {
		c.APIKey = os.Getenv(c.APIKeyEnv)
	}
	if c.APIKey == "" {
		return c, fmt.Errorf("%w: set %s (export %s='your-key' or add it to .env)",
			ErrMissingCredentials, c.APIKeyEnv, c.APIKeyEnv)
	}
	return c, nil
}
