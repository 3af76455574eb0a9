// Package anthropic implements llm.Generator on the Anthropic Messages API.
package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"reciperag/internal/llm"
)

// ProviderName is the registry key of this provider.
const ProviderName = "anthropic"

// Client generates answers with Claude models.
type Client struct {
	client    sdk.Client
	model     string
	maxTokens int64
}

// New creates a client from a resolved config. Retries are left to
// llm.RetryGenerator, so the SDK's own retry loop is disabled.
func New(cfg llm.Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: anthropic", llm.ErrMissingCredentials)
	}
	if cfg.Model == "" {
		cfg.Model = llm.DefaultModels[ProviderName]
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = llm.DefaultMaxTokens
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &Client{
		client:    sdk.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: int64(cfg.MaxTokens),
	}, nil
}

// Constructor adapts New to llm.Constructor.
func Constructor(cfg llm.Config) (llm.Generator, error) { return New(cfg) }

func (c *Client) Name() string  { return ProviderName }
func (c *Client) Model() string { return c.model }

// Generate sends one system + user exchange and returns the text blocks of
// the reply concatenated.
func (c *Client) Generate(ctx context.Context, system, user string) (string, error) {
	msg, err := c.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(c.model),
		MaxTokens: c.maxTokens,
		System:    []sdk.TextBlockParam{{Text: system}},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(user)),
		},
	})
	if err != nil {
		var apiErr *sdk.Error
		if errors.As(err, &apiErr) {
			return "", &llm.StatusError{Provider: ProviderName, StatusCode: apiErr.StatusCode, Message: apiErr.Error()}
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: anthropic: %w", llm.ErrGeneration, err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("%w: anthropic: reply has no text content", llm.ErrGeneration)
	}
	return b.String(), nil
}
