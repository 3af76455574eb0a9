// Package openai implements llm.Generator on the OpenAI chat completions API.
package openai

import (
	"context"
	"errors"
	"fmt"

	goopenai "github.com/sashabaranov/go-openai"

	"reciperag/internal/llm"
)

// ProviderName is the registry key of this provider.
const ProviderName = "openai"

// Client generates answers with OpenAI chat models.
type Client struct {
	client    *goopenai.Client
	model     string
	maxTokens int
}

// New creates a client from a resolved config.
func New(cfg llm.Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: openai", llm.ErrMissingCredentials)
	}
	if cfg.Model == "" {
		cfg.Model = llm.DefaultModels[ProviderName]
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = llm.DefaultMaxTokens
	}
	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &Client{
		client:    goopenai.NewClientWithConfig(clientCfg),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}, nil
}

// Constructor adapts New to llm.Constructor.
func Constructor(cfg llm.Config) (llm.Generator, error) { return New(cfg) }

func (c *Client) Name() string  { return ProviderName }
func (c *Client) Model() string { return c.model }

// Generate sends a system and a user message and returns the first choice.
func (c *Client) Generate(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: system},
			{Role: goopenai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		var apiErr *goopenai.APIError
		if errors.As(err, &apiErr) {
			return "", &llm.StatusError{Provider: ProviderName, StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
		}
		var reqErr *goopenai.RequestError
		if errors.As(err, &reqErr) {
			return "", &llm.StatusError{Provider: ProviderName, StatusCode: reqErr.HTTPStatusCode, Message: reqErr.Error()}
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: openai: %w", llm.ErrGeneration, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: openai: no choices returned", llm.ErrGeneration)
	}
	return resp.Choices[0].Message.Content, nil
}
