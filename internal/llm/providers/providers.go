// Package providers registers the built-in LLM providers.
package providers

import (
	"reciperag/internal/llm"
	"reciperag/internal/llm/anthropic"
	"reciperag/internal/llm/openai"
)

// NewFactory returns a factory with every built-in provider registered.
func NewFactory() *llm.Factory {
	f := llm.NewFactory()
	f.Register(anthropic.ProviderName, anthropic.Constructor)
	f.Register(openai.ProviderName, openai.Constructor)
	return f
}
