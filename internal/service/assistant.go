package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"reciperag/internal/domain"
	"reciperag/internal/llm"
	"reciperag/internal/logger"
)

// Assistant answers questions by grounding a Generator on retrieved recipes.
type Assistant struct {
	searcher  Searcher
	generator llm.Generator
	logger    *zap.Logger
}

// NewAssistant wires a searcher to a generator.
func NewAssistant(searcher Searcher, generator llm.Generator, logger *zap.Logger) *Assistant {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assistant{searcher: searcher, generator: generator, logger: logger}
}

// Answer retrieves k recipes for question and asks the generator to answer
// from them. On generation failure the returned Answer still carries the
// retrieved recipes alongside the error.
func (a *Assistant) Answer(ctx context.Context, question string, k int) (*domain.Answer, error) {
	recipes, err := a.searcher.Retrieve(question, k)
	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}
	ans := &domain.Answer{
		Query:        question,
		Recipes:      recipes,
		NumRetrieved: len(recipes),
		Provider:     a.generator.Name(),
		Model:        a.generator.Model(),
	}

	system, user := llm.BuildPrompt(question, recipes)
	text, err := a.generator.Generate(ctx, system, user)
	if err != nil {
		ans.Error = err.Error()
		return ans, fmt.Errorf("generate: %w", err)
	}
	ans.Text = text
	logger.FromContextOr(ctx, a.logger).Info("answered question",
		zap.String("query", question),
		zap.Int("retrieved", len(recipes)),
		zap.String("provider", ans.Provider),
	)
	return ans, nil
}

// Searcher returns the retrieval backend.
func (a *Assistant) Searcher() Searcher { return a.searcher }
