package service

import (
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"reciperag/internal/corpus"
	"reciperag/internal/domain"
	"reciperag/internal/embedding/tfidf"
	"reciperag/internal/vectorstore"
	"reciperag/internal/vectorstore/memory"
)

// DefaultTopK is the number of recipes retrieved when callers have no
// preference.
const DefaultTopK = 5

// Searcher is the retrieval contract consumed by the answer pipeline, the
// conversational session, the evaluation harness and the CLI.
type Searcher interface {
	Retrieve(query string, k int) ([]domain.RankedResult, error)
}

// Retriever owns the recipe store and its TF-IDF index. Both are built once
// and never mutated, so a Retriever may be shared freely.
type Retriever struct {
	store    *corpus.Store
	index    *tfidf.Index
	searcher vectorstore.Searcher
	logger   *zap.Logger
}

// Initialize loads the corpus from src and builds the index. Any failure is
// fatal for the session: there is no partial index.
func Initialize(src corpus.Source, opts tfidf.Options, logger *zap.Logger) (*Retriever, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	store, err := corpus.Load(src, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded recipes", zap.Int("count", store.Len()), zap.Int("dropped", store.Dropped()))
	return NewRetriever(store, opts, logger)
}

// NewRetriever builds the index over an already loaded store.
func NewRetriever(store *corpus.Store, opts tfidf.Options, logger *zap.Logger) (*Retriever, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	index, err := tfidf.Build(store.Texts(), opts)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	logger.Info("built TF-IDF index",
		zap.Int("documents", index.Len()),
		zap.Int("features", index.Dimension()),
	)
	return &Retriever{
		store:    store,
		index:    index,
		searcher: memory.NewStorage(index.Documents()),
		logger:   logger,
	}, nil
}

// Retrieve returns the k recipes most similar to query, best first, each
// with its cosine score. A query sharing no term with the vocabulary is not
// an error: it yields min(k, corpus size) results scored 0.
func (r *Retriever) Retrieve(query string, k int) ([]domain.RankedResult, error) {
	if !utf8.ValidString(query) {
		return nil, fmt.Errorf("%w: query is not valid UTF-8", domain.ErrInvalidQuery)
	}
	if k <= 0 {
		return []domain.RankedResult{}, nil
	}
	hits := r.searcher.Search(r.index.Vectorize(query), k)
	results := make([]domain.RankedResult, len(hits))
	for i, h := range hits {
		results[i] = domain.RankedResult{Recipe: r.store.Get(h.Index), RelevanceScore: h.Score}
	}
	r.logger.Debug("retrieved recipes", zap.String("query", query), zap.Int("k", k), zap.Int("results", len(results)))
	return results, nil
}

// Store returns the underlying recipe store.
func (r *Retriever) Store() *corpus.Store { return r.store }

// Index returns the underlying TF-IDF index.
func (r *Retriever) Index() *tfidf.Index { return r.index }
