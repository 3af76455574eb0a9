package service

import (
	"time"

	"reciperag/internal/domain"
	"reciperag/internal/metrics"
)

// InstrumentedSearcher records Prometheus metrics around a Searcher.
type InstrumentedSearcher struct {
	inner Searcher
}

// NewInstrumentedSearcher wraps inner.
func NewInstrumentedSearcher(inner Searcher) *InstrumentedSearcher {
	return &InstrumentedSearcher{inner: inner}
}

// Retrieve implements Searcher.
func (s *InstrumentedSearcher) Retrieve(query string, k int) ([]domain.RankedResult, error) {
	start := time.Now()
	results, err := s.inner.Retrieve(query, k)
	metrics.RetrievalDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RetrievalRequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.RetrievalRequestsTotal.WithLabelValues("success").Inc()
	if len(results) > 0 && allZero(results) {
		metrics.RetrievalZeroOverlapTotal.Inc()
	}
	return results, nil
}

func allZero(results []domain.RankedResult) bool {
	for _, r := range results {
		if r.RelevanceScore > 0 {
			return false
		}
	}
	return true
}
