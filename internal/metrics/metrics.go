package metrics

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Retrieval and generation Prometheus metrics.
var (
	RetrievalRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reciperag",
			Name:      "retrieval_requests_total",
			Help:      "Total number of retrieval calls",
		},
		[]string{"status"},
	)

	RetrievalDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "reciperag",
			Name:      "retrieval_duration_seconds",
			Help:      "Retrieval latency in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5},
		},
	)

	RetrievalZeroOverlapTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "reciperag",
			Name:      "retrieval_zero_overlap_total",
			Help:      "Queries that shared no term with the vocabulary",
		},
	)

	GenerationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "reciperag",
			Name:      "generation_requests_total",
			Help:      "Total number of answer generation calls",
		},
		[]string{"provider", "model", "status"},
	)

	GenerationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "reciperag",
			Name:      "generation_duration_seconds",
			Help:      "Answer generation latency in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"provider", "model"},
	)

	CorpusDocuments = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "reciperag",
			Name:      "corpus_documents",
			Help:      "Recipes in the loaded corpus",
		},
	)

	VocabularySize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "reciperag",
			Name:      "index_vocabulary_size",
			Help:      "Terms in the TF-IDF vocabulary",
		},
	)
)

var registerOnce sync.Once

// Register registers all collectors with the default registry. Safe to call
// more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RetrievalRequestsTotal,
			RetrievalDuration,
			RetrievalZeroOverlapTotal,
			GenerationRequestsTotal,
			GenerationDuration,
			CorpusDocuments,
			VocabularySize,
		)
	})
}

// Serve exposes /metrics on addr until the server fails. It is meant to run
// in its own goroutine.
func Serve(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Handler returns a mux serving the default registry on /metrics.
func Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}
