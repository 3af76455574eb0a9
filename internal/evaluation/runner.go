package evaluation

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"reciperag/internal/domain"
	"reciperag/internal/logger"
)

// Answerer produces a grounded answer for a query.
type Answerer interface {
	Answer(ctx context.Context, question string, k int) (*domain.Answer, error)
}

// Retriever returns ranked recipes for a query.
type Retriever interface {
	Retrieve(query string, k int) ([]domain.RankedResult, error)
}

// Runner answers evaluation cases with bounded concurrency.
type Runner struct {
	answerer    Answerer
	k           int
	concurrency int
	logger      *zap.Logger
}

// NewRunner creates a runner retrieving k recipes per case with at most
// concurrency cases in flight.
func NewRunner(answerer Answerer, k, concurrency int, logger *zap.Logger) *Runner {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{answerer: answerer, k: k, concurrency: concurrency, logger: logger}
}

// Run answers every case. Results keep the order of cases; a failed case
// yields an Answer with Error set rather than aborting the run. The only
// returned error is the context's.
func (r *Runner) Run(ctx context.Context, cases []Case) ([]domain.Answer, error) {
	results := make([]domain.Answer, len(cases))
	runLog := r.logger.With(zap.String("run_id", uuid.NewString()))
	runLog.Info("starting run", zap.Int("cases", len(cases)), zap.Int("concurrency", r.concurrency))
	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for i, c := range cases {
		g.Go(func() error {
			if ctx.Err() != nil {
				results[i] = domain.Answer{Query: c.Query, Error: ctx.Err().Error()}
				return nil
			}
			caseLog := runLog.With(zap.Int("case", i+1))
			ans, err := r.answerer.Answer(logger.ContextWithLogger(ctx, caseLog), c.Query, r.k)
			switch {
			case err != nil && ans == nil:
				results[i] = domain.Answer{Query: c.Query, Error: err.Error()}
			case err != nil:
				ans.Error = err.Error()
				results[i] = *ans
			default:
				results[i] = *ans
			}
			if err != nil {
				caseLog.Warn("case failed", zap.String("query", c.Query), zap.Error(err))
			} else {
				caseLog.Debug("case answered", zap.Int("of", len(cases)))
			}
			return nil
		})
	}
	_ = g.Wait()
	return results, ctx.Err()
}

// RetrieveAll runs retrieval only for every case, producing answers with
// no generated text. Used to evaluate the ranker without an LLM.
func RetrieveAll(retriever Retriever, cases []Case, k int) ([]domain.Answer, error) {
	out := make([]domain.Answer, 0, len(cases))
	for _, c := range cases {
		recipes, err := retriever.Retrieve(c.Query, k)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.Answer{Query: c.Query, Recipes: recipes, NumRetrieved: len(recipes)})
	}
	return out, nil
}
