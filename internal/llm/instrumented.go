package llm

import (
	"context"
	"time"

	"go.uber.org/zap"

	"reciperag/internal/metrics"
)

// Instrumented records metrics and logs around a Generator.
type Instrumented struct {
	inner  Generator
	logger *zap.Logger
}

// NewInstrumented wraps inner. A nil logger discards output.
func NewInstrumented(inner Generator, logger *zap.Logger) *Instrumented {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Instrumented{inner: inner, logger: logger}
}

func (g *Instrumented) Name() string  { return g.inner.Name() }
func (g *Instrumented) Model() string { return g.inner.Model() }

// Generate implements Generator.
func (g *Instrumented) Generate(ctx context.Context, system, user string) (string, error) {
	start := time.Now()
	text, err := g.inner.Generate(ctx, system, user)
	elapsed := time.Since(start)
	if err != nil {
		metrics.GenerationRequestsTotal.WithLabelValues(g.Name(), g.Model(), "error").Inc()
		g.logger.Warn("generation failed",
			zap.String("provider", g.Name()),
			zap.String("model", g.Model()),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return "", err
	}
	metrics.GenerationRequestsTotal.WithLabelValues(g.Name(), g.Model(), "success").Inc()
	metrics.GenerationDuration.WithLabelValues(g.Name(), g.Model()).Observe(elapsed.Seconds())
	g.logger.Debug("generated answer",
		zap.String("provider", g.Name()),
		zap.Duration("elapsed", elapsed),
		zap.Int("chars", len(text)),
	)
	return text, nil
}
