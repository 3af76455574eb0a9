package llm

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap/zaptest"

	"reciperag/internal/metrics"
)

func TestInstrumentedCountsOutcomes(t *testing.T) {
	inner := &scriptedGenerator{errs: []error{nil, &StatusError{Provider: "scripted", StatusCode: 500}}}
	gen := NewInstrumented(inner, zaptest.NewLogger(t))

	ok := metrics.GenerationRequestsTotal.WithLabelValues("scripted", "m", "success")
	failed := metrics.GenerationRequestsTotal.WithLabelValues("scripted", "m", "error")
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	if _, err := gen.Generate(context.Background(), "s", "u"); err != nil {
		t.Fatal(err)
	}
	if _, err := gen.Generate(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error")
	}
	if d := testutil.ToFloat64(ok) - okBefore; d != 1 {
		t.Fatalf("success delta = %v", d)
	}
	if d := testutil.ToFloat64(failed) - failedBefore; d != 1 {
		t.Fatalf("error delta = %v", d)
	}
}
