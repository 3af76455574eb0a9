package service

import (
	"errors"
	"testing"

	"go.uber.org/zap/zaptest"

	"reciperag/internal/corpus"
	"reciperag/internal/domain"
	"reciperag/internal/embedding/tfidf"
)

func scenarioRecipes() corpus.Records {
	return corpus.Records{
		{ID: "1", Title: "chicken pasta", Tags: "quick dinner"},
		{ID: "2", Title: "vegan salad", Tags: "healthy lunch"},
		{ID: "3", Title: "chicken soup", Tags: "comfort food"},
	}
}

func newScenario(t *testing.T) *Retriever {
	t.Helper()
	r, err := Initialize(scenarioRecipes(), tfidf.DefaultOptions(), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return r
}

func TestRetrieveScenario(t *testing.T) {
	r := newScenario(t)
	got, err := r.Retrieve("chicken", 3)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	ids := []string{got[0].ID, got[1].ID, got[2].ID}
	if ids[0] != "1" || ids[1] != "3" || ids[2] != "2" {
		t.Fatalf("order = %v, want [1 3 2]", ids)
	}
	if got[0].RelevanceScore <= 0 || got[1].RelevanceScore <= 0 {
		t.Fatalf("chicken recipes should score > 0: %v %v", got[0].RelevanceScore, got[1].RelevanceScore)
	}
	if got[2].RelevanceScore != 0 {
		t.Fatalf("vegan salad should score 0, got %v", got[2].RelevanceScore)
	}
}

func TestRetrieveBounds(t *testing.T) {
	r := newScenario(t)
	tests := []struct {
		name string
		k    int
		want int
	}{
		{"zero", 0, 0},
		{"negative", -2, 0},
		{"one", 1, 1},
		{"beyond corpus", 10, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Retrieve("chicken", tt.k)
			if err != nil {
				t.Fatalf("Retrieve: %v", err)
			}
			if got == nil || len(got) != tt.want {
				t.Fatalf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestRetrieveZeroOverlap(t *testing.T) {
	r := newScenario(t)
	for _, q := range []string{"", "zzzz", "!!!", "the and of"} {
		got, err := r.Retrieve(q, 2)
		if err != nil {
			t.Fatalf("Retrieve(%q): %v", q, err)
		}
		if len(got) != 2 {
			t.Fatalf("Retrieve(%q) len = %d, want 2", q, len(got))
		}
		for i, res := range got {
			if res.RelevanceScore != 0 {
				t.Fatalf("Retrieve(%q)[%d] score = %v, want 0", q, i, res.RelevanceScore)
			}
		}
		if got[0].ID != "1" || got[1].ID != "2" {
			t.Fatalf("zero-overlap results should keep corpus order, got %s %s", got[0].ID, got[1].ID)
		}
	}
}

func TestRetrieveDeterministic(t *testing.T) {
	r := newScenario(t)
	first, _ := r.Retrieve("chicken soup for dinner", 3)
	for i := 0; i < 5; i++ {
		again, _ := r.Retrieve("chicken soup for dinner", 3)
		for j := range first {
			if first[j].ID != again[j].ID || first[j].RelevanceScore != again[j].RelevanceScore {
				t.Fatalf("run %d differs at %d", i, j)
			}
		}
	}
}

func TestRetrieveSelfSimilarity(t *testing.T) {
	r := newScenario(t)
	doc := r.Store().Get(0)
	got, err := r.Retrieve(doc.SearchableText, 1)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if got[0].ID != doc.ID {
		t.Fatalf("top hit = %s, want %s", got[0].ID, doc.ID)
	}
	if got[0].RelevanceScore < 0.999 || got[0].RelevanceScore > 1 {
		t.Fatalf("self score = %v, want ~1", got[0].RelevanceScore)
	}
}

func TestRetrieveInvalidUTF8(t *testing.T) {
	r := newScenario(t)
	if _, err := r.Retrieve("chicken\xff", 3); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestInitializeErrors(t *testing.T) {
	if _, err := Initialize(corpus.File("testdata/does-not-exist.json"), tfidf.DefaultOptions(), nil); !errors.Is(err, domain.ErrLoad) {
		t.Fatalf("expected ErrLoad, got %v", err)
	}
	if _, err := Initialize(corpus.Records{}, tfidf.DefaultOptions(), nil); !errors.Is(err, domain.ErrIndexBuild) {
		t.Fatalf("empty corpus: expected ErrIndexBuild, got %v", err)
	}
	stopOnly := corpus.Records{
		{ID: "1", Title: "the and"},
		{ID: "2", Title: "of the"},
	}
	if _, err := Initialize(stopOnly, tfidf.DefaultOptions(), nil); !errors.Is(err, domain.ErrIndexBuild) {
		t.Fatalf("stop words only: expected ErrIndexBuild, got %v", err)
	}
}
