package conversation

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"

	"reciperag/internal/domain"
)

func TestIsFollowUp(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"shorter", true},
		{"Can you make it HEALTHIER please thanks", true},
		{"what about one with beef", true},
		{"gluten-free options for a big family dinner", true},
		{"any quick ideas", true},
		{"what can I cook for a large family dinner tonight", false},
	}
	for _, tt := range tests {
		if got := IsFollowUp(tt.input); got != tt.want {
			t.Errorf("IsFollowUp(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestRewrite(t *testing.T) {
	const prev = "quick pasta"
	tests := []struct {
		followUp string
		want     string
	}{
		{"with chicken instead", "quick pasta, but with chicken instead"},
		{"without cheese", "quick pasta, but without cheese"},
		{"quicker", "quick pasta that takes less time"},
		{"Shorter", "quick pasta that takes less time"},
		{"slower", "quick pasta that takes more time"},
		{"healthy", "quick pasta that is healthier"},
		{"low calorie", "quick pasta with fewer calories"},
		{"more calories", "quick pasta with more calories"},
		{"vegan", "quick pasta, vegan"},
	}
	for _, tt := range tests {
		if got := Rewrite(prev, tt.followUp); got != tt.want {
			t.Errorf("Rewrite(%q) = %q, want %q", tt.followUp, got, tt.want)
		}
	}
}

type recordingAnswerer struct {
	queries []string
	fail    bool
}

func (r *recordingAnswerer) Answer(ctx context.Context, q string, k int) (*domain.Answer, error) {
	r.queries = append(r.queries, q)
	if r.fail {
		return nil, errors.New("boom")
	}
	return &domain.Answer{
		Query:   q,
		Text:    "answer to " + q,
		Recipes: []domain.RankedResult{{Recipe: domain.Recipe{ID: "1", Title: "x"}}},
	}, nil
}

func TestSessionFlow(t *testing.T) {
	rec := &recordingAnswerer{}
	s := NewSession(rec, 5, zaptest.NewLogger(t))
	ctx := context.Background()

	// A short first message has nothing to refine.
	if _, turn, err := s.Ask(ctx, "pasta"); err != nil || turn.FollowUp {
		t.Fatalf("first turn: followUp=%v err=%v", turn.FollowUp, err)
	}
	_, turn, err := s.Ask(ctx, "shorter")
	if err != nil {
		t.Fatal(err)
	}
	if !turn.FollowUp || turn.ActualQuery != "pasta that takes less time" {
		t.Fatalf("unexpected turn %+v", turn)
	}
	if turn.ID == uuid.Nil {
		t.Fatal("turn should have an id")
	}
	if s.LastQuery() != "pasta that takes less time" {
		t.Fatalf("last query = %q", s.LastQuery())
	}

	s.Reset()
	if _, turn, _ = s.Ask(ctx, "soup"); turn.FollowUp {
		t.Fatal("reset should clear follow-up context")
	}

	want := []string{"pasta", "pasta that takes less time", "soup"}
	for i, q := range want {
		if rec.queries[i] != q {
			t.Fatalf("query %d = %q, want %q", i, rec.queries[i], q)
		}
	}
	if h := s.History(); len(h) != 3 || h[1].UserInput != "shorter" {
		t.Fatalf("unexpected history %+v", h)
	}
}

func TestSessionFailureKeepsState(t *testing.T) {
	rec := &recordingAnswerer{}
	s := NewSession(rec, 5, nil)
	ctx := context.Background()
	if _, _, err := s.Ask(ctx, "pasta"); err != nil {
		t.Fatal(err)
	}
	rec.fail = true
	if _, _, err := s.Ask(ctx, "shorter"); err == nil {
		t.Fatal("expected error")
	}
	if s.LastQuery() != "pasta" || len(s.History()) != 1 {
		t.Fatalf("failed turn changed state: %q %d", s.LastQuery(), len(s.History()))
	}
	if q, ok := s.Resolve("faster"); !ok || q != "pasta that takes less time" {
		t.Fatalf("Resolve = %q, %v", q, ok)
	}
}
