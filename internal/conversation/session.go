// Package conversation keeps the state of a multi-turn recipe chat.
package conversation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"reciperag/internal/domain"
	"reciperag/internal/logger"
)

// Answerer produces a grounded answer for a query.
type Answerer interface {
	Answer(ctx context.Context, question string, k int) (*domain.Answer, error)
}

// Turn is one completed exchange.
type Turn struct {
	ID          uuid.UUID `json:"id"`
	UserInput   string    `json:"user_input"`
	ActualQuery string    `json:"actual_query"`
	FollowUp    bool      `json:"follow_up"`
	Answer      string    `json:"answer"`
	NumRecipes  int       `json:"num_recipes"`
	At          time.Time `json:"at"`
}

// Session tracks the last query so short refinements such as "shorter" or
// "with beef instead" are resolved against it. It is safe for concurrent use.
type Session struct {
	answerer Answerer
	k        int
	logger   *zap.Logger

	mu          sync.Mutex
	lastQuery   string
	lastResults []domain.RankedResult
	history     []Turn
}

// NewSession creates a session retrieving k recipes per turn.
func NewSession(answerer Answerer, k int, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{answerer: answerer, k: k, logger: logger}
}

// Resolve returns the query that Ask would send for input, and whether it
// was treated as a follow-up. It does not change the session.
func (s *Session) Resolve(input string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolve(input)
}

func (s *Session) resolve(input string) (string, bool) {
	if s.lastQuery != "" && IsFollowUp(input) {
		return Rewrite(s.lastQuery, input), true
	}
	return input, false
}

// Ask answers input, rewriting it against the previous query when it is a
// follow-up. State only advances when the answer succeeds.
func (s *Session) Ask(ctx context.Context, input string) (*domain.Answer, Turn, error) {
	query, followUp := s.Resolve(input)
	id := uuid.New()
	turnLog := s.logger.With(zap.String("turn", id.String()))
	if followUp {
		turnLog.Debug("resolved follow-up", zap.String("input", input), zap.String("query", query))
	}

	ans, err := s.answerer.Answer(logger.ContextWithLogger(ctx, turnLog), query, s.k)
	if err != nil {
		return ans, Turn{}, err
	}

	turn := Turn{
		ID:          id,
		UserInput:   input,
		ActualQuery: query,
		FollowUp:    followUp,
		Answer:      ans.Text,
		NumRecipes:  len(ans.Recipes),
		At:          time.Now(),
	}
	s.mu.Lock()
	s.lastQuery = query
	s.lastResults = ans.Recipes
	s.history = append(s.history, turn)
	s.mu.Unlock()
	return ans, turn, nil
}

// Reset forgets the previous query so the next input starts fresh. History
// is kept.
func (s *Session) Reset() {
	s.mu.Lock()
	s.lastQuery = ""
	s.lastResults = nil
	s.mu.Unlock()
}

// LastQuery returns the most recent resolved query, or "".
func (s *Session) LastQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastQuery
}

// LastResults returns the recipes retrieved on the most recent turn.
func (s *Session) LastResults() []domain.RankedResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastResults
}

// History returns a copy of the completed turns, oldest first.
func (s *Session) History() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.history))
	copy(out, s.history)
	return out
}
