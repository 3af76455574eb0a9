package corpus

import (
	"strings"

	"go.uber.org/zap"

	"reciperag/internal/domain"
)

// Store holds the recipe corpus in ingestion order. Position i in All is
// the document index used by the vector index.
type Store struct {
	recipes []domain.Recipe
	dropped int
}

// NewStore ingests records, dropping any without an ID or title, and derives
// the searchable text and health category of every kept record.
func NewStore(records []domain.Recipe, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{recipes: make([]domain.Recipe, 0, len(records))}
	for _, r := range records {
		r.ID = strings.TrimSpace(r.ID)
		r.Title = strings.TrimSpace(r.Title)
		if r.ID == "" || r.Title == "" {
			s.dropped++
			continue
		}
		r.Tags = strings.TrimSpace(r.Tags)
		r.Ingredients = strings.TrimSpace(r.Ingredients)
		r.HealthCategory = domain.CategorizeCalories(r.Calories)
		r.SearchableText = r.BuildSearchableText()
		s.recipes = append(s.recipes, r)
	}
	if s.dropped > 0 {
		logger.Warn("dropped recipes without id or title", zap.Int("dropped", s.dropped))
	}
	return s
}

// Load reads every record from src into a new Store.
func Load(src Source, logger *zap.Logger) (*Store, error) {
	records, err := src.Records()
	if err != nil {
		return nil, err
	}
	return NewStore(records, logger), nil
}

// All returns the recipes in ingestion order. Callers must not modify them.
func (s *Store) All() []domain.Recipe { return s.recipes }

// Get returns the recipe at document index i.
func (s *Store) Get(i int) domain.Recipe { return s.recipes[i] }

// Len returns the number of stored recipes.
func (s *Store) Len() int { return len(s.recipes) }

// Dropped returns how many input records were rejected at ingestion.
func (s *Store) Dropped() int { return s.dropped }

// Texts returns the searchable text of every recipe in ingestion order.
func (s *Store) Texts() []string {
	out := make([]string, len(s.recipes))
	for i, r := range s.recipes {
		out[i] = r.SearchableText
	}
	return out
}
