package evaluation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"

	"reciperag/internal/corpus"
	"reciperag/internal/domain"
)

// Case is one evaluation query.
type Case struct {
	Query string `json:"query"`
}

// LoadCases reads a JSON array whose elements are either query strings or
// objects with a "query" field.
func LoadCases(path string) ([]Case, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read cases: %w", err)
	}
	root, err := corpus.ParseArray(data)
	if err != nil {
		return nil, fmt.Errorf("parse cases: %w", err)
	}
	var cases []Case
	root.ForEach(func(_, v gjson.Result) bool {
		q := v.Str
		if v.IsObject() {
			q = v.Get("query").String()
		}
		if q != "" {
			cases = append(cases, Case{Query: q})
		}
		return true
	})
	return cases, nil
}

// LoadResults reads a results file as written by the run-tests command.
func LoadResults(path string) ([]domain.Answer, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	return ParseResults(data)
}

// ParseResults decodes answers. Recipe IDs may be strings or numbers.
func ParseResults(data []byte) ([]domain.Answer, error) {
	root, err := corpus.ParseArray(data)
	if err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	var answers []domain.Answer
	root.ForEach(func(_, v gjson.Result) bool {
		ans := domain.Answer{
			Query:    v.Get("query").String(),
			Text:     v.Get("answer").String(),
			Provider: v.Get("llm_provider").String(),
			Model:    v.Get("model").String(),
			Error:    v.Get("error").String(),
		}
		v.Get("retrieved_recipes").ForEach(func(_, r gjson.Result) bool {
			ans.Recipes = append(ans.Recipes, domain.RankedResult{
				Recipe:         corpus.DecodeRecipe(r),
				RelevanceScore: r.Get("relevance_score").Float(),
			})
			return true
		})
		ans.NumRetrieved = len(ans.Recipes)
		answers = append(answers, ans)
		return true
	})
	return answers, nil
}

// WriteJSON writes v indented to path, creating parent directories.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// WriteText writes s to path, creating parent directories.
func WriteText(path, s string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return os.WriteFile(path, []byte(s), 0o644)
}
