package evaluation

import (
	"fmt"
	"strings"

	"reciperag/internal/domain"
)

// BaselineAnswer renders a templated answer from the top three recipes,
// with the calories and duration of the first one when known.
func BaselineAnswer(recipes []domain.RankedResult) string {
	if len(recipes) == 0 {
		return "No recipes found matching your query."
	}
	top := recipes[:min(3, len(recipes))]
	titles := make([]string, len(top))
	for i, r := range top {
		titles[i] = r.DisplayTitle()
	}

	var b strings.Builder
	b.WriteString("Based on your search, I found: ")
	switch len(titles) {
	case 1:
		b.WriteString(titles[0])
	case 2:
		b.WriteString(titles[0] + " and " + titles[1])
	default:
		b.WriteString(titles[0] + ", " + titles[1] + ", and " + titles[2])
	}
	b.WriteString(".")

	first := recipes[0]
	if first.Calories != nil && *first.Calories != 0 {
		fmt.Fprintf(&b, " The first recipe has %.0f calories.", *first.Calories)
	}
	if first.Duration != nil && *first.Duration != 0 {
		fmt.Fprintf(&b, " It takes about %.0f minutes to prepare.", *first.Duration)
	}
	return b.String()
}

// Comparison pairs a templated answer with the generated one.
type Comparison struct {
	Query    string   `json:"query"`
	Baseline string   `json:"baseline_answer"`
	LLM      string   `json:"llm_rag_answer"`
	Recipes  []string `json:"retrieved_recipes"`
}

// Compare builds comparisons for the first limit answers. limit <= 0 means
// all of them.
func Compare(answers []domain.Answer, limit int) []Comparison {
	if limit <= 0 || limit > len(answers) {
		limit = len(answers)
	}
	out := make([]Comparison, 0, limit)
	for _, ans := range answers[:limit] {
		c := Comparison{
			Query:    ans.Query,
			Baseline: BaselineAnswer(ans.Recipes),
			LLM:      ans.Text,
			Recipes:  []string{},
		}
		for _, r := range ans.Recipes[:min(3, len(ans.Recipes))] {
			c.Recipes = append(c.Recipes, r.Title)
		}
		out = append(out, c)
	}
	return out
}

var rule = strings.Repeat("=", 70)

// ComparisonText renders comparisons as a plain-text report.
func ComparisonText(comps []Comparison) string {
	var b strings.Builder
	b.WriteString(rule + "\nBaseline vs LLM-RAG Comparison\n" + rule + "\n\n")
	for i, c := range comps {
		fmt.Fprintf(&b, "%s\nQuery %d: %s\n%s\n\n", rule, i+1, c.Query, rule)
		b.WriteString("Retrieved Recipes:\n")
		for j, title := range c.Recipes {
			fmt.Fprintf(&b, "  %d. %s\n", j+1, title)
		}
		b.WriteString("\nBASELINE (templated, no LLM):\n" + strings.Repeat("-", 70) + "\n")
		b.WriteString(c.Baseline + "\n\n")
		b.WriteString("LLM-RAG (generated):\n" + strings.Repeat("-", 70) + "\n")
		b.WriteString(c.LLM + "\n\n")
	}
	return b.String()
}
