// Package summarizer condenses a recipe corpus into a one-line overview.
package summarizer

import (
	"fmt"
	"sort"
	"strings"

	"reciperag/internal/domain"
	"reciperag/internal/embedding/tfidf"
)

// TagCount is a tag word and the number of recipes carrying it.
type TagCount struct {
	Term  string
	Count int
}

// Overview ranks tag words by how many recipes use them.
type Overview struct {
	analyzer *tfidf.Analyzer
}

// NewOverview creates an overview summarizer that shares the index's
// tokenization and stop words.
func NewOverview() *Overview {
	return &Overview{analyzer: tfidf.NewAnalyzer(1)}
}

// TopTags returns up to n tag words, most common first, ties by term.
func (o *Overview) TopTags(recipes []domain.Recipe, n int) []TagCount {
	df := map[string]int{}
	for _, r := range recipes {
		seen := map[string]struct{}{}
		for _, tok := range o.analyzer.Tokens(r.Tags) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	out := make([]TagCount, 0, len(df))
	for term, c := range df {
		out = append(out, TagCount{Term: term, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Term < out[j].Term
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

var healthOrder = []domain.HealthCategory{
	domain.HealthLowCalorie,
	domain.HealthModerate,
	domain.HealthHighCalorie,
	domain.HealthVeryHighCalorie,
}

// Summarize describes the corpus size, its top tags and the spread of
// health categories.
func (o *Overview) Summarize(recipes []domain.Recipe, maxTags int) string {
	if len(recipes) == 0 {
		return "No recipes loaded."
	}
	parts := []string{fmt.Sprintf("%d recipes", len(recipes))}

	if tags := o.TopTags(recipes, maxTags); len(tags) > 0 {
		terms := make([]string, len(tags))
		for i, t := range tags {
			terms[i] = t.Term
		}
		parts = append(parts, "top tags: "+strings.Join(terms, ", "))
	}

	counts := map[domain.HealthCategory]int{}
	for _, r := range recipes {
		counts[r.HealthCategory]++
	}
	var mix []string
	for _, hc := range healthOrder {
		if c := counts[hc]; c > 0 {
			mix = append(mix, fmt.Sprintf("%s %d%%", hc, c*100/len(recipes)))
		}
	}
	if len(mix) > 0 {
		parts = append(parts, strings.Join(mix, " "))
	}
	return strings.Join(parts, " | ")
}
