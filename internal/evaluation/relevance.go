package evaluation

import (
	"strings"

	"reciperag/internal/domain"
)

// DefaultThreshold is the minimum relevance score for a candidate to count
// as relevant.
const DefaultThreshold = 0.15

var queryStopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "me": {}, "show": {}, "give": {},
	"list": {}, "what": {}, "is": {}, "with": {}, "for": {},
}

// Keywords splits a query on whitespace, lowercased, minus a small list of
// filler words. Duplicates are removed; order follows first occurrence.
func Keywords(query string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if _, stop := queryStopwords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// JudgeRelevant labels candidates as relevant when their title or tags
// contain at least one query keyword and their score reaches threshold.
// It approximates human labels for offline metrics and says nothing about
// whether a ranking is correct.
func JudgeRelevant(query string, candidates []domain.RankedResult, threshold float64) IDSet {
	keywords := Keywords(query)
	relevant := make(IDSet)
	for _, c := range candidates {
		if c.RelevanceScore < threshold {
			continue
		}
		text := strings.ToLower(c.Title + " " + c.Tags)
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				relevant[c.ID] = struct{}{}
				break
			}
		}
	}
	return relevant
}
