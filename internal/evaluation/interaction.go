package evaluation

import (
	"fmt"
	"strconv"
	"strings"

	"reciperag/internal/domain"
)

// SampleIndices selects a varied subset of a results file for the log.
var SampleIndices = []int{0, 1, 2, 3, 4, 6, 9, 13}

// LoggedRecipe is a recipe as shown in an interaction log.
type LoggedRecipe struct {
	Rank           int      `json:"rank"`
	Title          string   `json:"title"`
	Calories       *float64 `json:"calories"`
	Duration       *float64 `json:"duration"`
	RelevanceScore float64  `json:"relevance_score"`
}

// Interaction is one logged exchange.
type Interaction struct {
	ID       int            `json:"interaction_id"`
	Query    string         `json:"user_query"`
	Recipes  []LoggedRecipe `json:"retrieved_recipes"`
	Response string         `json:"assistant_response"`
}

// LogMetadata describes an interaction log.
type LogMetadata struct {
	TotalInteractions int    `json:"total_interactions"`
	Model             string `json:"model"`
	RetrievalMethod   string `json:"retrieval_method"`
}

// InteractionLog is a sample of answered queries for presentation.
type InteractionLog struct {
	Metadata     LogMetadata   `json:"metadata"`
	Interactions []Interaction `json:"interactions"`

	avgRetrieved float64
}

// BuildInteractionLog picks the answers at indices, ignoring indices past
// the end, and keeps the top three recipes of each.
func BuildInteractionLog(answers []domain.Answer, indices []int) InteractionLog {
	log := InteractionLog{
		Metadata:     LogMetadata{RetrievalMethod: "TF-IDF"},
		Interactions: []Interaction{},
	}
	if len(answers) > 0 {
		log.Metadata.Model = answers[0].Model
	}
	retrieved := 0
	for _, idx := range indices {
		if idx < 0 || idx >= len(answers) {
			continue
		}
		ans := answers[idx]
		it := Interaction{ID: len(log.Interactions) + 1, Query: ans.Query, Response: ans.Text, Recipes: []LoggedRecipe{}}
		for j, r := range ans.Recipes[:min(3, len(ans.Recipes))] {
			it.Recipes = append(it.Recipes, LoggedRecipe{
				Rank:           j + 1,
				Title:          r.Title,
				Calories:       r.Calories,
				Duration:       r.Duration,
				RelevanceScore: r.RelevanceScore,
			})
		}
		retrieved += ans.NumRetrieved
		log.Interactions = append(log.Interactions, it)
	}
	log.Metadata.TotalInteractions = len(log.Interactions)
	if n := len(log.Interactions); n > 0 {
		log.avgRetrieved = float64(retrieved) / float64(n)
	}
	return log
}

// Text renders the log for reading.
func (l InteractionLog) Text() string {
	var b strings.Builder
	b.WriteString(rule + "\nSAMPLE INTERACTION LOG\nRecipe Q&A Assistant with RAG\n" + rule + "\n\n")
	for _, it := range l.Interactions {
		fmt.Fprintf(&b, "%s\nInteraction %d\n%s\n\n", rule, it.ID, rule)
		fmt.Fprintf(&b, "USER:\n  %s\n\n", it.Query)
		b.WriteString("SYSTEM RETRIEVAL (Top 3 Recipes):\n")
		for _, r := range it.Recipes {
			title := domain.Recipe{Title: r.Title}.DisplayTitle()
			fmt.Fprintf(&b, "  %d. %s\n", r.Rank, title)
			fmt.Fprintf(&b, "     Calories: %s, Duration: %s min, Relevance: %.3f\n",
				optional(r.Calories), optional(r.Duration), r.RelevanceScore)
		}
		fmt.Fprintf(&b, "\nASSISTANT:\n  %s\n\n", it.Response)
	}
	fmt.Fprintf(&b, "\n%s\nSummary Statistics\n%s\n", rule, rule)
	fmt.Fprintf(&b, "Total interactions shown: %d\n", l.Metadata.TotalInteractions)
	fmt.Fprintf(&b, "Average recipes retrieved per query: %s\n", strconv.FormatFloat(l.avgRetrieved, 'f', -1, 64))
	fmt.Fprintf(&b, "LLM Model: %s\n", l.Metadata.Model)
	fmt.Fprintf(&b, "Retrieval Method: %s\n", l.Metadata.RetrievalMethod)
	b.WriteString(rule + "\n")
	return b.String()
}

func optional(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
