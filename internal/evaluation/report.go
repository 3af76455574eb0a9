package evaluation

import (
	"fmt"
	"strings"

	"reciperag/internal/domain"
)

// DefaultK is the cutoff used for offline metrics.
const DefaultK = 3

// QueryMetrics are the metrics of one evaluated query.
type QueryMetrics struct {
	Query        string  `json:"query"`
	NDCG         float64 `json:"ndcg_at_k"`
	Recall       float64 `json:"recall_at_k"`
	NumRelevant  int     `json:"num_relevant"`
	NumRetrieved int     `json:"num_retrieved"`
}

// Summary aggregates QueryMetrics.
type Summary struct {
	AvgNDCG    float64 `json:"avg_ndcg_at_k"`
	AvgRecall  float64 `json:"avg_recall_at_k"`
	NumQueries int     `json:"num_queries"`
	K          int     `json:"k"`
}

// Report is the serialized evaluation outcome.
type Report struct {
	Summary  Summary        `json:"summary"`
	PerQuery []QueryMetrics `json:"per_query_metrics"`
}

// Evaluate scores every answer against the relevance heuristic. Queries
// with no relevant candidate are skipped. Values are rounded to three
// decimals; averages are taken before rounding.
func Evaluate(answers []domain.Answer, k int, threshold float64) Report {
	rep := Report{Summary: Summary{K: k}, PerQuery: []QueryMetrics{}}
	var sumNDCG, sumRecall float64
	for _, ans := range answers {
		relevant := JudgeRelevant(ans.Query, ans.Recipes, threshold)
		if len(relevant) == 0 {
			continue
		}
		ids := make([]string, len(ans.Recipes))
		for i, r := range ans.Recipes {
			ids[i] = r.ID
		}
		ndcg := NDCGAtK(relevant, ids, k)
		recall := RecallAtK(relevant, ids, k)
		sumNDCG += ndcg
		sumRecall += recall
		rep.PerQuery = append(rep.PerQuery, QueryMetrics{
			Query:        ans.Query,
			NDCG:         Round(ndcg, 3),
			Recall:       Round(recall, 3),
			NumRelevant:  len(relevant),
			NumRetrieved: len(ids),
		})
	}
	if n := len(rep.PerQuery); n > 0 {
		rep.Summary.NumQueries = n
		rep.Summary.AvgNDCG = Round(sumNDCG/float64(n), 3)
		rep.Summary.AvgRecall = Round(sumRecall/float64(n), 3)
	}
	return rep
}

// Band is a qualitative reading of a metric in [0,1].
type Band string

const (
	BandExcellent Band = "excellent"
	BandGood      Band = "good"
	BandFair      Band = "fair"
	BandPoor      Band = "poor"
)

// Interpret maps a score to its band.
func Interpret(score float64) Band {
	switch {
	case score >= 0.8:
		return BandExcellent
	case score >= 0.6:
		return BandGood
	case score >= 0.4:
		return BandFair
	default:
		return BandPoor
	}
}

var ndcgNotes = map[Band]string{
	BandExcellent: "retrieval is highly effective",
	BandGood:      "retrieval performs well",
	BandFair:      "retrieval is acceptable but could improve",
	BandPoor:      "retrieval needs improvement",
}

var recallNotes = map[Band]string{
	BandExcellent: "most relevant recipes are retrieved",
	BandGood:      "majority of relevant recipes retrieved",
	BandFair:      "some relevant recipes retrieved",
	BandPoor:      "few relevant recipes retrieved",
}

// Interpretation renders a human-readable reading of the summary.
func (r Report) Interpretation() string {
	var b strings.Builder
	nb, rb := Interpret(r.Summary.AvgNDCG), Interpret(r.Summary.AvgRecall)
	fmt.Fprintf(&b, "NDCG@%d:   %.3f  %s: %s\n", r.Summary.K, r.Summary.AvgNDCG, nb, ndcgNotes[nb])
	fmt.Fprintf(&b, "Recall@%d: %.3f  %s: %s\n", r.Summary.K, r.Summary.AvgRecall, rb, recallNotes[rb])
	fmt.Fprintf(&b, "Queries evaluated: %d\n", r.Summary.NumQueries)
	return b.String()
}
