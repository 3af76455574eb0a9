// Package evaluation measures retrieval quality and produces the offline
// reports: NDCG and recall, baseline comparisons and interaction logs.
package evaluation

import "math"

// IDSet is a set of recipe IDs.
type IDSet map[string]struct{}

// NewIDSet builds a set from ids.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// NDCGAtK is the normalized discounted cumulative gain of the first k
// retrieved IDs with binary relevance. The ideal ranking places
// min(|relevant|, k) relevant items at the top. Returns 0 when there is
// nothing relevant.
func NDCGAtK(relevant IDSet, retrieved []string, k int) float64 {
	top := head(retrieved, k)
	dcg := 0.0
	for i, id := range top {
		if relevant.Has(id) {
			dcg += 1 / math.Log2(float64(i+2))
		}
	}
	idcg := 0.0
	for i := 0; i < min(len(relevant), max(k, 0)); i++ {
		idcg += 1 / math.Log2(float64(i+2))
	}
	if idcg == 0 {
		return 0
	}
	return dcg / idcg
}

// RecallAtK is the fraction of relevant IDs found in the first k retrieved.
func RecallAtK(relevant IDSet, retrieved []string, k int) float64 {
	if len(relevant) == 0 {
		return 0
	}
	found := NewIDSet(head(retrieved, k)...)
	hits := 0
	for id := range relevant {
		if found.Has(id) {
			hits++
		}
	}
	return float64(hits) / float64(len(relevant))
}

func head(ids []string, k int) []string {
	if k <= 0 {
		return nil
	}
	if k > len(ids) {
		k = len(ids)
	}
	return ids[:k]
}

// Round rounds v to places decimals.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
