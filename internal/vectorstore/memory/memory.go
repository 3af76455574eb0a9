package memory

import (
	"sort"

	"reciperag/internal/embedding/sparse"
	"reciperag/internal/vectorstore"
)

// Storage is an in-memory brute-force cosine ranker over L2-normalized
// document vectors. It is immutable after construction, so concurrent
// Search calls need no locking.
type Storage struct {
	vectors []sparse.Vector
}

// NewStorage wraps the document vectors. The slice is retained, not copied.
func NewStorage(vectors []sparse.Vector) *Storage {
	return &Storage{vectors: vectors}
}

// Search returns the topK documents most similar to query.
func (s *Storage) Search(query sparse.Vector, topK int) []vectorstore.Hit {
	return Rank(query, s.vectors, topK)
}

// Len returns the number of stored vectors.
func (s *Storage) Len() int { return len(s.vectors) }

// Rank scores every document by dot product with query (cosine similarity,
// since all vectors are normalized) and returns the topK in descending score
// order. Equal scores keep document order. topK <= 0 yields no hits and
// topK beyond the corpus size yields every document.
func Rank(query sparse.Vector, docs []sparse.Vector, topK int) []vectorstore.Hit {
	if topK <= 0 || len(docs) == 0 {
		return []vectorstore.Hit{}
	}
	hits := make([]vectorstore.Hit, len(docs))
	for i := range docs {
		hits[i] = vectorstore.Hit{Index: i, Score: clamp(query.Dot(docs[i]))}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if topK > len(hits) {
		topK = len(hits)
	}
	return hits[:topK]
}

// clamp absorbs rounding drift so scores stay within [0, 1].
func clamp(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
