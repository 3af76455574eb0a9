package vectorstore

import "reciperag/internal/embedding/sparse"

// Hit is a ranked document position with its similarity score.
type Hit struct {
	Index int
	Score float64
}

// Searcher ranks stored document vectors against a query vector.
type Searcher interface {
	Search(query sparse.Vector, topK int) []Hit
	Len() int
}
