package corpus

import (
	"math/rand/v2"
	"sort"
	"strings"

	"reciperag/internal/domain"
)

// Normalize lowercases and trims the text fields, as the prepared dataset
// stores them.
func Normalize(recipes []domain.Recipe) []domain.Recipe {
	out := make([]domain.Recipe, len(recipes))
	for i, r := range recipes {
		r.Title = strings.ToLower(strings.TrimSpace(r.Title))
		r.Tags = strings.ToLower(strings.TrimSpace(r.Tags))
		r.Ingredients = strings.ToLower(strings.TrimSpace(r.Ingredients))
		out[i] = r
	}
	return out
}

// Sample picks n records with a seeded generator and returns them in their
// original order. n <= 0 or n >= len(recipes) returns everything.
func Sample(recipes []domain.Recipe, n int, seed uint64) []domain.Recipe {
	if n <= 0 || n >= len(recipes) {
		return recipes
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	picked := rng.Perm(len(recipes))[:n]
	sort.Ints(picked)
	out := make([]domain.Recipe, n)
	for i, idx := range picked {
		out[i] = recipes[idx]
	}
	return out
}
