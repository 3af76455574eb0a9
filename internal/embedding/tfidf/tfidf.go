package tfidf

import (
	"fmt"
	"math"
	"sort"

	"reciperag/internal/domain"
	"reciperag/internal/embedding/sparse"
)

var (
	// ErrEmptyCorpus is returned when Build receives no documents.
	ErrEmptyCorpus = fmt.Errorf("%w: empty corpus", domain.ErrIndexBuild)
	// ErrEmptyVocabulary is returned when no term survives filtering.
	ErrEmptyVocabulary = fmt.Errorf("%w: no terms left after stop-word and document-frequency filtering", domain.ErrIndexBuild)
)

// Options controls vocabulary selection.
type Options struct {
	// MaxFeatures caps the vocabulary size. Zero means DefaultMaxFeatures.
	MaxFeatures int
	// MinDF drops terms present in fewer documents. Zero means DefaultMinDF.
	MinDF int
	// NGramMax is the longest word n-gram emitted. Zero means DefaultNGramMax.
	NGramMax int
}

const (
	DefaultMaxFeatures = 5000
	DefaultMinDF       = 2
	DefaultNGramMax    = 2
)

// DefaultOptions mirrors the production retriever settings.
func DefaultOptions() Options {
	return Options{MaxFeatures: DefaultMaxFeatures, MinDF: DefaultMinDF, NGramMax: DefaultNGramMax}
}

func (o Options) withDefaults() Options {
	if o.MaxFeatures <= 0 {
		o.MaxFeatures = DefaultMaxFeatures
	}
	if o.MinDF <= 0 {
		o.MinDF = DefaultMinDF
	}
	if o.NGramMax <= 0 {
		o.NGramMax = DefaultNGramMax
	}
	return o
}

// Index is an immutable TF-IDF model fit over an ordered document collection.
// Row i of the document vectors corresponds to document i given to Build.
type Index struct {
	analyzer   *Analyzer
	vocabulary map[string]int
	terms      []string
	idf        []float64
	docs       []sparse.Vector
}

// Build fits the vocabulary and IDF weights and vectorizes every document.
//
// TF is the raw term count, IDF is ln((1+N)/(1+df)) + 1, and each row is
// L2-normalized. When more than MaxFeatures terms pass the MinDF filter the
// terms with the highest corpus frequency win; ties go to the higher document
// frequency, then to the lexicographically smaller term.
func Build(documents []string, opts Options) (*Index, error) {
	if len(documents) == 0 {
		return nil, ErrEmptyCorpus
	}
	opts = opts.withDefaults()
	an := NewAnalyzer(opts.NGramMax)

	docCounts := make([]map[string]int, len(documents))
	df := make(map[string]int)
	cf := make(map[string]int)
	for i, text := range documents {
		counts := make(map[string]int)
		for _, term := range an.Terms(text) {
			counts[term]++
		}
		for term, c := range counts {
			df[term]++
			cf[term] += c
		}
		docCounts[i] = counts
	}

	candidates := make([]string, 0, len(df))
	for term, n := range df {
		if n >= opts.MinDF {
			candidates = append(candidates, term)
		}
	}
	if len(candidates) == 0 {
		return nil, ErrEmptyVocabulary
	}
	if len(candidates) > opts.MaxFeatures {
		sort.Slice(candidates, func(i, j int) bool {
			a, b := candidates[i], candidates[j]
			if cf[a] != cf[b] {
				return cf[a] > cf[b]
			}
			if df[a] != df[b] {
				return df[a] > df[b]
			}
			return a < b
		})
		candidates = candidates[:opts.MaxFeatures]
	}
	// Columns are assigned in lexicographic order so the layout is stable.
	sort.Strings(candidates)

	ix := &Index{
		analyzer:   an,
		vocabulary: make(map[string]int, len(candidates)),
		terms:      candidates,
		idf:        make([]float64, len(candidates)),
		docs:       make([]sparse.Vector, len(documents)),
	}
	n := float64(len(documents))
	for col, term := range candidates {
		ix.vocabulary[term] = col
		ix.idf[col] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	for i, counts := range docCounts {
		ix.docs[i] = ix.weigh(counts)
	}
	return ix, nil
}

// Vectorize maps text into the fitted space. Out-of-vocabulary terms are
// ignored; a text with no known term yields the zero vector.
func (ix *Index) Vectorize(text string) sparse.Vector {
	counts := make(map[string]int)
	for _, term := range ix.analyzer.Terms(text) {
		if _, ok := ix.vocabulary[term]; ok {
			counts[term]++
		}
	}
	return ix.weigh(counts)
}

func (ix *Index) weigh(counts map[string]int) sparse.Vector {
	weights := make(map[int]float64, len(counts))
	for term, c := range counts {
		col, ok := ix.vocabulary[term]
		if !ok {
			continue
		}
		weights[col] = float64(c) * ix.idf[col]
	}
	v := sparse.FromCounts(weights)
	v.Normalize()
	return v
}

// Dimension returns the vocabulary size.
func (ix *Index) Dimension() int { return len(ix.terms) }

// Len returns the number of indexed documents.
func (ix *Index) Len() int { return len(ix.docs) }

// Documents returns the document vectors in corpus order. Callers must not
// modify them.
func (ix *Index) Documents() []sparse.Vector { return ix.docs }

// Terms returns the vocabulary in column order.
func (ix *Index) Terms() []string {
	out := make([]string, len(ix.terms))
	copy(out, ix.terms)
	return out
}

// Column returns the column of term and whether it is in the vocabulary.
func (ix *Index) Column(term string) (int, bool) {
	col, ok := ix.vocabulary[term]
	return col, ok
}

// IDF returns the inverse document frequency of a column.
func (ix *Index) IDF(col int) float64 { return ix.idf[col] }
