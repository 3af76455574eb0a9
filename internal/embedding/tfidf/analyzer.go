package tfidf

import (
	"regexp"
	"strings"
)

// Analyzer turns text into index terms: lowercase word tokens of two or more
// characters, stop words removed, then word n-grams from 1 up to ngramMax
// built over the remaining tokens.
type Analyzer struct {
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
	ngramMax     int
}

// NewAnalyzer creates an analyzer using the English stop-word list.
func NewAnalyzer(ngramMax int) *Analyzer {
	if ngramMax <= 0 {
		ngramMax = 1
	}
	return &Analyzer{
		tokenPattern: regexp.MustCompile(`[\p{L}\p{M}\p{N}_]{2,}`),
		stopwords:    EnglishStopwords(),
		ngramMax:     ngramMax,
	}
}

// Tokens returns the filtered unigram stream.
func (a *Analyzer) Tokens(text string) []string {
	raw := a.tokenPattern.FindAllString(strings.ToLower(text), -1)
	if len(raw) == 0 {
		return nil
	}
	out := raw[:0]
	for _, t := range raw {
		if _, isStop := a.stopwords[t]; isStop {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Terms returns all unigrams followed by every higher-order n-gram.
func (a *Analyzer) Terms(text string) []string {
	tokens := a.Tokens(text)
	if a.ngramMax == 1 || len(tokens) < 2 {
		return tokens
	}
	terms := make([]string, 0, len(tokens)*a.ngramMax)
	terms = append(terms, tokens...)
	for n := 2; n <= a.ngramMax && n <= len(tokens); n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}
