package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// HealthCategory is an ordinal label derived from a recipe's calories.
type HealthCategory string

const (
	HealthUnknown         HealthCategory = ""
	HealthLowCalorie      HealthCategory = "low_calorie"
	HealthModerate        HealthCategory = "moderate"
	HealthHighCalorie     HealthCategory = "high_calorie"
	HealthVeryHighCalorie HealthCategory = "very_high_calorie"
)

// CategorizeCalories buckets calories into [0,200), [200,400), [400,600)
// and [600,+inf). Missing or negative values are HealthUnknown.
func CategorizeCalories(calories *float64) HealthCategory {
	if calories == nil || *calories < 0 {
		return HealthUnknown
	}
	switch c := *calories; {
	case c < 200:
		return HealthLowCalorie
	case c < 400:
		return HealthModerate
	case c < 600:
		return HealthHighCalorie
	default:
		return HealthVeryHighCalorie
	}
}

// Recipe is the canonical recipe record. Numeric fields are nil when the
// source value was absent or not a number.
type Recipe struct {
	ID             string         `json:"recipe_id"`
	Title          string         `json:"title"`
	Tags           string         `json:"tags,omitempty"`
	Ingredients    string         `json:"ingredients,omitempty"`
	Duration       *float64       `json:"duration"`
	Calories       *float64       `json:"calories"`
	Protein        *float64       `json:"protein"`
	Sugars         *float64       `json:"sugars"`
	Sodium         *float64       `json:"sodium"`
	HealthCategory HealthCategory `json:"health_category,omitempty"`
	SearchableText string         `json:"searchable_text"`
}

// BuildSearchableText joins title, tags and ingredients, skipping empty fields.
func (r Recipe) BuildSearchableText() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{r.Title, r.Tags, r.Ingredients} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

var titleCaser = cases.Title(language.English)

// DisplayTitle returns the title in title case for presentation.
func (r Recipe) DisplayTitle() string {
	return titleCaser.String(r.Title)
}

// RankedResult is a recipe decorated with its cosine similarity to a query.
type RankedResult struct {
	Recipe
	RelevanceScore float64 `json:"relevance_score"`
}

// Float returns a pointer to v. Handy for building records in code.
func Float(v float64) *float64 { return &v }
