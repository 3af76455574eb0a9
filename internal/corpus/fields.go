package corpus

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Source datasets name the same attribute differently; the first alias
// present in a record wins.
var (
	idAliases          = []string{"recipe_id", "RecipeId", "id"}
	titleAliases       = []string{"title", "Name", "RecipeName"}
	tagsAliases        = []string{"tags", "Tags", "RecipeCategory"}
	ingredientsAliases = []string{"ingredients", "Ingredients", "RecipeIngredientParts"}
	durationAliases    = []string{"duration", "TotalTime", "CookTime", "PrepTime"}
	caloriesAliases    = []string{"calories", "Calories", "calories [cal]"}
	proteinAliases     = []string{"protein", "Protein", "ProteinContent"}
	sugarsAliases      = []string{"sugars", "Sugar", "SugarContent"}
	sodiumAliases      = []string{"sodium", "Sodium", "SodiumContent"}
)

var isoDuration = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// parseNumber coerces free text to a number. Anything unparsable, NaN or
// infinite is reported as missing.
func parseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// parseMinutes accepts plain numbers and ISO-8601 durations such as PT1H30M.
func parseMinutes(s string) *float64 {
	if v := parseNumber(s); v != nil {
		return v
	}
	m := isoDuration.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(s)))
	if m == nil || m[0] == "P" || m[0] == "PT" {
		return nil
	}
	var total float64
	for i, scale := range []float64{24 * 60, 60, 1, 1.0 / 60} {
		if m[i+1] == "" {
			continue
		}
		n, _ := strconv.ParseFloat(m[i+1], 64)
		total += n * scale
	}
	return &total
}

func validNumber(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
