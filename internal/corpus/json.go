package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"reciperag/internal/domain"
)

// ParseJSON decodes a JSON array of recipe objects whose field names may be
// any of the known aliases. Bare NaN and Infinity literals, as written by
// some data tools, are read as null.
func ParseJSON(data []byte) ([]domain.Recipe, error) {
	root, err := ParseArray(data)
	if err != nil {
		return nil, err
	}
	var out []domain.Recipe
	bad, pos := -1, 0
	root.ForEach(func(_, rec gjson.Result) bool {
		if !rec.IsObject() {
			bad = pos
			return false
		}
		out = append(out, recipeFromJSON(rec.Map()))
		pos++
		return true
	})
	if bad >= 0 {
		return nil, fmt.Errorf("%w: element %d is not an object", domain.ErrLoad, bad)
	}
	return out, nil
}

// ParseArray validates data as a JSON array, reading non-finite number
// literals as null.
func ParseArray(data []byte) (gjson.Result, error) {
	if err := checkEncoding(data); err != nil {
		return gjson.Result{}, err
	}
	data = sanitizeNonFinite(data)
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, fmt.Errorf("%w: malformed JSON", domain.ErrLoad)
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return gjson.Result{}, fmt.Errorf("%w: expected a JSON array of records", domain.ErrLoad)
	}
	return root, nil
}

func checkEncoding(data []byte) error {
	if !utf8.Valid(data) {
		return fmt.Errorf("%w: input is not valid UTF-8", domain.ErrLoad)
	}
	return nil
}

// DecodeRecipe reads one recipe object, keeping any derived fields it
// already carries and deriving the missing ones.
func DecodeRecipe(rec gjson.Result) domain.Recipe {
	r := recipeFromJSON(rec.Map())
	if hc := rec.Get("health_category"); hc.Type == gjson.String {
		r.HealthCategory = domain.HealthCategory(hc.Str)
	} else {
		r.HealthCategory = domain.CategorizeCalories(r.Calories)
	}
	if st := rec.Get("searchable_text"); st.Type == gjson.String {
		r.SearchableText = st.Str
	} else {
		r.SearchableText = r.BuildSearchableText()
	}
	return r
}

func recipeFromJSON(fields map[string]gjson.Result) domain.Recipe {
	return domain.Recipe{
		ID:          jsonText(fields, idAliases),
		Title:       jsonText(fields, titleAliases),
		Tags:        jsonText(fields, tagsAliases),
		Ingredients: jsonText(fields, ingredientsAliases),
		Duration:    jsonMinutes(fields, durationAliases),
		Calories:    jsonNumber(fields, caloriesAliases),
		Protein:     jsonNumber(fields, proteinAliases),
		Sugars:      jsonNumber(fields, sugarsAliases),
		Sodium:      jsonNumber(fields, sodiumAliases),
	}
}

func lookup(fields map[string]gjson.Result, aliases []string) (gjson.Result, bool) {
	for _, a := range aliases {
		if v, ok := fields[a]; ok {
			return v, true
		}
	}
	return gjson.Result{}, false
}

func jsonText(fields map[string]gjson.Result, aliases []string) string {
	v, ok := lookup(fields, aliases)
	if !ok || v.Type == gjson.Null {
		return ""
	}
	if v.IsArray() {
		parts := make([]string, 0)
		for _, e := range v.Array() {
			if s := strings.TrimSpace(e.String()); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	}
	return strings.TrimSpace(v.String())
}

func jsonNumber(fields map[string]gjson.Result, aliases []string) *float64 {
	v, ok := lookup(fields, aliases)
	if !ok {
		return nil
	}
	switch v.Type {
	case gjson.Number:
		return validNumber(v.Float())
	case gjson.String:
		return parseNumber(v.Str)
	default:
		return nil
	}
}

func jsonMinutes(fields map[string]gjson.Result, aliases []string) *float64 {
	v, ok := lookup(fields, aliases)
	if !ok {
		return nil
	}
	switch v.Type {
	case gjson.Number:
		return validNumber(v.Float())
	case gjson.String:
		return parseMinutes(v.Str)
	default:
		return nil
	}
}

// sanitizeNonFinite replaces NaN, Infinity and -Infinity tokens outside
// string literals with null.
func sanitizeNonFinite(data []byte) []byte {
	var out []byte
	inString, escaped := false, false
	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			if out != nil {
				out = append(out, c)
			}
			continue
		}
		if c == '"' {
			inString = true
		}
		var token string
		for _, t := range []string{"NaN", "-Infinity", "Infinity"} {
			if bytes.HasPrefix(data[i:], []byte(t)) {
				token = t
				break
			}
		}
		if token == "" {
			if out != nil {
				out = append(out, c)
			}
			continue
		}
		if out == nil {
			out = append(make([]byte, 0, len(data)), data[:i]...)
		}
		out = append(out, "null"...)
		i += len(token) - 1
	}
	if out == nil {
		return data
	}
	return out
}

// WriteJSON writes recipes as an indented canonical JSON array, creating
// parent directories as needed.
func WriteJSON(path string, recipes []domain.Recipe) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(recipes, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
