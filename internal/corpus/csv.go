package corpus

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"reciperag/internal/domain"
)

// ParseCSV decodes a CSV document whose first row names the columns.
func ParseCSV(data []byte) ([]domain.Recipe, error) {
	if err := checkEncoding(data); err != nil {
		return nil, err
	}
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty CSV", domain.ErrLoad)
		}
		return nil, fmt.Errorf("%w: csv header: %w", domain.ErrLoad, err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}

	var out []domain.Recipe
	for line := 2; ; line++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: csv line %d: %w", domain.ErrLoad, line, err)
		}
		get := func(aliases []string) string {
			for _, a := range aliases {
				if i, ok := cols[a]; ok {
					if i < len(row) {
						return strings.TrimSpace(row[i])
					}
					return ""
				}
			}
			return ""
		}
		out = append(out, domain.Recipe{
			ID:          get(idAliases),
			Title:       get(titleAliases),
			Tags:        get(tagsAliases),
			Ingredients: get(ingredientsAliases),
			Duration:    parseMinutes(get(durationAliases)),
			Calories:    parseNumber(get(caloriesAliases)),
			Protein:     parseNumber(get(proteinAliases)),
			Sugars:      parseNumber(get(sugarsAliases)),
			Sodium:      parseNumber(get(sodiumAliases)),
		})
	}
	return out, nil
}
