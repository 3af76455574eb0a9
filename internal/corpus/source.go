package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"reciperag/internal/domain"
)

// Source yields raw recipe records.
type Source interface {
	Records() ([]domain.Recipe, error)
}

// Records is an in-memory Source.
type Records []domain.Recipe

// Records returns a copy of the slice.
func (r Records) Records() ([]domain.Recipe, error) {
	out := make([]domain.Recipe, len(r))
	copy(out, r)
	return out, nil
}

// File is a Source backed by a JSON or CSV file, chosen by extension.
type File string

// Records reads and decodes the file.
func (f File) Records() ([]domain.Recipe, error) {
	return LoadFile(string(f))
}

// LoadFile decodes a .csv file with a header row, or anything else as a JSON
// array of records.
func LoadFile(path string) ([]domain.Recipe, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrLoad, path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return ParseCSV(data)
	}
	return ParseJSON(data)
}
