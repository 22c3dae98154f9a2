package vocab

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kloudstax/giftrec/internal/domain"
)

// Per-category file names, as produced by the vocabulary export job.
var (
	tableFiles = map[domain.Category]string{
		domain.CategoryAttribute:    "sqlout-attribute.json",
		domain.CategoryOccasion:     "sqlout-occasion.json",
		domain.CategoryRelationship: "sqlout-relationship.json",
	}
	textFiles = map[domain.Category]string{
		domain.CategoryAttribute:    "attributes.txt",
		domain.CategoryOccasion:     "occasions.txt",
		domain.CategoryRelationship: "relations.txt",
	}
)

// FileSource loads the vocabulary dataset from a local directory.
type FileSource struct {
	dir string
}

// NewFileSource creates a file-backed vocabulary source.
func NewFileSource(dir string) (*FileSource, error) {
	if dir == "" {
		return nil, fmt.Errorf("vocabulary directory is required")
	}
	return &FileSource{dir: dir}, nil
}

// Load reads the three lookup tables and three prompt text blocks.
func (s *FileSource) Load(_ context.Context) (Dataset, error) {
	ds := Dataset{
		Entries:    make(map[domain.Category][]domain.Entry, len(tableFiles)),
		PromptText: make(map[domain.Category]string, len(textFiles)),
	}

	for _, cat := range domain.Categories() {
		tablePath := filepath.Join(s.dir, tableFiles[cat])
		data, err := os.ReadFile(filepath.Clean(tablePath))
		if err != nil {
			return Dataset{}, fmt.Errorf("read %s table: %w", cat, err)
		}
		entries, err := DecodeTable(data)
		if err != nil {
			return Dataset{}, fmt.Errorf("decode %s table: %w", cat, err)
		}
		ds.Entries[cat] = entries

		textPath := filepath.Join(s.dir, textFiles[cat])
		text, err := os.ReadFile(filepath.Clean(textPath))
		if err != nil {
			return Dataset{}, fmt.Errorf("read %s prompt text: %w", cat, err)
		}
		ds.PromptText[cat] = strings.TrimRight(string(text), "\n")
	}

	return ds, nil
}

// flexID accepts both string and bare numeric ids in the exported tables.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*f = flexID(n.String())
	return nil
}

type entryDTO struct {
	ID   flexID `json:"id"`
	Name string `json:"name"`
}

// DecodeTable parses an exported id/name table into vocabulary entries,
// preserving file order. Rows without an id or name are skipped.
func DecodeTable(data []byte) ([]domain.Entry, error) {
	var rows []entryDTO
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}

	entries := make([]domain.Entry, 0, len(rows))
	for _, r := range rows {
		if r.ID == "" || r.Name == "" {
			continue
		}
		entries = append(entries, domain.Entry{ID: string(r.ID), Name: r.Name})
	}
	return entries, nil
}
