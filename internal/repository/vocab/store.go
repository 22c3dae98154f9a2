// Package vocab holds the in-memory vocabulary store: read-only name→id
// lookup tables and prompt text blocks, safe for concurrent readers.
package vocab

import (
	"github.com/kloudstax/giftrec/internal/domain"
	vocabsrc "github.com/kloudstax/giftrec/internal/vocab"
)

// Store is the immutable in-memory vocabulary dataset.
type Store struct {
	entries map[domain.Category][]domain.Entry
	prompt  map[domain.Category]string
}

// NewStore builds a store from a loaded dataset.
func NewStore(ds vocabsrc.Dataset) *Store {
	entries := make(map[domain.Category][]domain.Entry, len(ds.Entries))
	for cat, rows := range ds.Entries {
		entries[cat] = append([]domain.Entry(nil), rows...)
	}
	prompt := make(map[domain.Category]string, len(ds.PromptText))
	for cat, text := range ds.PromptText {
		prompt[cat] = text
	}
	return &Store{entries: entries, prompt: prompt}
}

// LookupIDs maps names to ids within a category. Matching is exact and
// case-sensitive; names with no match contribute nothing. Output order
// follows input name order, then table order, and a name appearing more
// than once in the table resolves to every matching id.
func (s *Store) LookupIDs(names []string, cat domain.Category) []string {
	ids := make([]string, 0, len(names))
	table := s.entries[cat]
	for _, name := range names {
		for _, e := range table {
			if e.Name == name {
				ids = append(ids, e.ID)
			}
		}
	}
	return ids
}

// PromptText returns the prose block describing a category's vocabulary.
func (s *Store) PromptText(cat domain.Category) string {
	return s.prompt[cat]
}

// Len returns the number of entries loaded for a category.
func (s *Store) Len(cat domain.Category) int {
	return len(s.entries[cat])
}
