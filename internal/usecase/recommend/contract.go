package recommend

import (
	"context"

	"github.com/kloudstax/giftrec/internal/domain"
	"github.com/kloudstax/giftrec/internal/domain/catalog"
)

// Generator is a generative-text model invoked with a system instruction
// and a prompt. Implementations return domain.ErrEmptyModelResponse when
// the model produces no text.
type Generator interface {
	Generate(ctx context.Context, systemInstruction, prompt string) (string, error)
}

// ProductSearcher runs a filtered search against the recommendation API.
type ProductSearcher interface {
	Search(ctx context.Context, filter catalog.Filter) (catalog.ProductList, error)
}

// VocabularyStore resolves classified names to ids and supplies the
// prompt text blocks for each category.
type VocabularyStore interface {
	LookupIDs(names []string, cat domain.Category) []string
	PromptText(cat domain.Category) string
}
