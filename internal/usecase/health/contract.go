package health

import (
	"context"

	"github.com/kloudstax/giftrec/internal/domain"
)

// VocabularyReader reports how many entries are loaded per category.
type VocabularyReader interface {
	Len(cat domain.Category) int
}

// ModelChecker checks model provider availability.
type ModelChecker interface {
	HealthCheck(ctx context.Context) error
}
