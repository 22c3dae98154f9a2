// Package vocab loads the controlled-vocabulary dataset: per category, an
// id/name lookup table and the prose text block interpolated into the
// classification prompt. The dataset is loaded once at process start and
// is immutable afterwards.
package vocab

import (
	"context"

	"github.com/kloudstax/giftrec/internal/domain"
)

// Dataset is the full vocabulary payload for all three categories.
type Dataset struct {
	Entries    map[domain.Category][]domain.Entry
	PromptText map[domain.Category]string
}

// Source loads the vocabulary dataset from a backing store.
type Source interface {
	Load(ctx context.Context) (Dataset, error)
}
