// Package recommend orchestrates the two-stage recommendation pipeline:
// classify the query against the vocabularies, resolve names to ids,
// search the product catalog, and rerank the results with a second model
// call. One request is one sequential chain; nothing is retried.
package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/kloudstax/giftrec/internal/domain"
	"github.com/kloudstax/giftrec/internal/domain/catalog"
	"github.com/kloudstax/giftrec/internal/domain/classification"
)

// Service runs the classify → resolve → search → rerank pipeline.
type Service struct {
	vocab    VocabularyStore
	model    Generator
	products ProductSearcher
}

// New creates a recommendation service.
func New(vocab VocabularyStore, model Generator, products ProductSearcher) *Service {
	return &Service{vocab: vocab, model: model, products: products}
}

// Recommend processes one gift query end to end.
func (s *Service) Recommend(ctx context.Context, query string) (domain.Recommendation, error) {
	if strings.TrimSpace(query) == "" {
		return domain.Recommendation{}, domain.ErrNoQuery
	}

	cls, err := s.classify(ctx, query)
	if err != nil {
		return domain.Recommendation{}, err
	}

	filter := s.resolve(cls)

	list, err := s.products.Search(ctx, filter)
	if err != nil {
		return domain.Recommendation{}, fmt.Errorf("search products: %w", err)
	}
	if list.IsEmpty() {
		return domain.Recommendation{}, domain.ErrNoProducts
	}

	response, err := s.rerank(ctx, &list, query)
	if err != nil {
		return domain.Recommendation{}, err
	}

	return domain.NewRecommendation(cls.Attributes(), response), nil
}

// classify runs the stage-1 model call and parses its output.
func (s *Service) classify(ctx context.Context, query string) (classification.Classification, error) {
	prompt := buildClassifyPrompt(
		s.vocab.PromptText(domain.CategoryAttribute),
		s.vocab.PromptText(domain.CategoryOccasion),
		s.vocab.PromptText(domain.CategoryRelationship),
		query,
	)

	ctx = domain.ContextWithStage(ctx, domain.StageClassify)
	text, err := s.model.Generate(ctx, classifySystemInstruction, prompt)
	if err != nil {
		return classification.Classification{}, fmt.Errorf("classify query: %w", err)
	}

	return ParseClassification(text)
}

// resolve maps classified names to ids. Names without a vocabulary match
// are dropped silently; resolution itself never fails.
func (s *Service) resolve(cls classification.Classification) catalog.Filter {
	return catalog.NewFilter(
		s.vocab.LookupIDs(cls.Attributes(), domain.CategoryAttribute),
		s.vocab.LookupIDs(cls.Occasions(), domain.CategoryOccasion),
		s.vocab.LookupIDs(cls.Relations(), domain.CategoryRelationship),
		cls.PriceRange(),
	)
}

// rerank runs the stage-2 model call against the product list.
func (s *Service) rerank(ctx context.Context, list *catalog.ProductList, query string) ([]byte, error) {
	prompt := buildRerankPrompt(list.Serialized(), query)

	ctx = domain.ContextWithStage(ctx, domain.StageRerank)
	text, err := s.model.Generate(ctx, rerankSystemInstruction, prompt)
	if err != nil {
		return nil, fmt.Errorf("rerank products: %w", err)
	}

	return ParseRerank(text)
}
