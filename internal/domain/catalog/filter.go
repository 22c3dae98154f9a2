// Package catalog models the recommendation-API side of the pipeline: the
// derived search filter and the opaque product payload it returns.
package catalog

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/kloudstax/giftrec/internal/domain/classification"
)

// Filter is the product-search filter derived from a resolved classification.
type Filter struct {
	attributeIDs    []string
	occasionIDs     []string
	relationshipIDs []string
	price           classification.PriceRange
}

// NewFilter creates a Filter. ID order is preserved as resolved.
func NewFilter(attributeIDs, occasionIDs, relationshipIDs []string, price classification.PriceRange) Filter {
	return Filter{
		attributeIDs:    attributeIDs,
		occasionIDs:     occasionIDs,
		relationshipIDs: relationshipIDs,
		price:           price,
	}
}

// AttributeIDs returns the resolved attribute ids.
func (f *Filter) AttributeIDs() []string { return f.attributeIDs }

// OccasionIDs returns the resolved occasion ids.
func (f *Filter) OccasionIDs() []string { return f.occasionIDs }

// RelationshipIDs returns the resolved relationship ids.
func (f *Filter) RelationshipIDs() []string { return f.relationshipIDs }

// Price returns the minor-unit price bounds.
func (f *Filter) Price() classification.PriceRange { return f.price }

// QueryValues renders the filter as recommendation-API query parameters:
// isApplyFilter is always true, attributeIds is a single comma-joined
// parameter, occasionId and relationshipId repeat per id in resolution
// order, and the price bounds appear only when present.
func (f *Filter) QueryValues() url.Values {
	v := url.Values{}
	v.Set("isApplyFilter", "true")
	if minCents, ok := f.price.Min(); ok {
		v.Set("minPrice", strconv.Itoa(minCents))
	}
	if maxCents, ok := f.price.Max(); ok {
		v.Set("maxPrice", strconv.Itoa(maxCents))
	}
	v.Set("attributeIds", strings.Join(f.attributeIDs, ","))
	for _, id := range f.occasionIDs {
		v.Add("occasionId", id)
	}
	for _, id := range f.relationshipIDs {
		v.Add("relationshipId", id)
	}
	return v
}
