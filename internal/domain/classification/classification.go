// Package classification models the stage-1 extraction result: vocabulary
// names picked by the model plus an optional price range.
package classification

// Classification is a validated stage-1 model extraction.
type Classification struct {
	attributes []string
	occasions  []string
	relations  []string
	priceRange PriceRange
}

// New creates a Classification. Nil name slices are normalized to empty.
func New(attributes, occasions, relations []string, priceRange PriceRange) Classification {
	return Classification{
		attributes: normalize(attributes),
		occasions:  normalize(occasions),
		relations:  normalize(relations),
		priceRange: priceRange,
	}
}

// Attributes returns the extracted attribute names.
func (c *Classification) Attributes() []string { return c.attributes }

// Occasions returns the extracted occasion names.
func (c *Classification) Occasions() []string { return c.occasions }

// Relations returns the extracted relationship names.
func (c *Classification) Relations() []string { return c.relations }

// PriceRange returns the extracted price bounds.
func (c *Classification) PriceRange() PriceRange { return c.priceRange }

func normalize(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}
