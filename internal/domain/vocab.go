package domain

// Category identifies one of the three controlled vocabularies.
type Category string

const (
	// CategoryAttribute covers product attributes (interests, styles).
	CategoryAttribute Category = "attribute"
	// CategoryOccasion covers gifting occasions.
	CategoryOccasion Category = "occasion"
	// CategoryRelationship covers giver/recipient relationships.
	CategoryRelationship Category = "relationship"
)

// Categories lists every vocabulary category in canonical order.
func Categories() []Category {
	return []Category{CategoryAttribute, CategoryOccasion, CategoryRelationship}
}

// Entry is a single vocabulary row mapping a human-readable name to the
// opaque identifier the recommendation API filters on. Names are not
// guaranteed unique within a category; lookups collect every match.
type Entry struct {
	ID   string
	Name string
}
