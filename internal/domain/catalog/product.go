package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ProductList is the opaque payload returned by the recommendation API.
// The pipeline never interprets product fields; it only needs to know
// whether anything matched and how to serialize the payload for the
// rerank prompt.
type ProductList struct {
	raw   json.RawMessage
	count int
}

// ProductListFromJSON parses a recommendation-API response body. A
// top-level array counts its elements; an object with a "data" array
// counts those; any other object is treated as a single opaque result.
func ProductListFromJSON(raw []byte) (ProductList, error) {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ProductList{}, fmt.Errorf("parse product payload: %w", err)
	}

	count := 0
	switch t := payload.(type) {
	case []any:
		count = len(t)
	case map[string]any:
		if data, ok := t["data"].([]any); ok {
			count = len(data)
		} else {
			count = 1
		}
	}

	return ProductList{raw: json.RawMessage(raw), count: count}, nil
}

// IsEmpty reports whether the payload contains no products.
func (p *ProductList) IsEmpty() bool { return p.count == 0 }

// Count returns the number of products in the payload.
func (p *ProductList) Count() int { return p.count }

// Serialized returns the indented JSON form used in the rerank prompt.
func (p *ProductList) Serialized() string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, p.raw, "", "    "); err != nil {
		return string(p.raw)
	}
	return buf.String()
}
