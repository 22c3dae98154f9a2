package domain

import "encoding/json"

// Recommendation is the final pipeline result: the attribute names the
// classifier extracted plus the reranked product payload from stage 2.
type Recommendation struct {
	attributes []string
	response   json.RawMessage
}

// NewRecommendation creates a Recommendation.
func NewRecommendation(attributes []string, response json.RawMessage) Recommendation {
	if attributes == nil {
		attributes = []string{}
	}
	return Recommendation{attributes: attributes, response: response}
}

// Attributes returns the classified attribute names.
func (r *Recommendation) Attributes() []string { return r.attributes }

// Response returns the stage-2 structured output, verbatim.
func (r *Recommendation) Response() json.RawMessage { return r.response }
