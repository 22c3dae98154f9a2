package recommend

import (
	"encoding/json"
	"strings"

	"github.com/kloudstax/giftrec/internal/domain"
	"github.com/kloudstax/giftrec/internal/domain/classification"
)

const fence = "```"

// Normalize cleans raw model output into a JSON candidate: smart double
// quotes become plain quotes, a triple-backtick fenced block is unwrapped
// (dropping its language tag), and surrounding whitespace is trimmed.
func Normalize(raw string) string {
	s := strings.NewReplacer("“", `"`, "”", `"`).Replace(raw)
	s = unwrapFence(s)
	return strings.TrimSpace(s)
}

// unwrapFence extracts the body of the first fenced code block, if any.
// A language tag on the opening fence line (typically "json") is dropped.
func unwrapFence(s string) string {
	start := strings.Index(s, fence)
	if start < 0 {
		return s
	}
	body := s[start+len(fence):]
	if end := strings.Index(body, fence); end >= 0 {
		body = body[:end]
	}
	if tag, rest, ok := strings.Cut(body, "\n"); ok && isLanguageTag(tag) {
		return rest
	}
	return body
}

func isLanguageTag(line string) bool {
	tag := strings.ToLower(strings.TrimSpace(line))
	return tag == "" || tag == "json"
}

// classificationDTO mirrors the stage-1 JSON contract. Absent keys decode
// to their zero values; price_range stays raw for canonical coercion.
type classificationDTO struct {
	Attributes []string `json:"attributes"`
	Occasion   []string `json:"occasion"`
	Relation   []string `json:"relation"`
	PriceRange []any    `json:"price_range"`
}

// ParseClassification normalizes and decodes stage-1 model output.
// Malformed JSON surfaces a domain.ParseError carrying the text.
func ParseClassification(raw string) (classification.Classification, error) {
	text := Normalize(raw)

	var dto classificationDTO
	if err := json.Unmarshal([]byte(text), &dto); err != nil {
		return classification.Classification{}, domain.NewParseError(text, err)
	}

	return classification.New(
		dto.Attributes,
		dto.Occasion,
		dto.Relation,
		classification.PriceRangeFrom(dto.PriceRange),
	), nil
}

// ParseRerank normalizes and validates stage-2 model output, returning it
// as opaque JSON. Malformed JSON surfaces a domain.ParseError.
func ParseRerank(raw string) (json.RawMessage, error) {
	text := Normalize(raw)

	var probe any
	if err := json.Unmarshal([]byte(text), &probe); err != nil {
		return nil, domain.NewParseError(text, err)
	}
	return json.RawMessage(text), nil
}
