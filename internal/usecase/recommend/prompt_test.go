package recommend

import (
	"strings"
	"testing"
)

func TestBuildClassifyPrompt(t *testing.T) {
	got := buildClassifyPrompt("ATTRS", "OCCS", "RELS", "gift for my nephew")

	want := "Attributes:\nATTRS\nOccasions:\nOCCS\nRelations:\nRELS\nQuery: gift for my nephew"
	if got != want {
		t.Errorf("prompt = %q, want %q", got, want)
	}
}

func TestBuildRerankPrompt(t *testing.T) {
	got := buildRerankPrompt(`[{"id":"p1"}]`, "gift for my nephew")

	if !strings.HasPrefix(got, "Products list:\n") {
		t.Errorf("prompt missing product header: %q", got)
	}
	if !strings.HasSuffix(got, "Query: gift for my nephew") {
		t.Errorf("prompt missing query suffix: %q", got)
	}
}

// The query is inserted verbatim; template rendering must not interpret it.
func TestBuildClassifyPrompt_VerbatimQuery(t *testing.T) {
	query := `gift with "%s" and {weird} characters`
	got := buildClassifyPrompt("a", "o", "r", query)

	if !strings.Contains(got, query) {
		t.Errorf("query not inserted verbatim: %q", got)
	}
}
