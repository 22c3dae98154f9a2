package toandfrom

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/kloudstax/giftrec/internal/domain"
	"github.com/kloudstax/giftrec/internal/domain/catalog"
	"github.com/kloudstax/giftrec/internal/domain/classification"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := New(Config{
		BaseURL:  srv.URL,
		Revision: "2024-05-23",
		Logger:   zap.NewNop(),
	})
	return client, srv
}

func TestSearch_BuildsFilteredRequest(t *testing.T) {
	var gotQuery map[string][]string
	var gotRevision string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotRevision = r.Header.Get("revision")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"p1"}]`))
	})

	filter := catalog.NewFilter(
		[]string{"a1", "a2"},
		[]string{"o1"},
		[]string{"r1", "r2"},
		classification.NewPriceRange(2000, 4000),
	)

	list, err := client.Search(context.Background(), filter)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if list.Count() != 1 {
		t.Fatalf("count = %d, want 1", list.Count())
	}

	if got := gotQuery["isApplyFilter"]; len(got) != 1 || got[0] != "true" {
		t.Errorf("isApplyFilter = %v", got)
	}
	if got := gotQuery["attributeIds"]; len(got) != 1 || got[0] != "a1,a2" {
		t.Errorf("attributeIds = %v", got)
	}
	if got := gotQuery["relationshipId"]; len(got) != 2 || got[0] != "r1" || got[1] != "r2" {
		t.Errorf("relationshipId = %v", got)
	}
	if got := gotQuery["minPrice"]; len(got) != 1 || got[0] != "2000" {
		t.Errorf("minPrice = %v", got)
	}
	if gotRevision != "2024-05-23" {
		t.Errorf("revision header = %q", gotRevision)
	}
}

func TestSearch_Non2xxIsUpstreamError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("upstream exploded"))
	})

	_, err := client.Search(context.Background(), catalog.Filter{})

	var ue *domain.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if ue.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", ue.StatusCode)
	}
	if ue.Body != "upstream exploded" {
		t.Errorf("body = %q", ue.Body)
	}
}

func TestSearch_MalformedBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})

	if _, err := client.Search(context.Background(), catalog.Filter{}); err == nil {
		t.Fatal("expected error for malformed body")
	}
}

func TestNew_Defaults(t *testing.T) {
	client := New(Config{Logger: zap.NewNop()})
	if client.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q", client.baseURL)
	}
	if client.revision != DefaultRevision {
		t.Errorf("revision = %q", client.revision)
	}
	if client.httpClient.Timeout != DefaultTimeout {
		t.Errorf("timeout = %v", client.httpClient.Timeout)
	}
}
