package giftrec

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatal("expected error for empty base URL")
	}
}

func TestRecommend_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/recommendations" {
			t.Errorf("path: got %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method: got %s", r.Method)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer secret" {
			t.Errorf("authorization: got %q", auth)
		}

		var req map[string]string
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req["query"] != "a mug for mom" {
			t.Errorf("query: got %q", req["query"])
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"attributes":["Cooking"],"response":{"top_products":[]}}`))
	}))
	defer srv.Close()

	client, err := New(srv.URL, WithAPIKey("secret"))
	if err != nil {
		t.Fatal(err)
	}

	rec, err := client.Recommend(context.Background(), "a mug for mom")
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if len(rec.Attributes) != 1 || rec.Attributes[0] != "Cooking" {
		t.Errorf("attributes: got %v", rec.Attributes)
	}
	if string(rec.Response) != `{"top_products":[]}` {
		t.Errorf("response: got %s", rec.Response)
	}
}

func TestRecommend_SentinelErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		payload string
		want    error
	}{
		{"no query", http.StatusBadRequest, `{"error":"No query provided."}`, ErrNoQuery},
		{"empty model response", http.StatusBadGateway, `{"error":"Empty response from the model."}`, ErrEmptyModelResponse},
		{"no products", http.StatusNotFound, `{"error":"No products found."}`, ErrNoProducts},
		{"unauthorized", http.StatusUnauthorized, `{"error":"invalid api key"}`, ErrUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.payload))
			}))
			defer srv.Close()

			client, _ := New(srv.URL)
			_, err := client.Recommend(context.Background(), "anything")
			if !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestRecommend_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"API request failed.","status_code":500,"response_text":"upstream exploded"}`))
	}))
	defer srv.Close()

	client, _ := New(srv.URL)
	_, err := client.Recommend(context.Background(), "anything")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.HTTPStatus != http.StatusBadGateway {
		t.Errorf("http status: got %d", apiErr.HTTPStatus)
	}
	if apiErr.UpstreamStatus != 500 {
		t.Errorf("upstream status: got %d", apiErr.UpstreamStatus)
	}
	if apiErr.ResponseText != "upstream exploded" {
		t.Errorf("response text: got %q", apiErr.ResponseText)
	}
}

func TestHealth_Degraded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("path: got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status":"degraded","checks":{"vocabulary":"error"}}`))
	}))
	defer srv.Close()

	client, _ := New(srv.URL)
	hs, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if hs.Status != "degraded" {
		t.Errorf("status: got %q", hs.Status)
	}
	if hs.Checks["vocabulary"] != "error" {
		t.Errorf("checks: got %v", hs.Checks)
	}
}

func TestRecommend_MetricsRegistered(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"attributes":[],"response":[]}`))
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	client, err := New(srv.URL, WithPrometheus(reg))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := client.Recommend(context.Background(), "q"); err != nil {
		t.Fatalf("recommend: %v", err)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "giftrec_sdk_operations_total" {
			found = true
		}
	}
	if !found {
		t.Error("expected giftrec_sdk_operations_total to be registered")
	}
}
