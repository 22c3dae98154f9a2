// Package chi is the HTTP transport: request decoding, error-to-status
// mapping, and the legacy response payload shapes of the original
// cloud-function deployment.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kloudstax/giftrec/internal/domain"
	healthuc "github.com/kloudstax/giftrec/internal/usecase/health"
)

// Recommender runs the recommendation pipeline.
type Recommender interface {
	Recommend(ctx context.Context, query string) (domain.Recommendation, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Server implements the HTTP API.
type Server struct {
	recommender Recommender
	health      HealthChecker
	logger      *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(recommender Recommender, health HealthChecker, logger *zap.Logger) *Server {
	return &Server{recommender: recommender, health: health, logger: logger}
}

// Register mounts all routes on the router. The recommendation endpoint
// is also mounted at the root for parity with the original single-function
// deployment.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	for _, path := range []string{"/", "/v1/recommendations"} {
		r.Get(path, s.Recommend)
		r.Post(path, s.Recommend)
	}
}

// recommendRequest is the POST body shape.
type recommendRequest struct {
	Query string `json:"query"`
}

// recommendationResponse is the success payload.
type recommendationResponse struct {
	Attributes []string        `json:"attributes"`
	Response   json.RawMessage `json:"response"`
}

// errorResponse keeps the error payload vocabulary of the original
// deployment, with HTTP status codes layered on top.
type errorResponse struct {
	Error        string `json:"error"`
	Details      string `json:"details,omitempty"`
	StatusCode   int    `json:"status_code,omitempty"`
	ResponseText string `json:"response_text,omitempty"`
}

// Recommend handles GET and POST recommendation requests. The query comes
// from the JSON body field "query" or, failing that, the query parameter.
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	query := extractQuery(r)

	rec, err := s.recommender.Recommend(r.Context(), query)
	if err != nil {
		s.writePipelineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recommendationResponse{
		Attributes: rec.Attributes(),
		Response:   rec.Response(),
	})
}

// extractQuery pulls the query from the body (POST) or the URL parameter.
// A malformed body is not an error by itself; the parameter still counts.
func extractQuery(r *http.Request) string {
	if r.Method == http.MethodPost && r.Body != nil {
		var req recommendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.Query != "" {
			return req.Query
		}
	}

	var query string
	if err := runtime.BindQueryParameter("form", true, false, "query", r.URL.Query(), &query); err != nil {
		return ""
	}
	return query
}

// writePipelineError maps pipeline errors onto the legacy payloads.
func (s *Server) writePipelineError(w http.ResponseWriter, err error) {
	var pe *domain.ParseError
	var ue *domain.UpstreamError

	switch {
	case errors.Is(err, domain.ErrNoQuery):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "No query provided."})
	case errors.As(err, &pe):
		writeJSON(w, http.StatusBadGateway, errorResponse{
			Error:        "Error decoding JSON.",
			Details:      pe.Diagnostic.Error(),
			ResponseText: pe.RawText,
		})
	case errors.As(err, &ue):
		writeJSON(w, http.StatusBadGateway, errorResponse{
			Error:        "API request failed.",
			StatusCode:   ue.StatusCode,
			ResponseText: ue.Body,
		})
	case errors.Is(err, domain.ErrEmptyModelResponse):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "Empty response from the model."})
	case errors.Is(err, domain.ErrNoProducts):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "No products found."})
	default:
		s.logger.Error("pipeline error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
