package giftrec

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 60 * time.Second

// Recommendation is the pipeline result: the attribute names the model
// classified from the query, and the reranked product payload as returned
// by the model.
type Recommendation struct {
	Attributes []string        `json:"attributes"`
	Response   json.RawMessage `json:"response"`
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Client is the giftrec SDK entry point.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	obs        *observer
}

// New creates a giftrec Client for the given service base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("giftrec: base URL required")
	}

	cfg := &clientConfig{timeout: defaultTimeout}
	for _, o := range opts {
		o.apply(cfg)
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.timeout}
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     cfg.apiKey,
		httpClient: hc,
		obs:        obs,
	}, nil
}

// Recommend runs the full pipeline for a free-text gift query.
func (c *Client) Recommend(ctx context.Context, query string) (rec Recommendation, err error) {
	start := time.Now()
	defer func() { c.obs.observe("recommend", start, err) }()

	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return Recommendation{}, fmt.Errorf("giftrec: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/recommendations", bytes.NewReader(body))
	if err != nil {
		return Recommendation{}, fmt.Errorf("giftrec: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Recommendation{}, fmt.Errorf("giftrec: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Recommendation{}, decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return Recommendation{}, fmt.Errorf("giftrec: decode response: %w", err)
	}
	return rec, nil
}

// Health checks the health of all service components.
func (c *Client) Health(ctx context.Context) (hs HealthStatus, err error) {
	start := time.Now()
	defer func() { c.obs.observe("health", start, err) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", http.NoBody)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("giftrec: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return HealthStatus{}, fmt.Errorf("giftrec: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// /health answers 200 or 503, both with a report body.
	if err := json.NewDecoder(resp.Body).Decode(&hs); err != nil {
		return HealthStatus{}, fmt.Errorf("giftrec: decode health response: %w", err)
	}
	return hs, nil
}

// errorPayload mirrors the service's error response shape.
type errorPayload struct {
	Error        string `json:"error"`
	Details      string `json:"details"`
	StatusCode   int    `json:"status_code"`
	ResponseText string `json:"response_text"`
}

// decodeError converts a non-200 response into a sentinel or APIError.
func decodeError(resp *http.Response) error {
	var payload errorPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return &APIError{HTTPStatus: resp.StatusCode, Message: "unreadable error response"}
	}

	switch payload.Error {
	case "No query provided.":
		return ErrNoQuery
	case "Empty response from the model.":
		return ErrEmptyModelResponse
	case "No products found.":
		return ErrNoProducts
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %s", ErrUnauthorized, payload.Error)
	}

	return &APIError{
		HTTPStatus:     resp.StatusCode,
		Message:        payload.Error,
		Details:        payload.Details,
		ResponseText:   payload.ResponseText,
		UpstreamStatus: payload.StatusCode,
	}
}
