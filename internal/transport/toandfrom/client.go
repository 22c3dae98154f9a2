// Package toandfrom is the HTTP client for the to-and-from product
// recommendation API.
package toandfrom

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/kloudstax/giftrec/internal/domain"
	"github.com/kloudstax/giftrec/internal/domain/catalog"
	"github.com/kloudstax/giftrec/internal/metrics"
)

const (
	// DefaultBaseURL is the production recommendation API.
	DefaultBaseURL = "https://api.toandfrom.com/v3"
	// DefaultRevision pins the API revision header.
	DefaultRevision = "2024-05-23"
	// DefaultTimeout bounds a single search call. Never retried.
	DefaultTimeout = 10 * time.Second

	searchPath = "/recommendation/testing"
)

// Config holds the recommendation client settings.
type Config struct {
	BaseURL  string
	Revision string
	Timeout  time.Duration
	Logger   *zap.Logger
}

// Client calls the recommendation search endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	revision   string
	logger     *zap.Logger
}

// New creates a recommendation API client.
func New(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	revision := cfg.Revision
	if revision == "" {
		revision = DefaultRevision
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		revision:   revision,
		logger:     cfg.Logger,
	}
}

// Search runs a filtered product search. A non-2xx status surfaces a
// domain.UpstreamError carrying the status code and raw body.
func (c *Client) Search(ctx context.Context, filter catalog.Filter) (catalog.ProductList, error) {
	u := c.baseURL + searchPath + "?" + filter.QueryValues().Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return catalog.ProductList{}, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("content-type", "application/json")
	req.Header.Set("revision", c.revision)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecommendationRequestsTotal.WithLabelValues("transport_error").Inc()
		return catalog.ProductList{}, fmt.Errorf("search request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecommendationRequestsTotal.WithLabelValues("transport_error").Inc()
		return catalog.ProductList{}, fmt.Errorf("read search response: %w", err)
	}

	metrics.RecommendationRequestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()
	metrics.RecommendationRequestDuration.Observe(time.Since(start).Seconds())

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Warn("recommendation API request failed",
			zap.Int("status", resp.StatusCode),
			zap.Int("body_bytes", len(body)),
		)
		return catalog.ProductList{}, domain.NewUpstreamError(resp.StatusCode, string(body))
	}

	list, err := catalog.ProductListFromJSON(body)
	if err != nil {
		return catalog.ProductList{}, fmt.Errorf("search response: %w", err)
	}

	c.logger.Debug("recommendation search complete",
		zap.Int("products", list.Count()),
		zap.Duration("latency", time.Since(start)),
	)
	return list, nil
}
