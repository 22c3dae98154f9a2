// Package openai implements the model provider on an OpenAI-compatible
// chat-completion API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kloudstax/giftrec/internal/domain"
	"github.com/kloudstax/giftrec/internal/metrics"
)

const providerName = "openai"

// Config holds the provider settings. BaseURL may point at any
// OpenAI-compatible endpoint.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	Logger  *zap.Logger
}

// Generator wraps an OpenAI-compatible chat-completion client.
type Generator struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// New creates an OpenAI-compatible model provider.
func New(cfg Config) *Generator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Generator{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  cfg.Logger,
	}
}

// Generate sends a prompt under a system message and returns the
// generated text. Empty generations surface domain.ErrEmptyModelResponse.
func (g *Generator) Generate(ctx context.Context, systemInstruction, prompt string) (string, error) {
	stage := string(domain.StageFromContext(ctx))

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	duration := time.Since(start)

	if err != nil {
		metrics.ModelRequestsTotal.WithLabelValues(providerName, g.model, stage, "error").Inc()
		return "", parseAPIError(err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		metrics.ModelRequestsTotal.WithLabelValues(providerName, g.model, stage, "empty").Inc()
		return "", domain.ErrEmptyModelResponse
	}

	metrics.ModelRequestsTotal.WithLabelValues(providerName, g.model, stage, "success").Inc()
	metrics.ModelRequestDuration.WithLabelValues(providerName, g.model, stage).Observe(duration.Seconds())

	text := resp.Choices[0].Message.Content
	g.logger.Debug("model generation complete",
		zap.String("stage", stage),
		zap.Duration("latency", duration),
		zap.Int("response_bytes", len(text)),
	)
	return text, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (g *Generator) HealthCheck(ctx context.Context) error {
	if _, err := g.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// parseAPIError extracts a readable message from the client error types.
func parseAPIError(err error) error {
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("model API error %d: %s", reqErr.HTTPStatusCode, string(reqErr.Body))
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("model API error %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
	}

	return fmt.Errorf("model request failed: %w", err)
}
