// Package gemini implements the model provider on top of the official
// google.golang.org/genai client (Gemini API or Vertex AI backend).
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	genai "google.golang.org/genai"

	"github.com/kloudstax/giftrec/internal/domain"
	"github.com/kloudstax/giftrec/internal/metrics"
)

const providerName = "gemini"

// Config holds the Gemini provider settings. When Project is set the
// client talks to Vertex AI in the given location; otherwise it uses the
// public Gemini API with APIKey.
type Config struct {
	APIKey   string
	Project  string
	Location string
	Model    string
	Timeout  time.Duration
	Logger   *zap.Logger
}

// Generator is a thin wrapper around the genai client.
type Generator struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// New creates a Gemini model provider.
func New(ctx context.Context, cfg Config) (*Generator, error) {
	cc := &genai.ClientConfig{Backend: genai.BackendGeminiAPI, APIKey: cfg.APIKey}
	if cfg.Project != "" {
		cc = &genai.ClientConfig{
			Backend:  genai.BackendVertexAI,
			Project:  cfg.Project,
			Location: cfg.Location,
		}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Generator{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  cfg.Logger,
	}, nil
}

// Generate sends a prompt under a system instruction and returns the
// generated text. Empty generations surface domain.ErrEmptyModelResponse.
func (g *Generator) Generate(ctx context.Context, systemInstruction, prompt string) (string, error) {
	stage := string(domain.StageFromContext(ctx))

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
		},
	)
	duration := time.Since(start)

	if err != nil {
		metrics.ModelRequestsTotal.WithLabelValues(providerName, g.model, stage, "error").Inc()
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := collectText(resp)
	if text == "" {
		metrics.ModelRequestsTotal.WithLabelValues(providerName, g.model, stage, "empty").Inc()
		return "", domain.ErrEmptyModelResponse
	}

	metrics.ModelRequestsTotal.WithLabelValues(providerName, g.model, stage, "success").Inc()
	metrics.ModelRequestDuration.WithLabelValues(providerName, g.model, stage).Observe(duration.Seconds())

	g.logger.Debug("model generation complete",
		zap.String("stage", stage),
		zap.Duration("latency", duration),
		zap.Int("response_bytes", len(text)),
	)
	return text, nil
}

// collectText concatenates the text parts of the first candidate.
func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}
