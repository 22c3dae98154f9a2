package openai

import (
	"errors"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func TestParseAPIError_RequestError(t *testing.T) {
	err := parseAPIError(&openai.RequestError{
		HTTPStatusCode: 429,
		Body:           []byte(`{"error":"rate limited"}`),
	})
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("expected status code in message, got %q", err.Error())
	}
}

func TestParseAPIError_APIError(t *testing.T) {
	err := parseAPIError(&openai.APIError{
		HTTPStatusCode: 400,
		Message:        "bad prompt",
	})
	if !strings.Contains(err.Error(), "bad prompt") {
		t.Errorf("expected API message in error, got %q", err.Error())
	}
}

func TestParseAPIError_Other(t *testing.T) {
	base := errors.New("connection refused")
	err := parseAPIError(base)
	if !errors.Is(err, base) {
		t.Error("expected the original error to be wrapped")
	}
}
