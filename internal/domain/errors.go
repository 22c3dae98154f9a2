package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoQuery signals a request without a query string.
	ErrNoQuery = errors.New("no query provided")
	// ErrEmptyModelResponse signals that the model returned no text.
	ErrEmptyModelResponse = errors.New("empty response from the model")
	// ErrNoProducts signals that the recommendation service matched nothing.
	ErrNoProducts = errors.New("no products found")
)

// ParseError wraps a JSON decode failure of model output, keeping the
// normalized text and the decoder diagnostic for the caller.
type ParseError struct {
	RawText    string
	Diagnostic error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("decode model output: %v", e.Diagnostic)
}

func (e *ParseError) Unwrap() error { return e.Diagnostic }

// NewParseError creates a ParseError carrying the offending text.
func NewParseError(raw string, diag error) error {
	return &ParseError{RawText: raw, Diagnostic: diag}
}

// UpstreamError wraps a non-success status from the recommendation API.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("recommendation API returned status %d", e.StatusCode)
}

// NewUpstreamError creates an UpstreamError from a failed API response.
func NewUpstreamError(status int, body string) error {
	return &UpstreamError{StatusCode: status, Body: body}
}
