package giftrec

import (
	"errors"
	"fmt"
)

// Sentinel errors mapped from the service's error payloads.
// Use errors.Is() to check.
var (
	ErrNoQuery            = errors.New("giftrec: no query provided")
	ErrEmptyModelResponse = errors.New("giftrec: empty response from the model")
	ErrNoProducts         = errors.New("giftrec: no products found")
	ErrUnauthorized       = errors.New("giftrec: unauthorized")
)

// APIError carries a non-sentinel error response from the service.
type APIError struct {
	HTTPStatus int
	Message    string
	// Details and ResponseText are populated for model decode failures,
	// UpstreamStatus for catalog API failures.
	Details        string
	ResponseText   string
	UpstreamStatus int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("giftrec: %s (http %d)", e.Message, e.HTTPStatus)
}
