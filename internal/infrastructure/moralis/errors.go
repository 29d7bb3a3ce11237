package moralis

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotStarted is returned by Default before Start was called
	ErrNotStarted = errors.New("moralis client not started")

	// ErrAlreadyStarted is returned by Start when the client is running
	ErrAlreadyStarted = errors.New("moralis client already started")

	// ErrMalformedPayload indicates a response body that could not be decoded
	ErrMalformedPayload = errors.New("malformed response payload")
)

// APIError is a non-200 answer of the indexing API
type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("moralis %s: status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("moralis %s: status %d: %s", e.Endpoint, e.StatusCode, e.Message)
}

// RateLimited reports whether the API rejected the call for rate limiting
func (e *APIError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// IsRateLimited reports whether err wraps a rate limited APIError
func IsRateLimited(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.RateLimited()
}
