package gateway

import (
	"errors"
	"fmt"
)

// ErrUnavailable wraps transport-level failures (upstream unreachable),
// kept distinct from application errors so handlers can map them to 503.
var ErrUnavailable = errors.New("campus api unavailable")

// APIError is a non-2xx response from the campus API. Body carries the raw
// response text so validation failures can be relayed verbatim.
type APIError struct {
	Status     int
	StatusText string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("campus api: %s: %s", e.StatusText, e.Body)
	}
	return fmt.Sprintf("campus api: %s", e.StatusText)
}

// AsAPIError unwraps err into an *APIError if it is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// Message returns the user-facing message for an upstream error: the raw
// body when present, the status text otherwise.
func (e *APIError) Message() string {
	if e.Body != "" {
		return e.Body
	}
	return e.StatusText
}
