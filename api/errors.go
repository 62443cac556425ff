package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrMissingAccessToken is returned before any request is issued when
	// an operation needs a stored access token and there is none.
	ErrMissingAccessToken = errors.New("no access token stored; log in first")

	// ErrMissingTokens is returned when the server response should have
	// carried tokens but did not. Nothing is stored in that case.
	ErrMissingTokens = errors.New("server response missing expected tokens")

	// ErrLogoutFailed replaces whatever actually went wrong during logout.
	// The local session is already cleared by then.
	ErrLogoutFailed = errors.New("logout failed")
)

// APIError is a non-2xx response from the backend. Body holds the raw
// response payload untouched, so callers see exactly what the server said.
// Message is the envelope message when the body carries one.
type APIError struct {
	StatusCode int
	Body       []byte
	Message    string
}

func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Body:       body,
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err == nil {
		apiErr.Message = env.Message
	}

	return apiErr
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Body)
}
