package dune

import (
	"fmt"
	"strings"
)

// maxErrorBody caps how much of an error response is kept.
const maxErrorBody = 512

// HTTPStatusError is returned when the API answers with a non-success status.
type HTTPStatusError struct {
	StatusCode int
	Status     string // e.g. "401 Unauthorized"
	URL        string
	Body       string
}

// Error describes the failing status the same way for every caller.
func (e *HTTPStatusError) Error() string {
	class := "client error"
	if e.StatusCode >= 500 {
		class = "server error"
	} else if e.StatusCode < 400 {
		class = "unexpected status"
	}
	msg := fmt.Sprintf("%s '%s' for url '%s'", class, e.Status, e.URL)
	if body := strings.TrimSpace(e.Body); body != "" {
		msg += ": " + body
	}
	return msg
}

// DecodeError is returned when the response body is not the expected JSON.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
