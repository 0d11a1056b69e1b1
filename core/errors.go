package core

import (
	"errors"
	"fmt"

	"github.com/huangsam/launchpad/internal/dune"
	"github.com/huangsam/launchpad/schema"
)

// newReportError builds a ReportError of the given kind.
func newReportError(kind schema.ErrorKind, format string, args ...any) *schema.ReportError {
	return &schema.ReportError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// classifyFetchError maps a fetcher failure onto the report error taxonomy.
func classifyFetchError(err error) *schema.ReportError {
	var reportErr *schema.ReportError
	if errors.As(err, &reportErr) {
		return reportErr
	}

	var statusErr *dune.HTTPStatusError
	if errors.As(err, &statusErr) {
		return &schema.ReportError{
			Kind:       schema.HTTPStatusError,
			Message:    statusErr.Error(),
			StatusCode: statusErr.StatusCode,
			Err:        err,
		}
	}

	var decodeErr *dune.DecodeError
	if errors.As(err, &decodeErr) {
		return &schema.ReportError{Kind: schema.DecodeError, Message: err.Error(), Err: err}
	}

	// Anything else never produced a response: dial, TLS, timeout, cancellation.
	return &schema.ReportError{Kind: schema.TransportError, Message: err.Error(), Err: err}
}

// asReportError keeps a ReportError as is and treats anything else as an invalid value.
func asReportError(err error) *schema.ReportError {
	var reportErr *schema.ReportError
	if errors.As(err, &reportErr) {
		return reportErr
	}
	return &schema.ReportError{Kind: schema.InvalidValueError, Message: err.Error(), Err: err}
}
