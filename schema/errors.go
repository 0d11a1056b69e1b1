package schema

// ReportError is a structured report failure.
type ReportError struct {
	Kind       ErrorKind
	Message    string
	StatusCode int // Upstream HTTP status for HTTPStatusError, 0 otherwise
	Err        error
}

// Error returns the textual description of the failure.
func (e *ReportError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

// Unwrap returns the underlying cause.
func (e *ReportError) Unwrap() error {
	return e.Err
}
