package schema

import "time"

// InvocationRecord is one row of the launchpad_invocations table.
// It audits a tool call; the report contents themselves are never stored.
type InvocationRecord struct {
	ID           string           `json:"id"`
	Tool         string           `json:"tool"`
	QueryID      int              `json:"query_id"`
	Limit        int              `json:"limit"`
	Percent      bool             `json:"percent"`
	StartedAt    time.Time        `json:"started_at"`
	DurationMs   int64            `json:"duration_ms"`
	RowCount     int              `json:"row_count"`
	Status       InvocationStatus `json:"status"`
	ErrorKind    string           `json:"error_kind,omitempty"`
	ErrorMessage string           `json:"error_message,omitempty"`
}
