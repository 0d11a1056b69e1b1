// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/launchpad/schema"
)

// RowFetcher retrieves the latest result rows of an upstream query.
// This allows the report pipeline to be tested without network access.
type RowFetcher interface {
	// FetchRows returns at most limit rows of the latest result of queryID.
	FetchRows(ctx context.Context, queryID int, limit int) (schema.ResultSet, error)
}

// HistoryManager defines the interface for accessing the history store.
// This allows the history layer to be mocked for testing.
type HistoryManager interface {
	GetHistoryStore() HistoryStore
}

// HistoryStore defines the interface for auditing tool invocations.
type HistoryStore interface {
	// Record stores a single invocation
	Record(rec schema.InvocationRecord) error

	// List returns up to limit invocations, newest first (limit <= 0 means all)
	List(limit int) ([]schema.InvocationRecord, error)

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// Clear removes every stored invocation
	Clear() error

	// Close closes the underlying connection
	Close() error
}

// MetricsRecorder receives report outcomes for instrumentation.
type MetricsRecorder interface {
	// RecordInvocation counts one report, with kind empty on success
	RecordInvocation(tool string, status schema.InvocationStatus, kind schema.ErrorKind)

	// RecordRows observes how many upstream rows a report consumed
	RecordRows(tool string, rows int)
}
