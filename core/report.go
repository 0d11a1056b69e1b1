package core

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/launchpad/internal/contract"
	"github.com/huangsam/launchpad/internal/outwriter"
	"github.com/huangsam/launchpad/schema"
)

// Runner executes report pipelines against a row fetcher.
// A Runner holds no per-call state and is safe for concurrent use.
type Runner struct {
	fetcher contract.RowFetcher
	metrics contract.MetricsRecorder
	history contract.HistoryStore
}

// RunnerOption customizes a Runner.
type RunnerOption func(*Runner)

// WithMetrics records every report outcome on m.
func WithMetrics(m contract.MetricsRecorder) RunnerOption {
	return func(r *Runner) { r.metrics = m }
}

// WithHistory audits every report invocation in store.
func WithHistory(store contract.HistoryStore) RunnerOption {
	return func(r *Runner) { r.history = store }
}

// NewRunner creates a Runner that reads query results from fetcher.
func NewRunner(fetcher contract.RowFetcher, opts ...RunnerOption) *Runner {
	r := &Runner{fetcher: fetcher}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes one report: fetch, pivot, optionally normalize, render.
// Failures are returned inside the result rather than as a Go error.
func (r *Runner) Run(ctx context.Context, spec schema.ToolSpec, opts schema.ReportOptions) schema.ReportResult {
	if opts.Limit <= 0 {
		opts.Limit = contract.DefaultResultLimit
	}
	if !spec.SupportsPercent {
		opts.Percent = false
	}

	start := time.Now()
	result := r.execute(ctx, spec, opts)
	result.Tool = spec.Name
	result.Duration = time.Since(start)

	r.observe(spec, opts, start, result)
	return result
}

func (r *Runner) execute(ctx context.Context, spec schema.ToolSpec, opts schema.ReportOptions) schema.ReportResult {
	rows, err := r.fetcher.FetchRows(ctx, spec.QueryID, opts.Limit)
	if err != nil {
		return schema.ReportResult{Err: classifyFetchError(err)}
	}

	table, err := BuildPivot(rows, spec)
	if err != nil {
		return schema.ReportResult{RowCount: len(rows), Err: asReportError(err)}
	}
	if opts.Percent {
		NormalizePercent(table)
	}

	markdown, err := outwriter.RenderMarkdown(table)
	if err != nil {
		return schema.ReportResult{
			RowCount: len(rows),
			Err:      &schema.ReportError{Kind: schema.RenderError, Message: err.Error(), Err: err},
		}
	}
	return schema.ReportResult{Table: table, Markdown: markdown, RowCount: len(rows)}
}

// observe feeds metrics and history. Neither may change the report outcome.
func (r *Runner) observe(spec schema.ToolSpec, opts schema.ReportOptions, start time.Time, result schema.ReportResult) {
	status := schema.StatusOK
	var kind schema.ErrorKind
	var message string
	if result.Err != nil {
		status = schema.StatusError
		kind = result.Err.Kind
		message = result.Err.Error()
	}

	if r.metrics != nil {
		r.metrics.RecordInvocation(spec.Name, status, kind)
		if result.Err == nil {
			r.metrics.RecordRows(spec.Name, result.RowCount)
		}
	}

	if r.history == nil {
		return
	}
	rec := schema.InvocationRecord{
		ID:           uuid.NewString(),
		Tool:         spec.Name,
		QueryID:      spec.QueryID,
		Limit:        opts.Limit,
		Percent:      opts.Percent,
		StartedAt:    start.UTC(),
		DurationMs:   result.Duration.Milliseconds(),
		RowCount:     result.RowCount,
		Status:       status,
		ErrorKind:    string(kind),
		ErrorMessage: message,
	}
	if err := r.history.Record(rec); err != nil {
		contract.LogWarn("Failed to record invocation history", err)
	}
}
