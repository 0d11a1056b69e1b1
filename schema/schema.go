// Package schema has models and enums shared by all parts of launchpad.
package schema

import "time"

// Row is one upstream result row: column name to scalar value.
// Numbers arrive as json.Number, dates as strings.
type Row map[string]any

// ResultSet is an ordered list of rows as returned by the upstream query.
type ResultSet []Row

// ToolSpec describes one report: which query feeds it and how its rows are pivoted.
type ToolSpec struct {
	Name            string // MCP tool name, e.g. get_daily_graduates
	Command         string // CLI command name, e.g. graduates
	Title           string // Short human title
	Description     string // Tool description shown to MCP clients
	QueryID         int    // Fixed upstream query identifier
	DateColumn      string // Date-like column used as the pivot index
	PlatformColumn  string // Categorical column used as pivot columns
	MetricColumn    string // Numeric column placed in the cells
	IndexLabel      string // Header of the date column in rendered tables
	SupportsPercent bool   // Whether percent-of-daily-total mode is offered
}

// ReportOptions are the caller-supplied knobs for a single report.
type ReportOptions struct {
	Limit   int  // Maximum upstream rows; <= 0 means the default
	Percent bool // Normalize each date row to its share of the daily total
}

// Cell is a pivot table value. Valid is false when the platform had no data.
type Cell struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// PivotRow is one date of a pivot table with cells aligned to PivotTable.Columns.
type PivotRow struct {
	Date  time.Time `json:"date"`
	Cells []Cell    `json:"cells"`
}

// PivotTable is a date-by-platform grid of metric values.
type PivotTable struct {
	IndexLabel string     `json:"index"`
	Metric     string     `json:"metric"`
	Columns    []string   `json:"columns"`
	Rows       []PivotRow `json:"rows"`
}

// ReportResult is the typed outcome of a report: either a table or an error.
type ReportResult struct {
	Tool     string
	Table    *PivotTable
	Markdown string
	RowCount int
	Duration time.Duration
	Err      *ReportError
}

// OK reports whether the result carries a table.
func (r ReportResult) OK() bool {
	return r.Err == nil
}

// Text returns the markdown table on success and the error description otherwise.
func (r ReportResult) Text() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	return r.Markdown
}
