// Package parquet provides data structures and functions for exporting launchpad
// reports and invocation history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/launchpad/schema"
	"github.com/parquet-go/parquet-go"
)

// PivotCell is one (date, platform) value of a pivot table in long format.
type PivotCell struct {
	// Date is the pivot index value at UTC midnight
	Date time.Time `parquet:"date,snappy"`

	// Platform is the pivot column the value belongs to
	Platform string `parquet:"platform,snappy"`

	// Metric names the measured column, e.g. daily_graduates
	Metric string `parquet:"metric,snappy"`

	// Value is nil when the platform had no data on that date
	Value *float64 `parquet:"value,optional,snappy"`
}

// Invocation is one recorded tool invocation.
// This struct maps to the launchpad_invocations database table.
type Invocation struct {
	ID           string    `parquet:"id,snappy"`
	Tool         string    `parquet:"tool,snappy"`
	QueryID      int32     `parquet:"query_id,snappy"`
	ResultLimit  int32     `parquet:"result_limit,snappy"`
	Percent      bool      `parquet:"percent,snappy"`
	StartedAt    time.Time `parquet:"started_at,snappy"`
	DurationMs   int64     `parquet:"duration_ms,snappy"`
	RowCount     int32     `parquet:"row_count,snappy"`
	Status       string    `parquet:"status,snappy"`
	ErrorKind    *string   `parquet:"error_kind,optional,snappy"`
	ErrorMessage *string   `parquet:"error_message,optional,snappy"`
}

// WritePivotParquet writes pivot cells to a Parquet file.
func WritePivotParquet(data []PivotCell, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteInvocationsParquet writes invocation records to a Parquet file.
func WriteInvocationsParquet(data []Invocation, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows with a schema inferred from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	if outputPath == "" {
		return fmt.Errorf("parquet output requires a file path")
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	// Close flushes the footer, so its error matters
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertPivotTable flattens a pivot table into one cell per (date, platform).
func ConvertPivotTable(table *schema.PivotTable) []PivotCell {
	if table == nil {
		return nil
	}
	result := make([]PivotCell, 0, len(table.Rows)*len(table.Columns))
	for _, row := range table.Rows {
		for j, col := range table.Columns {
			cell := PivotCell{Date: row.Date, Platform: col, Metric: table.Metric}
			if c := row.Cells[j]; c.Valid {
				v := c.Value
				cell.Value = &v
			}
			result = append(result, cell)
		}
	}
	return result
}

// ConvertInvocationRecords converts schema.InvocationRecord to Invocation for Parquet export.
func ConvertInvocationRecords(records []schema.InvocationRecord) []Invocation {
	result := make([]Invocation, len(records))
	for i, record := range records {
		result[i] = Invocation{
			ID:           record.ID,
			Tool:         record.Tool,
			QueryID:      int32(record.QueryID),
			ResultLimit:  int32(record.Limit),
			Percent:      record.Percent,
			StartedAt:    record.StartedAt,
			DurationMs:   record.DurationMs,
			RowCount:     int32(record.RowCount),
			Status:       string(record.Status),
			ErrorKind:    optionalString(string(record.ErrorKind)),
			ErrorMessage: optionalString(record.ErrorMessage),
		}
	}
	return result
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
