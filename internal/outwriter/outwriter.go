// Package outwriter has output and writer logic.
package outwriter

import (
	"bytes"
	"fmt"
	"io"

	"github.com/huangsam/launchpad/internal/contract"
	"github.com/huangsam/launchpad/internal/parquet"
	"github.com/huangsam/launchpad/schema"
)

// RenderMarkdown renders a pivot table as a markdown table.
func RenderMarkdown(table *schema.PivotTable) (string, error) {
	var buf bytes.Buffer
	if err := writePivotTable(&buf, table, true); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WritePivot writes a pivot table to w in one of the stream formats.
// Parquet needs a file path and goes through WritePivotResults instead.
func WritePivot(w io.Writer, table *schema.PivotTable, mode schema.OutputMode) error {
	switch mode {
	case schema.MarkdownOut, "":
		return writePivotTable(w, table, true)
	case schema.TextOut:
		return writePivotTable(w, table, false)
	case schema.CSVOut:
		return writePivotCSV(w, table)
	case schema.JSONOut:
		return writePivotJSON(w, table)
	default:
		return fmt.Errorf("unsupported stream output format: %s", mode)
	}
}

// WritePivotResults writes a pivot table using the configured output format and file.
func WritePivotResults(table *schema.PivotTable, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		if err := parquet.WritePivotParquet(parquet.ConvertPivotTable(table), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		contract.LogInfo("Wrote parquet to %s", cfg.OutputFile)
		return nil
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WritePivot(w, table, cfg.Output)
	}, fmt.Sprintf("Wrote %s", cfg.Output))
}
