package outwriter

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/huangsam/launchpad/internal/contract"
	"github.com/huangsam/launchpad/internal/parquet"
	"github.com/huangsam/launchpad/schema"
)

const timestampFormat = "2006-01-02 15:04:05"

// PrintHistoryStatus prints invocation history status information.
func PrintHistoryStatus(w io.Writer, status schema.HistoryStatus) {
	_, _ = fmt.Fprintf(w, "History Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Invocations: %d\n", status.TotalRecords)
	_, _ = fmt.Fprintf(w, "Failed Invocations: %d\n", status.ErrorRecords)
	if status.TotalRecords > 0 {
		_, _ = fmt.Fprintf(w, "Last Invocation: %s\n", status.LastRecordTime.Format(timestampFormat))
		_, _ = fmt.Fprintf(w, "Oldest Invocation: %s\n", status.OldestRecordTime.Format(timestampFormat))
	}
	if len(status.PerTool) == 0 {
		return
	}
	_, _ = fmt.Fprintln(w, "Per Tool:")
	tools := make([]string, 0, len(status.PerTool))
	for tool := range status.PerTool {
		tools = append(tools, tool)
	}
	slices.Sort(tools)
	for _, tool := range tools {
		_, _ = fmt.Fprintf(w, "  %s: %d\n", tool, status.PerTool[tool])
	}
}

var historyHeader = []string{"started_at", "tool", "query_id", "limit", "percent", "rows", "duration_ms", "status", "error"}

func historyRecords(records []schema.InvocationRecord) [][]string {
	data := make([][]string, 0, len(records))
	for _, r := range records {
		data = append(data, []string{
			r.StartedAt.Format(timestampFormat),
			r.Tool,
			strconv.Itoa(r.QueryID),
			strconv.Itoa(r.Limit),
			strconv.FormatBool(r.Percent),
			strconv.Itoa(r.RowCount),
			strconv.FormatInt(r.DurationMs, 10),
			string(r.Status),
			r.ErrorMessage,
		})
	}
	return data
}

// WriteHistory writes invocation records to w in one of the stream formats.
func WriteHistory(w io.Writer, records []schema.InvocationRecord, mode schema.OutputMode) error {
	switch mode {
	case schema.JSONOut:
		if records == nil {
			records = []schema.InvocationRecord{}
		}
		return writeJSON(w, records)
	case schema.CSVOut:
		return writeCSVWithHeader(w, historyHeader, historyRecords(records))
	case schema.MarkdownOut, schema.TextOut, "":
		t := newTable(w, mode != schema.TextOut)
		t.Header(historyHeader)
		if err := t.Bulk(historyRecords(records)); err != nil {
			return err
		}
		return t.Render()
	default:
		return fmt.Errorf("unsupported stream output format: %s", mode)
	}
}

// WriteHistoryResults writes invocation records using the configured output format and file.
func WriteHistoryResults(records []schema.InvocationRecord, cfg *contract.Config) error {
	if cfg.Output == schema.ParquetOut {
		if err := parquet.WriteInvocationsParquet(parquet.ConvertInvocationRecords(records), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing parquet output: %w", err)
		}
		contract.LogInfo("Wrote %d invocations to %s", len(records), cfg.OutputFile)
		return nil
	}
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return WriteHistory(w, records, cfg.Output)
	}, fmt.Sprintf("Wrote %d invocations", len(records)))
}

// PrintTools lists the available report tools.
func PrintTools(w io.Writer, tools []schema.ToolSpec) error {
	t := newTable(w, false)
	t.Header([]string{"tool", "command", "query_id", "metric", "percent"})
	data := make([][]string, 0, len(tools))
	for _, spec := range tools {
		data = append(data, []string{
			spec.Name,
			spec.Command,
			strconv.Itoa(spec.QueryID),
			spec.MetricColumn,
			strconv.FormatBool(spec.SupportsPercent),
		})
	}
	if err := t.Bulk(data); err != nil {
		return err
	}
	return t.Render()
}
