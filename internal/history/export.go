package history

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/launchpad/internal/contract"
	"github.com/huangsam/launchpad/internal/parquet"
)

// ExecuteHistoryExport writes every stored invocation to a Parquet file.
func ExecuteHistoryExport(store contract.HistoryStore, outputFile string, out io.Writer) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("invocation history is disabled. Set --history-backend to enable it")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRecords == 0 {
		return errors.New("no invocation history found to export")
	}

	records, err := store.List(0)
	if err != nil {
		return fmt.Errorf("failed to retrieve invocations: %w", err)
	}

	if err := parquet.WriteInvocationsParquet(parquet.ConvertInvocationRecords(records), outputFile); err != nil {
		return fmt.Errorf("failed to write invocations: %w", err)
	}
	_, _ = fmt.Fprintf(out, "Exported %d invocations from %s backend to: %s\n", len(records), status.Backend, outputFile)
	return nil
}
