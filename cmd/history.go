package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/launchpad/internal/contract"
	"github.com/huangsam/launchpad/internal/history"
	"github.com/huangsam/launchpad/internal/outwriter"
	"github.com/huangsam/launchpad/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// readHistoryBackend resolves the history backend settings. Empty means none.
func readHistoryBackend() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backend := schema.DatabaseBackend(strings.ToLower(viper.GetString("history-backend")))
	if backend == "" {
		backend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", "", fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	connStr := viper.GetString("history-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// historySetup loads minimal configuration needed for history operations.
// This avoids upstream validation for simple history management.
func historySetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := readHistoryBackend()
	if err != nil {
		return err
	}

	output := schema.OutputMode(strings.ToLower(viper.GetString("output")))
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be markdown, text, csv, json, parquet", output)
	}

	if err := history.InitHistory(backend, connStr); err != nil {
		return err
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.Output = output
	cfg.OutputFile = viper.GetString("output-file")
	cfg.ResultLimit = viper.GetInt("limit")
	return nil
}

// historyStore returns the initialized store or explains how to enable one.
func historyStore() (contract.HistoryStore, error) {
	store := history.Manager.GetHistoryStore()
	if store == nil {
		return nil, errors.New("invocation history is disabled. Set --history-backend to enable it")
	}
	return store, nil
}

// historyCmd focuses on invocation history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the invocation history (opt-in audit log)",
	Long: `Manage the optional audit log of report invocations.

When --history-backend is set, every report run from the CLI or the MCP server is
recorded with its tool, parameters, duration, row count and outcome. Report contents
are never stored and never reused.

Supported backends: SQLite, MySQL, PostgreSQL, or None

Examples:
  # Check history status
  launchpad history status --history-backend sqlite

  # Show the last 20 invocations
  launchpad history list --history-backend sqlite --limit 20`,
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display history statistics and connection details",
	PreRunE: historySetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		store, err := historyStore()
		if err != nil {
			return err
		}
		status, err := store.GetStatus()
		if err != nil {
			return fmt.Errorf("failed to get history status: %w", err)
		}
		outwriter.PrintHistoryStatus(os.Stdout, status)
		return nil
	},
}

// historyListCmd lists recent invocations.
var historyListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List recent invocations, newest first",
	PreRunE: historySetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		store, err := historyStore()
		if err != nil {
			return err
		}
		records, err := store.List(cfg.ResultLimit)
		if err != nil {
			return err
		}
		return outwriter.WriteHistoryResults(records, cfg)
	},
}

// historyClearCmd clears the history.
var historyClearCmd = &cobra.Command{
	Use:     "clear",
	Short:   "Remove all recorded invocations",
	PreRunE: historySetup,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := historyStore()
		if err != nil {
			return err
		}
		if err := store.Clear(); err != nil {
			return err
		}
		cmd.Println("History cleared successfully.")
		return nil
	},
}

// historyExportCmd exports the history to Parquet.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all recorded invocations to a Parquet file",
	Long: `Export every recorded invocation to a Parquet file.

Examples:
  launchpad history export --history-backend sqlite --output-file invocations.parquet`,
	PreRunE: historySetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		return history.ExecuteHistoryExport(history.Manager.GetHistoryStore(), cfg.OutputFile, os.Stdout)
	},
}

// historyMigrateCmd runs schema migrations.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run history database migrations",
	Long: `Apply or roll back the history schema migrations.

This does not open the history store first, so it works on a fresh database.

Examples:
  # Migrate to the latest version
  launchpad history migrate --history-backend postgresql --history-db-connect "host=... dbname=..."

  # Roll back everything
  launchpad history migrate --history-backend sqlite --target-version 0`,
	RunE: func(_ *cobra.Command, _ []string) error {
		backend, connStr, err := readHistoryBackend()
		if err != nil {
			return err
		}
		return history.Migrate(backend, connStr, viper.GetInt("target-version"), os.Stdout)
	},
}
