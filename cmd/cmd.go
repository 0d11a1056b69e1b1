// Package cmd defines the command-line interface for launchpad.
package cmd

import (
	"github.com/huangsam/launchpad/core"
	"github.com/huangsam/launchpad/internal/contract"
	"github.com/huangsam/launchpad/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add one report command per tool
	for _, spec := range core.DefaultTools() {
		rootCmd.AddCommand(newReportCmd(spec))
	}

	// Add primary subcommands to the root command
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Maximum number of upstream rows to fetch")
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.MarkdownOut), "Output format: markdown or text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("history-backend", "", "Invocation history backend: sqlite or mysql or postgresql or none (empty disables history)")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored diagnostics on stderr (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Log level for the HTTP transport: debug or info or warn or error")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of mcpCmd to Viper
	mcpCmd.Flags().String("transport", string(schema.StdioTransport), "MCP transport: stdio or http")
	mcpCmd.Flags().String("addr", contract.DefaultAddr, "Listen address for the http transport")
	mcpCmd.Flags().String("tool-errors", string(schema.FlagToolErrors), "How failed reports reach clients: flag (isError result) or text")
	if err := viper.BindPFlags(mcpCmd.Flags()); err != nil {
		contract.LogFatal("Error binding mcp flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 for latest, 0 to roll back everything)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding migrate flags", err)
	}
}
