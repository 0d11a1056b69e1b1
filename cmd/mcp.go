package cmd

import (
	"github.com/huangsam/launchpad/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the launchpad MCP server",
	Long: `Launch an MCP server that lets AI agents request launchpad reports as tools.

Transports:
  stdio - default; the client spawns launchpad and talks over stdin/stdout
  http  - streamable HTTP at /mcp, plus /health and /metrics

Examples:
  # Serve over stdio
  launchpad mcp

  # Serve over HTTP
  launchpad mcp --transport http --addr :8080`,
	Args: cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(cmd.Context(), cfg, newRunner(), appMetrics)
	},
}
