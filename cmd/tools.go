package cmd

import (
	"os"

	"github.com/huangsam/launchpad/core"
	"github.com/huangsam/launchpad/internal/outwriter"
	"github.com/spf13/cobra"
)

// toolsCmd lists the available reports.
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the available launchpad reports",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return outwriter.PrintTools(os.Stdout, core.DefaultTools())
	},
}
