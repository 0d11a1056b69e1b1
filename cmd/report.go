package cmd

import (
	"fmt"

	"github.com/huangsam/launchpad/internal/contract"
	"github.com/huangsam/launchpad/internal/outwriter"
	"github.com/huangsam/launchpad/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newReportCmd builds the command that runs one report and writes its table.
func newReportCmd(spec schema.ToolSpec) *cobra.Command {
	c := &cobra.Command{
		Use:   spec.Command,
		Short: spec.Title,
		Long: fmt.Sprintf(`%s

Fetches the latest results of Dune query %d and pivots %s by %s and %s.`,
			spec.Description, spec.QueryID, spec.MetricColumn, spec.DateColumn, spec.PlatformColumn),
		Args:    cobra.NoArgs,
		PreRunE: sharedSetupWrapper,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, spec)
		},
	}

	if spec.SupportsPercent {
		c.Flags().Bool("percent", false, "Show each platform's share of the daily total")
		if err := viper.BindPFlag("percent", c.Flags().Lookup("percent")); err != nil {
			contract.LogFatal("Error binding percent flag", err)
		}
	}
	return c
}

// runReport executes the pipeline and writes the table in the configured format.
func runReport(cmd *cobra.Command, spec schema.ToolSpec) error {
	result := newRunner().Run(cmd.Context(), spec, schema.ReportOptions{
		Limit:   cfg.ResultLimit,
		Percent: cfg.Percent,
	})
	if !result.OK() {
		return fmt.Errorf("%s failed: %w", spec.Command, result.Err)
	}
	return outwriter.WritePivotResults(result.Table, cfg)
}
