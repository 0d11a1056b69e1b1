// Package core has the report pipeline: fetch, pivot, sort, normalize and render.
package core

import "github.com/huangsam/launchpad/schema"

// platformColumn is the categorical column every launchpad query exposes.
const platformColumn = "platform"

// Tool names exposed over MCP.
const (
	TokensDeployedTool  = "get_daily_tokens_deployed"
	GraduatesTool       = "get_daily_graduates"
	GraduationRateTool  = "get_daily_graduation_rate"
	ActiveAddressesTool = "get_daily_active_addresses"
)

// defaultTools is the fixed set of launchpad reports. Each differs only by data.
var defaultTools = []schema.ToolSpec{
	{
		Name:    TokensDeployedTool,
		Command: "tokens-deployed",
		Title:   "Daily tokens deployed",
		Description: "Retrieve the daily count of tokens deployed by Solana memecoin launchpads, " +
			"pivoted to one column per platform. Optionally returns each platform's share of the " +
			"total daily deployments instead of raw counts.",
		QueryID:         4010816,
		DateColumn:      "date_time",
		PlatformColumn:  platformColumn,
		MetricColumn:    "daily_token_count",
		IndexLabel:      "date",
		SupportsPercent: true,
	},
	{
		Name:    GraduatesTool,
		Command: "graduates",
		Title:   "Daily graduates",
		Description: "Fetch the daily number of graduates (tokens completing their bonding curve sale) " +
			"from Solana memecoin launchpads, pivoted to one column per platform.",
		QueryID:        5131612,
		DateColumn:     "block_date",
		PlatformColumn: platformColumn,
		MetricColumn:   "daily_graduates",
		IndexLabel:     "block_date",
	},
	{
		Name:    GraduationRateTool,
		Command: "graduation-rate",
		Title:   "Daily graduation rate",
		Description: "Fetch the daily graduation rate of Solana memecoin launchpads, " +
			"pivoted to one column per platform.",
		QueryID:        5129526,
		DateColumn:     "block_date",
		PlatformColumn: platformColumn,
		MetricColumn:   "graduation_rate",
		IndexLabel:     "block_date",
	},
	{
		Name:    ActiveAddressesTool,
		Command: "active-addresses",
		Title:   "Daily active addresses",
		Description: "Fetch the daily count of unique wallet addresses interacting with Solana " +
			"memecoin launchpads, pivoted to one column per platform.",
		QueryID:        5002622,
		DateColumn:     "date_time",
		PlatformColumn: platformColumn,
		MetricColumn:   "daily_active_wallets",
		IndexLabel:     "date_time",
	},
}

// DefaultTools returns a copy of the launchpad report definitions in display order.
func DefaultTools() []schema.ToolSpec {
	tools := make([]schema.ToolSpec, len(defaultTools))
	copy(tools, defaultTools)
	return tools
}

// LookupTool finds a report by MCP tool name or CLI command name.
func LookupTool(name string) (schema.ToolSpec, bool) {
	for _, spec := range defaultTools {
		if spec.Name == name || spec.Command == name {
			return spec, true
		}
	}
	return schema.ToolSpec{}, false
}
