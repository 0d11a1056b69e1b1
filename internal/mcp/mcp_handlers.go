package mcp

import (
	"context"

	"github.com/huangsam/launchpad/core"
	"github.com/huangsam/launchpad/internal/contract"
	"github.com/huangsam/launchpad/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler serves one report tool.
type toolHandler struct {
	baseCfg *contract.Config
	runner  *core.Runner
	spec    schema.ToolSpec
}

func (h *toolHandler) handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := schema.ReportOptions{
		Limit: request.GetInt(limitParam, h.baseCfg.ResultLimit),
	}
	if h.spec.SupportsPercent {
		opts.Percent = request.GetBool(percentParam, false)
	}

	result := h.runner.Run(ctx, h.spec, opts)
	if result.OK() {
		return mcp.NewToolResultText(result.Markdown), nil
	}

	if h.baseCfg.ToolErrors == schema.TextToolErrors {
		return mcp.NewToolResultText(result.Text()), nil
	}
	return mcp.NewToolResultError(result.Text()), nil
}
