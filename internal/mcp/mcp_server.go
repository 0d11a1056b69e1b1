// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/huangsam/launchpad/core"
	"github.com/huangsam/launchpad/internal/contract"
	"github.com/huangsam/launchpad/internal/metrics"
	"github.com/huangsam/launchpad/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "Launchpad Analytics Server"
	serverVersion = "1.0.0"

	limitParam   = "limit"
	percentParam = "return_percent"

	shutdownTimeout = 5 * time.Second
)

// NewMCPServer initializes and configures the launchpad MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, runner *core.Runner) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithLogging(),
	)

	for _, spec := range core.DefaultTools() {
		h := &toolHandler{baseCfg: baseCfg, runner: runner, spec: spec}
		s.AddTool(newTool(spec, baseCfg.ResultLimit), h.handle)
	}
	return s
}

// newTool describes one report tool and its parameters.
func newTool(spec schema.ToolSpec, defaultLimit int) mcp.Tool {
	if defaultLimit <= 0 {
		defaultLimit = contract.DefaultResultLimit
	}
	opts := []mcp.ToolOption{
		mcp.WithDescription(spec.Description),
		mcp.WithNumber(limitParam,
			mcp.Description("Maximum number of upstream rows to fetch before pivoting."),
			mcp.DefaultNumber(float64(defaultLimit)),
		),
	}
	if spec.SupportsPercent {
		opts = append(opts, mcp.WithBoolean(percentParam,
			mcp.Description("Return each platform's share of the daily total instead of raw counts."),
			mcp.DefaultBool(false),
		))
	}
	opts = append(opts,
		mcp.WithTitleAnnotation(spec.Title),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithOpenWorldHintAnnotation(true),
	)
	return mcp.NewTool(spec.Name, opts...)
}

// StartMCPServer starts the launchpad MCP server on the configured transport.
// It returns when the transport stops or ctx is cancelled.
func StartMCPServer(ctx context.Context, cfg *contract.Config, runner *core.Runner, m *metrics.Metrics) error {
	s := NewMCPServer(cfg, runner)

	switch cfg.Transport {
	case schema.HTTPTransport:
		return serveHTTP(ctx, cfg, s, m)
	case schema.StdioTransport, "":
		return server.ServeStdio(s)
	default:
		return fmt.Errorf("unsupported transport: %s", cfg.Transport)
	}
}

// serveHTTP runs the streamable HTTP transport until ctx is cancelled.
func serveHTTP(ctx context.Context, cfg *contract.Config, s *server.MCPServer, m *metrics.Metrics) error {
	logger := contract.NewLogger(cfg.LogLevel)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewRouter(s, m, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("mcp_server_listening", "addr", cfg.Addr, "transport", string(cfg.Transport))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("mcp_server_stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info("mcp_server_stopped")
	return nil
}
