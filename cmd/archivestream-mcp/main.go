package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/usestring/archivestream-mcp/pkg/mcpsrv"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// The archive client, limits and logging come from the environment:
	// - ARCHIVESTREAM_BASE_URL (default http://localhost:3001)
	// - HTTP_CLIENT_TIMEOUT_MS, DEFAULT_SNAPSHOT_LIMIT, TOOL_MAX_BYTES, ...
	// - LOG_LEVEL, LOG_FORMAT, LOG_FILE
	// See internal/config for all options.
	server, err := mcpsrv.NewServer(nil)
	if err != nil {
		slog.Error("failed to create MCP server", "error", err)
		os.Exit(1)
	}
	defer server.Close()

	slog.Info("starting archivestream MCP server on stdio")
	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
