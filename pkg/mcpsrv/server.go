package mcpsrv

import (
	"context"
	"fmt"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/archivestream-mcp/internal/compare"
	"github.com/usestring/archivestream-mcp/internal/config"
	"github.com/usestring/archivestream-mcp/internal/logging"
	"github.com/usestring/archivestream-mcp/internal/mcp"
	"github.com/usestring/archivestream-mcp/internal/mcp/tools"
	"github.com/usestring/archivestream-mcp/internal/query"
	"github.com/usestring/archivestream-mcp/pkg/client"
	"github.com/usestring/archivestream-mcp/pkg/extract"
)

// Server is the ArchiveStream MCP server.
// It wraps the internal implementation and provides extension points.
type Server struct {
	internal   *mcp.Server
	deps       *Deps
	logCleanup func() error
}

// NewServer creates a new MCP server with builtin archive tools.
//
// If c is nil a client is built from the environment configuration and the
// WithBaseURL / WithHTTPClient options. Use functional options to configure
// logging, add custom tools, etc.
func NewServer(c *client.Client, opts ...Option) (*Server, error) {
	cfg := &serverConfig{
		config: config.Load(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.baseURL != "" {
		cfg.config.ArchiveBaseURL = cfg.baseURL
	}

	logCfg := logging.Config{
		Level:      cfg.config.LogLevel,
		Format:     cfg.config.LogFormat,
		FilePath:   cfg.config.LogFile,
		MaxSizeMB:  cfg.config.LogMaxSizeMB,
		MaxBackups: cfg.config.LogMaxBackups,
		MaxAgeDays: cfg.config.LogMaxAgeDays,
		Compress:   cfg.config.LogCompress,
	}
	if cfg.logLevel != "" {
		logCfg.Level = cfg.logLevel
	}
	if cfg.logFile != "" {
		logCfg.FilePath = cfg.logFile
	}
	logCleanup, err := logging.Setup(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}

	if c == nil {
		var clientOpts []client.Option
		if cfg.httpClient != nil {
			clientOpts = append(clientOpts, client.WithHTTPClient(cfg.httpClient))
		}
		c = cfg.config.NewClient(clientOpts...)
	}

	queryEngine := query.NewEngine()
	compareEngine := compare.NewEngine(c)
	extractEngine := extract.NewEngine(queryEngine)

	toolDeps := &tools.Deps{
		Client:  c,
		Config:  cfg.config,
		Query:   queryEngine,
		Compare: compareEngine,
		Extract: extractEngine,
	}
	deps := &Deps{
		Client:  c,
		Config:  cfg.config,
		Query:   queryEngine,
		Compare: compareEngine,
		Extract: extractEngine,
	}

	var internalOpts []mcp.ServerOption
	if !cfg.disableBuiltinTools {
		internalOpts = append(internalOpts, mcp.WithBuiltinTools())
	}
	if !cfg.disableBuiltinPrompts {
		internalOpts = append(internalOpts, mcp.WithBuiltinPrompts())
	}

	for _, fn := range cfg.toolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.promptRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}
	for _, fn := range cfg.resourceRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(fn))
	}

	// Tools that need Deps are registered once Deps exist.
	for _, fn := range cfg.deferredToolRegistrations {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(func(srv *sdkmcp.Server) {
			fn(srv, deps)
		}))
	}

	internal, err := mcp.NewServer(toolDeps, internalOpts...)
	if err != nil {
		_ = logCleanup()
		return nil, fmt.Errorf("failed to create server: %w", err)
	}

	slog.Info("archivestream-mcp configured",
		slog.String("archive", c.RootURL()),
		slog.Bool("builtin_tools", !cfg.disableBuiltinTools),
		slog.Bool("builtin_prompts", !cfg.disableBuiltinPrompts),
	)

	return &Server{
		internal:   internal,
		deps:       deps,
		logCleanup: logCleanup,
	}, nil
}

// Run starts the MCP server with stdio transport.
// The server runs until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.internal.Run(ctx)
}

// Close cleans up server resources.
func (s *Server) Close() error {
	if s.logCleanup != nil {
		return s.logCleanup()
	}
	return nil
}

// Deps returns the dependencies for building custom tools.
func (s *Server) Deps() *Deps {
	return s.deps
}

// MCPServer returns the underlying MCP server, for in-process transports and
// tests.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.internal.MCPServer()
}
