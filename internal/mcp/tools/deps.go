// Package tools contains MCP tool implementations for ArchiveStream.
package tools

import (
	"github.com/usestring/archivestream-mcp/internal/compare"
	"github.com/usestring/archivestream-mcp/internal/config"
	"github.com/usestring/archivestream-mcp/internal/query"
	"github.com/usestring/archivestream-mcp/pkg/client"
	"github.com/usestring/archivestream-mcp/pkg/extract"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Client  *client.Client
	Config  *config.Config
	Query   *query.Engine
	Compare *compare.Engine
	Extract *extract.Engine
}
