package mcpsrv

import (
	"github.com/usestring/archivestream-mcp/internal/compare"
	"github.com/usestring/archivestream-mcp/internal/config"
	"github.com/usestring/archivestream-mcp/internal/query"
	"github.com/usestring/archivestream-mcp/pkg/client"
	"github.com/usestring/archivestream-mcp/pkg/extract"
)

// Deps contains all dependencies available to custom tools.
// Custom tools get the same archive client and engines as builtin tools.
type Deps struct {
	Client  *client.Client
	Config  *config.Config
	Query   *query.Engine
	Compare *compare.Engine
	Extract *extract.Engine
}
