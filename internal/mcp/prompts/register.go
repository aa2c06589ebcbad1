package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "investigate_changes",
		Description: "RECOMMENDED: Investigate how a web page changed over time. Walks through timeline, resolution, and comparison tools in a context-efficient order.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "url",
				Description: "The page URL to investigate (e.g., 'https://example.com/pricing')",
				Required:    true,
			},
			{
				Name:        "since",
				Description: "Earliest point of interest as YYYYMMDDhhmmss (e.g., '20240101000000')",
				Required:    false,
			},
		},
	}, HandleInvestigateChanges(cfg))
}
