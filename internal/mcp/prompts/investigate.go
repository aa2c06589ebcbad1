package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleInvestigateChanges builds the change-investigation workflow prompt.
func HandleInvestigateChanges(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		var pageURL, since string
		if args := req.Params.Arguments; args != nil {
			pageURL = args["url"]
			since = args["since"]
		}
		if pageURL == "" {
			return nil, fmt.Errorf("url argument is required")
		}

		var sb strings.Builder

		sb.WriteString("# Investigate Page Changes\n\n")
		sb.WriteString("You are a web archivist. Explain how the page below changed over time, ")
		sb.WriteString("which changes matter, and when they happened.\n\n")
		fmt.Fprintf(&sb, "**Target URL**: `%s`\n", pageURL)
		if since != "" {
			fmt.Fprintf(&sb, "**Focus on changes after**: `%s`\n", since)
		}
		fmt.Fprintf(&sb, "**Archive**: `%s`\n\n", cfg.ArchiveBaseURL)

		sb.WriteString("## Context Usage Guide\n\n")
		sb.WriteString("- Tools return compacted results; long arrays are trimmed with a \"... (N more items)\" marker\n")
		sb.WriteString("- Use `jq` on any tool to pull only the fields you need\n")
		sb.WriteString("- Use `schema_only: true` first when you do not know a result's shape\n")
		sb.WriteString("- Resources (`archivestream://timeline/{url}`) return full documents; fetch them only when needed\n\n")

		sb.WriteString("## Workflow Steps\n\n")
		sb.WriteString("1. **Timeline** - `archive_timeline(url)` lists every capture with status and digest\n")
		sb.WriteString("   - Captures with the same `digest` are byte-identical; skip them\n")
		sb.WriteString("   - Example filter: `jq: \"[.snapshots[] | {timestamp, digest}] | unique_by(.digest)\"`\n")
		fmt.Fprintf(&sb, "2. **Snapshots** - `archive_snapshots(url, limit)` gives content type and status per capture (default limit %d)\n", cfg.DefaultSnapshotLimit)
		sb.WriteString("3. **Pick boundaries** - choose consecutive captures whose digests differ\n")
		sb.WriteString("4. **Compare** - `archive_compare(url, from, to)` resolves both sides and returns the raw diff and the semantic analysis together\n")
		sb.WriteString("   - Use `archive_diff` or `archive_semantic` alone when you need only one of them\n")
		sb.WriteString("5. **Verify** - `archive_resolve(url, at)` returns a `replay_url` the user can open\n\n")

		sb.WriteString("## Decision Criteria\n\n")
		sb.WriteString("- Semantic categories `PrivacyPolicy`, `PriceChange` and `BreakingNews` are high-signal; report them first\n")
		sb.WriteString("- `alerts_triggered > 0` means a configured alert rule matched\n")
		sb.WriteString("- A `NOT_FOUND` error on resolve or diff means no capture exists near that time; widen the window\n\n")

		sb.WriteString("## Output Format\n\n")
		sb.WriteString("A dated list of significant changes, each with category, one-sentence summary, and replay links for both sides.\n")

		return &sdkmcp.GetPromptResult{
			Description: "Investigate how " + pageURL + " changed over time",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
