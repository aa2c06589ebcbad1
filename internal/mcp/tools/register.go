package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	AddTool(srv, &sdkmcp.Tool{
		Name:        "archive_search",
		Description: "Full-text search over archived content. Returns matching records as the archive reports them, truncated to limit. Use jq to project fields, or schema_only=true to learn the record shape first.",
	}, ToolSearch(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "archive_snapshots",
		Description: "List captured snapshots of a URL, newest first as ordered by the archive. Each snapshot carries a 14-digit timestamp usable with archive_resolve, archive_diff and archive_semantic.",
	}, ToolSnapshots(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "archive_snapshot",
		Description: "Fetch the metadata of one snapshot by its id (a UUID from archive_snapshots): WARC file, offset, digest, status and content type.",
	}, ToolSnapshot(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "archive_resolve",
		Description: "Find the snapshot the archive serves for a URL at a requested time. Returns the resolution (actual_timestamp, replay_url) unchanged.",
	}, ToolResolve(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "archive_diff",
		Description: "Line-level diff between two snapshots of a URL. Takes exact snapshot timestamps; use archive_resolve or archive_compare when you only know approximate times.",
	}, ToolDiff(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "archive_semantic",
		Description: "Categorized analysis of what changed between two snapshots of a URL (categories with confidence, sentiment, optional summary).",
	}, ToolSemantic(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "archive_timeline",
		Description: "Ordered capture history of a URL: every snapshot timestamp with its status and digest. Start here to pick timestamps for a diff.",
	}, ToolTimeline(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "archive_compare",
		Description: "Resolve two requested times for a URL, then fetch the diff and the semantic analysis between them in one call.",
	}, ToolCompare(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "archive_extract",
		Description: "Replay a capture and extract values from it with a CSS selector, XPath, regex or jq. Mode defaults to the capture's content type (HTML: css, XML: xpath, JSON/YAML: jq, else regex). Use it to read what a page said at a point in time.",
	}, ToolExtract(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "archive_health",
		Description: "Check that the archive server is reachable and report its status.",
	}, ToolHealth(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "archive_frontier",
		Description: "Crawl frontier per domain: queued URL count and depth range, busiest domains first (top 50 as reported by the archive).",
	}, ToolFrontier(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "archive_outcomes",
		Description: "Crawl outcomes over the last 24 hours: event count per status, with the overall success rate.",
	}, ToolOutcomes(d))
}
