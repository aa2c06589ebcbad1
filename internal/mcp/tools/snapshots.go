package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// SnapshotsInput is the input for archive_snapshots.
type SnapshotsInput struct {
	URL        string `json:"url" jsonschema:"required,Captured URL, exactly as archived"`
	Limit      int    `json:"limit,omitempty" jsonschema:"Max snapshots the archive should return (default: 50)"`
	JQ         string `json:"jq,omitempty" jsonschema:"jq expression applied to the snapshot array, e.g. 'map(.timestamp)'"`
	SchemaOnly bool   `json:"schema_only,omitempty" jsonschema:"Return the inferred JSON Schema of one snapshot instead of the list"`
	Full       bool   `json:"full,omitempty" jsonschema:"Skip compaction of long arrays and strings"`
}

// SnapshotsOutput is the output for archive_snapshots.
type SnapshotsOutput struct {
	Snapshots   any      `json:"snapshots"`
	Total       int      `json:"total"`
	Compacted   bool     `json:"compacted,omitempty"`
	JQErrors    []string `json:"jq_errors,omitzero"`
	JQTruncated bool     `json:"jq_truncated,omitempty"`
	Hint        string   `json:"hint,omitempty"`
}

// ToolSnapshots lists captured snapshots of a URL.
func ToolSnapshots(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input SnapshotsInput) (*sdkmcp.CallToolResult, SnapshotsOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input SnapshotsInput) (*sdkmcp.CallToolResult, SnapshotsOutput, error) {
		if err := requireField("url", input.URL); err != nil {
			return nil, SnapshotsOutput{}, err
		}

		limit := input.Limit
		if limit <= 0 {
			limit = d.Config.DefaultSnapshotLimit
		}

		snapshots, err := d.Client.GetSnapshots(ctx, input.URL, limit)
		if err != nil {
			return nil, SnapshotsOutput{}, WrapArchiveError(err)
		}

		view, err := d.PresentRecords(snapshots, ViewOptions{
			JQ:         input.JQ,
			SchemaOnly: input.SchemaOnly,
			Full:       input.Full,
		})
		if err != nil {
			return nil, SnapshotsOutput{}, err
		}

		output := SnapshotsOutput{
			Snapshots:   view.Data,
			Total:       len(snapshots),
			Compacted:   view.Compacted,
			JQErrors:    view.JQErrors,
			JQTruncated: view.JQTruncated,
			Hint:        view.Hint,
		}
		if len(snapshots) == limit && output.Hint == "" {
			output.Hint = "The archive may hold more snapshots. Raise limit to see them."
		}

		summary := printer.Sprintf("%s of %s.", plural(len(snapshots), "snapshot", "snapshots"), input.URL)
		return summaryResult(summary, nil), output, nil
	}
}
