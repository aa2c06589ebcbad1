package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/archivestream-mcp/pkg/client"
)

// TimelineInput is the input for archive_timeline.
type TimelineInput struct {
	URL        string `json:"url" jsonschema:"required,Captured URL, exactly as archived"`
	JQ         string `json:"jq,omitempty" jsonschema:"jq expression applied to the timeline, e.g. '.snapshots | map(.timestamp)'"`
	SchemaOnly bool   `json:"schema_only,omitempty" jsonschema:"Return the inferred JSON Schema of the timeline instead of the data"`
	Full       bool   `json:"full,omitempty" jsonschema:"Skip compaction of long arrays and strings"`
}

// TimelineOutput is the output for archive_timeline.
type TimelineOutput struct {
	Timeline      any      `json:"timeline"`
	SnapshotCount int      `json:"snapshot_count"`
	Compacted     bool     `json:"compacted,omitempty"`
	JQErrors      []string `json:"jq_errors,omitzero"`
	JQTruncated   bool     `json:"jq_truncated,omitempty"`
	Hint          string   `json:"hint,omitempty"`
}

// ToolTimeline fetches the capture history of a URL.
func ToolTimeline(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input TimelineInput) (*sdkmcp.CallToolResult, TimelineOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input TimelineInput) (*sdkmcp.CallToolResult, TimelineOutput, error) {
		if err := requireField("url", input.URL); err != nil {
			return nil, TimelineOutput{}, err
		}

		rec, err := d.Client.GetTimeline(ctx, input.URL)
		if err != nil {
			return nil, TimelineOutput{}, WrapArchiveError(err)
		}

		view, err := d.PresentRecord(rec, ViewOptions{
			JQ:         input.JQ,
			SchemaOnly: input.SchemaOnly,
			Full:       input.Full,
		})
		if err != nil {
			return nil, TimelineOutput{}, err
		}

		output := TimelineOutput{
			Timeline:    view.Data,
			Compacted:   view.Compacted,
			JQErrors:    view.JQErrors,
			JQTruncated: view.JQTruncated,
			Hint:        view.Hint,
		}
		summary := printer.Sprintf("Timeline of %s.", input.URL)
		if tl, err := client.As[client.Timeline](rec); err == nil {
			output.SnapshotCount = len(tl.Snapshots)
			summary = printer.Sprintf("Timeline of %s: %s.", input.URL, plural(len(tl.Snapshots), "capture", "captures"))
			if n := len(tl.Snapshots); n > 0 {
				summary += printer.Sprintf(" First %s, last %s.", tl.Snapshots[0].Timestamp, tl.Snapshots[n-1].Timestamp)
			}
		}

		return summaryResult(summary, nil), output, nil
	}
}
