package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/archivestream-mcp/pkg/client"
)

// ResolveInput is the input for archive_resolve.
type ResolveInput struct {
	URL string `json:"url" jsonschema:"required,Captured URL, exactly as archived"`
	At  string `json:"at" jsonschema:"required,Requested time as a 14-digit timestamp (YYYYMMDDhhmmss)"`
}

// ResolveOutput is the output for archive_resolve.
type ResolveOutput struct {
	Resolution any    `json:"resolution"`
	ReplayURL  string `json:"replay_url,omitempty"`
}

// ToolResolve finds the snapshot the archive serves for a point in time.
func ToolResolve(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ResolveInput) (*sdkmcp.CallToolResult, ResolveOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ResolveInput) (*sdkmcp.CallToolResult, ResolveOutput, error) {
		if err := requireField("url", input.URL); err != nil {
			return nil, ResolveOutput{}, err
		}
		if err := requireField("at", input.At); err != nil {
			return nil, ResolveOutput{}, err
		}

		rec, err := d.Client.Resolve(ctx, input.URL, input.At)
		if err != nil {
			return nil, ResolveOutput{}, WrapArchiveError(err)
		}
		v, err := rec.Value()
		if err != nil {
			return nil, ResolveOutput{}, errDecode(err)
		}

		output := ResolveOutput{Resolution: v}
		summary := printer.Sprintf("Resolved %s at %s.", input.URL, input.At)

		// The replay URL is a convenience; a resolution of another shape is
		// still returned as is.
		if res, err := client.As[client.Resolution](rec); err == nil && res.ActualTimestamp != "" {
			output.ReplayURL = res.ReplayURL
			if output.ReplayURL == "" {
				output.ReplayURL = d.Client.ReplayURL(input.URL, res.ActualTimestamp)
			}
			summary = printer.Sprintf("%s at %s resolves to the capture from %s.", input.URL, input.At, res.ActualTimestamp)
		}

		return summaryResult(summary, nil), output, nil
	}
}
