package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/archivestream-mcp/internal/compare"
	"github.com/usestring/archivestream-mcp/pkg/client"
)

// CompareInput is the input for archive_compare.
type CompareInput struct {
	URL  string `json:"url" jsonschema:"required,Captured URL, exactly as archived"`
	From string `json:"from" jsonschema:"required,Earlier requested time (YYYYMMDDhhmmss)"`
	To   string `json:"to" jsonschema:"required,Later requested time (YYYYMMDDhhmmss)"`
	Full bool   `json:"full,omitempty" jsonschema:"Skip compaction of long arrays and strings"`
}

// CompareEndpoint is one resolved side of a comparison.
type CompareEndpoint struct {
	Requested       string `json:"requested"`
	ActualTimestamp string `json:"actual_timestamp,omitempty"`
	ReplayURL       string `json:"replay_url,omitempty"`
	Resolution      any    `json:"resolution"`
}

// CompareOutput is the output for archive_compare.
type CompareOutput struct {
	URL       string          `json:"url"`
	From      CompareEndpoint `json:"from"`
	To        CompareEndpoint `json:"to"`
	Diff      any             `json:"diff"`
	Semantic  any             `json:"semantic"`
	Compacted bool            `json:"compacted,omitempty"`
	Hint      string          `json:"hint,omitempty"`
}

// ToolCompare resolves two times for a URL and fetches both diffs between them.
func ToolCompare(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input CompareInput) (*sdkmcp.CallToolResult, CompareOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input CompareInput) (*sdkmcp.CallToolResult, CompareOutput, error) {
		if err := requireField("url", input.URL); err != nil {
			return nil, CompareOutput{}, err
		}
		if err := requireField("from", input.From); err != nil {
			return nil, CompareOutput{}, err
		}
		if err := requireField("to", input.To); err != nil {
			return nil, CompareOutput{}, err
		}

		cmp, err := d.Compare.Compare(ctx, input.URL, input.From, input.To)
		if err != nil {
			return nil, CompareOutput{}, WrapArchiveError(err)
		}

		output, err := d.compareOutput(cmp, input.Full)
		if err != nil {
			return nil, CompareOutput{}, err
		}
		return summaryResult(cmp.Summary(), nil), output, nil
	}
}

func (d *Deps) compareOutput(cmp *compare.Comparison, full bool) (CompareOutput, error) {
	from, err := compareEndpoint(cmp.From)
	if err != nil {
		return CompareOutput{}, err
	}
	to, err := compareEndpoint(cmp.To)
	if err != nil {
		return CompareOutput{}, err
	}

	output := CompareOutput{URL: cmp.URL, From: from, To: to}
	for _, part := range []struct {
		dst *any
		rec client.Record
	}{
		{&output.Diff, cmp.Diff},
		{&output.Semantic, cmp.Semantic},
	} {
		view, err := d.PresentRecord(part.rec, ViewOptions{Full: full})
		if err != nil {
			return CompareOutput{}, err
		}
		*part.dst = view.Data
		if view.Compacted {
			output.Compacted = true
			output.Hint = view.Hint
		}
	}
	return output, nil
}

func compareEndpoint(ep compare.Endpoint) (CompareEndpoint, error) {
	v, err := ep.Resolution.Value()
	if err != nil {
		return CompareEndpoint{}, errDecode(err)
	}
	return CompareEndpoint{
		Requested:       ep.Requested,
		ActualTimestamp: ep.ActualTimestamp,
		ReplayURL:       ep.ReplayURL,
		Resolution:      v,
	}, nil
}
