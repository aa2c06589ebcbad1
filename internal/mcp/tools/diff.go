package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/archivestream-mcp/pkg/client"
)

// DiffInput is the input for archive_diff and archive_semantic.
type DiffInput struct {
	URL  string `json:"url" jsonschema:"required,Captured URL, exactly as archived"`
	From string `json:"from" jsonschema:"required,Earlier snapshot timestamp (YYYYMMDDhhmmss)"`
	To   string `json:"to" jsonschema:"required,Later snapshot timestamp (YYYYMMDDhhmmss)"`
	JQ   string `json:"jq,omitempty" jsonschema:"jq expression applied to the result, e.g. '.changes | map(select(.tag != \"equal\"))'"`
	Full bool   `json:"full,omitempty" jsonschema:"Skip compaction of long arrays and strings"`
}

func (in DiffInput) validate() error {
	if err := requireField("url", in.URL); err != nil {
		return err
	}
	if err := requireField("from", in.From); err != nil {
		return err
	}
	return requireField("to", in.To)
}

// DiffOutput is the output for archive_diff.
type DiffOutput struct {
	Diff        any      `json:"diff"`
	Compacted   bool     `json:"compacted,omitempty"`
	JQErrors    []string `json:"jq_errors,omitzero"`
	JQTruncated bool     `json:"jq_truncated,omitempty"`
	Hint        string   `json:"hint,omitempty"`
}

// SemanticOutput is the output for archive_semantic.
type SemanticOutput struct {
	Semantic    any      `json:"semantic"`
	Compacted   bool     `json:"compacted,omitempty"`
	JQErrors    []string `json:"jq_errors,omitzero"`
	JQTruncated bool     `json:"jq_truncated,omitempty"`
	Hint        string   `json:"hint,omitempty"`
}

// ToolDiff fetches the line-level diff between two snapshots.
func ToolDiff(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input DiffInput) (*sdkmcp.CallToolResult, DiffOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input DiffInput) (*sdkmcp.CallToolResult, DiffOutput, error) {
		if err := input.validate(); err != nil {
			return nil, DiffOutput{}, err
		}

		rec, err := d.Client.GetDiff(ctx, input.URL, input.From, input.To)
		if err != nil {
			return nil, DiffOutput{}, WrapArchiveError(err)
		}

		view, err := d.PresentRecord(rec, ViewOptions{JQ: input.JQ, Full: input.Full})
		if err != nil {
			return nil, DiffOutput{}, err
		}

		summary := printer.Sprintf("Diff of %s from %s to %s.", input.URL, input.From, input.To)
		if diff, err := client.As[client.Diff](rec); err == nil {
			summary = printer.Sprintf("Diff of %s from %s to %s: +%d -%d lines, %d unchanged.",
				input.URL, input.From, input.To,
				diff.Summary.Added, diff.Summary.Removed, diff.Summary.Unchanged)
		}

		return summaryResult(summary, nil), DiffOutput{
			Diff:        view.Data,
			Compacted:   view.Compacted,
			JQErrors:    view.JQErrors,
			JQTruncated: view.JQTruncated,
			Hint:        view.Hint,
		}, nil
	}
}

// ToolSemantic fetches the categorized change analysis between two snapshots.
func ToolSemantic(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input DiffInput) (*sdkmcp.CallToolResult, SemanticOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input DiffInput) (*sdkmcp.CallToolResult, SemanticOutput, error) {
		if err := input.validate(); err != nil {
			return nil, SemanticOutput{}, err
		}

		rec, err := d.Client.GetSemantic(ctx, input.URL, input.From, input.To)
		if err != nil {
			return nil, SemanticOutput{}, WrapArchiveError(err)
		}

		view, err := d.PresentRecord(rec, ViewOptions{JQ: input.JQ, Full: input.Full})
		if err != nil {
			return nil, SemanticOutput{}, err
		}

		summary := printer.Sprintf("Semantic changes of %s from %s to %s.", input.URL, input.From, input.To)
		if sc, err := client.As[client.SemanticChange](rec); err == nil {
			if sc.SmartSummary != nil && *sc.SmartSummary != "" {
				summary += " " + *sc.SmartSummary
			} else if n := len(sc.Analysis.Categories); n > 0 {
				summary += " " + printer.Sprintf("%s detected.", plural(n, "category", "categories"))
			}
		}

		return summaryResult(summary, nil), SemanticOutput{
			Semantic:    view.Data,
			Compacted:   view.Compacted,
			JQErrors:    view.JQErrors,
			JQTruncated: view.JQTruncated,
			Hint:        view.Hint,
		}, nil
	}
}
