package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchInput is the input for archive_search.
type SearchInput struct {
	Query      string `json:"query" jsonschema:"required,Free text matched by the archive's search index"`
	JQ         string `json:"jq,omitempty" jsonschema:"jq expression applied to the result array, e.g. 'map(.url)'"`
	Limit      int    `json:"limit,omitempty" jsonschema:"Max results returned to you (default: 20). The archive itself is not paged."`
	SchemaOnly bool   `json:"schema_only,omitempty" jsonschema:"Return the inferred JSON Schema of one result instead of the results"`
	Full       bool   `json:"full,omitempty" jsonschema:"Skip compaction of long arrays and strings"`
}

// SearchOutput is the output for archive_search.
type SearchOutput struct {
	Results     any      `json:"results"`
	Total       int      `json:"total"`
	Truncated   bool     `json:"truncated,omitempty"`
	Compacted   bool     `json:"compacted,omitempty"`
	JQErrors    []string `json:"jq_errors,omitzero"`
	JQTruncated bool     `json:"jq_truncated,omitempty"`
	Hint        string   `json:"hint,omitempty"`
}

// ToolSearch runs a full-text search over archived content.
func ToolSearch(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input SearchInput) (*sdkmcp.CallToolResult, SearchOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input SearchInput) (*sdkmcp.CallToolResult, SearchOutput, error) {
		if err := requireField("query", input.Query); err != nil {
			return nil, SearchOutput{}, err
		}

		results, err := d.Client.Search(ctx, input.Query)
		if err != nil {
			return nil, SearchOutput{}, WrapArchiveError(err)
		}

		limit := input.Limit
		if limit <= 0 {
			limit = d.Config.DefaultSearchLimit
		}
		total := len(results)
		truncated := false
		if limit > 0 && total > limit {
			results = results[:limit]
			truncated = true
		}

		view, err := d.PresentRecords(results, ViewOptions{
			JQ:         input.JQ,
			SchemaOnly: input.SchemaOnly,
			Full:       input.Full,
		})
		if err != nil {
			return nil, SearchOutput{}, err
		}

		output := SearchOutput{
			Results:     view.Data,
			Total:       total,
			Truncated:   truncated,
			Compacted:   view.Compacted,
			JQErrors:    view.JQErrors,
			JQTruncated: view.JQTruncated,
			Hint:        view.Hint,
		}
		if truncated && output.Hint == "" {
			output.Hint = fmt.Sprintf("Showing %d of %d results. Raise limit or narrow the query.", limit, total)
		}

		summary := printer.Sprintf("Search %q matched %s.", input.Query, plural(total, "record", "records"))
		return summaryResult(summary, nil), output, nil
	}
}
