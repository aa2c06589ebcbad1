package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/archivestream-mcp/pkg/jsoncompact"
)

// ExtractInput is the input for archive_extract.
type ExtractInput struct {
	URL        string `json:"url" jsonschema:"required,Captured URL, exactly as archived"`
	Timestamp  string `json:"timestamp" jsonschema:"required,Capture timestamp (YYYYMMDDhhmmss); the archive serves the nearest capture"`
	Expression string `json:"expression" jsonschema:"required,Selector for the chosen mode: CSS ('h1.title' or 'a@href' for an attribute), XPath ('//title'), regex (first group is returned) or jq"`
	Mode       string `json:"mode,omitempty" jsonschema:"css, xpath, regex or jq. Default: detected from the capture's content type"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Max values returned (default: 100)"`
}

// ExtractOutput is the output for archive_extract.
type ExtractOutput struct {
	URL           string   `json:"url"`
	Timestamp     string   `json:"timestamp"`
	ReplayURL     string   `json:"replay_url"`
	ContentType   string   `json:"content_type,omitempty"`
	Mode          string   `json:"mode"`
	Values        []any    `json:"values,omitzero"`
	Count         int      `json:"count"`
	Truncated     bool     `json:"truncated,omitempty"`
	PageTruncated bool     `json:"page_truncated,omitempty"`
	Errors        []string `json:"errors,omitzero"`
}

const defaultExtractResults = 100

// ToolExtract replays a capture and pulls values out of it.
func ToolExtract(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ExtractInput) (*sdkmcp.CallToolResult, ExtractOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ExtractInput) (*sdkmcp.CallToolResult, ExtractOutput, error) {
		if err := requireField("url", input.URL); err != nil {
			return nil, ExtractOutput{}, err
		}
		if err := requireField("timestamp", input.Timestamp); err != nil {
			return nil, ExtractOutput{}, err
		}
		if err := requireField("expression", input.Expression); err != nil {
			return nil, ExtractOutput{}, err
		}

		maxResults := input.MaxResults
		if maxResults <= 0 {
			maxResults = defaultExtractResults
		}

		page, err := d.Client.FetchReplay(ctx, input.URL, input.Timestamp)
		if err != nil {
			return nil, ExtractOutput{}, WrapArchiveError(err)
		}

		res, err := d.Extract.Extract(page.Body, page.ContentType, input.Expression, input.Mode, maxResults)
		if err != nil {
			return nil, ExtractOutput{}, ErrInvalidInput(err.Error())
		}

		values := res.Values
		if fitted, ok := jsoncompact.CompactValue(values, d.Config.CompactOptions()).([]any); ok {
			values = fitted
		}
		output := ExtractOutput{
			URL:           input.URL,
			Timestamp:     input.Timestamp,
			ReplayURL:     d.Client.ReplayURL(input.URL, input.Timestamp),
			ContentType:   page.ContentType,
			Mode:          res.Mode,
			Values:        values,
			Count:         len(res.Values),
			Truncated:     res.Truncated,
			PageTruncated: page.Truncated,
			Errors:        res.Errors,
		}

		summary := printer.Sprintf("Extracted %s from %s at %s (%s).",
			plural(len(res.Values), "value", "values"), input.URL, input.Timestamp, res.Mode)
		return summaryResult(summary, nil), output, nil
	}
}
