package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/archivestream-mcp/pkg/client"
)

// FrontierInput is the input for archive_frontier.
type FrontierInput struct {
	JQ   string `json:"jq,omitempty" jsonschema:"jq expression applied to the domain list, e.g. 'map(select(.count > 100))'"`
	Full bool   `json:"full,omitempty" jsonschema:"Skip compaction of long arrays"`
}

// FrontierOutput is the output for archive_frontier.
type FrontierOutput struct {
	Domains     any      `json:"domains"`
	Total       int      `json:"total"`
	Compacted   bool     `json:"compacted,omitempty"`
	JQErrors    []string `json:"jq_errors,omitzero"`
	JQTruncated bool     `json:"jq_truncated,omitempty"`
	Hint        string   `json:"hint,omitempty"`
}

// ToolFrontier reports how many URLs wait in the crawl frontier per domain.
func ToolFrontier(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input FrontierInput) (*sdkmcp.CallToolResult, FrontierOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input FrontierInput) (*sdkmcp.CallToolResult, FrontierOutput, error) {
		rows, err := d.Client.FrontierHealth(ctx)
		if err != nil {
			return nil, FrontierOutput{}, WrapArchiveError(err)
		}

		view, err := d.PresentRecords(rows, ViewOptions{JQ: input.JQ, Full: input.Full})
		if err != nil {
			return nil, FrontierOutput{}, err
		}

		output := FrontierOutput{
			Domains:     view.Data,
			Total:       len(rows),
			Compacted:   view.Compacted,
			JQErrors:    view.JQErrors,
			JQTruncated: view.JQTruncated,
			Hint:        view.Hint,
		}

		summary := printer.Sprintf("Frontier holds %s.", plural(len(rows), "domain", "domains"))
		if len(rows) > 0 {
			if top, err := client.As[client.FrontierMetric](rows[0]); err == nil && top.Domain != "" {
				summary = printer.Sprintf("Frontier holds %s. Busiest: %s with %d queued URLs (depth %d-%d).",
					plural(len(rows), "domain", "domains"), top.Domain, top.Count, top.DepthRange[0], top.DepthRange[1])
			}
		}
		return summaryResult(summary, nil), output, nil
	}
}

// OutcomesInput is the input for archive_outcomes.
type OutcomesInput struct{}

// OutcomesOutput is the output for archive_outcomes.
type OutcomesOutput struct {
	Outcomes    any     `json:"outcomes"`
	TotalEvents int64   `json:"total_events"`
	SuccessRate float64 `json:"success_rate"`
}

// ToolOutcomes reports crawl results per status over the last 24 hours.
func ToolOutcomes(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input OutcomesInput) (*sdkmcp.CallToolResult, OutcomesOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input OutcomesInput) (*sdkmcp.CallToolResult, OutcomesOutput, error) {
		rows, err := d.Client.CrawlOutcomes(ctx)
		if err != nil {
			return nil, OutcomesOutput{}, WrapArchiveError(err)
		}
		v, err := client.Records(rows).Value()
		if err != nil {
			return nil, OutcomesOutput{}, errDecode(err)
		}

		output := OutcomesOutput{Outcomes: v}
		metrics := make([]client.OutcomeMetric, 0, len(rows))
		for _, row := range rows {
			m, err := client.As[client.OutcomeMetric](row)
			if err != nil {
				continue
			}
			metrics = append(metrics, m)
			output.TotalEvents += m.Count
		}
		output.SuccessRate = client.SuccessRate(metrics)

		summary := printer.Sprintf("%d crawl events in the last 24h, %.1f%% successful.", output.TotalEvents, output.SuccessRate*100)
		return summaryResult(summary, nil), output, nil
	}
}
