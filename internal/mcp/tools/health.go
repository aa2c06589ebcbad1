package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/archivestream-mcp/pkg/client"
)

// HealthInput is the input for archive_health.
type HealthInput struct{}

// HealthOutput is the output for archive_health.
type HealthOutput struct {
	BaseURL string `json:"base_url"`
	Health  any    `json:"health"`
	Status  string `json:"status,omitempty"`
}

// ToolHealth checks that the archive server is reachable.
func ToolHealth(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input HealthInput) (*sdkmcp.CallToolResult, HealthOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input HealthInput) (*sdkmcp.CallToolResult, HealthOutput, error) {
		rec, err := d.Client.Health(ctx)
		if err != nil {
			return nil, HealthOutput{}, WrapArchiveError(err)
		}
		v, err := rec.Value()
		if err != nil {
			return nil, HealthOutput{}, errDecode(err)
		}

		output := HealthOutput{BaseURL: d.Client.RootURL(), Health: v}
		if h, err := client.As[client.Health](rec); err == nil {
			output.Status = h.Status
		}

		summary := printer.Sprintf("Archive at %s is up.", output.BaseURL)
		if output.Status != "" {
			summary = printer.Sprintf("Archive at %s reports %q.", output.BaseURL, output.Status)
		}
		return summaryResult(summary, nil), output, nil
	}
}
