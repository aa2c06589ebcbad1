package tools

import (
	"context"
	"fmt"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/archivestream-mcp/pkg/client"
)

// SnapshotInput is the input for archive_snapshot.
type SnapshotInput struct {
	ID string `json:"id" jsonschema:"required,Snapshot id (UUID) as listed by archive_snapshots"`
}

// SnapshotOutput is the output for archive_snapshot.
type SnapshotOutput struct {
	Snapshot  any    `json:"snapshot"`
	ReplayURL string `json:"replay_url,omitempty"`
}

// ToolSnapshot fetches one snapshot by id.
func ToolSnapshot(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input SnapshotInput) (*sdkmcp.CallToolResult, SnapshotOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input SnapshotInput) (*sdkmcp.CallToolResult, SnapshotOutput, error) {
		if err := requireField("id", input.ID); err != nil {
			return nil, SnapshotOutput{}, err
		}
		id, err := client.ParseSnapshotID(input.ID)
		if err != nil {
			return nil, SnapshotOutput{}, ErrInvalidInput(err.Error())
		}

		rec, err := d.Client.GetSnapshot(ctx, id)
		if err != nil {
			return nil, SnapshotOutput{}, WrapArchiveError(err)
		}
		v, err := rec.Value()
		if err != nil {
			return nil, SnapshotOutput{}, errDecode(err)
		}

		output := SnapshotOutput{Snapshot: v}
		summary := fmt.Sprintf("Snapshot %s.", id)
		if s, err := client.As[client.Snapshot](rec); err == nil && s.URL != "" && s.Timestamp != "" {
			// Snapshot rows carry RFC 3339 times; replay wants the 14-digit form.
			ts := s.Timestamp
			if t, err := time.Parse(time.RFC3339, ts); err == nil {
				ts = client.FormatTimestamp(t)
			}
			output.ReplayURL = d.Client.ReplayURL(s.URL, ts)
			summary = printer.Sprintf("Snapshot %s of %s captured %s (HTTP %d).", id, s.URL, s.Timestamp, s.StatusCode)
		}

		return summaryResult(summary, nil), output, nil
	}
}
