package prompts

import (
	"context"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleInvestigateChanges(t *testing.T) {
	h := HandleInvestigateChanges(&Config{ArchiveBaseURL: "http://localhost:3001", DefaultSnapshotLimit: 50})

	res, err := h(context.Background(), &sdkmcp.GetPromptRequest{
		Params: &sdkmcp.GetPromptParams{
			Name:      "investigate_changes",
			Arguments: map[string]string{"url": "https://a.com/pricing", "since": "20240101000000"},
		},
	})
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)

	text := res.Messages[0].Content.(*sdkmcp.TextContent).Text
	assert.Contains(t, text, "`https://a.com/pricing`")
	assert.Contains(t, text, "`20240101000000`")
	assert.Contains(t, text, "default limit 50")
	assert.Contains(t, text, "archive_compare")
}

func TestHandleInvestigateChanges_RequiresURL(t *testing.T) {
	h := HandleInvestigateChanges(&Config{})
	_, err := h(context.Background(), &sdkmcp.GetPromptRequest{Params: &sdkmcp.GetPromptParams{}})
	assert.Error(t, err)
}
