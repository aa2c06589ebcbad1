package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/usestring/archivestream-mcp/pkg/client"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"ARCHIVESTREAM_BASE_URL", "HTTP_CLIENT_TIMEOUT_MS", "DEFAULT_SNAPSHOT_LIMIT", "LOG_LEVEL", "LOG_COMPRESS"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, client.DefaultBaseURL, cfg.ArchiveBaseURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPClientTimeout)
	assert.Equal(t, 50, cfg.DefaultSnapshotLimit)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.LogCompress)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("ARCHIVESTREAM_BASE_URL", "http://archive:9000/")
	t.Setenv("HTTP_CLIENT_TIMEOUT_MS", "1500")
	t.Setenv("DEFAULT_SNAPSHOT_LIMIT", "5")
	t.Setenv("LOG_COMPRESS", "off")
	t.Setenv("TOOL_MAX_BYTES", "not-a-number")

	cfg := Load()
	assert.Equal(t, "http://archive:9000/", cfg.ArchiveBaseURL)
	assert.Equal(t, 1500*time.Millisecond, cfg.HTTPClientTimeout)
	assert.Equal(t, 5, cfg.DefaultSnapshotLimit)
	assert.False(t, cfg.LogCompress)
	assert.Equal(t, ToolMaxBytesValue, cfg.ToolMaxBytes)

	c := cfg.NewClient()
	assert.Equal(t, "http://archive:9000/api/v1", c.BaseURL())
}
