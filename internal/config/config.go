// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/usestring/archivestream-mcp/pkg/client"
	"github.com/usestring/archivestream-mcp/pkg/jsoncompact"
)

// Tool output limit defaults
const (
	DefaultSearchLimitValue = 20
	ToolMaxBytesValue       = 200_000
	ResourceMaxBytesValue   = 1_000_000
)

// Config holds all configuration for the MCP server and CLI.
type Config struct {
	ArchiveBaseURL       string        // ARCHIVESTREAM_BASE_URL, default "http://localhost:3001"
	HTTPClientTimeout    time.Duration // HTTP_CLIENT_TIMEOUT_MS, default 30000ms
	DefaultSnapshotLimit int           // DEFAULT_SNAPSHOT_LIMIT, default 50
	DefaultSearchLimit   int           // DEFAULT_SEARCH_LIMIT, default 20
	ToolMaxBytes         int           // TOOL_MAX_BYTES, default 200_000
	ResourceMaxBytes     int           // RESOURCE_MAX_BYTES, default 1_000_000

	// Compaction defaults (for AI-optimized responses)
	CompactMaxArrayItems int // COMPACT_MAX_ARRAY_ITEMS
	CompactMaxStringLen  int // COMPACT_MAX_STRING_LEN
	CompactMaxDepth      int // COMPACT_MAX_DEPTH

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFormat     string // LOG_FORMAT, text or json, default "text"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		ArchiveBaseURL:       getEnvString("ARCHIVESTREAM_BASE_URL", client.DefaultBaseURL),
		HTTPClientTimeout:    getEnvDurationMs("HTTP_CLIENT_TIMEOUT_MS", int(client.DefaultTimeout/time.Millisecond)),
		DefaultSnapshotLimit: getEnvInt("DEFAULT_SNAPSHOT_LIMIT", client.DefaultSnapshotLimit),
		DefaultSearchLimit:   getEnvInt("DEFAULT_SEARCH_LIMIT", DefaultSearchLimitValue),
		ToolMaxBytes:         getEnvInt("TOOL_MAX_BYTES", ToolMaxBytesValue),
		ResourceMaxBytes:     getEnvInt("RESOURCE_MAX_BYTES", ResourceMaxBytesValue),

		CompactMaxArrayItems: getEnvInt("COMPACT_MAX_ARRAY_ITEMS", jsoncompact.DefaultMaxArrayItems),
		CompactMaxStringLen:  getEnvInt("COMPACT_MAX_STRING_LEN", jsoncompact.DefaultMaxStringLen),
		CompactMaxDepth:      getEnvInt("COMPACT_MAX_DEPTH", jsoncompact.DefaultMaxDepth),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFormat:     getEnvString("LOG_FORMAT", "text"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

// NewClient builds an archive client from the configured base URL and timeout.
func (c *Config) NewClient(opts ...client.Option) *client.Client {
	base := []client.Option{
		client.WithBaseURL(c.ArchiveBaseURL),
		client.WithTimeout(c.HTTPClientTimeout),
	}
	return client.New(append(base, opts...)...)
}

// CompactOptions returns the compaction settings for tool output.
func (c *Config) CompactOptions() *jsoncompact.Options {
	return &jsoncompact.Options{
		MaxArrayItems: c.CompactMaxArrayItems,
		MaxStringLen:  c.CompactMaxStringLen,
		MaxDepth:      c.CompactMaxDepth,
		MaxBytes:      c.ToolMaxBytes,
	}
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDurationMs(key string, defaultMs int) time.Duration {
	ms := getEnvInt(key, defaultMs)
	return time.Duration(ms) * time.Millisecond
}
