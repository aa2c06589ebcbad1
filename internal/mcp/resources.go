package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/archivestream-mcp/internal/mcp/tools"
	"github.com/usestring/archivestream-mcp/pkg/client"
	"github.com/usestring/archivestream-mcp/pkg/jsoncompact"
)

// Resource URI scheme: archivestream://
// Supported URIs (url is path-escaped):
//
//	archivestream://timeline/{url}
//	archivestream://snapshots/{url}
const resourceScheme = "archivestream://"

func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: resourceScheme + "timeline/{url}",
		Name:        "URL Timeline",
		Description: "Full capture history of a URL, as returned by the archive. Use the archive_timeline tool first for a compacted view.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.6,
		},
	}, s.handleResourceTimeline)

	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: resourceScheme + "snapshots/{url}",
		Name:        "URL Snapshots",
		Description: "Snapshot list of a URL up to the default limit. High context cost: prefer archive_snapshots with jq.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.4,
		},
	}, s.handleResourceSnapshots)
}

func (s *Server) handleResourceTimeline(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	kind, pageURL, err := parseResourceURI(req.Params.URI)
	if err != nil {
		return nil, err
	}
	if kind != "timeline" {
		return nil, tools.ErrInvalidInput("not a timeline URI: " + req.Params.URI)
	}

	rec, err := s.deps.Client.GetTimeline(ctx, pageURL)
	if err != nil {
		return nil, tools.WrapArchiveError(err)
	}
	return s.toResourceResult(req.Params.URI, rec)
}

func (s *Server) handleResourceSnapshots(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	kind, pageURL, err := parseResourceURI(req.Params.URI)
	if err != nil {
		return nil, err
	}
	if kind != "snapshots" {
		return nil, tools.ErrInvalidInput("not a snapshots URI: " + req.Params.URI)
	}

	recs, err := s.deps.Client.GetSnapshots(ctx, pageURL, s.deps.Config.DefaultSnapshotLimit)
	if err != nil {
		return nil, tools.WrapArchiveError(err)
	}
	return s.toResourceResult(req.Params.URI, client.Records(recs))
}

// parseResourceURI splits an archivestream:// URI into its kind and the
// unescaped page URL.
func parseResourceURI(uri string) (kind, pageURL string, err error) {
	if !strings.HasPrefix(uri, resourceScheme) {
		return "", "", tools.ErrInvalidInput("invalid URI scheme: expected " + resourceScheme)
	}

	kind, escaped, found := strings.Cut(strings.TrimPrefix(uri, resourceScheme), "/")
	if !found || escaped == "" {
		return "", "", tools.ErrInvalidInput(kind + " URI requires a url")
	}
	switch kind {
	case "timeline", "snapshots":
	default:
		return "", "", tools.ErrInvalidInput(fmt.Sprintf("unknown resource type: %s", kind))
	}

	pageURL, err = url.PathUnescape(escaped)
	if err != nil {
		return "", "", tools.ErrInvalidInput(fmt.Sprintf("invalid url escape: %v", err))
	}
	return kind, pageURL, nil
}

// toResourceResult indents rec as the archive returned it. Bodies over the
// resource byte budget are compacted first.
func (s *Server) toResourceResult(uri string, rec client.Record) (*sdkmcp.ReadResourceResult, error) {
	data := []byte(rec)
	if limit := s.deps.Config.ResourceMaxBytes; limit > 0 && len(data) > limit {
		compacted, err := jsoncompact.Compact(data, &jsoncompact.Options{MaxBytes: limit})
		if err != nil {
			return nil, fmt.Errorf("compacting resource: %w", err)
		}
		data = compacted
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: tools.MimeJSON,
				Text:     buf.String(),
			},
		},
	}, nil
}
