package client

import (
	"context"
	"fmt"
	"net/http"
)

// MaxReplayBytes caps how much of a replayed capture FetchReplay reads.
const MaxReplayBytes = 10 << 20

// Page is a capture as served by the replay endpoint.
type Page struct {
	URL         string
	Timestamp   string
	ContentType string
	Body        []byte
	Truncated   bool // Body stopped at MaxReplayBytes
}

// FetchReplay downloads the capture of pageURL nearest to ts from
// ReplayURL(pageURL, ts). The body is returned as bytes, whatever its type.
func (c *Client) FetchReplay(ctx context.Context, pageURL, ts string) (*Page, error) {
	target := c.ReplayURL(pageURL, ts)
	body, resp, err := c.send(ctx, "replay", target, "/web/"+ts, MaxReplayBytes+1)
	if err != nil {
		return nil, fmt.Errorf("replaying %q at %s: %w", pageURL, ts, err)
	}

	page := &Page{
		URL:         pageURL,
		Timestamp:   ts,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}
	if len(body) > MaxReplayBytes {
		page.Body = body[:MaxReplayBytes]
		page.Truncated = true
	}
	if page.ContentType == "" {
		page.ContentType = http.DetectContentType(page.Body)
	}
	return page, nil
}
