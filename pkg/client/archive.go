package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
)

// DefaultSnapshotLimit is sent by GetSnapshots when limit is not positive.
const DefaultSnapshotLimit = 50

// Search runs a free-text query over the archive and returns the matching
// records in server order.
func (c *Client) Search(ctx context.Context, query string) ([]Record, error) {
	q := url.Values{"q": {query}}
	results, err := c.getList(ctx, "search", c.baseURL, "/search", q)
	if err != nil {
		return nil, fmt.Errorf("searching for %q: %w", query, err)
	}
	return results, nil
}

// GetSnapshots lists captured snapshots of a URL, newest first, up to limit.
// A limit of zero or less sends DefaultSnapshotLimit.
func (c *Client) GetSnapshots(ctx context.Context, pageURL string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultSnapshotLimit
	}
	q := url.Values{
		"url":   {pageURL},
		"limit": {strconv.Itoa(limit)},
	}
	snapshots, err := c.getList(ctx, "get_snapshots", c.baseURL, "/snapshots", q)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots for %q: %w", pageURL, err)
	}
	return snapshots, nil
}

// Resolve asks the server for the snapshot of pageURL that best matches the
// timestamp at. The timestamp is sent as given.
func (c *Client) Resolve(ctx context.Context, pageURL, at string) (Record, error) {
	q := url.Values{
		"url": {pageURL},
		"at":  {at},
	}
	rec, err := c.get(ctx, "resolve", c.baseURL, "/resolve", q)
	if err != nil {
		return nil, fmt.Errorf("resolving %q at %s: %w", pageURL, at, err)
	}
	return rec, nil
}

// GetDiff returns the raw diff between the snapshots of pageURL at from and to.
func (c *Client) GetDiff(ctx context.Context, pageURL, from, to string) (Record, error) {
	rec, err := c.get(ctx, "get_diff", c.baseURL, "/diff", rangeQuery(pageURL, from, to))
	if err != nil {
		return nil, fmt.Errorf("diffing %q from %s to %s: %w", pageURL, from, to, err)
	}
	return rec, nil
}

// GetSemantic returns the categorized changes between the snapshots of
// pageURL at from and to.
func (c *Client) GetSemantic(ctx context.Context, pageURL, from, to string) (Record, error) {
	rec, err := c.get(ctx, "get_semantic", c.baseURL, "/semantic", rangeQuery(pageURL, from, to))
	if err != nil {
		return nil, fmt.Errorf("classifying changes to %q from %s to %s: %w", pageURL, from, to, err)
	}
	return rec, nil
}

// GetTimeline returns the complete capture history of pageURL.
func (c *Client) GetTimeline(ctx context.Context, pageURL string) (Record, error) {
	q := url.Values{"url": {pageURL}}
	rec, err := c.get(ctx, "get_timeline", c.baseURL, "/timeline", q)
	if err != nil {
		return nil, fmt.Errorf("getting timeline for %q: %w", pageURL, err)
	}
	return rec, nil
}

// Health checks the service liveness endpoint at {root}/health.
// This path lives outside the versioned API.
func (c *Client) Health(ctx context.Context) (Record, error) {
	rec, err := c.get(ctx, "health", c.rootURL, "/health", nil)
	if err != nil {
		return nil, fmt.Errorf("checking health: %w", err)
	}
	return rec, nil
}

// FrontierHealth lists crawl frontier depth per domain from
// {root}/health/frontier, busiest domains first, in server order.
func (c *Client) FrontierHealth(ctx context.Context) ([]Record, error) {
	rows, err := c.getList(ctx, "frontier_health", c.rootURL, "/health/frontier", nil)
	if err != nil {
		return nil, fmt.Errorf("getting frontier health: %w", err)
	}
	return rows, nil
}

// CrawlOutcomes lists crawl event counts per status over the last 24 hours
// from {root}/health/outcomes.
func (c *Client) CrawlOutcomes(ctx context.Context) ([]Record, error) {
	rows, err := c.getList(ctx, "crawl_outcomes", c.rootURL, "/health/outcomes", nil)
	if err != nil {
		return nil, fmt.Errorf("getting crawl outcomes: %w", err)
	}
	return rows, nil
}

// GetSnapshot fetches a single snapshot by id from {root}/snapshot/{id}.
// Like Health, this route is served outside the versioned API.
func (c *Client) GetSnapshot(ctx context.Context, id uuid.UUID) (Record, error) {
	rec, err := c.get(ctx, "get_snapshot", c.rootURL, "/snapshot/"+id.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("getting snapshot %s: %w", id, err)
	}
	return rec, nil
}

// ParseSnapshotID parses a snapshot id as printed by the server. Braced and
// urn:uuid: forms are accepted.
func ParseSnapshotID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid snapshot id %q: %w", s, err)
	}
	return id, nil
}

// ReplayURL returns the address at which the service replays pageURL as it
// was captured at ts. No request is made.
func (c *Client) ReplayURL(pageURL, ts string) string {
	return c.rootURL + "/web/" + ts + "/" + pageURL
}

func rangeQuery(pageURL, from, to string) url.Values {
	return url.Values{
		"url":  {pageURL},
		"from": {from},
		"to":   {to},
	}
}
