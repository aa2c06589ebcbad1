// Package compare pairs two points in a URL's history: it resolves both
// timestamps and fetches the raw and semantic diffs between them.
package compare

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/usestring/archivestream-mcp/pkg/client"
)

// Archive is the subset of the archive client the engine needs.
type Archive interface {
	Resolve(ctx context.Context, pageURL, at string) (client.Record, error)
	GetDiff(ctx context.Context, pageURL, from, to string) (client.Record, error)
	GetSemantic(ctx context.Context, pageURL, from, to string) (client.Record, error)
}

// Endpoint is one side of a comparison.
type Endpoint struct {
	Requested       string        `json:"requested"`
	ActualTimestamp string        `json:"actual_timestamp,omitempty"`
	ReplayURL       string        `json:"replay_url,omitempty"`
	Resolution      client.Record `json:"resolution"`
}

// Comparison is the combined result of Compare. Records are carried as the
// server returned them.
type Comparison struct {
	URL      string        `json:"url"`
	From     Endpoint      `json:"from"`
	To       Endpoint      `json:"to"`
	Diff     client.Record `json:"diff"`
	Semantic client.Record `json:"semantic"`
}

// Engine runs comparisons against an Archive.
type Engine struct {
	archive Archive
}

// NewEngine creates a comparison engine.
func NewEngine(a Archive) *Engine {
	return &Engine{archive: a}
}

// Compare resolves from and to concurrently, then fetches the diff and the
// semantic change concurrently. The first failure cancels the in-flight
// requests of its phase and is returned.
func (e *Engine) Compare(ctx context.Context, pageURL, from, to string) (*Comparison, error) {
	start := time.Now()
	cmp := &Comparison{
		URL:  pageURL,
		From: Endpoint{Requested: from},
		To:   Endpoint{Requested: to},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return e.resolve(gctx, pageURL, &cmp.From) })
	g.Go(func() error { return e.resolve(gctx, pageURL, &cmp.To) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		rec, err := e.archive.GetDiff(gctx, pageURL, from, to)
		cmp.Diff = rec
		return err
	})
	g.Go(func() error {
		rec, err := e.archive.GetSemantic(gctx, pageURL, from, to)
		cmp.Semantic = rec
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("comparison completed",
		slog.String("url", pageURL),
		slog.String("from", cmp.From.ActualTimestamp),
		slog.String("to", cmp.To.ActualTimestamp),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return cmp, nil
}

func (e *Engine) resolve(ctx context.Context, pageURL string, ep *Endpoint) error {
	rec, err := e.archive.Resolve(ctx, pageURL, ep.Requested)
	if err != nil {
		return err
	}
	ep.Resolution = rec

	// The typed view is best effort; the raw record is what callers get.
	if res, err := client.As[client.Resolution](rec); err == nil {
		ep.ActualTimestamp = res.ActualTimestamp
		ep.ReplayURL = res.ReplayURL
	} else {
		slog.Debug("resolution has unexpected shape", slog.String("error", err.Error()))
	}
	return nil
}

// Summary is a one-line description of a comparison.
func (c *Comparison) Summary() string {
	d, err := client.As[client.Diff](c.Diff)
	if err != nil {
		return fmt.Sprintf("%s: %s -> %s", c.URL, c.From.label(), c.To.label())
	}
	return fmt.Sprintf("%s: %s -> %s, +%d -%d lines", c.URL, c.From.label(), c.To.label(), d.Summary.Added, d.Summary.Removed)
}

func (ep Endpoint) label() string {
	if ep.ActualTimestamp != "" {
		return ep.ActualTimestamp
	}
	return ep.Requested
}
