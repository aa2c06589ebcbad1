package compare

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/archivestream-mcp/pkg/client"
)

type fakeArchive struct {
	resolve  func(ctx context.Context, at string) (client.Record, error)
	diff     func(ctx context.Context) (client.Record, error)
	semantic func(ctx context.Context) (client.Record, error)
	calls    atomic.Int32
}

func (f *fakeArchive) Resolve(ctx context.Context, _, at string) (client.Record, error) {
	f.calls.Add(1)
	return f.resolve(ctx, at)
}

func (f *fakeArchive) GetDiff(ctx context.Context, _, _, _ string) (client.Record, error) {
	f.calls.Add(1)
	return f.diff(ctx)
}

func (f *fakeArchive) GetSemantic(ctx context.Context, _, _, _ string) (client.Record, error) {
	f.calls.Add(1)
	return f.semantic(ctx)
}

func okArchive() *fakeArchive {
	return &fakeArchive{
		resolve: func(_ context.Context, at string) (client.Record, error) {
			return client.Record(`{"requested_at":"` + at + `","actual_timestamp":"` + at + `","replay_url":"/web/` + at + `/u"}`), nil
		},
		diff: func(context.Context) (client.Record, error) {
			return client.Record(`{"summary":{"added":3,"removed":1,"unchanged":9},"changes":[]}`), nil
		},
		semantic: func(context.Context) (client.Record, error) {
			return client.Record(`{"alerts_triggered":0}`), nil
		},
	}
}

func TestCompare_CombinesResults(t *testing.T) {
	fa := okArchive()

	cmp, err := NewEngine(fa).Compare(context.Background(), "https://a.com", "20200101000000", "20210101000000")
	require.NoError(t, err)
	assert.Equal(t, int32(4), fa.calls.Load())
	assert.Equal(t, "20200101000000", cmp.From.ActualTimestamp)
	assert.Equal(t, "/web/20210101000000/u", cmp.To.ReplayURL)
	assert.JSONEq(t, `{"alerts_triggered":0}`, cmp.Semantic.String())
	assert.Equal(t, "https://a.com: 20200101000000 -> 20210101000000, +3 -1 lines", cmp.Summary())
}

func TestCompare_ResolvesConcurrently(t *testing.T) {
	fa := okArchive()
	var inFlight atomic.Int32
	both := make(chan struct{})
	inner := fa.resolve
	fa.resolve = func(ctx context.Context, at string) (client.Record, error) {
		if inFlight.Add(1) == 2 {
			close(both)
		}
		select {
		case <-both:
		case <-time.After(time.Second):
			return nil, errors.New("resolves did not overlap")
		}
		return inner(ctx, at)
	}

	_, err := NewEngine(fa).Compare(context.Background(), "u", "a", "b")
	require.NoError(t, err)
}

func TestCompare_ResolveFailureSkipsDiff(t *testing.T) {
	fa := okArchive()
	notFound := &client.ServerError{Op: "resolve", StatusCode: 404}
	fa.resolve = func(_ context.Context, at string) (client.Record, error) {
		if at == "bad" {
			return nil, notFound
		}
		return client.Record(`{}`), nil
	}

	_, err := NewEngine(fa).Compare(context.Background(), "u", "good", "bad")
	assert.True(t, client.IsNotFound(err))
	assert.Equal(t, int32(2), fa.calls.Load())
}

func TestCompare_FailureCancelsSibling(t *testing.T) {
	fa := okArchive()
	boom := errors.New("boom")
	fa.diff = func(context.Context) (client.Record, error) { return nil, boom }
	fa.semantic = func(ctx context.Context) (client.Record, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
			return client.Record(`{}`), nil
		}
	}

	start := time.Now()
	_, err := NewEngine(fa).Compare(context.Background(), "u", "a", "b")
	assert.ErrorIs(t, err, boom)
	assert.Less(t, time.Since(start), time.Second)
}

func TestCompare_UnexpectedResolutionShapeKept(t *testing.T) {
	fa := okArchive()
	fa.resolve = func(context.Context, string) (client.Record, error) {
		return client.Record(`["not","an","object"]`), nil
	}

	cmp, err := NewEngine(fa).Compare(context.Background(), "u", "a", "b")
	require.NoError(t, err)
	assert.Empty(t, cmp.From.ActualTimestamp)
	assert.Equal(t, `["not","an","object"]`, cmp.From.Resolution.String())
	assert.Contains(t, cmp.Summary(), "a -> b")
}
