package client

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperations_PathsAndQueries(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		call      func(c *Client) error
		wantPath  string
		wantQuery url.Values
	}{
		{
			name: "search",
			body: `[]`,
			call: func(c *Client) error {
				_, err := c.Search(context.Background(), "climate report")
				return err
			},
			wantPath:  "/api/v1/search",
			wantQuery: url.Values{"q": {"climate report"}},
		},
		{
			name: "get_snapshots",
			body: `[]`,
			call: func(c *Client) error {
				_, err := c.GetSnapshots(context.Background(), "https://a.com/x?y=1", 7)
				return err
			},
			wantPath:  "/api/v1/snapshots",
			wantQuery: url.Values{"url": {"https://a.com/x?y=1"}, "limit": {"7"}},
		},
		{
			name: "resolve",
			body: `{}`,
			call: func(c *Client) error {
				_, err := c.Resolve(context.Background(), "https://a.com", "20200101000000")
				return err
			},
			wantPath:  "/api/v1/resolve",
			wantQuery: url.Values{"url": {"https://a.com"}, "at": {"20200101000000"}},
		},
		{
			name: "get_diff",
			body: `{}`,
			call: func(c *Client) error {
				_, err := c.GetDiff(context.Background(), "https://a.com", "20200101000000", "20210101000000")
				return err
			},
			wantPath:  "/api/v1/diff",
			wantQuery: url.Values{"url": {"https://a.com"}, "from": {"20200101000000"}, "to": {"20210101000000"}},
		},
		{
			name: "get_semantic",
			body: `{}`,
			call: func(c *Client) error {
				_, err := c.GetSemantic(context.Background(), "https://a.com", "20200101000000", "20210101000000")
				return err
			},
			wantPath:  "/api/v1/semantic",
			wantQuery: url.Values{"url": {"https://a.com"}, "from": {"20200101000000"}, "to": {"20210101000000"}},
		},
		{
			name: "get_timeline",
			body: `{}`,
			call: func(c *Client) error {
				_, err := c.GetTimeline(context.Background(), "https://a.com")
				return err
			},
			wantPath:  "/api/v1/timeline",
			wantQuery: url.Values{"url": {"https://a.com"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, got := newArchive(t, http.StatusOK, tt.body)
			c := New(WithBaseURL(srv.URL + "/"))

			require.NoError(t, tt.call(c))
			assert.Equal(t, http.MethodGet, got.Method)
			assert.Equal(t, tt.wantPath, got.Path)
			assert.Equal(t, tt.wantQuery, got.Query)
		})
	}
}

func TestOperations_NotFoundNeverDecodes(t *testing.T) {
	calls := map[string]func(c *Client) (any, error){
		"search":        func(c *Client) (any, error) { return c.Search(context.Background(), "q") },
		"get_snapshots": func(c *Client) (any, error) { return c.GetSnapshots(context.Background(), "u", 1) },
		"resolve":       func(c *Client) (any, error) { return c.Resolve(context.Background(), "u", "t") },
		"get_diff":      func(c *Client) (any, error) { return c.GetDiff(context.Background(), "u", "a", "b") },
		"get_semantic":  func(c *Client) (any, error) { return c.GetSemantic(context.Background(), "u", "a", "b") },
		"get_timeline":  func(c *Client) (any, error) { return c.GetTimeline(context.Background(), "u") },
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			srv, _ := newArchive(t, http.StatusNotFound, `{"changes": []}`)
			res, err := call(New(WithBaseURL(srv.URL)))

			var se *ServerError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, http.StatusNotFound, se.StatusCode)
			assert.Equal(t, name, se.Op)
			assert.Nil(t, res)
		})
	}
}

func TestSearch_DefaultBaseScenario(t *testing.T) {
	// A client built without options targets the loopback default; point the
	// transport at a fake archive to observe the exact request line.
	srv, got := newArchive(t, http.StatusOK, `[{"url":"https://example.com","score":1.5}]`)
	target, err := url.Parse(srv.URL)
	require.NoError(t, err)

	var seenHost string
	hc := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		seenHost = r.URL.Host
		out := r.Clone(r.Context())
		out.URL.Host = target.Host
		return http.DefaultTransport.RoundTrip(out)
	})}

	results, err := New(WithHTTPClient(hc)).Search(context.Background(), "example")
	require.NoError(t, err)
	assert.Equal(t, "localhost:3001", seenHost)
	assert.Equal(t, "/api/v1/search", got.Path)
	assert.Equal(t, "q=example", got.Query.Encode())
	require.Len(t, results, 1)
	assert.JSONEq(t, `{"url":"https://example.com","score":1.5}`, results[0].String())
}

func TestGetSnapshots_ExactKeys(t *testing.T) {
	for _, limit := range []int{1, 50, 1000} {
		srv, got := newArchive(t, http.StatusOK, `[]`)
		_, err := New(WithBaseURL(srv.URL)).GetSnapshots(context.Background(), "https://a.com", limit)
		require.NoError(t, err)
		assert.Len(t, got.Query, 2)
		assert.Equal(t, "https://a.com", got.Query.Get("url"))
		assert.Equal(t, url.Values{"url": {"https://a.com"}, "limit": {got.Query.Get("limit")}}, got.Query)
	}
}

func TestGetSnapshots_DefaultLimit(t *testing.T) {
	srv, got := newArchive(t, http.StatusOK, `[]`)
	_, err := New(WithBaseURL(srv.URL)).GetSnapshots(context.Background(), "https://a.com", 0)
	require.NoError(t, err)
	assert.Equal(t, "50", got.Query.Get("limit"))
}

func TestGetSnapshots_ElementsVerbatim(t *testing.T) {
	body := `[{"id":"b","timestamp":"2021-01-01T00:00:00Z"},  {"id":"a","status_code":200}]`
	srv, _ := newArchive(t, http.StatusOK, body)

	snaps, err := New(WithBaseURL(srv.URL)).GetSnapshots(context.Background(), "https://a.com", 2)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, `{"id":"b","timestamp":"2021-01-01T00:00:00Z"}`, snaps[0].String())
	assert.Equal(t, `{"id":"a","status_code":200}`, snaps[1].String())

	s, err := As[Snapshot](snaps[1])
	require.NoError(t, err)
	assert.Equal(t, 200, s.StatusCode)
}

func TestSearch_NonArrayIsDecodeError(t *testing.T) {
	srv, _ := newArchive(t, http.StatusOK, `{"results": []}`)
	_, err := New(WithBaseURL(srv.URL)).Search(context.Background(), "q")
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, []byte(`{"results": []}`), de.Body)
}

func TestSearch_NullIsEmpty(t *testing.T) {
	srv, _ := newArchive(t, http.StatusOK, `null`)
	res, err := New(WithBaseURL(srv.URL)).Search(context.Background(), "q")
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Empty(t, res)
}

func TestResolve_Scenario(t *testing.T) {
	body := `{"timestamp": "2019-12-31T23:00:00Z", "snapshot_id": "x1"}`
	srv, got := newArchive(t, http.StatusOK, body)

	rec, err := New(WithBaseURL(srv.URL)).Resolve(context.Background(), "http://a.com", "2020-01-01T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/resolve", got.Path)
	assert.Equal(t, "http://a.com", got.Query.Get("url"))
	assert.Equal(t, "2020-01-01T00:00:00Z", got.Query.Get("at"))
	assert.Equal(t, body, rec.String(), "body is returned byte-for-byte")

	v, err := rec.Value()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"timestamp": "2019-12-31T23:00:00Z", "snapshot_id": "x1"}, v)
}

func TestGetDiff_NotFoundScenario(t *testing.T) {
	srv, _ := newArchive(t, http.StatusNotFound, `One or both snapshots not found`)
	rec, err := New(WithBaseURL(srv.URL)).GetDiff(context.Background(), "https://a.com", "20200101000000", "20210101000000")
	assert.Nil(t, rec)
	assert.True(t, IsNotFound(err))
}

func TestHealth_OutsideVersionedAPI(t *testing.T) {
	srv, got := newArchive(t, http.StatusOK, `{"status":"ok"}`)
	rec, err := New(WithBaseURL(srv.URL)).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/health", got.Path)
	assert.Empty(t, got.Query)

	h, err := As[Health](rec)
	require.NoError(t, err)
	assert.Equal(t, "ok", h.Status)
}

func TestFrontierHealth_RootPath(t *testing.T) {
	body := `[{"domain":"b.com","count":120,"depth_range":[0,4]},{"domain":"a.com","count":7,"depth_range":[1,1]}]`
	srv, got := newArchive(t, http.StatusOK, body)

	rows, err := New(WithBaseURL(srv.URL + "/")).FrontierHealth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/health/frontier", got.Path)
	assert.Empty(t, got.Query)
	require.Len(t, rows, 2)

	m, err := As[FrontierMetric](rows[0])
	require.NoError(t, err)
	assert.Equal(t, "b.com", m.Domain)
	assert.Equal(t, [2]int64{0, 4}, m.DepthRange)
}

func TestCrawlOutcomes_RootPath(t *testing.T) {
	body := `[{"status":"success","count":9},{"status":"error","count":1}]`
	srv, got := newArchive(t, http.StatusOK, body)

	rows, err := New(WithBaseURL(srv.URL)).CrawlOutcomes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/health/outcomes", got.Path)
	require.Len(t, rows, 2)
	assert.Equal(t, `{"status":"error","count":1}`, rows[1].String())
}

func TestCrawlOutcomes_ServerError(t *testing.T) {
	srv, _ := newArchive(t, http.StatusInternalServerError, `Outcomes failed`)
	_, err := New(WithBaseURL(srv.URL)).CrawlOutcomes(context.Background())

	var se *ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "crawl_outcomes", se.Op)
}

func TestSuccessRate(t *testing.T) {
	assert.Equal(t, 0.0, SuccessRate(nil))
	assert.InDelta(t, 0.9, SuccessRate([]OutcomeMetric{
		{Status: OutcomeSuccess, Count: 9},
		{Status: OutcomeError, Count: 1},
	}), 1e-9)
}

func TestReplayURL(t *testing.T) {
	c := New(WithBaseURL("http://archive:3001/"))
	assert.Equal(t, "http://archive:3001/web/20240102030405/https://a.com/page",
		c.ReplayURL("https://a.com/page", "20240102030405"))
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestGetSnapshot_RootPath(t *testing.T) {
	body := `{"id":"6f1c2a9e-3b7d-4c1a-9f0e-2d5b8a7c4e11","url":"https://a.com","status_code":200}`
	srv, got := newArchive(t, http.StatusOK, body)

	id, err := ParseSnapshotID("6f1c2a9e-3b7d-4c1a-9f0e-2d5b8a7c4e11")
	require.NoError(t, err)

	rec, err := New(WithBaseURL(srv.URL)).GetSnapshot(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "/snapshot/6f1c2a9e-3b7d-4c1a-9f0e-2d5b8a7c4e11", got.Path)
	assert.Empty(t, got.Query)
	assert.Equal(t, body, rec.String())
}

func TestGetSnapshot_NotFound(t *testing.T) {
	srv, _ := newArchive(t, http.StatusNotFound, `Snapshot not found`)
	_, err := New(WithBaseURL(srv.URL)).GetSnapshot(context.Background(), uuid.New())

	var se *ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "get_snapshot", se.Op)
	assert.Equal(t, []byte("Snapshot not found"), se.Body)
}

func TestParseSnapshotID(t *testing.T) {
	id, err := ParseSnapshotID("{6F1C2A9E-3B7D-4C1A-9F0E-2D5B8A7C4E11}")
	require.NoError(t, err)
	assert.Equal(t, "6f1c2a9e-3b7d-4c1a-9f0e-2d5b8a7c4e11", id.String())

	_, err = ParseSnapshotID("x1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"x1"`)
}
