package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchReplay(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	t.Cleanup(srv.Close)

	c := New(WithBaseURL(srv.URL))
	page, err := c.FetchReplay(context.Background(), "https://example.com/a", "20240101000000")
	require.NoError(t, err)

	assert.Equal(t, "/web/20240101000000/https://example.com/a", path)
	assert.Equal(t, "text/html; charset=utf-8", page.ContentType)
	assert.Equal(t, "<html>not json</html>", string(page.Body))
	assert.Equal(t, "20240101000000", page.Timestamp)
	assert.False(t, page.Truncated)
}

func TestFetchReplay_truncates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(strings.Repeat("a", MaxReplayBytes+10)))
	}))
	t.Cleanup(srv.Close)

	page, err := New(WithBaseURL(srv.URL)).FetchReplay(context.Background(), "u", "1")
	require.NoError(t, err)
	assert.True(t, page.Truncated)
	assert.Len(t, page.Body, MaxReplayBytes)
}

func TestFetchReplay_notFound(t *testing.T) {
	srv, _ := newArchive(t, http.StatusNotFound, `{"error":"no capture"}`)

	_, err := New(WithBaseURL(srv.URL)).FetchReplay(context.Background(), "u", "1")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	var se *ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "replay", se.Op)
}
