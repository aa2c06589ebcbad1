package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><body>
	<h1 class="price">$10</h1>
	<h1 class="price">$12</h1>
	<div class="plan"><span>Pro</span> plan</div>
	<a class="dl" href="/a.pdf">A</a>
	<a class="dl">no link</a>
	<a class="dl" href="/b.pdf">B</a>
</body></html>`

func TestExtract_CSS(t *testing.T) {
	e := NewEngine(nil)

	t.Run("text", func(t *testing.T) {
		res, err := e.Extract([]byte(page), "text/html; charset=utf-8", "h1.price", "", 0)
		require.NoError(t, err)
		assert.Equal(t, ModeCSS, res.Mode)
		assert.Equal(t, []any{"$10", "$12"}, res.Values)
	})

	t.Run("nested text", func(t *testing.T) {
		res, err := e.Extract([]byte(page), "text/html", "div.plan", ModeCSS, 0)
		require.NoError(t, err)
		assert.Equal(t, []any{"Pro plan"}, res.Values)
	})

	t.Run("attribute", func(t *testing.T) {
		res, err := e.Extract([]byte(page), "text/html", "a.dl@href", "", 0)
		require.NoError(t, err)
		assert.Equal(t, []any{"/a.pdf", "/b.pdf"}, res.Values)
	})

	t.Run("max results", func(t *testing.T) {
		res, err := e.Extract([]byte(page), "text/html", "h1.price", "", 1)
		require.NoError(t, err)
		assert.Equal(t, []any{"$10"}, res.Values)
		assert.True(t, res.Truncated)
	})

	t.Run("no matches", func(t *testing.T) {
		res, err := e.Extract([]byte(page), "text/html", "h2.missing", "", 0)
		require.NoError(t, err)
		assert.NotNil(t, res.Values)
		assert.Empty(t, res.Values)
	})
}

func TestSplitAttr(t *testing.T) {
	tests := []struct {
		in, selector, attr string
	}{
		{"a@href", "a", "href"},
		{"div.x > img@src", "div.x > img", "src"},
		{"a[href='x@y']", "a[href='x@y']", ""},
		{"@href", "@href", ""},
		{"h1", "h1", ""},
	}
	for _, tt := range tests {
		sel, attr := splitAttr(tt.in)
		assert.Equal(t, tt.selector, sel, tt.in)
		assert.Equal(t, tt.attr, attr, tt.in)
	}
}

func TestExtract_XPath(t *testing.T) {
	e := NewEngine(nil)

	t.Run("html", func(t *testing.T) {
		res, err := e.Extract([]byte(page), "text/html", "//h1", ModeXPath, 0)
		require.NoError(t, err)
		assert.Equal(t, ModeXPath, res.Mode)
		assert.Equal(t, []any{"$10", "$12"}, res.Values)
	})

	t.Run("xml detected", func(t *testing.T) {
		feed := []byte(`<rss><channel><item><title>One</title></item><item><title>Two</title></item></channel></rss>`)
		res, err := e.Extract(feed, "application/rss+xml", "//item/title", "", 0)
		require.NoError(t, err)
		assert.Equal(t, ModeXPath, res.Mode)
		assert.Equal(t, []any{"One", "Two"}, res.Values)
	})

	t.Run("invalid expression", func(t *testing.T) {
		_, err := e.Extract([]byte(`<a/>`), "application/xml", "//[", "", 0)
		assert.Error(t, err)
	})
}

func TestExtract_Regex(t *testing.T) {
	e := NewEngine(nil)

	t.Run("whole match", func(t *testing.T) {
		res, err := e.Extract([]byte("v1.2 and v1.3"), "text/plain", `v\d\.\d`, "", 0)
		require.NoError(t, err)
		assert.Equal(t, ModeRegex, res.Mode)
		assert.Equal(t, []any{"v1.2", "v1.3"}, res.Values)
	})

	t.Run("first group", func(t *testing.T) {
		res, err := e.Extract([]byte("price=10;price=12"), "", `price=(\d+)`, "", 0)
		require.NoError(t, err)
		assert.Equal(t, []any{"10", "12"}, res.Values)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := e.Extract([]byte("x"), "text/plain", `(`, "", 0)
		assert.Error(t, err)
	})
}

func TestExtract_JQ(t *testing.T) {
	e := NewEngine(nil)

	t.Run("json", func(t *testing.T) {
		res, err := e.Extract([]byte(`{"plans":[{"name":"pro"},{"name":"team"}]}`), "application/json", ".plans[].name", "", 0)
		require.NoError(t, err)
		assert.Equal(t, ModeJQ, res.Mode)
		assert.Equal(t, []any{"pro", "team"}, res.Values)
	})

	t.Run("yaml", func(t *testing.T) {
		res, err := e.Extract([]byte("plans:\n  - name: pro\n  - name: team\n"), "application/yaml", ".plans | length", "", 0)
		require.NoError(t, err)
		assert.Equal(t, []any{2}, res.Values)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := e.Extract([]byte(`<html>`), "application/json", ".", "", 0)
		assert.Error(t, err)
	})
}

func TestExtract_errors(t *testing.T) {
	e := NewEngine(nil)

	_, err := e.Extract([]byte("x"), "text/plain", "", "", 0)
	assert.Error(t, err)

	_, err = e.Extract([]byte("x"), "text/plain", "x", "form", 0)
	assert.ErrorContains(t, err, "unknown mode")
}

func TestDetectMode(t *testing.T) {
	tests := map[string]string{
		"application/json":         ModeJQ,
		"application/ld+json":      ModeJQ,
		"text/html; charset=utf-8": ModeCSS,
		"application/xhtml+xml":    ModeCSS,
		"application/xml":          ModeXPath,
		"image/svg+xml":            ModeXPath,
		"application/x-yaml":       ModeJQ,
		"text/plain":               ModeRegex,
		"":                         ModeRegex,
		"application/octet-stream": ModeRegex,
	}
	for ct, want := range tests {
		assert.Equal(t, want, DetectMode(ct), ct)
	}
}
