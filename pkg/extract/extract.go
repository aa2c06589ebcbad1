// Package extract pulls values out of replayed captures with CSS selectors,
// XPath, regular expressions or jq, picking a mode from the content type when
// none is given.
package extract

import (
	"fmt"

	"github.com/usestring/archivestream-mcp/internal/query"
)

// Extraction modes.
const (
	ModeCSS   = "css"
	ModeXPath = "xpath"
	ModeRegex = "regex"
	ModeJQ    = "jq"
)

// Result holds the values extracted from one document.
type Result struct {
	Values    []any    `json:"values"`
	Mode      string   `json:"mode"`
	Truncated bool     `json:"truncated,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

// Engine dispatches expressions to the handler for their mode.
type Engine struct {
	jq *query.Engine
}

// NewEngine creates an extraction engine sharing jq with the rest of the
// server.
func NewEngine(jq *query.Engine) *Engine {
	if jq == nil {
		jq = query.NewEngine()
	}
	return &Engine{jq: jq}
}

// Extract evaluates expression against body. An empty mode is detected from
// contentType. A maxResults of zero means no limit.
func (e *Engine) Extract(body []byte, contentType, expression, mode string, maxResults int) (*Result, error) {
	if expression == "" {
		return nil, fmt.Errorf("expression is required")
	}
	if mode == "" {
		mode = DetectMode(contentType)
	}

	var (
		res *Result
		err error
	)
	switch mode {
	case ModeCSS:
		res, err = extractCSS(body, expression, maxResults)
	case ModeXPath:
		res, err = extractXPath(body, contentType, expression, maxResults)
	case ModeRegex:
		res, err = extractRegex(body, expression, maxResults)
	case ModeJQ:
		res, err = e.extractJQ(body, contentType, expression, maxResults)
	default:
		return nil, fmt.Errorf("unknown mode: %q (valid: css, xpath, regex, jq)", mode)
	}
	if err != nil {
		return nil, err
	}
	res.Mode = mode
	if res.Values == nil {
		res.Values = []any{}
	}
	return res, nil
}

// collector appends values until max is reached.
type collector struct {
	max       int
	values    []any
	truncated bool
}

func (c *collector) add(v any) bool {
	if c.max > 0 && len(c.values) >= c.max {
		c.truncated = true
		return false
	}
	c.values = append(c.values, v)
	return true
}

func (c *collector) result() *Result {
	return &Result{Values: c.values, Truncated: c.truncated}
}
