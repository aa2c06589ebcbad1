// Package query filters archive results with jq expressions.
package query

import (
	"errors"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/itchyny/gojq"

	"github.com/usestring/archivestream-mcp/pkg/client"
)

// DefaultCodeCacheSize is how many compiled expressions an Engine keeps.
const DefaultCodeCacheSize = 128

// Engine executes jq expressions against decoded JSON. Compiled expressions
// are kept in an LRU keyed by expression text. Safe for concurrent use.
type Engine struct {
	codes *lru.Cache[string, *gojq.Code]
}

// NewEngine creates a new query engine.
func NewEngine() *Engine {
	// lru.New only fails for a non-positive size.
	codes, _ := lru.New[string, *gojq.Code](DefaultCodeCacheSize)
	return &Engine{codes: codes}
}

// Result holds the values an expression produced.
type Result struct {
	Values    []any    `json:"values"`
	Errors    []string `json:"errors,omitempty"`
	Truncated bool     `json:"truncated,omitempty"` // Stopped at maxResults
}

// Compile parses and compiles a jq expression.
func Compile(expression string) (*gojq.Code, error) {
	q, err := gojq.Parse(expression)
	if err != nil {
		var parseErr *gojq.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("invalid jq expression at position %d: %w", parseErr.Offset, err)
		}
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}
	code, err := gojq.Compile(q)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}
	return code, nil
}

// Run evaluates expression against input. Runtime errors are collected per
// emitted error rather than aborting, so partial output is kept.
// A maxResults of zero means no limit.
func (e *Engine) Run(input any, expression string, maxResults int) (*Result, error) {
	code, err := e.compile(expression)
	if err != nil {
		return nil, err
	}

	result := &Result{Values: make([]any, 0)}
	seenErrors := make(map[string]bool)

	iter := code.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			msg := formatJQError(err)
			if !seenErrors[msg] {
				seenErrors[msg] = true
				result.Errors = append(result.Errors, msg)
			}
			continue
		}
		if maxResults > 0 && len(result.Values) >= maxResults {
			result.Truncated = true
			break
		}
		result.Values = append(result.Values, v)
	}

	return result, nil
}

// compile returns the cached code for expression, compiling it on a miss.
// Invalid expressions are not cached.
func (e *Engine) compile(expression string) (*gojq.Code, error) {
	if code, ok := e.codes.Get(expression); ok {
		return code, nil
	}
	code, err := Compile(expression)
	if err != nil {
		return nil, err
	}
	e.codes.Add(expression, code)
	return code, nil
}

// RunRecord decodes rec and evaluates expression against it.
func (e *Engine) RunRecord(rec client.Record, expression string, maxResults int) (*Result, error) {
	input, err := rec.Value()
	if err != nil {
		return nil, fmt.Errorf("invalid JSON data: %w", err)
	}
	return e.Run(input, expression, maxResults)
}

// RunRecords evaluates expression against the JSON array formed by recs, so
// `.[]` iterates the list exactly as the server returned it.
func (e *Engine) RunRecords(recs []client.Record, expression string, maxResults int) (*Result, error) {
	return e.RunRecord(client.Records(recs), expression, maxResults)
}

// formatJQError decorates gojq runtime errors with a hint. gojq exposes these
// only as plain errors, so matching is on message text.
func formatJQError(err error) string {
	var haltErr *gojq.HaltError
	if errors.As(err, &haltErr) {
		if haltErr.Value() == nil {
			return "query halted"
		}
		return fmt.Sprintf("query halted with: %v", haltErr.Value())
	}

	msg := err.Error()
	var hint string
	switch {
	case strings.Contains(msg, "cannot iterate over: null"):
		hint = " (the path may not exist in this response)"
	case strings.Contains(msg, "cannot index") && strings.Contains(msg, "with"):
		hint = " (field not found or wrong type)"
	case strings.Contains(msg, "object") && strings.Contains(msg, "cannot be iterated"):
		hint = " (expected array but got object, try removing '[]')"
	}
	return msg + hint
}
