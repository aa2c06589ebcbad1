// Package jsoncompact shrinks decoded JSON so that large archive results fit
// in a tool response: long arrays are trimmed, long strings are cut, deep
// nesting is elided, and an optional byte budget tightens all three until
// the encoded form fits.
package jsoncompact

import (
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Options controls JSON compaction behavior. Zero fields mean no limit.
type Options struct {
	MaxArrayItems int // Keep the first N array items
	MaxStringLen  int // Cut strings longer than N bytes
	MaxDepth      int // Replace containers nested deeper than N
	MaxBytes      int // Tighten the limits above until the encoding fits
}

// Default values for compaction options.
const (
	DefaultMaxArrayItems = 25
	DefaultMaxStringLen  = 2000
	DefaultMaxDepth      = 0 // unlimited
)

// minArrayItems and minStringLen bound how far Fit tightens.
const (
	minArrayItems = 1
	minStringLen  = 64
)

// DefaultOptions returns the default compaction settings.
func DefaultOptions() *Options {
	return &Options{
		MaxArrayItems: DefaultMaxArrayItems,
		MaxStringLen:  DefaultMaxStringLen,
		MaxDepth:      DefaultMaxDepth,
	}
}

// Compact shrinks JSON bytes according to opts (DefaultOptions if nil).
// Object keys keep their order and numbers keep their text.
// Returns an error if data is not valid JSON.
func Compact(data []byte, opts *Options) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}
	v, err := decodeOrdered(data)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	out, _ := Fit(v, opts)
	return json.Marshal(out)
}

// CompactValue applies the array, string and depth limits of opts once,
// ignoring MaxBytes.
func CompactValue(v any, opts *Options) any {
	if opts == nil {
		opts = DefaultOptions()
	}
	w := walker{opts: *opts}
	return w.walk(v, 0)
}

// Fit compacts v and, if opts.MaxBytes is set, halves the array and string
// limits until the encoded result fits or the limits bottom out. The second
// return reports whether anything was removed.
func Fit(v any, opts *Options) (any, bool) {
	if opts == nil {
		opts = DefaultOptions()
	}
	cur := *opts
	for {
		w := walker{opts: cur}
		out := w.walk(v, 0)
		if cur.MaxBytes <= 0 || encodedLen(out) <= cur.MaxBytes {
			return out, w.trimmed
		}
		next, ok := tighten(cur)
		if !ok {
			return out, true
		}
		cur = next
	}
}

// tighten halves the active limits. It reports false when both are already
// at their floor.
func tighten(o Options) (Options, bool) {
	changed := false
	switch {
	case o.MaxArrayItems == 0:
		o.MaxArrayItems = DefaultMaxArrayItems
		changed = true
	case o.MaxArrayItems > minArrayItems:
		o.MaxArrayItems = max(o.MaxArrayItems/2, minArrayItems)
		changed = true
	}
	switch {
	case o.MaxStringLen == 0:
		o.MaxStringLen = DefaultMaxStringLen
		changed = true
	case o.MaxStringLen > minStringLen:
		o.MaxStringLen = max(o.MaxStringLen/2, minStringLen)
		changed = true
	}
	return o, changed
}

func encodedLen(v any) int {
	b, err := json.Marshal(v)
	if err != nil {
		return 0
	}
	return len(b)
}

type walker struct {
	opts    Options
	trimmed bool
}

func (w *walker) walk(v any, depth int) any {
	switch val := v.(type) {
	case []any:
		if w.tooDeep(depth) {
			w.trimmed = true
			return fmt.Sprintf("[array of %d items]", len(val))
		}
		return w.array(val, depth)
	case map[string]any:
		if w.tooDeep(depth) {
			w.trimmed = true
			return fmt.Sprintf("[object with %d keys]", len(val))
		}
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = w.walk(item, depth+1)
		}
		return out
	case *object:
		if w.tooDeep(depth) {
			w.trimmed = true
			return fmt.Sprintf("[object with %d keys]", val.Len())
		}
		out := orderedmap.New[string, any](orderedmap.WithCapacity[string, any](val.Len()))
		for pair := val.Oldest(); pair != nil; pair = pair.Next() {
			out.Set(pair.Key, w.walk(pair.Value, depth+1))
		}
		return out
	case string:
		return w.str(val)
	default:
		return v
	}
}

func (w *walker) tooDeep(depth int) bool {
	return w.opts.MaxDepth > 0 && depth >= w.opts.MaxDepth
}

func (w *walker) array(arr []any, depth int) []any {
	keep := len(arr)
	if w.opts.MaxArrayItems > 0 && keep > w.opts.MaxArrayItems {
		keep = w.opts.MaxArrayItems
	}
	out := make([]any, 0, keep+1)
	for _, item := range arr[:keep] {
		out = append(out, w.walk(item, depth+1))
	}
	if rest := len(arr) - keep; rest > 0 {
		w.trimmed = true
		out = append(out, fmt.Sprintf("... (%d more items)", rest))
	}
	return out
}

func (w *walker) str(s string) string {
	if w.opts.MaxStringLen <= 0 || len(s) <= w.opts.MaxStringLen {
		return s
	}
	w.trimmed = true
	return s[:w.opts.MaxStringLen] + fmt.Sprintf("... (%d more chars)", len(s)-w.opts.MaxStringLen)
}
