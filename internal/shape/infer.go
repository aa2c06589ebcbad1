// Package shape infers a JSON Schema (draft 2020-12) from archive records.
//
// Property order follows the order keys first appear in the samples, so the
// schema reads like the server's own output. A property is required only if
// every object sample carries it.
package shape

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/usestring/archivestream-mcp/pkg/client"
)

// Inferred is a schema together with the number of samples it was merged from.
type Inferred struct {
	Schema      *jsonschema.Schema `json:"schema"`
	SampleCount int                `json:"sample_count"`
}

// Infer merges the schemas of all samples. Samples that are not valid JSON
// produce an error naming their index.
func Infer(samples ...[]byte) (*Inferred, error) {
	var merged *jsonschema.Schema
	for i, data := range samples {
		s, err := parse(data)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		merged = merge(merged, s)
	}
	if merged == nil {
		merged = &jsonschema.Schema{}
	}
	merged.Version = jsonschema.Version
	return &Inferred{Schema: merged, SampleCount: len(samples)}, nil
}

// InferRecords treats each record as one sample.
func InferRecords(recs ...client.Record) (*Inferred, error) {
	samples := make([][]byte, len(recs))
	for i, r := range recs {
		samples[i] = r
	}
	return Infer(samples...)
}

func parse(data []byte) (*jsonschema.Schema, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	s, err := parseValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after JSON value")
	}
	return s, nil
}

func parseValue(dec *json.Decoder) (*jsonschema.Schema, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t)
	case string:
		return &jsonschema.Schema{Type: "string"}, nil
	case json.Number:
		if strings.ContainsAny(t.String(), ".eE") {
			return &jsonschema.Schema{Type: "number"}, nil
		}
		return &jsonschema.Schema{Type: "integer"}, nil
	case bool:
		return &jsonschema.Schema{Type: "boolean"}, nil
	case nil:
		return &jsonschema.Schema{Type: "null"}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func parseObject(dec *json.Decoder) (*jsonschema.Schema, error) {
	s := &jsonschema.Schema{Type: "object", Properties: jsonschema.NewProperties()}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %T", tok)
		}
		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		if prev, ok := s.Properties.Get(key); ok {
			val = merge(prev, val)
		} else {
			s.Required = append(s.Required, key)
		}
		s.Properties.Set(key, val)
	}
	_, err := dec.Token() // '}'
	return s, err
}

func parseArray(dec *json.Decoder) (*jsonschema.Schema, error) {
	s := &jsonschema.Schema{Type: "array"}
	for dec.More() {
		item, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		s.Items = merge(s.Items, item)
	}
	_, err := dec.Token() // ']'
	return s, err
}

// merge combines two schemas. Same-typed schemas are merged structurally,
// integer widens to number, and anything else becomes an anyOf.
func merge(a, b *jsonschema.Schema) *jsonschema.Schema {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}

	variants := slices.Concat(flatten(a), flatten(b))
	var out []*jsonschema.Schema
	for _, v := range variants {
		idx := slices.IndexFunc(out, func(o *jsonschema.Schema) bool { return compatible(o.Type, v.Type) })
		if idx < 0 {
			out = append(out, v)
			continue
		}
		out[idx] = mergeSameType(out[idx], v)
	}
	if len(out) == 1 {
		return out[0]
	}
	return &jsonschema.Schema{AnyOf: out}
}

func flatten(s *jsonschema.Schema) []*jsonschema.Schema {
	if s.Type == "" && len(s.AnyOf) > 0 {
		return s.AnyOf
	}
	return []*jsonschema.Schema{s}
}

func compatible(a, b string) bool {
	if a == b {
		return true
	}
	return (a == "integer" && b == "number") || (a == "number" && b == "integer")
}

func mergeSameType(a, b *jsonschema.Schema) *jsonschema.Schema {
	switch a.Type {
	case "object":
		out := &jsonschema.Schema{Type: "object", Properties: jsonschema.NewProperties()}
		for pair := a.Properties.Oldest(); pair != nil; pair = pair.Next() {
			out.Properties.Set(pair.Key, pair.Value)
		}
		for pair := b.Properties.Oldest(); pair != nil; pair = pair.Next() {
			if prev, ok := out.Properties.Get(pair.Key); ok {
				out.Properties.Set(pair.Key, merge(prev, pair.Value))
			} else {
				out.Properties.Set(pair.Key, pair.Value)
			}
		}
		for _, k := range a.Required {
			if slices.Contains(b.Required, k) {
				out.Required = append(out.Required, k)
			}
		}
		return out
	case "array":
		return &jsonschema.Schema{Type: "array", Items: merge(a.Items, b.Items)}
	case "integer", "number":
		if a.Type != b.Type {
			return &jsonschema.Schema{Type: "number"}
		}
	}
	return a
}
