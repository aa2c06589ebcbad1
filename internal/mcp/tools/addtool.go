package tools

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// AddTool registers a tool after checking that the zero value of its output
// type passes the schema the SDK infers for it.
//
// Panics if the check fails.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	CheckOutputSchema[Out](t.Name)
	sdkmcp.AddTool(srv, t, h)
}

// CheckOutputSchema validates that the zero value of T passes the JSON schema
// the MCP SDK would infer from it.
//
// json.Marshal writes nil slices as null while the inferred schema says
// "array", so slice fields need omitzero or an empty default. Byte slices
// with their own MarshalJSON (json.RawMessage, client.Record) are rejected
// too: they encode as arbitrary JSON but are inferred as arrays of integers.
//
// No-ops for the untyped "any" output or when inference fails, since the SDK
// reports those itself.
func CheckOutputSchema[T any](toolName string) {
	rt := reflect.TypeFor[T]()
	if rt == reflect.TypeFor[any]() {
		return
	}
	elem := rt
	if elem.Kind() == reflect.Pointer {
		elem = elem.Elem()
	}

	if paths := findOpaqueJSONFields(elem, nil, make(map[reflect.Type]bool)); len(paths) > 0 {
		panic(fmt.Sprintf(
			"AddTool %q: output type %s carries raw JSON bytes at %s\n"+
				"  these encode as arbitrary JSON but the schema generator infers an array of ints\n"+
				"  Fix: use an any field and fill it with Record.Value() or tools.ToAny",
			toolName, elem, strings.Join(paths, ", "),
		))
	}

	schema, err := jsonschema.ForType(elem, &jsonschema.ForOptions{})
	if err != nil {
		return
	}
	resolved, err := schema.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return
	}

	data, err := json.Marshal(reflect.Zero(elem).Interface())
	if err != nil {
		return
	}
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		return
	}

	if err := resolved.Validate(&v); err != nil {
		panic(fmt.Sprintf(
			"AddTool %q: zero value of output type %s fails schema validation: %v\n"+
				"  JSON: %s\n"+
				"  Fix: add `omitzero` to nil-defaulting slice fields, or initialize them to empty slices",
			toolName, elem, err, data,
		))
	}
}

var marshalerType = reflect.TypeFor[json.Marshaler]()

// isOpaqueJSON reports whether t is a byte slice that marshals itself.
func isOpaqueJSON(t reflect.Type) bool {
	return t.Kind() == reflect.Slice &&
		t.Elem().Kind() == reflect.Uint8 &&
		t.Implements(marshalerType)
}

// findOpaqueJSONFields walks t and returns the paths of raw JSON fields.
func findOpaqueJSONFields(t reflect.Type, path []string, visited map[reflect.Type]bool) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if isOpaqueJSON(t) {
		return []string{strings.Join(path, ".")}
	}

	if visited[t] {
		return nil
	}
	visited[t] = true
	defer delete(visited, t)

	var found []string
	switch t.Kind() {
	case reflect.Struct:
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			found = append(found, findOpaqueJSONFields(f.Type, append(path, f.Name), visited)...)
		}
	case reflect.Slice, reflect.Array:
		found = append(found, findOpaqueJSONFields(t.Elem(), append(path, "[]"), visited)...)
	case reflect.Map:
		found = append(found, findOpaqueJSONFields(t.Elem(), append(path, "[value]"), visited)...)
	}
	return found
}
