package extract

import (
	"encoding/json"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

// extractRegex returns the first capture group of each match, or the whole
// match when the expression has no groups.
func extractRegex(body []byte, expression string, maxResults int) (*Result, error) {
	re, err := regexp.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid regex: %w", err)
	}

	group := 0
	if re.NumSubexp() > 0 {
		group = 1
	}

	c := &collector{max: maxResults}
	for _, m := range re.FindAllSubmatch(body, -1) {
		if !c.add(string(m[group])) {
			break
		}
	}
	return c.result(), nil
}

// extractJQ runs a jq expression over a JSON capture. YAML captures are
// converted first.
func (e *Engine) extractJQ(body []byte, contentType, expression string, maxResults int) (*Result, error) {
	var input any
	if classify(contentType) == kindYAML {
		var doc any
		if err := yaml.Unmarshal(body, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		input = normalizeYAML(doc)
	} else if err := json.Unmarshal(body, &input); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	res, err := e.jq.Run(input, expression, maxResults)
	if err != nil {
		return nil, err
	}
	return &Result{Values: res.Values, Truncated: res.Truncated, Errors: res.Errors}, nil
}

// normalizeYAML rewrites yaml.v3 output so jq and encoding/json accept it:
// non-string map keys become strings.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, v := range val {
			out[k] = normalizeYAML(v)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, v := range val {
			out[fmt.Sprint(k)] = normalizeYAML(v)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, v := range val {
			out[i] = normalizeYAML(v)
		}
		return out
	default:
		return v
	}
}
