package jsoncompact

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompact_ArrayTrimming(t *testing.T) {
	out, err := Compact([]byte(`{"snapshots": [1, 2, 3, 4, 5, 6, 7, 8, 9, 10]}`), &Options{MaxArrayItems: 3})
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(out, &parsed))
	items := parsed["snapshots"].([]any)
	assert.Equal(t, []any{float64(1), float64(2), float64(3), "... (7 more items)"}, items)
}

func TestCompact_WithinLimitsUnchanged(t *testing.T) {
	in := `{"changes":[{"tag":"added","value":"x"}]}`
	out, err := Compact([]byte(in), &Options{MaxArrayItems: 5, MaxStringLen: 10})
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestCompact_EmptyInput(t *testing.T) {
	out, err := Compact(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestCompact_InvalidJSON(t *testing.T) {
	_, err := Compact([]byte(`{"a":`), nil)
	assert.Error(t, err)
}

func TestCompactValue_StringTruncation(t *testing.T) {
	got := CompactValue(strings.Repeat("a", 20), &Options{MaxStringLen: 5})
	assert.Equal(t, "aaaaa... (15 more chars)", got)
}

func TestCompactValue_MaxDepth(t *testing.T) {
	v := map[string]any{
		"analysis": map[string]any{
			"categories": []any{map[string]any{"name": "PriceChange"}},
		},
	}
	got := CompactValue(v, &Options{MaxDepth: 2}).(map[string]any)
	analysis := got["analysis"].(map[string]any)
	assert.Equal(t, "[array of 1 items]", analysis["categories"])
}

func TestFit_NoBudgetReportsTrim(t *testing.T) {
	_, trimmed := Fit([]any{1.0, 2.0}, &Options{})
	assert.False(t, trimmed)

	_, trimmed = Fit([]any{1.0, 2.0, 3.0}, &Options{MaxArrayItems: 2})
	assert.True(t, trimmed)
}

func TestFit_TightensToBudget(t *testing.T) {
	items := make([]any, 200)
	for i := range items {
		items[i] = map[string]any{"value": strings.Repeat("line ", 40)}
	}
	v := map[string]any{"changes": items}

	out, trimmed := Fit(v, &Options{MaxArrayItems: 100, MaxStringLen: 1000, MaxBytes: 4000})
	assert.True(t, trimmed)

	b, err := json.Marshal(out)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(b), 4000)
}

func TestFit_GivesUpAtFloor(t *testing.T) {
	v := map[string]any{"a": strings.Repeat("x", 500), "b": strings.Repeat("y", 500)}
	out, trimmed := Fit(v, &Options{MaxArrayItems: 1, MaxStringLen: minStringLen, MaxBytes: 10})
	assert.True(t, trimmed)
	assert.Contains(t, out.(map[string]any)["a"], "more chars")
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, DefaultMaxArrayItems, opts.MaxArrayItems)
	assert.Equal(t, DefaultMaxStringLen, opts.MaxStringLen)
	assert.Zero(t, opts.MaxBytes)
}

func TestCompact_KeepsKeyOrderAndNumbers(t *testing.T) {
	in := `{"timestamp":"20240601000000","id":"b","score":1.50,"nested":{"z":1,"a":[1,2,3]}}`
	out, err := Compact([]byte(in), &Options{MaxArrayItems: 2})
	require.NoError(t, err)
	assert.Equal(t, `{"timestamp":"20240601000000","id":"b","score":1.50,"nested":{"z":1,"a":[1,2,"... (1 more items)"]}}`, string(out))
}

func TestCompact_TrailingData(t *testing.T) {
	_, err := Compact([]byte(`{} {}`), nil)
	assert.ErrorContains(t, err, "invalid JSON")
}
