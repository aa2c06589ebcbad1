package client

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_MarshalRoundTripsBytes(t *testing.T) {
	in := `{"z":1,"a":{"b":[1,2.50,null]}}`
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(in), &rec))
	assert.Equal(t, in, rec.String())

	out, err := json.Marshal(struct {
		Data Record `json:"data"`
	}{rec})
	require.NoError(t, err)
	assert.Equal(t, `{"data":{"z":1,"a":{"b":[1,2.50,null]}}}`, string(out))
}

func TestRecord_NilMarshalsNull(t *testing.T) {
	out, err := json.Marshal(Record(nil))
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestRecords_JoinsArray(t *testing.T) {
	joined := Records([]Record{Record(`{"a":1}`), Record(`2`)})
	assert.Equal(t, `[{"a":1},2]`, joined.String())
}

func TestAs_TypedViews(t *testing.T) {
	diff, err := As[Diff](Record(`{
		"from_timestamp": "20200101000000",
		"to_timestamp": "20210101000000",
		"summary": {"added": 2, "removed": 1, "unchanged": 10},
		"changes": [{"tag": "added", "value": "new line"}]
	}`))
	require.NoError(t, err)
	assert.Equal(t, 2, diff.Summary.Added)
	require.Len(t, diff.Changes, 1)
	assert.Equal(t, ChangeAdded, diff.Changes[0].Tag)

	tl, err := As[Timeline](Record(`{"url":"https://a.com","snapshots":[{"timestamp":"2020-01-01T00:00:00Z","status":200,"digest":"abc"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "abc", tl.Snapshots[0].Digest)

	sem, err := As[SemanticChange](Record(`{"from":"a","to":"b","url":"u","analysis":{"summary":null,"categories":[{"name":"PriceChange","confidence":0.9}],"sentiment":null},"smart_summary":null,"alerts_triggered":1}`))
	require.NoError(t, err)
	assert.Equal(t, "PriceChange", sem.Analysis.Categories[0].Name)
	assert.Nil(t, sem.SmartSummary)

	_, err = As[Resolution](Record(`[1,2]`))
	assert.Error(t, err)
}

func TestTimestamp_RoundTrip(t *testing.T) {
	ts := time.Date(2024, 3, 9, 17, 4, 5, 0, time.FixedZone("CET", 3600))
	s := FormatTimestamp(ts)
	assert.Equal(t, "20240309160405", s)

	back, err := ParseTimestamp(s)
	require.NoError(t, err)
	assert.True(t, back.Equal(ts))
	assert.Equal(t, time.UTC, back.Location())

	_, err = ParseTimestamp("2024-03-09")
	assert.Error(t, err)
}
