package client

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Record is one JSON value returned by the archive, kept byte-for-byte as
// received. It marshals back to the same JSON.
type Record json.RawMessage

// MarshalJSON returns r unchanged, or null for a nil Record.
func (r Record) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	return r, nil
}

// UnmarshalJSON stores a copy of data.
func (r *Record) UnmarshalJSON(data []byte) error {
	if r == nil {
		return errors.New("client.Record: UnmarshalJSON on nil pointer")
	}
	*r = append((*r)[:0], data...)
	return nil
}

// String returns the raw JSON text.
func (r Record) String() string {
	return string(r)
}

// Decode unmarshals the record into v.
func (r Record) Decode(v any) error {
	return json.Unmarshal(r, v)
}

// Value decodes the record into generic Go values (map[string]any, []any,
// string, float64, bool, nil).
func (r Record) Value() (any, error) {
	var v any
	if err := json.Unmarshal(r, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// As decodes a record into T. Use it with the typed views below when the
// loose server contract is not enough.
func As[T any](r Record) (T, error) {
	var v T
	if err := json.Unmarshal(r, &v); err != nil {
		return v, fmt.Errorf("decoding %T: %w", v, err)
	}
	return v, nil
}

// Records joins records back into a single JSON array.
func Records(rs []Record) Record {
	out, _ := json.Marshal(rs)
	return out
}

// Snapshot is a captured version of a URL, as listed by GetSnapshots.
type Snapshot struct {
	ID          string  `json:"id"`
	URL         string  `json:"url"`
	Timestamp   string  `json:"timestamp"`
	WARCFile    string  `json:"warc_file,omitempty"`
	Offset      int64   `json:"offset,omitempty"`
	Length      int64   `json:"length,omitempty"`
	SHA256      string  `json:"sha256,omitempty"`
	StatusCode  int     `json:"status_code"`
	ContentType string  `json:"content_type"`
	PayloadHash *string `json:"payload_hash,omitempty"`
}

// Resolution is the snapshot the server picked for a requested time.
type Resolution struct {
	RequestedAt     string `json:"requested_at"`
	ActualTimestamp string `json:"actual_timestamp"`
	ReplayURL       string `json:"replay_url"`
}

// Diff change tags.
const (
	ChangeAdded   = "added"
	ChangeRemoved = "removed"
	ChangeEqual   = "equal"
)

// Diff is a line-level comparison of two snapshots.
type Diff struct {
	FromTimestamp string       `json:"from_timestamp"`
	ToTimestamp   string       `json:"to_timestamp"`
	Summary       DiffSummary  `json:"summary"`
	Changes       []DiffChange `json:"changes"`
}

// DiffSummary counts lines per change tag.
type DiffSummary struct {
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Unchanged int `json:"unchanged"`
}

// DiffChange is one run of added, removed or equal content.
type DiffChange struct {
	Tag   string `json:"tag"`
	Value string `json:"value"`
}

// SemanticChange is the categorized description of what changed between two
// snapshots.
type SemanticChange struct {
	From            string       `json:"from"`
	To              string       `json:"to"`
	URL             string       `json:"url"`
	Analysis        Analysis     `json:"analysis"`
	SmartSummary    *string      `json:"smart_summary"`
	Stats           *DiffSummary `json:"stats,omitempty"`
	AlertsTriggered int          `json:"alerts_triggered"`
}

// Analysis is the classifier output attached to a SemanticChange.
type Analysis struct {
	Summary    *string          `json:"summary"`
	Categories []ScoredCategory `json:"categories"`
	Sentiment  *float64         `json:"sentiment"`
}

// ScoredCategory is a change category with its confidence in [0, 1].
type ScoredCategory struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// Timeline is the ordered capture history of a URL.
type Timeline struct {
	URL       string          `json:"url"`
	Snapshots []TimelineEntry `json:"snapshots"`
}

// TimelineEntry is one capture in a Timeline.
type TimelineEntry struct {
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	Digest    string `json:"digest"`
}

// Health is the body of the liveness endpoint.
type Health struct {
	Status string `json:"status"`
}

// FrontierMetric is one row of FrontierHealth: queued URLs for a domain and
// the [min, max] crawl depth among them.
type FrontierMetric struct {
	Domain     string   `json:"domain"`
	Count      int64    `json:"count"`
	DepthRange [2]int64 `json:"depth_range"`
}

// OutcomeMetric is one row of CrawlOutcomes.
type OutcomeMetric struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// Crawl outcome statuses counted by SuccessRate.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// SuccessRate returns the share of success outcomes in [0, 1], or 0 when
// there are no outcomes.
func SuccessRate(outcomes []OutcomeMetric) float64 {
	var total, success int64
	for _, o := range outcomes {
		total += o.Count
		if o.Status == OutcomeSuccess {
			success += o.Count
		}
	}
	if total == 0 {
		return 0
	}
	return float64(success) / float64(total)
}
