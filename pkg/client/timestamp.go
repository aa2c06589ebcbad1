package client

import (
	"fmt"
	"time"
)

// TimestampLayout is the 14-digit form the archive uses in replay URLs and
// diff/resolve parameters.
const TimestampLayout = "20060102150405"

// FormatTimestamp renders t in UTC as YYYYMMDDhhmmss.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses a YYYYMMDDhhmmss timestamp as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.ParseInLocation(TimestampLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing archive timestamp %q: %w", s, err)
	}
	return t, nil
}
