package gdelt

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the 14-digit datetime format the DOC API expects for
// StartDateTime and EndDateTime parameters.
const TimestampLayout = "20060102150405"

// seenDateLayout is the format of the "seendate" field in JSON article
// responses.
const seenDateLayout = "20060102T150405Z"

// dateColumnLayout is the format of the "Date" column in CSV article
// responses.
const dateColumnLayout = "2006-01-02 15:04:05"

// NormalizeTimestamp strips the separators users commonly type into dates
// (slashes, dots, dashes, colons, and whitespace), so "2024-01-02 15:00:00"
// and "20240102150000" are accepted interchangeably.
func NormalizeTimestamp(s string) string {
	r := strings.NewReplacer(" ", "", ".", "", ":", "", "-", "", "/", "")
	return r.Replace(s)
}

// ParseTimestamp parses a normalized 14-digit API timestamp.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: expected YYYYMMDDHHMMSS", s)
	}
	return t, nil
}

// FormatTimestamp formats a time as a 14-digit API timestamp.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// PushBack moves an API timestamp earlier by the given duration. Used by the
// fetch loop to step past windows that return no usable data.
func PushBack(ts string, d time.Duration) (string, error) {
	t, err := ParseTimestamp(ts)
	if err != nil {
		return "", err
	}
	return FormatTimestamp(t.Add(-d)), nil
}

// HumanTimestamp renders an API timestamp as "2006-01-02 15:04:05" for
// display. Invalid input is returned unchanged.
func HumanTimestamp(ts string) string {
	t, err := ParseTimestamp(ts)
	if err != nil {
		return ts
	}
	return t.Format(dateColumnLayout)
}
