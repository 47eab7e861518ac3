package issue

import "time"

// Upstream trackers hand back anything from RFC 3339 to locale strings
// like "Jan 16, 2019". Try the formats we have actually seen in the wild.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC1123Z,
	time.RFC1123,
	"Jan 2, 2006 15:04:05",
	"Jan 2, 2006",
	"2006-01-02",
}

// NormalizeTimestamp converts an upstream timestamp string to RFC 3339 in
// UTC. Unparseable values are passed through unchanged, never rejected.
func NormalizeTimestamp(value string) string {
	if t, ok := parseTimestamp(value); ok {
		return t.UTC().Format(time.RFC3339)
	}
	return value
}

// FromUnixSeconds converts a Unix-seconds timestamp (Phabricator's native
// format) to RFC 3339 in UTC.
func FromUnixSeconds(sec int64) string {
	return time.Unix(sec, 0).UTC().Format(time.RFC3339)
}

// SortTime maps a normalized timestamp onto a time.Time for ordering.
// Unparseable timestamps sort as the zero time, i.e. before everything.
func SortTime(value string) time.Time {
	if t, ok := parseTimestamp(value); ok {
		return t
	}
	return time.Time{}
}

func parseTimestamp(value string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
