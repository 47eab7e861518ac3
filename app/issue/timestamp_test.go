package issue

import (
	"testing"
	"time"
)

func TestNormalizeTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"rfc3339", "2024-03-01T10:30:00Z", "2024-03-01T10:30:00Z"},
		{"rfc3339 with offset", "2024-03-01T10:30:00+02:00", "2024-03-01T08:30:00Z"},
		{"no timezone", "2024-03-01T10:30:00", "2024-03-01T10:30:00Z"},
		{"space separated", "2024-03-01 10:30:00", "2024-03-01T10:30:00Z"},
		{"locale string", "Jan 16, 2019", "2019-01-16T00:00:00Z"},
		{"date only", "2024-03-01", "2024-03-01T00:00:00Z"},
		{"unparseable passes through", "three days ago", "three days ago"},
		{"empty passes through", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTimestamp(tt.input); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestFromUnixSeconds(t *testing.T) {
	if got := FromUnixSeconds(0); got != "1970-01-01T00:00:00Z" {
		t.Errorf("Expected epoch, got %q", got)
	}
	if got := FromUnixSeconds(1709287200); got != "2024-03-01T10:00:00Z" {
		t.Errorf("Expected 2024-03-01T10:00:00Z, got %q", got)
	}
}

func TestSortTimeUnparseable(t *testing.T) {
	zero := SortTime("not a date")
	if !zero.IsZero() {
		t.Errorf("Expected zero time for unparseable input, got %v", zero)
	}

	parsed := SortTime("2024-03-01T10:30:00Z")
	if !parsed.After(zero) {
		t.Error("Parseable timestamps must sort after unparseable ones")
	}
	if !parsed.Equal(time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)) {
		t.Errorf("Unexpected parsed time: %v", parsed)
	}
}
