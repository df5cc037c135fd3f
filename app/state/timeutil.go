package state

import "time"

// FormatTime renders t as the RFC3339 string stored in last_seen.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseTime parses an RFC3339 timestamp, keeping its offset.
func ParseTime(value string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func parseOptionalTime(value *string) (time.Time, bool) {
	if value == nil {
		return time.Time{}, false
	}
	return ParseTime(*value)
}
