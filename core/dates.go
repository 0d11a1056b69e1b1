package core

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts are tried in order. Fractional seconds are accepted by every layout.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05 MST", // Dune: 2024-01-01 00:00:00.000 UTC
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// ParseDate interprets a date-like value as a calendar date, dropping any time of day.
// The day is taken in the value's own zone, without conversion.
func ParseDate(v any) (time.Time, error) {
	switch val := v.(type) {
	case time.Time:
		return truncateDay(val), nil
	case string:
		s := strings.TrimSpace(val)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return truncateDay(t), nil
			}
		}
		return time.Time{}, fmt.Errorf("cannot parse %q as a date", val)
	default:
		return time.Time{}, fmt.Errorf("cannot parse %v (%T) as a date", v, v)
	}
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
