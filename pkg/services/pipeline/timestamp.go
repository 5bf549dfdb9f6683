package pipeline

import (
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/test-atlas/pkg/models/domain"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp interprets a cell value as a point in time. Strings are
// tried against the known layouts; numbers are treated as epoch seconds,
// or epoch milliseconds when too large to be seconds.
func ParseTimestamp(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range timeLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, true
			}
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return epochTime(f)
		}
		return time.Time{}, false
	case float64:
		return epochTime(t)
	case int:
		return epochTime(float64(t))
	case int64:
		return epochTime(float64(t))
	default:
		return time.Time{}, false
	}
}

func epochTime(f float64) (time.Time, bool) {
	if f <= 0 {
		return time.Time{}, false
	}
	// Epoch seconds stay below 1e12 for the next few thousand years.
	if f >= 1e12 {
		return time.UnixMilli(int64(f)).UTC(), true
	}
	return time.Unix(int64(f), 0).UTC(), true
}

// BestTimestamp returns the maximum parseable timestamp among the row's
// candidate fields, in candidate order. ok is false when no candidate
// parses.
func BestTimestamp(row *domain.Row, fields []string) (time.Time, bool) {
	var best time.Time
	found := false
	for _, f := range fields {
		v, present := row.Get(f)
		if !present {
			continue
		}
		ts, ok := ParseTimestamp(v)
		if !ok {
			continue
		}
		if !found || ts.After(best) {
			best = ts
			found = true
		}
	}
	return best, found
}
