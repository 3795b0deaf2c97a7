package domain

import "time"

// Effective-date bounds are compared at day granularity so that a policy
// "effective through 2024-02-01" still applies at 23:59 on that day.

var effectiveLayouts = []string{
	"2006-01-02",
	time.RFC3339,
}

// ParseEffectiveDate parses a date-only or RFC3339 bound, truncated to the
// day in UTC. Returns false for an empty or unparsable value, which callers
// treat as an open bound.
func ParseEffectiveDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range effectiveLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DayOf(t), true
		}
	}
	return time.Time{}, false
}

// DayOf truncates a timestamp to midnight UTC.
func DayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WindowContains reports whether at falls inside [from, to], inclusive on
// both ends. Missing or unparsable bounds leave that side open; a window with
// no bounds contains every instant.
func WindowContains(from, to string, at time.Time) bool {
	day := DayOf(at)
	if f, ok := ParseEffectiveDate(from); ok && day.Before(f) {
		return false
	}
	if t, ok := ParseEffectiveDate(to); ok && day.After(t) {
		return false
	}
	return true
}

// EffectiveFromOrEpoch returns the parsed lower bound, or the zero time when
// the bound is missing, so that unbounded policies sort as earliest.
func EffectiveFromOrEpoch(from string) time.Time {
	if t, ok := ParseEffectiveDate(from); ok {
		return t
	}
	return time.Time{}
}
