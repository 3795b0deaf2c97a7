package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseEffectiveDate(t *testing.T) {
	got, ok := ParseEffectiveDate("2024-01-15")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), got)

	// RFC3339 timestamps lose their time part.
	got, ok = ParseEffectiveDate("2024-01-15T18:30:00Z")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), got)

	_, ok = ParseEffectiveDate("")
	assert.False(t, ok)
	_, ok = ParseEffectiveDate("not-a-date")
	assert.False(t, ok)
}

func TestWindowContains(t *testing.T) {
	at := time.Date(2024, 1, 15, 23, 59, 0, 0, time.UTC)

	assert.True(t, WindowContains("", "", at), "no bounds is always active")
	assert.True(t, WindowContains("2024-01-15", "", at), "inclusive lower bound")
	assert.True(t, WindowContains("", "2024-01-15", at), "inclusive upper bound at end of day")
	assert.False(t, WindowContains("2024-01-16", "", at))
	assert.False(t, WindowContains("", "2024-01-14", at))
	assert.True(t, WindowContains("garbage", "also-garbage", at), "unparsable bounds are open")
}
