package records

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	iso := ParseFlexibleDate("2024-08-17")
	assert.Equal(t, time.Date(2024, 8, 17, 0, 0, 0, 0, time.Local), iso)

	dotted := ParseFlexibleDate("2026. 2. 22")
	assert.Equal(t, time.Date(2026, 2, 22, 0, 0, 0, 0, time.Local), dotted)

	// Both styles of the same day agree.
	assert.True(t, ParseFlexibleDate("2026-02-22").Equal(dotted))

	// Garbage degrades to the zero time, which fails comparisons silently.
	assert.True(t, ParseFlexibleDate("not a date").IsZero())
	assert.True(t, ParseFlexibleDate("").IsZero())
}

func TestIsWithinMonths(t *testing.T) {
	now := time.Now()

	recent := now.AddDate(0, -1, 0).Format("2006-01-02")
	assert.True(t, IsWithinMonths(recent, 60))

	old := now.AddDate(0, -61, 0).Format("2006-01-02")
	assert.False(t, IsWithinMonths(old, 60))

	// The cutoff day itself is inside the window.
	cutoff := now.AddDate(0, -6, 0).Format("2006-01-02")
	assert.True(t, IsWithinMonths(cutoff, 6))

	assert.False(t, IsWithinMonths("", 6))
	assert.False(t, IsWithinMonths("garbage", 6))
}
