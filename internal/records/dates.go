package records

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	spaceRe   = regexp.MustCompile(`\s+`)
)

// ParseFlexibleDate handles the two date styles found in the sheets: "2024-08-17"
// and the Korean-locale "2026. 2. 22". Anything else falls through to a
// lenient RFC3339-ish attempt; failure yields the zero time, which loses
// every comparison.
func ParseFlexibleDate(s string) time.Time {
	trimmed := strings.TrimSpace(s)
	if isoDateRe.MatchString(trimmed) {
		t, err := time.ParseInLocation("2006-01-02", trimmed, time.Local)
		if err == nil {
			return t
		}
		return time.Time{}
	}

	parts := spaceRe.Split(strings.TrimSpace(strings.ReplaceAll(trimmed, ".", " ")), -1)
	if len(parts) == 3 {
		y, err1 := strconv.Atoi(parts[0])
		m, err2 := strconv.Atoi(parts[1])
		d, err3 := strconv.Atoi(parts[2])
		if err1 == nil && err2 == nil && err3 == nil {
			return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.Local)
		}
	}

	if t, err := time.ParseInLocation(time.RFC3339, trimmed, time.Local); err == nil {
		return t
	}
	return time.Time{}
}

func todayMidnight() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
}

// IsWithinMonths reports whether dateStr falls inside the recency window of
// the given number of months, inclusive of the cutoff date itself.
func IsWithinMonths(dateStr string, months int) bool {
	if strings.TrimSpace(dateStr) == "" {
		return false
	}
	date := ParseFlexibleDate(dateStr)
	if date.IsZero() {
		return false
	}
	now := time.Now()
	cutoff := now.AddDate(0, -months, 0)
	cutoff = time.Date(cutoff.Year(), cutoff.Month(), cutoff.Day(), 0, 0, 0, 0, time.Local)
	return !date.Before(cutoff)
}
