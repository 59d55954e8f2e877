package members

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Birth dates arrive in several human-entered shapes. Validation accepts
// only the two forms the forms ask for; normalization additionally folds the
// shapes found in older sheet rows into one 8-digit equality key.

var (
	sixDigitRe   = regexp.MustCompile(`^\d{6}$`)
	eightDigitRe = regexp.MustCompile(`^\d{8}$`)
	isoBirthRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dottedRe     = regexp.MustCompile(`^(\d{4})\.\s*(\d{1,2})\.\s*(\d{1,2})$`)
)

// pivotYear expands a two-digit year: 00–30 land in the 2000s, 31–99 in the
// 1900s. Kept exactly for compatibility with existing sheet rows; the window
// slides with wall-clock time and will eventually misclassify.
func pivotYear(yy int) int {
	if yy >= 0 && yy <= 30 {
		return 2000 + yy
	}
	return 1900 + yy
}

// calendarValid checks that (y, m, d) survives a round trip through the
// calendar, rejecting dates like Feb 30.
func calendarValid(y, m, d int) bool {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return int(t.Month()) == m && t.Day() == d
}

// ValidateBirthDate returns a user-facing message for malformed input, or
// "" when the input is acceptable. An empty string means "not yet entered"
// and is not an error.
func ValidateBirthDate(value string) string {
	if value == "" {
		return ""
	}
	trimmed := strings.TrimSpace(value)

	if sixDigitRe.MatchString(trimmed) {
		yy, _ := strconv.Atoi(trimmed[0:2])
		mm, _ := strconv.Atoi(trimmed[2:4])
		dd, _ := strconv.Atoi(trimmed[4:6])
		// Day is checked before month in the compact form.
		if dd < 1 || dd > 31 {
			return "일은 01~31 사이여야 합니다."
		}
		if mm < 1 || mm > 12 {
			return "월은 01~12 사이여야 합니다."
		}
		if !calendarValid(pivotYear(yy), mm, dd) {
			return "유효하지 않은 날짜입니다."
		}
		return ""
	}

	if isoBirthRe.MatchString(trimmed) {
		yyyy, _ := strconv.Atoi(trimmed[0:4])
		mm, _ := strconv.Atoi(trimmed[5:7])
		dd, _ := strconv.Atoi(trimmed[8:10])
		if yyyy < 1900 || yyyy > time.Now().Year() {
			return "연도를 확인해주세요."
		}
		if mm < 1 || mm > 12 {
			return "월은 01~12 사이여야 합니다."
		}
		if dd < 1 || dd > 31 {
			return "일은 01~31 사이여야 합니다."
		}
		if !calendarValid(yyyy, mm, dd) {
			return "유효하지 않은 날짜입니다."
		}
		return ""
	}

	return "형식: 1995-03-15 또는 950315"
}

// NormalizeBirthDate canonicalizes any supported shape to "YYYYMMDD".
// Purely an equality key for identity matching; never re-validated here.
// Unrecognized shapes pass through unchanged (they will simply never match).
func NormalizeBirthDate(value string) string {
	trimmed := strings.TrimSpace(value)

	if m := dottedRe.FindStringSubmatch(trimmed); m != nil {
		mm, _ := strconv.Atoi(m[2])
		dd, _ := strconv.Atoi(m[3])
		return fmt.Sprintf("%s%02d%02d", m[1], mm, dd)
	}

	if eightDigitRe.MatchString(trimmed) {
		return trimmed
	}

	if sixDigitRe.MatchString(trimmed) {
		yy, _ := strconv.Atoi(trimmed[0:2])
		return fmt.Sprintf("%d%s", pivotYear(yy), trimmed[2:])
	}

	if isoBirthRe.MatchString(trimmed) {
		return trimmed[0:4] + trimmed[5:7] + trimmed[8:10]
	}

	return trimmed
}
