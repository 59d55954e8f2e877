package records

import (
	"fmt"
	"strconv"
	"strings"
)

// InfiniteSeconds is the sentinel for an empty or unparseable duration. It
// loses every "best" comparison and sorts to the bottom of ascending
// rankings, so bad rows degrade instead of erroring.
const InfiniteSeconds = int(1)<<31 - 1

// NoTime is rendered wherever a duration cannot be shown.
const NoTime = "-"

// ParseTimeToSeconds converts "H:MM:SS" (or "M:SS") to total seconds.
// Anything else yields InfiniteSeconds.
func ParseTimeToSeconds(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return InfiniteSeconds
	}
	parts := strings.Split(s, ":")
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return InfiniteSeconds
		}
		nums[i] = n
	}
	switch len(nums) {
	case 3:
		return nums[0]*3600 + nums[1]*60 + nums[2]
	case 2:
		return nums[0]*60 + nums[1]
	default:
		return InfiniteSeconds
	}
}

// FormatSecondsToTime renders seconds as "H:MM:SS" (hours unpadded). The
// sentinel and negative values render as NoTime.
func FormatSecondsToTime(seconds int) string {
	if seconds < 0 || seconds >= InfiniteSeconds {
		return NoTime
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// CalcTransition derives triathlon transition time: total minus the three
// timed legs. Returns NoTime when any part is unparseable or when garbage
// splits exceed the total.
func CalcTransition(total, swim, bike, run string) string {
	t := ParseTimeToSeconds(total)
	sw := ParseTimeToSeconds(swim)
	bk := ParseTimeToSeconds(bike)
	rn := ParseTimeToSeconds(run)
	if t == InfiniteSeconds || sw == InfiniteSeconds || bk == InfiniteSeconds || rn == InfiniteSeconds {
		return NoTime
	}
	transition := t - (sw + bk + rn)
	if transition < 0 {
		return NoTime
	}
	return FormatSecondsToTime(transition)
}
