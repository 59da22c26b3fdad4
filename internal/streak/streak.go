// Package streak derives consecutive-day counters from activity timestamps.
// Days are UTC calendar days; the functions are pure and safe for concurrent use.
package streak

import (
	"math"
	"time"
)

// Day is the length of one UTC calendar day.
const Day = 24 * time.Hour

// StartOfUTCDay returns 00:00:00.000 UTC of the calendar date containing t.
func StartOfUTCDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetweenUTC returns the number of calendar days from a's UTC day to b's UTC day.
// It is negative when b falls on an earlier day than a.
func DaysBetweenUTC(a, b time.Time) int {
	diff := StartOfUTCDay(b).Sub(StartOfUTCDay(a))
	return int(math.Round(float64(diff) / float64(Day)))
}

// SameDay reports whether now is on the UTC day of last or before it.
func SameDay(last, now time.Time) bool {
	return DaysBetweenUTC(last, now) <= 0
}

// Next returns the streak value after an activity at now.
// A nil last means no activity was ever recorded.
func Next(last *time.Time, now time.Time, prev int) int {
	if last == nil {
		return 1 // first activity
	}
	diff := DaysBetweenUTC(*last, now)
	switch {
	case diff <= 0:
		return prev // same day or backdated
	case diff == 1:
		return prev + 1
	default:
		return 1 // at least one day was skipped
	}
}
