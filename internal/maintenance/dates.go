package maintenance

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the calendar date format used for every persisted service date.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// AddMonths adds calendar months to t. When the day of month does not exist
// in the target month it is clamped to that month's last day, so Jan 31 plus
// one month is the last day of February.
func AddMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	first := time.Date(year, month+time.Month(months), 1, hour, min, sec, t.Nanosecond(), t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, hour, min, sec, t.Nanosecond(), t.Location())
}

// DaysUntil returns the number of days from now to due, rounded up. A due
// instant a few hours ahead counts as one day; any instant in the past is
// zero or negative.
func DaysUntil(due, now time.Time) int {
	days := due.Sub(now).Hours() / 24
	return int(math.Ceil(days))
}

// SameMonth reports whether a and b fall in the same UTC calendar month.
// Service dates are UTC midnights, so both sides are compared in UTC.
func SameMonth(a, b time.Time) bool {
	ay, am, _ := a.UTC().Date()
	by, bm, _ := b.UTC().Date()
	return ay == by && am == bm
}
