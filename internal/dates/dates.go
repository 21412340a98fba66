// Package dates holds the calendar-day arithmetic shared by the accounting
// and projection engines. Everything works on whole calendar days: times are
// normalized to local midnight before any diff so time-of-day drift (or DST)
// can never produce an off-by-one.
package dates

import (
	"math"
	"time"
)

const ISODate = "2006-01-02"

// Clock abstracts "today" so the engines stay pure and testable.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant. Test use.
type FixedClock struct{ T time.Time }

func (f FixedClock) Now() time.Time { return f.T }

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayDiff returns the whole-day difference b-a, ignoring time of day. The
// rounding absorbs the 23- and 25-hour days around DST transitions.
func DayDiff(a, b time.Time) int {
	a = StartOfDay(a)
	b = StartOfDay(b)
	return int(math.Round(b.Sub(a).Hours() / 24))
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// FormatISO renders a date as YYYY-MM-DD.
func FormatISO(t time.Time) string { return t.Format(ISODate) }

// ParseISO parses a YYYY-MM-DD date in local time.
func ParseISO(s string) (time.Time, error) {
	return time.ParseInLocation(ISODate, s, time.Local)
}

// TodayISO is the current calendar date as YYYY-MM-DD.
func TodayISO(clock Clock) string { return FormatISO(clock.Now()) }

// TimeNow is the current time of day as HH:MM, used for log timestamps.
func TimeNow(clock Clock) string { return clock.Now().Format("15:04") }
