package core

import (
	"fmt"
	"time"
)

// DayLayout is the canonical calendar-day key format.
const DayLayout = "2006-01-02"

// Day is a calendar day in the user's local time zone, stored as YYYY-MM-DD.
// Arithmetic is done on UTC midnight so DST transitions never skip or repeat a day.
type Day string

// Clock returns the current wall-clock time.
type Clock func() time.Time

// SystemClock is the real clock; only binaries and top-level services use it.
func SystemClock() time.Time { return time.Now() }

// FixedClock returns a clock frozen at t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// DayOf returns the calendar day of t in t's own location.
func DayOf(t time.Time) Day {
	return Day(t.Format(DayLayout))
}

// Today returns the calendar day of clock() in loc. A nil loc means time.Local.
func Today(clock Clock, loc *time.Location) Day {
	if clock == nil {
		clock = SystemClock
	}
	if loc == nil {
		loc = time.Local
	}
	return DayOf(clock().In(loc))
}

// ParseDay validates and normalizes a YYYY-MM-DD string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDay, s)
	}
	return DayOf(t), nil
}

// MustParseDay is ParseDay for constants and tests.
func MustParseDay(s string) Day {
	d, err := ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Time returns UTC midnight of the day. An invalid day yields the zero time.
func (d Day) Time() time.Time {
	t, err := time.Parse(DayLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// IsZero reports whether the day is empty or unparseable.
func (d Day) IsZero() bool {
	return d.Time().IsZero()
}

// AddDays returns the day n days after d (n may be negative).
func (d Day) AddDays(n int) Day {
	return DayOf(d.Time().AddDate(0, 0, n))
}

// Before reports whether d is strictly earlier than other.
func (d Day) Before(other Day) bool {
	return d.Time().Before(other.Time())
}

// After reports whether d is strictly later than other.
func (d Day) After(other Day) bool {
	return d.Time().After(other.Time())
}

// DaysSince returns the whole number of days from other to d.
func (d Day) DaysSince(other Day) int {
	return int(d.Time().Sub(other.Time()).Hours() / 24)
}

func (d Day) String() string { return string(d) }

// Window returns the n consecutive days ending at end, oldest first.
func Window(end Day, n int) []Day {
	if n <= 0 {
		return nil
	}
	days := make([]Day, n)
	for i := 0; i < n; i++ {
		days[i] = end.AddDays(i - n + 1)
	}
	return days
}

// Range returns every day from start to end inclusive, oldest first.
func Range(start, end Day) []Day {
	if start.IsZero() || end.IsZero() || start.After(end) {
		return nil
	}
	return Window(end, end.DaysSince(start)+1)
}
