// Package valueobject contains domain value objects for the property ledger.
package valueobject

import "time"

const day = 24 * time.Hour

// DateOnly truncates t to midnight UTC of the calendar day it falls on.
// The calendar day is read in t's own location before conversion.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateOn returns midnight UTC of the given day, clamping day to the
// length of the month (day 31 in February yields the 28th or 29th).
func DateOn(year int, month time.Month, dayOfMonth int) time.Time {
	if dayOfMonth < 1 {
		dayOfMonth = 1
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	if last := DaysInMonth(first); dayOfMonth > last {
		dayOfMonth = last
	}
	return time.Date(year, month, dayOfMonth, 0, 0, 0, 0, time.UTC)
}

// MonthStart returns the first instant of the month containing t.
func MonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// MonthEnd returns the last instant of the month containing t.
// Period filters compare with <= against this value.
func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// DaysInMonth returns the number of calendar days in the month containing t.
func DaysInMonth(t time.Time) int {
	return DaysBetweenInclusive(MonthStart(t), MonthEnd(t))
}

// DaysBetweenInclusive returns the number of calendar days from a to b,
// counting both ends. It is zero or negative when b is before a.
func DaysBetweenInclusive(a, b time.Time) int {
	return DaysElapsed(a, b) + 1
}

// DaysElapsed returns the whole calendar days from `from` to `to`,
// truncated toward zero. A negative value means `to` is before `from`.
func DaysElapsed(from, to time.Time) int {
	return int(DateOnly(to).Sub(DateOnly(from)) / day)
}

// AddMonths adds n calendar months to t, clamping the day to the end of
// the target month so that Jan 31 + 1 month is the last day of February.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	target := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	clamped := DateOn(target.Year(), target.Month(), d)
	hh, mm, ss := t.Clock()
	return time.Date(clamped.Year(), clamped.Month(), clamped.Day(), hh, mm, ss, t.Nanosecond(), time.UTC)
}

// Period is a closed date range: both Start and End are inclusive.
type Period struct {
	Start time.Time
	End   time.Time
}

// MonthPeriod returns the calendar month (1-12) of the given year.
func MonthPeriod(year int, month time.Month) Period {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Period{Start: start, End: MonthEnd(start)}
}

// YearPeriod returns Jan 1 through Dec 31 of the given year.
func YearPeriod(year int) Period {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return Period{Start: start, End: start.AddDate(1, 0, 0).Add(-time.Nanosecond)}
}

// NewPeriod builds a caller-supplied range. The end is extended to the last
// instant of its calendar day so a record dated on the end day is included.
func NewPeriod(start, end time.Time) Period {
	return Period{
		Start: DateOnly(start),
		End:   DateOnly(end).Add(day - time.Nanosecond),
	}
}

// Contains reports whether t falls within the period, ends included.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// IsValid reports whether the period is non-empty.
func (p Period) IsValid() bool {
	return !p.End.Before(p.Start)
}
