// Package calendar provides the Gregorian date arithmetic used by the age engine.
//
// It works on whole calendar dates only: there is no time of day and no time zone.
// Month and year shifts clamp to the end of the target month, and the
// differences count whole units only, so month lengths and leap years are
// always taken into account.
package calendar

import (
	"fmt"
	"time"

	"cloudeng.io/datetime"
)

// Clock abstracts time.Now() so that "today" can be pinned in tests.
// engine.Clock satisfies it.
type Clock interface {
	Now() time.Time
}

// Date is a calendar date without a time of day.
// The zero value is not a meaningful date; build values with Of or FromTime.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// Of returns the date for year, month and day.
// Out-of-range values are normalized the same way time.Date does it
// (e.g. February 31st becomes March 3rd or 2nd depending on the year).
func Of(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FromTime extracts the calendar date of t in t's own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the local calendar date reported by clock.
func Today(clock Clock) Date {
	return FromTime(clock.Now())
}

// Time returns the date as midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Compare returns -1 if d is before other, +1 if after and 0 if equal.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(int(d.Month) - int(other.Month))
	default:
		return sign(d.Day - other.Day)
	}
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool { return d.Compare(other) > 0 }

// IsLeap reports whether year is a Gregorian leap year.
func IsLeap(year int) bool {
	return datetime.IsLeap(year)
}

// DaysInMonth returns the length of month in year.
func DaysInMonth(year int, month time.Month) int {
	return datetime.DaysInMonth(year, datetime.Month(month))
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
