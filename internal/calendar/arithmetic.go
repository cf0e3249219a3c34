package calendar

import (
	"time"

	"cloudeng.io/datetime"
)

const (
	monthsPerYear = 12
	unixEpochYear = 1970
)

// AddMonths shifts d by n calendar months (n may be negative).
// When the day does not exist in the target month it is clamped to the
// month's last day: Jan 31 + 1 month is Feb 28 (or 29).
func AddMonths(d Date, n int) Date {
	total := d.Year*monthsPerYear + int(d.Month) - 1 + n
	year := floorDiv(total, monthsPerYear)
	month := time.Month(total - year*monthsPerYear + 1)

	day := d.Day
	if last := DaysInMonth(year, month); day > last {
		day = last
	}
	return Date{Year: year, Month: month, Day: day}
}

// AddYears shifts d by n years, clamping Feb 29 to Feb 28 in common years.
func AddYears(d Date, n int) Date {
	return AddMonths(d, n*monthsPerYear)
}

// DifferenceInDays returns the signed number of days a - b.
func DifferenceInDays(a, b Date) int {
	return dayNumber(a) - dayNumber(b)
}

// DifferenceInMonths returns the signed number of complete months between a and b
// (positive when a is after b).
//
// A month is complete when shifting a back by that many months does not pass b,
// so the result always satisfies AddMonths(a, -n) >= b for a >= b.
func DifferenceInMonths(a, b Date) int {
	if a.Before(b) {
		return -DifferenceInMonths(b, a)
	}
	n := (a.Year-b.Year)*monthsPerYear + int(a.Month) - int(b.Month)
	if n > 0 && AddMonths(a, -n).Before(b) {
		n--
	}
	return n
}

// DifferenceInYears returns the signed number of complete years between a and b
// (positive when a is after b).
func DifferenceInYears(a, b Date) int {
	if a.Before(b) {
		return -DifferenceInYears(b, a)
	}
	n := a.Year - b.Year
	if n > 0 && AddYears(a, -n).Before(b) {
		n--
	}
	return n
}

// dayNumber maps a proleptic Gregorian date to a serial day count
// (days since 1970-01-01). It avoids time.Duration, which overflows
// for spans longer than ~292 years.
func dayNumber(d Date) int {
	doy := datetime.Date{Month: datetime.Month(d.Month), Day: d.Day}.DayOfYear(d.Year)
	return daysBeforeYear(d.Year) - daysBeforeYear(unixEpochYear) + doy - 1
}

// daysBeforeYear counts the days from 0001-01-01 up to January 1st of year.
func daysBeforeYear(year int) int {
	y := year - 1
	return 365*y + floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
