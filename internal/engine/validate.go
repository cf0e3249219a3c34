package engine

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/tartampluch/go-age/internal/calendar"
	"github.com/tartampluch/go-age/internal/config"
)

// FieldKind identifies one of the three text inputs of the form.
type FieldKind int

const (
	FieldDay FieldKind = iota
	FieldMonth
	FieldYear
)

// Fields lists the form inputs in display order.
var Fields = []FieldKind{FieldDay, FieldMonth, FieldYear}

func (k FieldKind) String() string {
	switch k {
	case FieldDay:
		return "day"
	case FieldMonth:
		return "month"
	case FieldYear:
		return "year"
	}
	return "unknown"
}

// FieldOutcome classifies a single raw field value.
type FieldOutcome int

const (
	FieldValid FieldOutcome = iota
	FieldEmpty
	FieldNotANumber
	FieldOutOfRange
)

func (o FieldOutcome) String() string {
	switch o {
	case FieldValid:
		return "valid"
	case FieldEmpty:
		return "empty"
	case FieldNotANumber:
		return "not_a_number"
	case FieldOutOfRange:
		return "out_of_range"
	}
	return "unknown"
}

// MessageKey returns the translation key describing the outcome for kind,
// or "" when the value is valid.
func (o FieldOutcome) MessageKey(kind FieldKind) string {
	switch o {
	case FieldEmpty:
		return config.TKeyErrRequired
	case FieldNotANumber:
		return config.TKeyErrNumber
	case FieldOutOfRange:
		switch kind {
		case FieldDay:
			return config.TKeyErrDayRange
		case FieldMonth:
			return config.TKeyErrMonthRange
		default:
			return config.TKeyErrYearFuture
		}
	}
	return ""
}

// DateOutcome classifies the combination of three individually valid fields.
type DateOutcome int

const (
	DateValid DateOutcome = iota
	// DateImpossible means the fields are in range but do not name a real day
	// (e.g. 31/04 or 29/02 in a common year).
	DateImpossible
	// DateInFuture means the date exists but lies after the reference day.
	DateInFuture
)

func (o DateOutcome) String() string {
	switch o {
	case DateValid:
		return "valid"
	case DateImpossible:
		return "impossible_combination"
	case DateInFuture:
		return "in_future"
	}
	return "unknown"
}

// MessageKey returns the translation key of the whole-date error, or "".
func (o DateOutcome) MessageKey() string {
	switch o {
	case DateImpossible:
		return config.TKeyErrDateInvalid
	case DateInFuture:
		return config.TKeyErrDateFuture
	}
	return ""
}

// ValidateField classifies the raw text of a single field.
//
// Day and month are checked against their fixed ranges. The year only has an
// upper bound (today's year): arbitrarily old years are accepted.
func ValidateField(kind FieldKind, raw string, today calendar.Date) FieldOutcome {
	_, outcome := parseField(kind, raw, today)
	return outcome
}

// parseField validates raw and returns its integer value when valid.
func parseField(kind FieldKind, raw string, today calendar.Date) (int, FieldOutcome) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, FieldEmpty
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		// A well-formed integer too large for int is a range problem, not a typo.
		if errors.Is(err, strconv.ErrRange) {
			return 0, FieldOutOfRange
		}
		return 0, FieldNotANumber
	}

	switch kind {
	case FieldDay:
		if n < config.MinDay || n > config.MaxDay {
			return n, FieldOutOfRange
		}
	case FieldMonth:
		if n < config.MinMonth || n > config.MaxMonth {
			return n, FieldOutOfRange
		}
	case FieldYear:
		if n > today.Year {
			return n, FieldOutOfRange
		}
	}
	return n, FieldValid
}

// ValidateCalendarDate reports whether day/month/year name a real Gregorian day.
//
// The check round-trips the values through time.Date, which silently normalizes
// overflow (April 31st becomes May 1st, Feb 29th of a common year becomes
// March 1st). The date is real only if nothing moved.
func ValidateCalendarDate(day, month, year int) bool {
	if month < config.MinMonth || month > config.MaxMonth {
		return false
	}
	d := calendar.Of(year, time.Month(month), day)
	return d.Year == year && int(d.Month) == month && d.Day == day
}
