package engine

import (
	"strconv"

	"github.com/tartampluch/go-age/internal/calendar"
	"github.com/tartampluch/go-age/internal/config"
)

// Difference is the calendar time elapsed between two dates.
// All components are non-negative.
type Difference struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Days   int `json:"days"`
}

// IsZero reports whether the two dates were the same day.
func (d Difference) IsZero() bool {
	return d == Difference{}
}

// ComputeDifference returns the whole years, remaining whole months and
// remaining days elapsed from target to reference.
//
// It is defined for target <= reference only; callers validate the input first.
// The day count is anchored on the total number of whole months, not on the
// year/month decomposition, so that variable month lengths never produce a
// negative remainder.
func ComputeDifference(target, reference calendar.Date) Difference {
	years := calendar.DifferenceInYears(reference, target)
	months := calendar.DifferenceInMonths(calendar.AddYears(reference, -years), target)

	exactMonths := calendar.DifferenceInMonths(reference, target)
	days := calendar.DifferenceInDays(calendar.AddMonths(reference, -exactMonths), target)

	return Difference{Years: years, Months: months, Days: days}
}

// FormatComponent renders one result component for display.
//
// Nothing computed yet always renders the placeholder. Once computed, a 0 also
// renders the placeholder when zeroPlaceholder is set: "--" then means either
// "not computed" or "exactly zero". It is a display choice only.
func FormatComponent(value int, hasResult, zeroPlaceholder bool) string {
	if !hasResult || (value == 0 && zeroPlaceholder) {
		return config.PlaceholderZero
	}
	return strconv.Itoa(value)
}

// PluralCount is the count used to pick the plural form of a unit label.
// The placeholder reads as plural.
func PluralCount(value int, hasResult, zeroPlaceholder bool) int {
	if FormatComponent(value, hasResult, zeroPlaceholder) == config.PlaceholderZero {
		return 2
	}
	return value
}
