package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/tartampluch/go-age/internal/calendar"
	"github.com/tartampluch/go-age/internal/config"
)

// DateFieldInput holds the raw text of the three form fields.
type DateFieldInput struct {
	Day   string
	Month string
	Year  string
}

// Get returns the raw text of field kind.
func (in DateFieldInput) Get(kind FieldKind) string {
	switch kind {
	case FieldDay:
		return in.Day
	case FieldMonth:
		return in.Month
	default:
		return in.Year
	}
}

// With returns a copy of in with field kind replaced by raw.
func (in DateFieldInput) With(kind FieldKind, raw string) DateFieldInput {
	switch kind {
	case FieldDay:
		in.Day = raw
	case FieldMonth:
		in.Month = raw
	default:
		in.Year = raw
	}
	return in
}

// Complete reports whether all three fields contain something.
func (in DateFieldInput) Complete() bool {
	return strings.TrimSpace(in.Day) != "" &&
		strings.TrimSpace(in.Month) != "" &&
		strings.TrimSpace(in.Year) != ""
}

// ValidationError reports every classification of a rejected input.
// Fields not yet checked or valid carry FieldValid.
type ValidationError struct {
	Day   FieldOutcome
	Month FieldOutcome
	Year  FieldOutcome
	Date  DateOutcome
}

// Field returns the outcome recorded for kind.
func (e *ValidationError) Field(kind FieldKind) FieldOutcome {
	switch kind {
	case FieldDay:
		return e.Day
	case FieldMonth:
		return e.Month
	default:
		return e.Year
	}
}

func (e *ValidationError) Error() string {
	var parts []string
	for _, kind := range Fields {
		if o := e.Field(kind); o != FieldValid {
			parts = append(parts, fmt.Sprintf("%s=%s", kind, o))
		}
	}
	if e.Date != DateValid {
		parts = append(parts, fmt.Sprintf("date=%s", e.Date))
	}
	return fmt.Sprintf("%s: %s", config.ErrValidation, strings.Join(parts, ", "))
}

// Calculate validates in against today and computes the elapsed time.
// Validation failures are returned as *ValidationError.
func Calculate(in DateFieldInput, today calendar.Date) (Difference, error) {
	target, verr := evaluate(in, today)
	if verr != nil {
		return Difference{}, verr
	}
	return ComputeDifference(target, today), nil
}

// ParseTarget validates in and returns the date it names.
func ParseTarget(in DateFieldInput, today calendar.Date) (calendar.Date, error) {
	target, verr := evaluate(in, today)
	if verr != nil {
		return calendar.Date{}, verr
	}
	return target, nil
}

// evaluate runs the per-field checks, then the whole-date checks once all
// three fields are valid numbers.
func evaluate(in DateFieldInput, today calendar.Date) (calendar.Date, *ValidationError) {
	day, dayOutcome := parseField(FieldDay, in.Day, today)
	month, monthOutcome := parseField(FieldMonth, in.Month, today)
	year, yearOutcome := parseField(FieldYear, in.Year, today)

	verr := &ValidationError{Day: dayOutcome, Month: monthOutcome, Year: yearOutcome}
	if dayOutcome != FieldValid || monthOutcome != FieldValid || yearOutcome != FieldValid {
		return calendar.Date{}, verr
	}

	if !ValidateCalendarDate(day, month, year) {
		verr.Date = DateImpossible
		return calendar.Date{}, verr
	}

	target := calendar.Date{Year: year, Month: time.Month(month), Day: day}
	if target.After(today) {
		verr.Date = DateInFuture
		return calendar.Date{}, verr
	}
	return target, nil
}

// -----------------------------------------------------------------------------
// Form State
// -----------------------------------------------------------------------------

// FormState is the complete, immutable state of the date form.
// Transitions return a new value; the receiver is never modified.
type FormState struct {
	Input DateFieldInput

	// Per-field outcomes, refreshed on every keystroke.
	Day   FieldOutcome
	Month FieldOutcome
	Year  FieldOutcome

	// Date is set by Submit only and cleared by any later edit.
	Date DateOutcome

	// Result is the last successful computation. It survives failed submissions.
	Result    Difference
	HasResult bool
}

// NewFormState returns an empty form with no errors shown.
func NewFormState() FormState {
	return FormState{}
}

// Outcome returns the current per-field outcome of kind.
func (s FormState) Outcome(kind FieldKind) FieldOutcome {
	switch kind {
	case FieldDay:
		return s.Day
	case FieldMonth:
		return s.Month
	default:
		return s.Year
	}
}

func (s FormState) withOutcome(kind FieldKind, o FieldOutcome) FormState {
	switch kind {
	case FieldDay:
		s.Day = o
	case FieldMonth:
		s.Month = o
	default:
		s.Year = o
	}
	return s
}

// WithInput records a keystroke in field kind: the raw text is stored, that
// field alone is re-validated and any whole-date error is cleared.
func (s FormState) WithInput(kind FieldKind, raw string, today calendar.Date) FormState {
	s.Input = s.Input.With(kind, raw)
	s = s.withOutcome(kind, ValidateField(kind, raw, today))
	s.Date = DateValid
	return s
}

// Submit validates the whole input. On success the result is replaced;
// on failure the previous result is kept untouched.
func (s FormState) Submit(today calendar.Date) FormState {
	target, verr := evaluate(s.Input, today)
	if verr != nil {
		s.Day, s.Month, s.Year, s.Date = verr.Day, verr.Month, verr.Year, verr.Date
		return s
	}

	s.Day, s.Month, s.Year, s.Date = FieldValid, FieldValid, FieldValid, DateValid
	s.Result = ComputeDifference(target, today)
	s.HasResult = true
	return s
}

// DateErrorVisible reports whether the whole-date message should be shown.
// It stays hidden until all three fields hold something, so that a user
// still typing is not told the date is invalid.
func (s FormState) DateErrorVisible() bool {
	return s.Date != DateValid && s.Input.Complete()
}

// FieldInvalid reports whether field kind should be highlighted.
func (s FormState) FieldInvalid(kind FieldKind) bool {
	return s.Outcome(kind) != FieldValid || s.DateErrorVisible()
}

// FieldMessageKey returns the translation key for the error under field kind, or "".
func (s FormState) FieldMessageKey(kind FieldKind) string {
	return s.Outcome(kind).MessageKey(kind)
}

// DateMessageKey returns the translation key of the visible whole-date error, or "".
func (s FormState) DateMessageKey() string {
	if !s.DateErrorVisible() {
		return ""
	}
	return s.Date.MessageKey()
}
