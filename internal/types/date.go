package types

import (
	"fmt"
	"strings"
	"time"

	ierr "github.com/flexprice/rvpark/internal/errors"
)

// DateLayout is the wire format of calendar dates (fecha_inicio, fecha_fin, fecha_pago)
const DateLayout = "2006-01-02"

const secondsPerDay = 24 * 60 * 60

// DateOnly truncates t to midnight UTC of its calendar day.
// The calendar day is read in t's own location so a local date never shifts.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, ierr.WithError(err).
			WithHintf("Invalid date %q, expected format YYYY-MM-DD", value).
			Mark(ierr.ErrValidation)
	}
	return t, nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// LastDayOfMonth returns the number of days in the given month,
// accounting for leap years.
func LastDayOfMonth(year int, month time.Month) int {
	// day 0 of the next month normalizes to the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// InclusiveDayCount returns the number of calendar days from start to end,
// counting both ends. InclusiveDayCount(d, d) == 1.
// The result is zero or negative when end is before start; callers must
// reject that case with ValidateDateRange.
func InclusiveDayCount(start, end time.Time) int {
	// whole days from the epoch, time.Duration saturates past ~292 years
	days := DateOnly(end).Unix()/secondsPerDay - DateOnly(start).Unix()/secondsPerDay
	return int(days) + 1
}

// ValidateDateRange fails with a validation error when end is before start.
func ValidateDateRange(start, end time.Time) error {
	if DateOnly(end).Before(DateOnly(start)) {
		return ierr.NewError("end date before start date").
			WithHintf("End date %s cannot be before start date %s", FormatDate(end), FormatDate(start)).
			WithReportableDetails(map[string]any{
				"start_date": FormatDate(start),
				"end_date":   FormatDate(end),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// PeriodKey returns the billing period (YYYY-MM) that t falls into.
func PeriodKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// ValidatePeriodKey checks a YYYY-MM billing period string.
func ValidatePeriodKey(period string) error {
	if _, err := time.Parse("2006-01", period); err != nil {
		return ierr.WithError(err).
			WithHintf("Invalid period %q, expected format YYYY-MM", period).
			Mark(ierr.ErrValidation)
	}
	return nil
}
