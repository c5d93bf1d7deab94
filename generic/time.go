package generic

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Calendar date without time-of-day
// =============================================================================

// DateLayout is the wire and storage format for dates.
const DateLayout = "2006-01-02"

// Date is a calendar date, always normalized to midnight UTC so that day
// arithmetic never crosses a DST boundary.
type Date struct {
	Time time.Time
}

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf drops the time-of-day and location of t, keeping its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q (use YYYY-MM-DD)", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// Comparison
func (d Date) Before(other Date) bool { return d.Time.Before(other.Time) }
func (d Date) After(other Date) bool  { return d.Time.After(other.Time) }
func (d Date) Equal(other Date) bool  { return d.Time.Equal(other.Time) }

// Properties
func (d Date) Year() int         { return d.Time.Year() }
func (d Date) Month() time.Month { return d.Time.Month() }
func (d Date) Day() int          { return d.Time.Day() }
func (d Date) IsZero() bool      { return d.Time.IsZero() }
func (d Date) String() string    { return d.Time.Format(DateLayout) }

func MinDate(a, b Date) Date {
	if a.Before(b) {
		return a
	}
	return b
}

func MaxDate(a, b Date) Date {
	if a.After(b) {
		return a
	}
	return b
}

// =============================================================================
// DAY COUNTING
// =============================================================================

// InclusiveDays returns the number of calendar days in [start, end], counting
// both ends. When end is before start the result is zero or negative; callers
// must clamp their range first.
func InclusiveDays(start, end Date) int {
	return int(end.Time.Sub(start.Time).Hours()/24) + 1
}

// OverlapDays returns the number of days shared by the period
// [periodStart, periodEnd] and the employment [employmentStart, employmentEnd].
// A nil employmentEnd means the employment is still running at periodEnd.
func OverlapDays(periodStart, periodEnd, employmentStart Date, employmentEnd *Date) int {
	end := periodEnd
	if employmentEnd != nil {
		end = MinDate(periodEnd, *employmentEnd)
	}
	start := MaxDate(periodStart, employmentStart)
	if end.Before(start) {
		return 0
	}
	return InclusiveDays(start, end)
}

// CompletedYears returns the whole years of service between hire and asOf.
// The count only advances on the hire anniversary. Never negative.
func CompletedYears(hire, asOf Date) int {
	years := asOf.Year() - hire.Year()
	anniversary := NewDate(asOf.Year(), hire.Month(), hire.Day())
	if asOf.Before(anniversary) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

func StartOfYear(year int) Date { return NewDate(year, time.January, 1) }
func EndOfYear(year int) Date   { return NewDate(year, time.December, 31) }
