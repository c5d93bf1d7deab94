/*
Package bonus computes the statutory seasonal payments.

PURPOSE:
  Greek employees receive three payments on top of the monthly salary:
  - Easter gift:        half a month, reference window Jan 1 - Apr 30
  - Christmas gift:     a full month, reference window May 1 - Dec 31
  - Vacation allowance: pay for the annual leave days, capped at half a month

PRORATION:
  Easter and Christmas gifts are prorated by the days the employee actually
  worked inside the fixed calendar window, independent of the hire
  anniversary:

    ratioWorked = overlap(window, employment) / length(window)   in [0, 1]
    gross       = monthlyGross * windowRatio * ratioWorked

  The vacation allowance is based on the leave entitlement instead (see
  leave.AnnualLeaveDays).

NET FIGURES:
  Each payment is converted on its own as a single isolated payment
  (salary.GrossToNet with payPeriods = 1), not blended into the annual
  schedule. yearly.Summarize apportions annual tax instead.

ROUNDING:
  Gross amounts are rounded to cents, the legal rounding step for a payment.

SEE ALSO:
  - seasonal.go: Easter and Christmas
  - vacation.go: vacation allowance
*/
package bonus

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
	"github.com/warp/payroll-engine/salary"
)

// Kind identifies one of the statutory payments.
type Kind string

const (
	KindEaster    Kind = "easter"
	KindChristmas Kind = "christmas"
	KindVacation  Kind = "vacation"
)

// Kinds lists the payments in the order they fall in a year.
var Kinds = []Kind{KindEaster, KindVacation, KindChristmas}

// ParseKind validates a kind string.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindEaster, KindChristmas, KindVacation:
		return Kind(s), true
	default:
		return "", false
	}
}

// Window is the reference period and the share of a monthly salary a
// seasonal gift pays for a full window.
type Window struct {
	Kind   Kind
	Period generic.Period
	Ratio  decimal.Decimal
}

var (
	easterRatio    = decimal.NewFromFloat(0.5)
	christmasRatio = decimal.NewFromInt(1)
)

// EasterWindow returns Jan 1 - Apr 30 of year.
func EasterWindow(year int) Window {
	return Window{
		Kind:   KindEaster,
		Period: generic.Period{Start: generic.NewDate(year, time.January, 1), End: generic.NewDate(year, time.April, 30)},
		Ratio:  easterRatio,
	}
}

// ChristmasWindow returns May 1 - Dec 31 of year.
func ChristmasWindow(year int) Window {
	return Window{
		Kind:   KindChristmas,
		Period: generic.Period{Start: generic.NewDate(year, time.May, 1), End: generic.NewDate(year, time.December, 31)},
		Ratio:  christmasRatio,
	}
}

// Employment is the span an employee was on the payroll. A nil EndDate
// means still employed.
type Employment struct {
	HireDate generic.Date
	EndDate  *generic.Date
}

// Result is a prorated seasonal gift.
type Result struct {
	Kind           Kind
	Gross          decimal.Decimal
	FullAmount     decimal.Decimal // gift for a fully worked window
	EmploymentDays int
	WindowDays     int
	RatioWorked    decimal.Decimal
	Breakdown      salary.Breakdown
}

// VacationResult is a vacation allowance.
type VacationResult struct {
	Gross           decimal.Decimal
	LeaveDays       decimal.Decimal
	DailyRate       decimal.Decimal
	PayForLeaveDays decimal.Decimal
	Cap             decimal.Decimal
	Capped          bool
	Breakdown       salary.Breakdown
}

// Engine computes bonuses and their net figures.
type Engine struct {
	converter *salary.Converter
}

// NewEngine creates an engine that converts payments with converter.
func NewEngine(converter *salary.Converter) *Engine {
	return &Engine{converter: converter}
}
