// Package severance computes the statutory severance owed on dismissal.
//
// The amount is a whole number of monthly salaries looked up by completed
// years of service. Employees who already had 17 years of tenure on
// LegacyReferenceDate keep the older, longer table, capped at 24 months.
package severance

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
	"github.com/warp/payroll-engine/salary"
)

// LegacyReferenceDate is the cut-off for the extended table.
var LegacyReferenceDate = generic.NewDate(2012, time.November, 12)

const (
	legacyTenureYears = 17
	legacyBaseMonths  = 12
	legacyMaxExtra    = 12
)

// monthsByYears[y] is the award for y completed years; 16 and above pay 12.
var monthsByYears = [...]int{
	0,  // 0
	2,  // 1
	2,  // 2
	2,  // 3
	3,  // 4
	3,  // 5
	4,  // 6
	4,  // 7
	5,  // 8
	5,  // 9
	6,  // 10
	7,  // 11
	8,  // 12
	9,  // 13
	10, // 14
	11, // 15
	12, // 16
}

// Months returns the months of salary owed. Every band boundary is explicit;
// do not interpolate.
func Months(yearsOfService int, hadLegacyTenure bool) int {
	if yearsOfService < 0 {
		yearsOfService = 0
	}
	if hadLegacyTenure && yearsOfService >= legacyTenureYears {
		return legacyBaseMonths + min(legacyMaxExtra, max(0, yearsOfService-16))
	}
	if yearsOfService >= len(monthsByYears) {
		return monthsByYears[len(monthsByYears)-1]
	}
	return monthsByYears[yearsOfService]
}

// HadLegacyTenure reports whether someone hired on hire had completed 17
// years of service by LegacyReferenceDate.
func HadLegacyTenure(hire generic.Date) bool {
	return generic.CompletedYears(hire, LegacyReferenceDate) >= legacyTenureYears
}

// Result is a severance award.
type Result struct {
	MonthsAwarded  int
	GrossAmount    decimal.Decimal
	YearsOfService int
	LegacyTenure   bool
	Breakdown      salary.Breakdown
}

// Engine computes awards and their net figures.
type Engine struct {
	converter *salary.Converter
}

func NewEngine(converter *salary.Converter) *Engine {
	return &Engine{converter: converter}
}

// Calculate awards severance for a known tenure.
func (e *Engine) Calculate(monthlyGross decimal.Decimal, yearsOfService int, hadLegacyTenure bool, children int) Result {
	months := Months(yearsOfService, hadLegacyTenure)
	gross := monthlyGross.Mul(decimal.NewFromInt(int64(months)))
	return Result{
		MonthsAwarded:  months,
		GrossAmount:    gross,
		YearsOfService: yearsOfService,
		LegacyTenure:   hadLegacyTenure && yearsOfService >= legacyTenureYears,
		Breakdown:      e.converter.GrossToNet(gross, 1, children),
	}
}

// CalculateFromDates derives tenure and legacy eligibility from the hire and
// termination dates.
func (e *Engine) CalculateFromDates(monthlyGross decimal.Decimal, hire, termination generic.Date, children int) Result {
	years := generic.CompletedYears(hire, termination)
	return e.Calculate(monthlyGross, years, HadLegacyTenure(hire), children)
}
