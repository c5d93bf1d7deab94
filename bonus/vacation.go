package bonus

import (
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
	"github.com/warp/payroll-engine/leave"
)

// VacationCap is the statutory ceiling: half a monthly salary.
func VacationCap(monthlyGross decimal.Decimal) decimal.Decimal {
	return monthlyGross.Div(generic.Two)
}

// VacationGross returns the allowance for leaveDays: the daily rate times the
// days, rounded to cents, capped at half the monthly salary.
func VacationGross(monthlyGross, leaveDays decimal.Decimal, week leave.WeekType) decimal.Decimal {
	pay := generic.Round2(DailyRate(monthlyGross, week).Mul(leaveDays))
	return decimal.Min(pay, VacationCap(monthlyGross))
}

// DailyRate splits a monthly salary over the working days of a month.
func DailyRate(monthlyGross decimal.Decimal, week leave.WeekType) decimal.Decimal {
	return monthlyGross.Div(week.WorkingDaysPerMonth())
}

// Vacation computes the allowance for a known number of leave days.
func (e *Engine) Vacation(monthlyGross, leaveDays decimal.Decimal, week leave.WeekType, children int) VacationResult {
	daily := DailyRate(monthlyGross, week)
	pay := daily.Mul(leaveDays)
	limit := VacationCap(monthlyGross)
	gross := VacationGross(monthlyGross, leaveDays, week)

	return VacationResult{
		Gross:           gross,
		LeaveDays:       leaveDays,
		DailyRate:       daily,
		PayForLeaveDays: pay,
		Cap:             limit,
		Capped:          pay.GreaterThan(limit),
		Breakdown:       e.converter.GrossToNet(gross, 1, children),
	}
}

// VacationFor derives the leave days from the hire date, then computes the
// allowance.
func (e *Engine) VacationFor(monthlyGross decimal.Decimal, hire, asOf generic.Date, week leave.WeekType, prorateFirstYear bool, children int) VacationResult {
	days := leave.AnnualLeaveDays(hire, asOf, week, prorateFirstYear)
	return e.Vacation(monthlyGross, days, week, children)
}
