/*
Package leave computes statutory annual paid leave.

PURPOSE:
  Greek annual leave grows with tenure and depends on the weekly schedule
  (5-day or 6-day week). This package answers "how many days is this
  employee owed in the year of asOf?" and keeps a simple balance of days
  taken against that entitlement.

TENURE TIERS:
                   5-day week   6-day week
    first year         20           24
    second year        21           25
    3rd-10th year      22           26
    10+ years          25           30

FIRST-YEAR PRORATION:
  Hired in the same calendar year as asOf: the first-year entitlement is
  scaled by the months worked so far (a month counts once the day of month
  of asOf reaches the hire day). Without proration the employee is treated
  as if one year of service had already completed.

  This differs from bonus proration, which counts days inside fixed calendar
  windows rather than from the hire anniversary.

FUTURE HIRES:
  A hire date in a later year than asOf owes nothing: AnnualLeaveDays returns
  0. The web calculator this engine replaces fell through to the 3rd-10th
  year tier (22 days) in that case.

SEE ALSO:
  - generic/time.go: CompletedYears
  - bonus/vacation.go: vacation allowance built on these days
*/
package leave

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
)

// WeekType is the weekly work schedule.
type WeekType string

const (
	FiveDayWeek WeekType = "5"
	SixDayWeek  WeekType = "6"
)

// ParseWeekType accepts "5" or "6"; the empty string means a 5-day week.
func ParseWeekType(s string) (WeekType, error) {
	switch WeekType(s) {
	case FiveDayWeek, "":
		return FiveDayWeek, nil
	case SixDayWeek:
		return SixDayWeek, nil
	default:
		return "", fmt.Errorf("%w: %q", generic.ErrInvalidWeekType, s)
	}
}

// WorkingDaysPerMonth is the divisor that turns a monthly salary into a
// daily rate.
func (w WeekType) WorkingDaysPerMonth() decimal.Decimal {
	if w == SixDayWeek {
		return decimal.NewFromInt(26)
	}
	return decimal.NewFromInt(25)
}

// Entitlement is the day count for each tenure tier.
type Entitlement struct {
	FirstYear    decimal.Decimal
	SecondYear   decimal.Decimal
	ThirdToTenth decimal.Decimal
	LongService  decimal.Decimal
}

// LongServiceYears is the completed tenure from which LongService applies.
const LongServiceYears = 10

var (
	fiveDay = Entitlement{
		FirstYear:    decimal.NewFromInt(20),
		SecondYear:   decimal.NewFromInt(21),
		ThirdToTenth: decimal.NewFromInt(22),
		LongService:  decimal.NewFromInt(25),
	}
	sixDay = Entitlement{
		FirstYear:    decimal.NewFromInt(24),
		SecondYear:   decimal.NewFromInt(25),
		ThirdToTenth: decimal.NewFromInt(26),
		LongService:  decimal.NewFromInt(30),
	}
)

// EntitlementFor returns the tiers for a weekly schedule.
func EntitlementFor(w WeekType) Entitlement {
	if w == SixDayWeek {
		return sixDay
	}
	return fiveDay
}

// ForServiceYears picks the tier for a completed tenure.
func (e Entitlement) ForServiceYears(years int) decimal.Decimal {
	switch {
	case years == 1:
		return e.SecondYear
	case years < LongServiceYears:
		return e.ThirdToTenth
	default:
		return e.LongService
	}
}

// MonthsWorkedInYear counts the months worked in asOf's year by someone
// hired in that same year. Hires from earlier years get 12, future hires 0.
func MonthsWorkedInYear(hire, asOf generic.Date) int {
	if hire.After(asOf) {
		return 0
	}
	if hire.Year() != asOf.Year() {
		return 12
	}
	months := int(asOf.Month() - hire.Month())
	if asOf.Day() >= hire.Day() {
		months++
	}
	return min(12, max(0, months))
}

// AnnualLeaveDays returns the days of paid leave owed for asOf's year.
func AnnualLeaveDays(hire, asOf generic.Date, week WeekType, prorateFirstYear bool) decimal.Decimal {
	tiers := EntitlementFor(week)
	serviceYears := generic.CompletedYears(hire, asOf)

	if hire.Year() == asOf.Year() {
		if !prorateFirstYear {
			return tiers.ForServiceYears(max(1, serviceYears))
		}
		months := decimal.NewFromInt(int64(MonthsWorkedInYear(hire, asOf)))
		return tiers.FirstYear.Mul(months).Div(generic.Twelve)
	}

	if hire.After(asOf) {
		return decimal.Zero
	}
	return tiers.ForServiceYears(serviceYears)
}

// AnnualLeaveDaysForYear evaluates the entitlement at the last day of year,
// the reference point used by leave-balance screens.
func AnnualLeaveDaysForYear(hire generic.Date, year int, week WeekType) decimal.Decimal {
	return AnnualLeaveDays(hire, generic.NewDate(year, time.December, 31), week, true)
}
