/*
Package salary converts between gross and net pay.

PURPOSE:
  GrossToNet annualizes a per-period gross over the number of pay periods,
  applies EFKA contributions and income tax from a tax.Table, and reports
  every figure back per period. NetToGross inverts it numerically.

PAY PERIODS:
  Greek salaried employees are paid 14 times a year (12 months plus the
  Easter, Christmas and vacation payments). Bonuses and severance are
  converted on their own with payPeriods = 1.

INVERSION:
  There is no closed form for the inverse because of the progressive brackets
  and the tapered credit. NetToGross bisects gross over [net, 3*net], which
  always contains the root because net <= gross and deductions stay well
  below two thirds of gross. It stops when the bracket is one cent wide and
  returns the upper bound, so the returned net is never below the target.
  Scenarios outside that bracket (not reachable with the current table)
  return the breakdown at 3*net.

SEE ALSO:
  - tax/income.go: tax and credit evaluation
  - bonus/, severance/: single-payment conversions
*/
package salary

import (
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
	"github.com/warp/payroll-engine/tax"
)

// DefaultPayPeriods is the number of salary payments per year.
const DefaultPayPeriods = 14

// maxBisectionSteps bounds NetToGross; 64 halvings of any realistic bracket
// are far below one cent.
const maxBisectionSteps = 64

var (
	bisectionTolerance = generic.Cent
	searchCeiling      = decimal.NewFromInt(3)
)

// Breakdown holds per-period figures for one salary.
type Breakdown struct {
	GrossSalary     decimal.Decimal
	NetSalary       decimal.Decimal
	EFKAEmployee    decimal.Decimal
	EFKAEmployer    decimal.Decimal
	IncomeTax       decimal.Decimal
	SolidarityTax   decimal.Decimal
	TotalDeductions decimal.Decimal
}

// EmployerCost adds the employer's total monthly cost to a breakdown.
type EmployerCost struct {
	Breakdown
	TotalEmployerCost decimal.Decimal
}

// Converter evaluates salaries against one tax table.
type Converter struct {
	Table tax.Table
}

// NewConverter creates a converter for the given table.
func NewConverter(table tax.Table) *Converter {
	return &Converter{Table: table}
}

func normalizePeriods(payPeriods int) int {
	if payPeriods <= 0 {
		return DefaultPayPeriods
	}
	return payPeriods
}

// GrossToNet returns the breakdown of monthlyGross paid payPeriods times a
// year (0 means DefaultPayPeriods).
func (c *Converter) GrossToNet(monthlyGross decimal.Decimal, payPeriods int, children int) Breakdown {
	periods := decimal.NewFromInt(int64(normalizePeriods(payPeriods)))
	annualGross := monthlyGross.Mul(periods)

	efkaEmployee, efkaEmployer := c.Table.Contributions(annualGross)
	taxable := annualGross.Sub(efkaEmployee)

	incomeTax := c.Table.AnnualIncomeTax(taxable, children)
	solidarity := c.Table.SolidarityTax(taxable)

	deductions := efkaEmployee.Add(incomeTax).Add(solidarity)
	annualNet := annualGross.Sub(deductions)

	return Breakdown{
		GrossSalary:     monthlyGross,
		NetSalary:       annualNet.Div(periods),
		EFKAEmployee:    efkaEmployee.Div(periods),
		EFKAEmployer:    efkaEmployer.Div(periods),
		IncomeTax:       incomeTax.Div(periods),
		SolidarityTax:   solidarity.Div(periods),
		TotalDeductions: deductions.Div(periods),
	}
}

// NetToGross finds the gross whose net equals monthlyNet, to within one
// cent of gross.
func (c *Converter) NetToGross(monthlyNet decimal.Decimal, payPeriods int, children int) Breakdown {
	low := monthlyNet
	high := monthlyNet.Mul(searchCeiling)
	var result *Breakdown

	for step := 0; step < maxBisectionSteps && high.Sub(low).GreaterThan(bisectionTolerance); step++ {
		mid := low.Add(high).Div(generic.Two)
		b := c.GrossToNet(mid, payPeriods, children)
		if b.NetSalary.LessThan(monthlyNet) {
			low = mid
		} else {
			high = mid
			result = &b
		}
	}

	if result == nil {
		return c.GrossToNet(high, payPeriods, children)
	}
	return *result
}

// EmployerCost returns the breakdown plus gross + employer contribution.
func (c *Converter) EmployerCost(monthlyGross decimal.Decimal, payPeriods int, children int) EmployerCost {
	b := c.GrossToNet(monthlyGross, payPeriods, children)
	return EmployerCost{
		Breakdown:         b,
		TotalEmployerCost: monthlyGross.Add(b.EFKAEmployer),
	}
}
