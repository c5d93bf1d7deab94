/*
Package yearly aggregates a year of pay into a tax-return forecast.

PURPOSE:
  Takes the monthly gross entries a user recorded for one year, adds the
  statutory Easter, Christmas and vacation payments, and computes annual
  EFKA, income tax and net pay once on the total, the way the annual tax
  return does.

REPRESENTATIVE SALARY:
  Bonuses are based on the mode of the entry amounts (rounded to cents,
  ties broken by the smallest value), not the mean, so that a month with
  overtime or arrears does not inflate the statutory payments. This is a
  policy heuristic, not a legal rule.

APPORTIONMENT:
  Income tax is progressive, so there is no exact per-payment tax. Each line
  (month or bonus) receives a share of the annual income and solidarity tax
  proportional to its share of taxable income:

    lineTax = totalTax * (lineGross - lineEFKA) / totalTaxable

  This is a display convention, not a withholding calculation.

SEE ALSO:
  - bonus/: bonus gross amounts
  - leave/: vacation days when not supplied
*/
package yearly

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/bonus"
	"github.com/warp/payroll-engine/generic"
	"github.com/warp/payroll-engine/leave"
	"github.com/warp/payroll-engine/tax"
)

// Entry is one recorded payment.
type Entry struct {
	Label string
	Gross decimal.Decimal
}

// Options configure the bonus part of the summary.
type Options struct {
	ReferenceYear int

	// LeaveDays overrides the vacation days; nil derives them from the
	// employment start with first-year proration.
	LeaveDays *decimal.Decimal

	// EmploymentStart defaults to Jan 1 of ReferenceYear.
	EmploymentStart *generic.Date
	EmploymentEnd   *generic.Date

	WeekType leave.WeekType
}

// Line is one payment with its apportioned deductions.
type Line struct {
	Label         string
	Gross         decimal.Decimal
	EFKAEmployee  decimal.Decimal
	EFKAEmployer  decimal.Decimal
	TaxableIncome decimal.Decimal
	IncomeTax     decimal.Decimal
	SolidarityTax decimal.Decimal
	Net           decimal.Decimal
}

// BonusBreakdown groups the three statutory payments.
type BonusBreakdown struct {
	Easter    Line
	Christmas Line
	Vacation  Line

	LeaveDays decimal.Decimal

	TotalGross      decimal.Decimal
	TotalNet        decimal.Decimal
	TotalDeductions decimal.Decimal
}

// Summary is the annual picture.
type Summary struct {
	ReferenceYear    int
	BaseMonthlyGross decimal.Decimal
	RegularGross     decimal.Decimal

	TotalGross         decimal.Decimal
	TotalNet           decimal.Decimal
	TotalEFKAEmployee  decimal.Decimal
	TotalEFKAEmployer  decimal.Decimal
	TaxableIncome      decimal.Decimal
	TotalIncomeTax     decimal.Decimal
	TotalSolidarityTax decimal.Decimal
	TotalDeductions    decimal.Decimal

	Entries []Line
	Bonuses BonusBreakdown
}

// Engine builds summaries against one tax table.
type Engine struct {
	table tax.Table
}

func NewEngine(table tax.Table) *Engine {
	return &Engine{table: table}
}

// Summarize aggregates entries for opts.ReferenceYear.
func (e *Engine) Summarize(entries []Entry, children int, opts Options) Summary {
	start := generic.StartOfYear(opts.ReferenceYear)
	if opts.EmploymentStart != nil {
		start = *opts.EmploymentStart
	}
	employment := bonus.Employment{HireDate: start, EndDate: opts.EmploymentEnd}

	regular := decimal.Zero
	for _, entry := range entries {
		regular = regular.Add(entry.Gross)
	}
	base := RepresentativeSalary(entries)

	leaveDays := e.leaveDays(start, opts)
	easterGross := bonus.EasterWindow(opts.ReferenceYear).Gross(base, employment)
	christmasGross := bonus.ChristmasWindow(opts.ReferenceYear).Gross(base, employment)
	vacationGross := bonus.VacationGross(base, leaveDays, opts.WeekType)

	totalGross := regular.Add(easterGross).Add(christmasGross).Add(vacationGross)
	efkaEmployee, efkaEmployer := e.table.Contributions(totalGross)
	taxable := totalGross.Sub(efkaEmployee)
	incomeTax := e.table.AnnualIncomeTax(taxable, children)
	solidarity := e.table.SolidarityTax(taxable)
	deductions := efkaEmployee.Add(incomeTax).Add(solidarity)

	a := apportioner{table: e.table, taxable: taxable, incomeTax: incomeTax, solidarity: solidarity}

	lines := make([]Line, len(entries))
	for i, entry := range entries {
		lines[i] = a.line(entry.Label, entry.Gross)
	}

	bonuses := BonusBreakdown{
		Easter:    a.line(string(bonus.KindEaster), easterGross),
		Christmas: a.line(string(bonus.KindChristmas), christmasGross),
		Vacation:  a.line(string(bonus.KindVacation), vacationGross),
		LeaveDays: leaveDays,
	}
	for _, l := range []Line{bonuses.Easter, bonuses.Christmas, bonuses.Vacation} {
		bonuses.TotalGross = bonuses.TotalGross.Add(l.Gross)
		bonuses.TotalNet = bonuses.TotalNet.Add(l.Net)
	}
	bonuses.TotalDeductions = bonuses.TotalGross.Sub(bonuses.TotalNet)

	return Summary{
		ReferenceYear:      opts.ReferenceYear,
		BaseMonthlyGross:   base,
		RegularGross:       regular,
		TotalGross:         totalGross,
		TotalNet:           totalGross.Sub(deductions),
		TotalEFKAEmployee:  efkaEmployee,
		TotalEFKAEmployer:  efkaEmployer,
		TaxableIncome:      taxable,
		TotalIncomeTax:     incomeTax,
		TotalSolidarityTax: solidarity,
		TotalDeductions:    deductions,
		Entries:            lines,
		Bonuses:            bonuses,
	}
}

func (e *Engine) leaveDays(start generic.Date, opts Options) decimal.Decimal {
	if opts.LeaveDays != nil {
		return *opts.LeaveDays
	}
	yearEnd := generic.EndOfYear(opts.ReferenceYear)
	if opts.EmploymentEnd != nil && opts.EmploymentEnd.Before(yearEnd) {
		return leave.AnnualLeaveDays(start, *opts.EmploymentEnd, opts.WeekType, true)
	}
	return leave.AnnualLeaveDaysForYear(start, opts.ReferenceYear, opts.WeekType)
}

// apportioner spreads the annual taxes over individual lines.
type apportioner struct {
	table      tax.Table
	taxable    decimal.Decimal
	incomeTax  decimal.Decimal
	solidarity decimal.Decimal
}

func (a apportioner) line(label string, gross decimal.Decimal) Line {
	employee, employer := a.table.Contributions(gross)
	lineTaxable := gross.Sub(employee)

	incomeTax, solidarity := decimal.Zero, decimal.Zero
	if a.taxable.IsPositive() {
		share := lineTaxable.Div(a.taxable)
		incomeTax = a.incomeTax.Mul(share)
		solidarity = a.solidarity.Mul(share)
	}

	return Line{
		Label:         label,
		Gross:         gross,
		EFKAEmployee:  employee,
		EFKAEmployer:  employer,
		TaxableIncome: lineTaxable,
		IncomeTax:     incomeTax,
		SolidarityTax: solidarity,
		Net:           gross.Sub(employee).Sub(incomeTax).Sub(solidarity),
	}
}

// MonthLabels are the Greek month names used as entry labels.
var MonthLabels = [12]string{
	"Ιανουάριος",
	"Φεβρουάριος",
	"Μάρτιος",
	"Απρίλιος",
	"Μάιος",
	"Ιούνιος",
	"Ιούλιος",
	"Αύγουστος",
	"Σεπτέμβριος",
	"Οκτώβριος",
	"Νοέμβριος",
	"Δεκέμβριος",
}

// MonthLabel returns the label for m.
func MonthLabel(m time.Month) string {
	return MonthLabels[m-1]
}

// FullYear returns twelve entries of the same gross.
func FullYear(gross decimal.Decimal) []Entry {
	entries := make([]Entry, len(MonthLabels))
	for i, label := range MonthLabels {
		entries[i] = Entry{Label: label, Gross: gross}
	}
	return entries
}
