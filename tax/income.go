package tax

import (
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
)

var thousand = decimal.NewFromInt(1000)

// BracketTax walks brackets bottom-up and taxes each slice of income at the
// bracket's rate. Income at or below zero yields zero.
func BracketTax(brackets []Bracket, income decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	floor := decimal.Zero
	for _, b := range brackets {
		if income.LessThanOrEqual(floor) {
			break
		}
		slice := income.Sub(floor)
		if !b.IsUnbounded() {
			slice = decimal.Min(slice, b.Ceiling.Sub(floor))
		}
		total = total.Add(slice.Mul(b.Rate))
		if b.IsUnbounded() {
			break
		}
		floor = *b.Ceiling
	}
	return total
}

// ClampChildren maps any children count onto a ChildCredits index.
func ClampChildren(children int) int {
	if children < 0 {
		return 0
	}
	if children > MaxChildren {
		return MaxChildren
	}
	return children
}

// TaxCredit returns the annual credit for the given taxable income. Above the
// taper threshold it shrinks linearly (not in 1,000 steps) and never goes
// below zero.
func (t Table) TaxCredit(taxableIncome decimal.Decimal, children int) decimal.Decimal {
	credit := t.ChildCredits[ClampChildren(children)]
	if taxableIncome.GreaterThan(t.CreditTaperThreshold) {
		excess := taxableIncome.Sub(t.CreditTaperThreshold)
		credit = credit.Sub(excess.Div(thousand).Mul(t.CreditTaperPerThousand))
	}
	return generic.NonNegative(credit)
}

// AnnualIncomeTax returns the progressive tax on taxableIncome minus the tax
// credit, floored at zero.
func (t Table) AnnualIncomeTax(taxableIncome decimal.Decimal, children int) decimal.Decimal {
	if !taxableIncome.IsPositive() {
		return decimal.Zero
	}
	gross := BracketTax(t.Brackets, taxableIncome)
	return generic.NonNegative(gross.Sub(t.TaxCredit(taxableIncome, children)))
}

// SolidarityBracketTax evaluates the solidarity schedule regardless of the
// suspension flag.
func (t Table) SolidarityBracketTax(taxableIncome decimal.Decimal) decimal.Decimal {
	return BracketTax(t.SolidarityBrackets, taxableIncome)
}

// SolidarityTax returns the solidarity levy owed, which is zero while the
// levy is suspended.
func (t Table) SolidarityTax(taxableIncome decimal.Decimal) decimal.Decimal {
	if t.SolidaritySuspended {
		return decimal.Zero
	}
	return t.SolidarityBracketTax(taxableIncome)
}

// Contributions returns the employee and employer EFKA shares of gross.
func (t Table) Contributions(gross decimal.Decimal) (employee, employer decimal.Decimal) {
	return gross.Mul(t.EmployeeRate), gross.Mul(t.EmployerRate)
}
