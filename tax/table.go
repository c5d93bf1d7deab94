/*
Package tax implements the Greek income tax and social security constants.

PURPOSE:
  Holds the single active tax table (EFKA contribution rates, progressive
  income-tax brackets, solidarity brackets, child-dependent tax credit) and
  the pure functions that evaluate it. Every other calculator receives a
  Table value; nothing reads package-level state at calculation time.

KEY CONCEPTS:
  - Table: the full set of constants for one tax year
  - Bracket: a ceiling (nil = unbounded) and the rate applied below it
  - BracketTax: walks brackets bottom-up, taxing each slice at its rate
  - Tax credit: base amount by children count, tapered linearly above 12,000

SOLIDARITY TAX:
  The solidarity levy is suspended. The brackets and the computation stay in
  the table; SolidaritySuspended forces the result to zero. Flip the flag (or
  load a table file with "solidarity_suspended: false") to reactivate it.

SEE ALSO:
  - income.go: income tax and credit evaluation
  - factory/taxtable.go: loading a Table from JSON or YAML
*/
package tax

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
)

// MaxChildren is the highest children count with its own credit; larger
// counts use the same credit.
const MaxChildren = 9

// Bracket is one slice of a progressive schedule. Ceiling is inclusive; a
// nil Ceiling marks the open-ended top bracket.
type Bracket struct {
	Ceiling *decimal.Decimal
	Rate    decimal.Decimal
}

// IsUnbounded reports whether the bracket extends to infinity.
func (b Bracket) IsUnbounded() bool { return b.Ceiling == nil }

// Table is the set of constants for one tax year.
type Table struct {
	Year int

	// EFKA contribution rates, as fractions of gross pay.
	EmployeeRate decimal.Decimal
	EmployerRate decimal.Decimal

	Brackets []Bracket

	SolidarityBrackets  []Bracket
	SolidaritySuspended bool

	// ChildCredits[n] is the base annual credit for n dependent children.
	ChildCredits [MaxChildren + 1]decimal.Decimal

	// Above CreditTaperThreshold the credit shrinks by CreditTaperPerThousand
	// for every 1,000 of taxable income, continuously.
	CreditTaperThreshold   decimal.Decimal
	CreditTaperPerThousand decimal.Decimal
}

func ceiling(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// Current returns the built-in table for the current tax year.
func Current() Table {
	return Table{
		Year:         2025,
		EmployeeRate: generic.Percent("13.37"),
		EmployerRate: generic.Percent("21.79"),
		Brackets: []Bracket{
			{Ceiling: ceiling(10000), Rate: generic.Percent("9")},
			{Ceiling: ceiling(20000), Rate: generic.Percent("22")},
			{Ceiling: ceiling(30000), Rate: generic.Percent("28")},
			{Ceiling: ceiling(40000), Rate: generic.Percent("36")},
			{Rate: generic.Percent("44")},
		},
		SolidarityBrackets: []Bracket{
			{Ceiling: ceiling(12000), Rate: decimal.Zero},
			{Ceiling: ceiling(20000), Rate: generic.Percent("2.2")},
			{Ceiling: ceiling(30000), Rate: generic.Percent("5")},
			{Ceiling: ceiling(40000), Rate: generic.Percent("6.5")},
			{Ceiling: ceiling(65000), Rate: generic.Percent("7.5")},
			{Ceiling: ceiling(220000), Rate: generic.Percent("9")},
			{Rate: generic.Percent("10")},
		},
		SolidaritySuspended: true,
		ChildCredits: [MaxChildren + 1]decimal.Decimal{
			decimal.NewFromInt(777),
			decimal.NewFromInt(900),
			decimal.NewFromInt(1120),
			decimal.NewFromInt(1340),
			decimal.NewFromInt(1560),
			decimal.NewFromInt(1780),
			decimal.NewFromInt(2000),
			decimal.NewFromInt(2220),
			decimal.NewFromInt(2440),
			decimal.NewFromInt(2660),
		},
		CreditTaperThreshold:   decimal.NewFromInt(12000),
		CreditTaperPerThousand: decimal.NewFromInt(20),
	}
}

// Validate checks that both schedules partition [0, ∞) with ascending
// ceilings and non-decreasing rates, and that rates are fractions.
func (t Table) Validate() error {
	if err := validateBrackets("income", t.Brackets); err != nil {
		return err
	}
	if err := validateBrackets("solidarity", t.SolidarityBrackets); err != nil {
		return err
	}
	for _, r := range []decimal.Decimal{t.EmployeeRate, t.EmployerRate} {
		if r.IsNegative() || r.GreaterThanOrEqual(generic.One) {
			return fmt.Errorf("%w: contribution rate %s out of range", generic.ErrInvalidTaxTable, r)
		}
	}
	for n, c := range t.ChildCredits {
		if c.IsNegative() {
			return fmt.Errorf("%w: negative credit for %d children", generic.ErrInvalidTaxTable, n)
		}
	}
	return nil
}

func validateBrackets(name string, brackets []Bracket) error {
	if len(brackets) == 0 {
		return &generic.TableError{Table: name, Index: 0, Reason: "no brackets"}
	}
	prevCeiling := decimal.Zero
	prevRate := decimal.Zero
	for i, b := range brackets {
		last := i == len(brackets)-1
		switch {
		case b.IsUnbounded() && !last:
			return &generic.TableError{Table: name, Index: i, Reason: "only the last bracket may be unbounded"}
		case !b.IsUnbounded() && last:
			return &generic.TableError{Table: name, Index: i, Reason: "last bracket must be unbounded"}
		case !b.IsUnbounded() && !b.Ceiling.GreaterThan(prevCeiling):
			return &generic.TableError{Table: name, Index: i, Reason: "ceilings must be ascending"}
		case b.Rate.IsNegative() || b.Rate.GreaterThan(generic.One):
			return &generic.TableError{Table: name, Index: i, Reason: "rate must be within [0, 1]"}
		case b.Rate.LessThan(prevRate):
			return &generic.TableError{Table: name, Index: i, Reason: "rates must be non-decreasing"}
		}
		if !b.IsUnbounded() {
			prevCeiling = *b.Ceiling
		}
		prevRate = b.Rate
	}
	return nil
}
