/*
Package generic provides the shared primitives of the payroll engine.

PURPOSE:
  Every calculator (tax, salary, leave, bonus, severance, yearly) works on the
  same three building blocks: calendar dates, closed periods and decimal money.
  They live here so the calculators never depend on each other just to count
  days or round euros.

KEY CONCEPTS:
  - Date: calendar day at midnight UTC (time.go)
  - Period: closed interval of dates (period.go)
  - Money helpers: decimal constructors and rounding (this file)
  - Sentinel errors for input validation (errors.go)

DESIGN PRINCIPLES:
  1. Purity: nothing in this package reads the clock or global state
  2. Precision: amounts use decimal.Decimal, never float64
  3. Rounding happens at the display boundary (Round2), not in between

USAGE:
  gross := generic.Money(1500)
  days := generic.OverlapDays(jan1, apr30, hire, nil)
  years := generic.CompletedYears(hire, asOf)
*/
package generic

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - decimal helpers
// =============================================================================

var (
	Zero    = decimal.Zero
	One     = decimal.NewFromInt(1)
	Two     = decimal.NewFromInt(2)
	Twelve  = decimal.NewFromInt(12)
	Hundred = decimal.NewFromInt(100)
)

// Cent is the smallest amount that matters for display.
var Cent = decimal.New(1, -2)

// Money converts a float literal into a decimal amount.
func Money(value float64) decimal.Decimal {
	return decimal.NewFromFloat(value)
}

func MustParseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Percent returns p/100, e.g. Percent("13.37") == 0.1337.
func Percent(p string) decimal.Decimal {
	return MustParseDecimal(p).Div(Hundred)
}

// Round2 rounds half away from zero to cents.
func Round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// Clamp limits d to [lo, hi].
func Clamp(d, lo, hi decimal.Decimal) decimal.Decimal {
	return decimal.Min(decimal.Max(d, lo), hi)
}

// NonNegative floors d at zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ValidateAmount enforces the caller-side contract of the calculators: a
// strictly positive amount. The calculators themselves do not re-check.
func ValidateAmount(d decimal.Decimal) error {
	if !d.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}
