package tax_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payroll-engine/generic"
	"github.com/warp/payroll-engine/tax"
)

func eur(s string) decimal.Decimal {
	return generic.MustParseDecimal(s)
}

func assertAmount(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, eur(expected).InexactFloat64(), actual.InexactFloat64(), 0.01, msgAndArgs...)
}

func TestBracketTax(t *testing.T) {
	table := tax.Current()

	tests := []struct {
		income   string
		expected string
	}{
		{"0", "0"},
		{"-500", "0"},
		{"5000", "450"},
		{"10000", "900"},
		{"18192.30", "2702.306"},
		{"20000", "3100"},
		{"30000", "5900"},
		{"40000", "9500"},
		{"50000", "13900"},
	}

	for _, tc := range tests {
		t.Run(tc.income, func(t *testing.T) {
			assertAmount(t, tc.expected, tax.BracketTax(table.Brackets, eur(tc.income)))
		})
	}
}

func TestTaxCredit_ByChildren(t *testing.T) {
	table := tax.Current()
	expected := []string{"777", "900", "1120", "1340", "1560", "1780", "2000", "2220", "2440", "2660"}

	for children, want := range expected {
		assertAmount(t, want, table.TaxCredit(eur("10000"), children), "children=%d", children)
	}

	// Above nine children the nine-children credit applies
	assertAmount(t, "2660", table.TaxCredit(eur("10000"), 14))
	assertAmount(t, "777", table.TaxCredit(eur("10000"), -1))
}

func TestTaxCredit_TaperIsLinear(t *testing.T) {
	// GIVEN: Taxable income 18,192.30 with no children
	// WHEN: Computing the credit
	// THEN: 777 - 6.1923 * 20 = 653.154 (not stepped to whole thousands)
	table := tax.Current()

	assertAmount(t, "653.154", table.TaxCredit(eur("18192.30"), 0))
	assertAmount(t, "777", table.TaxCredit(eur("12000"), 0))
	assertAmount(t, "776.99", table.TaxCredit(eur("12000.50"), 0))

	// Fully tapered out and floored at zero
	assert.True(t, table.TaxCredit(eur("60000"), 0).IsZero())
	assert.True(t, table.TaxCredit(eur("500000"), 9).IsZero())
}

func TestAnnualIncomeTax_Scenario(t *testing.T) {
	// 1500/month over 14 periods: taxable 18,192.30
	table := tax.Current()
	assertAmount(t, "2049.152", table.AnnualIncomeTax(eur("18192.30"), 0))
}

func TestAnnualIncomeTax_NonNegative(t *testing.T) {
	table := tax.Current()
	for children := 0; children <= tax.MaxChildren; children++ {
		for income := int64(0); income <= 100000; income += 2500 {
			got := table.AnnualIncomeTax(decimal.NewFromInt(income), children)
			assert.False(t, got.IsNegative(), "income=%d children=%d", income, children)
		}
	}
	assert.True(t, table.AnnualIncomeTax(eur("-100"), 0).IsZero())
}

func TestAnnualIncomeTax_ContinuousAtBracketBoundaries(t *testing.T) {
	table := tax.Current()
	epsilon := eur("0.01")

	for _, b := range table.Brackets {
		if b.IsUnbounded() {
			continue
		}
		below := table.AnnualIncomeTax(b.Ceiling.Sub(epsilon), 0)
		above := table.AnnualIncomeTax(b.Ceiling.Add(epsilon), 0)
		jump := above.Sub(below)
		// Two cents of income at the top rate plus the credit taper stays below one cent
		assert.True(t, jump.LessThan(eur("0.02")), "jump %s at %s", jump, b.Ceiling)
		assert.False(t, jump.IsNegative())
	}
}

func TestSolidarityTax(t *testing.T) {
	table := tax.Current()
	require.True(t, table.SolidaritySuspended)

	assert.True(t, table.SolidarityTax(eur("50000")).IsZero(), "suspended levy is zero")

	// The schedule itself stays computable
	// 8000*2.2% + 10000*5% + 10000*6.5% + 10000*7.5% = 176 + 500 + 650 + 750
	assertAmount(t, "2076", table.SolidarityBracketTax(eur("50000")))

	table.SolidaritySuspended = false
	assertAmount(t, "2076", table.SolidarityTax(eur("50000")))
	assert.True(t, table.SolidarityTax(eur("12000")).IsZero())
}

func TestContributions(t *testing.T) {
	employee, employer := tax.Current().Contributions(eur("21000"))
	assertAmount(t, "2807.70", employee)
	assertAmount(t, "4575.90", employer)
}

func TestValidate(t *testing.T) {
	require.NoError(t, tax.Current().Validate())

	t.Run("decreasing rate", func(t *testing.T) {
		table := tax.Current()
		table.Brackets[2].Rate = generic.Percent("10")
		err := table.Validate()
		assert.ErrorIs(t, err, generic.ErrInvalidTaxTable)
		var tableErr *generic.TableError
		require.ErrorAs(t, err, &tableErr)
		assert.Equal(t, "income", tableErr.Table)
		assert.Equal(t, 2, tableErr.Index)
	})

	t.Run("bounded top bracket", func(t *testing.T) {
		table := tax.Current()
		c := eur("50000")
		table.Brackets[4].Ceiling = &c
		assert.ErrorIs(t, table.Validate(), generic.ErrInvalidTaxTable)
	})

	t.Run("ceilings out of order", func(t *testing.T) {
		table := tax.Current()
		c := eur("5000")
		table.SolidarityBrackets[2].Ceiling = &c
		assert.ErrorIs(t, table.Validate(), generic.ErrInvalidTaxTable)
	})

	t.Run("empty schedule", func(t *testing.T) {
		table := tax.Current()
		table.Brackets = nil
		assert.ErrorIs(t, table.Validate(), generic.ErrInvalidTaxTable)
	})
}
