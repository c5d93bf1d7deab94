package severance_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/warp/payroll-engine/generic"
	"github.com/warp/payroll-engine/salary"
	"github.com/warp/payroll-engine/severance"
	"github.com/warp/payroll-engine/tax"
)

func TestMonths_SteppedTable(t *testing.T) {
	expected := map[int]int{
		0: 0, 1: 2, 2: 2, 3: 2, 4: 3, 5: 3, 6: 4, 7: 4, 8: 5, 9: 5,
		10: 6, 11: 7, 12: 8, 13: 9, 14: 10, 15: 11, 16: 12, 17: 12, 25: 12, 40: 12,
	}
	for years, months := range expected {
		assert.Equal(t, months, severance.Months(years, false), "years=%d", years)
	}
	assert.Equal(t, 0, severance.Months(-3, false))
}

func TestMonths_LegacyTable(t *testing.T) {
	assert.Equal(t, 13, severance.Months(17, true))
	assert.Equal(t, 16, severance.Months(20, true))
	assert.Equal(t, 24, severance.Months(28, true))
	assert.Equal(t, 24, severance.Months(35, true), "capped at 24 months")

	// The legacy flag only matters from 17 years of service
	assert.Equal(t, 12, severance.Months(16, true))
	assert.Equal(t, 5, severance.Months(9, true))
}

func TestCalculate_Scenario(t *testing.T) {
	// GIVEN: 9 years of service, no legacy tenure
	// THEN: 5 months of salary
	engine := severance.NewEngine(salary.NewConverter(tax.Current()))

	res := engine.Calculate(decimal.NewFromInt(1500), 9, false, 0)

	assert.Equal(t, 5, res.MonthsAwarded)
	assert.True(t, res.GrossAmount.Equal(decimal.NewFromInt(7500)))
	assert.False(t, res.LegacyTenure)
	assert.True(t, res.Breakdown.GrossSalary.Equal(res.GrossAmount))
	assert.True(t, res.Breakdown.NetSalary.LessThan(res.GrossAmount))
}

func TestHadLegacyTenure(t *testing.T) {
	assert.True(t, severance.HadLegacyTenure(generic.NewDate(1995, time.November, 12)))
	assert.False(t, severance.HadLegacyTenure(generic.NewDate(1995, time.November, 13)))
	assert.False(t, severance.HadLegacyTenure(generic.NewDate(2010, time.January, 1)))
}

func TestCalculateFromDates(t *testing.T) {
	engine := severance.NewEngine(salary.NewConverter(tax.Current()))

	// Hired 1990: 22 years at the reference date, 35 at termination
	legacy := engine.CalculateFromDates(decimal.NewFromInt(2000), generic.NewDate(1990, time.February, 1), generic.NewDate(2025, time.June, 30), 0)
	assert.Equal(t, 35, legacy.YearsOfService)
	assert.True(t, legacy.LegacyTenure)
	assert.Equal(t, 24, legacy.MonthsAwarded)

	// Hired 2015: 10 completed years
	recent := engine.CalculateFromDates(decimal.NewFromInt(2000), generic.NewDate(2015, time.March, 1), generic.NewDate(2025, time.March, 1), 0)
	assert.Equal(t, 10, recent.YearsOfService)
	assert.Equal(t, 6, recent.MonthsAwarded)
	assert.True(t, recent.GrossAmount.Equal(decimal.NewFromInt(12000)))
}
