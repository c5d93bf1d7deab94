package leave_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payroll-engine/generic"
	"github.com/warp/payroll-engine/leave"
)

func date(year int, month time.Month, day int) generic.Date {
	return generic.NewDate(year, month, day)
}

func days(n float64) decimal.Decimal {
	return decimal.NewFromFloat(n)
}

func assertDays(t *testing.T, expected float64, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, expected, actual.InexactFloat64(), 0.0001, msgAndArgs...)
}

func TestAnnualLeaveDays_TenureTiers(t *testing.T) {
	asOf := date(2025, time.June, 30)

	tests := []struct {
		name     string
		hire     generic.Date
		week     leave.WeekType
		expected float64
	}{
		{"one completed year, 5-day", date(2024, time.January, 15), leave.FiveDayWeek, 21},
		{"one completed year, 6-day", date(2024, time.January, 15), leave.SixDayWeek, 25},
		{"three years, 5-day", date(2022, time.January, 1), leave.FiveDayWeek, 22},
		{"nine years, 5-day", date(2016, time.January, 1), leave.FiveDayWeek, 22},
		{"nine years, 6-day", date(2016, time.January, 1), leave.SixDayWeek, 26},
		{"ten years, 5-day", date(2015, time.June, 30), leave.FiveDayWeek, 25},
		{"ten years, 6-day", date(2015, time.June, 30), leave.SixDayWeek, 30},
		{"one day short of ten years", date(2015, time.July, 1), leave.FiveDayWeek, 22},
		{"twenty years, 5-day", date(2005, time.March, 1), leave.FiveDayWeek, 25},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assertDays(t, tc.expected, leave.AnnualLeaveDays(tc.hire, asOf, tc.week, true))
		})
	}
}

func TestAnnualLeaveDays_FirstYearProration(t *testing.T) {
	// GIVEN: Hired March 15, 2025 on a 5-day week
	// WHEN: Asking on June 20, 2025 with proration
	// THEN: 4 months counted (Mar, Apr, May + June since 20 >= 15) => 20 * 4/12
	hire := date(2025, time.March, 15)

	assertDays(t, 20.0*4/12, leave.AnnualLeaveDays(hire, date(2025, time.June, 20), leave.FiveDayWeek, true))
	assertDays(t, 20.0*3/12, leave.AnnualLeaveDays(hire, date(2025, time.June, 14), leave.FiveDayWeek, true))
	assertDays(t, 24.0*10/12, leave.AnnualLeaveDays(hire, date(2025, time.December, 31), leave.SixDayWeek, true))

	// Full calendar year from January 1
	assertDays(t, 20, leave.AnnualLeaveDays(date(2025, time.January, 1), date(2025, time.December, 31), leave.FiveDayWeek, true))
}

func TestAnnualLeaveDays_FirstYearWithoutProration(t *testing.T) {
	// Hired this year but treated as one completed year of service
	hire := date(2025, time.March, 15)
	assertDays(t, 21, leave.AnnualLeaveDays(hire, date(2025, time.June, 20), leave.FiveDayWeek, false))
	assertDays(t, 25, leave.AnnualLeaveDays(hire, date(2025, time.June, 20), leave.SixDayWeek, false))
}

func TestAnnualLeaveDays_FutureHire(t *testing.T) {
	assert.True(t, leave.AnnualLeaveDays(date(2026, time.February, 1), date(2025, time.June, 1), leave.FiveDayWeek, true).IsZero())
	assert.True(t, leave.AnnualLeaveDays(date(2025, time.August, 1), date(2025, time.June, 1), leave.FiveDayWeek, true).IsZero())
	assert.True(t, leave.AnnualLeaveDays(date(2026, time.February, 1), date(2025, time.June, 1), leave.SixDayWeek, false).IsZero(),
		"a later-year hire owes nothing, not the 3rd-10th year tier")
}

func TestAnnualLeaveDaysForYear(t *testing.T) {
	hire := date(2024, time.July, 1)
	assertDays(t, 10, leave.AnnualLeaveDaysForYear(hire, 2024, leave.FiveDayWeek))
	assertDays(t, 21, leave.AnnualLeaveDaysForYear(hire, 2025, leave.FiveDayWeek))
	assertDays(t, 22, leave.AnnualLeaveDaysForYear(hire, 2026, leave.FiveDayWeek))
}

func TestMonthsWorkedInYear(t *testing.T) {
	assert.Equal(t, 0, leave.MonthsWorkedInYear(date(2025, time.May, 1), date(2025, time.April, 30)))
	assert.Equal(t, 1, leave.MonthsWorkedInYear(date(2025, time.May, 1), date(2025, time.May, 1)))
	assert.Equal(t, 12, leave.MonthsWorkedInYear(date(2025, time.January, 1), date(2025, time.December, 31)))
	assert.Equal(t, 12, leave.MonthsWorkedInYear(date(2020, time.January, 1), date(2025, time.March, 1)))
	assert.Equal(t, 11, leave.MonthsWorkedInYear(date(2025, time.January, 31), date(2025, time.December, 30)))
}

func TestParseWeekType(t *testing.T) {
	w, err := leave.ParseWeekType("6")
	require.NoError(t, err)
	assert.Equal(t, leave.SixDayWeek, w)

	w, err = leave.ParseWeekType("")
	require.NoError(t, err)
	assert.Equal(t, leave.FiveDayWeek, w)

	_, err = leave.ParseWeekType("7")
	assert.ErrorIs(t, err, generic.ErrInvalidWeekType)

	assert.True(t, leave.SixDayWeek.WorkingDaysPerMonth().Equal(decimal.NewFromInt(26)))
	assert.True(t, leave.FiveDayWeek.WorkingDaysPerMonth().Equal(decimal.NewFromInt(25)))
}

func TestBalance(t *testing.T) {
	b := leave.NewBalance(days(22), days(5.5))
	assertDays(t, 16.5, b.Remaining)
	assert.False(t, b.IsExhausted())

	over := leave.NewBalance(days(22), days(30))
	assert.True(t, over.Remaining.IsZero(), "remaining floors at zero")
	assert.True(t, over.IsExhausted())

	negative := leave.NewBalance(days(22), days(-3))
	assert.True(t, negative.Taken.IsZero())
	assertDays(t, 22, negative.Remaining)
}
