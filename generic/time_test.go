package generic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) Date {
	return NewDate(year, month, day)
}

func TestInclusiveDays(t *testing.T) {
	tests := []struct {
		name     string
		start    Date
		end      Date
		expected int
	}{
		{"same day", date(2025, time.January, 10), date(2025, time.January, 10), 1},
		{"three days", date(2025, time.January, 10), date(2025, time.January, 12), 3},
		{"easter window", date(2025, time.January, 1), date(2025, time.April, 30), 120},
		{"easter window leap year", date(2024, time.January, 1), date(2024, time.April, 30), 121},
		{"christmas window", date(2025, time.May, 1), date(2025, time.December, 31), 245},
		{"across DST change", date(2025, time.March, 29), date(2025, time.March, 31), 3},
		{"end before start", date(2025, time.January, 12), date(2025, time.January, 11), 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, InclusiveDays(tc.start, tc.end))
		})
	}
}

func TestOverlapDays(t *testing.T) {
	jan1 := date(2025, time.January, 1)
	apr30 := date(2025, time.April, 30)

	// Hired before the window, still employed
	assert.Equal(t, 120, OverlapDays(jan1, apr30, date(2020, time.June, 1), nil))

	// Hired mid-window
	assert.Equal(t, 30, OverlapDays(jan1, apr30, date(2025, time.April, 1), nil))

	// Left mid-window
	end := date(2025, time.January, 31)
	assert.Equal(t, 31, OverlapDays(jan1, apr30, date(2020, time.June, 1), &end))

	// Hired after the window
	assert.Equal(t, 0, OverlapDays(jan1, apr30, date(2025, time.May, 2), nil))

	// Left before the window
	left := date(2024, time.December, 31)
	assert.Equal(t, 0, OverlapDays(jan1, apr30, date(2020, time.June, 1), &left))
}

func TestCompletedYears(t *testing.T) {
	hire := date(2015, time.March, 15)

	assert.Equal(t, 10, CompletedYears(hire, date(2025, time.March, 15)), "on the anniversary")
	assert.Equal(t, 9, CompletedYears(hire, date(2025, time.March, 14)), "day before the anniversary")
	assert.Equal(t, 10, CompletedYears(hire, date(2025, time.December, 31)))
	assert.Equal(t, 0, CompletedYears(hire, date(2015, time.December, 31)))
	assert.Equal(t, 0, CompletedYears(hire, date(2010, time.January, 1)), "never negative")
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.February, 29), d)
	assert.Equal(t, "2024-02-29", d.String())

	_, err = ParseDate("29/02/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.True(t, IsClientError(err))
}

func TestPeriod(t *testing.T) {
	christmas := Period{Start: date(2025, time.May, 1), End: date(2025, time.December, 31)}
	assert.Equal(t, 245, christmas.Days())
	assert.Equal(t, 184, christmas.OverlapDays(date(2025, time.July, 1), nil))

	left := date(2025, time.June, 30)
	assert.Equal(t, 61, christmas.OverlapDays(date(2019, time.February, 1), &left))

	inverted := Period{Start: date(2025, time.May, 1), End: date(2025, time.April, 1)}
	assert.Equal(t, 0, inverted.Days())
}

func TestMoneyHelpers(t *testing.T) {
	assert.True(t, Percent("13.37").Equal(MustParseDecimal("0.1337")))
	assert.True(t, Round2(MustParseDecimal("1153.0820")).Equal(MustParseDecimal("1153.08")))
	assert.True(t, NonNegative(Money(-5)).IsZero())
	assert.True(t, Clamp(Money(1.5), Zero, One).Equal(One))

	assert.NoError(t, ValidateAmount(Money(0.01)))
	assert.ErrorIs(t, ValidateAmount(Zero), ErrInvalidAmount)
	assert.ErrorIs(t, ValidateAmount(Money(-1)), ErrInvalidAmount)
}
