package bonus

import (
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
)

// RatioWorked returns the share of the window covered by the employment,
// clamped to [0, 1], along with the raw day counts.
func (w Window) RatioWorked(emp Employment) (ratio decimal.Decimal, employmentDays, windowDays int) {
	employmentDays = w.Period.OverlapDays(emp.HireDate, emp.EndDate)
	windowDays = w.Period.Days()
	if windowDays <= 0 {
		return decimal.Zero, employmentDays, windowDays
	}
	ratio = decimal.NewFromInt(int64(employmentDays)).Div(decimal.NewFromInt(int64(windowDays)))
	return generic.Clamp(ratio, decimal.Zero, generic.One), employmentDays, windowDays
}

// Gross returns the prorated gift for monthlyGross, rounded to cents.
func (w Window) Gross(monthlyGross decimal.Decimal, emp Employment) decimal.Decimal {
	ratio, _, _ := w.RatioWorked(emp)
	return generic.Round2(monthlyGross.Mul(w.Ratio).Mul(ratio))
}

// Seasonal computes the gift for any window.
func (e *Engine) Seasonal(w Window, monthlyGross decimal.Decimal, emp Employment, children int) Result {
	ratio, employmentDays, windowDays := w.RatioWorked(emp)
	full := monthlyGross.Mul(w.Ratio)
	gross := generic.Round2(full.Mul(ratio))

	return Result{
		Kind:           w.Kind,
		Gross:          gross,
		FullAmount:     full,
		EmploymentDays: employmentDays,
		WindowDays:     windowDays,
		RatioWorked:    ratio,
		Breakdown:      e.converter.GrossToNet(gross, 1, children),
	}
}

// Easter computes the Easter gift for year.
func (e *Engine) Easter(monthlyGross decimal.Decimal, year int, emp Employment, children int) Result {
	return e.Seasonal(EasterWindow(year), monthlyGross, emp, children)
}

// Christmas computes the Christmas gift for year.
func (e *Engine) Christmas(monthlyGross decimal.Decimal, year int, emp Employment, children int) Result {
	return e.Seasonal(ChristmasWindow(year), monthlyGross, emp, children)
}
