/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the calculators from the external API contract: money goes out as numbers
  rounded to cents, dates as YYYY-MM-DD strings.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

AMOUNTS:
  Amount fields accept a JSON number (1500.5) or a string. Strings are
  evaluated by the input package, so "1500,50" and "1400+100" both work.

PROFILES:
  Most requests accept "profile_id". Fields left out of the request are
  filled from the stored profile (hire date, week type, children, gross).

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/taxtable.go: TaxTableJSON returned by GET /api/tax/table
*/
package api

import (
	"bytes"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/bonus"
	"github.com/warp/payroll-engine/salary"
	"github.com/warp/payroll-engine/severance"
	"github.com/warp/payroll-engine/store/sqlite"
	"github.com/warp/payroll-engine/yearly"
)

// =============================================================================
// AMOUNT INPUT
// =============================================================================

// Amount is a money or day figure as sent by a client.
type Amount struct {
	Value *decimal.Decimal // set for JSON numbers
	Expr  string           // set for JSON strings
}

// UnmarshalJSON accepts numbers, strings and null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*a = Amount{}
		return nil
	case len(data) > 0 && data[0] == '"':
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return err
		}
		*a = Amount{Expr: s}
		return nil
	default:
		d, err := decimal.NewFromString(string(data))
		if err != nil {
			return err
		}
		*a = Amount{Value: &d}
		return nil
	}
}

// IsSet reports whether the client sent the field.
func (a Amount) IsSet() bool {
	return a.Value != nil || a.Expr != ""
}

// AmountOf is a convenience for building requests in Go clients and tests.
func AmountOf(v float64) Amount {
	d := decimal.NewFromFloat(v)
	return Amount{Value: &d}
}

// MarshalJSON writes the number or the expression back.
func (a Amount) MarshalJSON() ([]byte, error) {
	switch {
	case a.Value != nil:
		return []byte(a.Value.String()), nil
	case a.Expr != "":
		return json.Marshal(a.Expr)
	default:
		return []byte("null"), nil
	}
}

// =============================================================================
// SALARY
// =============================================================================

// SalaryRequest is the body for gross-to-net, employer-cost and payslip.
type SalaryRequest struct {
	Gross      Amount `json:"gross"`
	PayPeriods int    `json:"pay_periods,omitempty"` // 0 = 14
	Children   *int   `json:"children,omitempty"`
	ProfileID  string `json:"profile_id,omitempty"`

	// Payslip only
	EmployeeName string `json:"employee_name,omitempty"`
	Period       string `json:"period,omitempty"`
}

// NetToGrossRequest is the body for net-to-gross.
type NetToGrossRequest struct {
	Net        Amount `json:"net"`
	PayPeriods int    `json:"pay_periods,omitempty"`
	Children   *int   `json:"children,omitempty"`
	ProfileID  string `json:"profile_id,omitempty"`
}

// BreakdownDTO is a per-period salary breakdown.
type BreakdownDTO struct {
	GrossSalary     float64 `json:"gross_salary"`
	NetSalary       float64 `json:"net_salary"`
	EFKAEmployee    float64 `json:"efka_employee"`
	EFKAEmployer    float64 `json:"efka_employer"`
	IncomeTax       float64 `json:"income_tax"`
	SolidarityTax   float64 `json:"solidarity_tax"`
	TotalDeductions float64 `json:"total_deductions"`
}

// SalaryDTO is the gross-to-net and net-to-gross response.
type SalaryDTO struct {
	BreakdownDTO
	PayPeriods int `json:"pay_periods"`
	Children   int `json:"children"`
	TaxYear    int `json:"tax_year"`
}

// EmployerCostDTO adds the employer's total cost.
type EmployerCostDTO struct {
	SalaryDTO
	TotalEmployerCost float64 `json:"total_employer_cost"`
}

// =============================================================================
// BONUSES AND SEVERANCE
// =============================================================================

// BonusRequest is the body for POST /api/bonuses/{kind}.
type BonusRequest struct {
	MonthlyGross Amount `json:"monthly_gross"`
	Year         int    `json:"year,omitempty"`
	HireDate     string `json:"hire_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
	Children     *int   `json:"children,omitempty"`
	ProfileID    string `json:"profile_id,omitempty"`

	// Vacation only. Without leave_days the entitlement at as_of is used.
	LeaveDays        Amount `json:"leave_days"`
	WeekType         string `json:"week_type,omitempty"`
	AsOf             string `json:"as_of,omitempty"`
	ProrateFirstYear *bool  `json:"prorate_first_year,omitempty"`
}

// BonusDTO is a bonus result. Seasonal and vacation fields are exclusive.
type BonusDTO struct {
	Kind  string  `json:"kind"`
	Gross float64 `json:"gross"`

	FullAmount     *float64 `json:"full_amount,omitempty"`
	EmploymentDays *int     `json:"employment_days,omitempty"`
	WindowDays     *int     `json:"window_days,omitempty"`
	RatioWorked    *float64 `json:"ratio_worked,omitempty"`

	LeaveDays       *float64 `json:"leave_days,omitempty"`
	DailyRate       *float64 `json:"daily_rate,omitempty"`
	PayForLeaveDays *float64 `json:"pay_for_leave_days,omitempty"`
	Cap             *float64 `json:"cap,omitempty"`
	Capped          *bool    `json:"capped,omitempty"`

	Breakdown BreakdownDTO `json:"breakdown"`
}

// SeveranceRequest is the body for POST /api/severance. Either
// years_of_service or the dates must be given.
type SeveranceRequest struct {
	MonthlyGross    Amount `json:"monthly_gross"`
	YearsOfService  *int   `json:"years_of_service,omitempty"`
	HadLegacyTenure bool   `json:"had_legacy_tenure,omitempty"`
	HireDate        string `json:"hire_date,omitempty"`
	TerminationDate string `json:"termination_date,omitempty"`
	Children        *int   `json:"children,omitempty"`
	ProfileID       string `json:"profile_id,omitempty"`
}

// SeveranceDTO is a severance award.
type SeveranceDTO struct {
	MonthsAwarded  int          `json:"months_awarded"`
	GrossAmount    float64      `json:"gross_amount"`
	YearsOfService int          `json:"years_of_service"`
	LegacyTenure   bool         `json:"legacy_tenure"`
	Breakdown      BreakdownDTO `json:"breakdown"`
}

// =============================================================================
// LEAVE
// =============================================================================

// LeaveRequest is the body for the leave endpoints.
type LeaveRequest struct {
	HireDate         string `json:"hire_date,omitempty"`
	AsOf             string `json:"as_of,omitempty"`
	WeekType         string `json:"week_type,omitempty"`
	ProrateFirstYear *bool  `json:"prorate_first_year,omitempty"`
	ProfileID        string `json:"profile_id,omitempty"`

	// Balance only
	Taken Amount `json:"taken"`
}

// LeaveEntitlementDTO is the entitlement at a date.
type LeaveEntitlementDTO struct {
	HireDate     string  `json:"hire_date"`
	AsOf         string  `json:"as_of"`
	WeekType     string  `json:"week_type"`
	ServiceYears int     `json:"service_years"`
	MonthsWorked int     `json:"months_worked"`
	Days         float64 `json:"days"`
}

// LeaveBalanceDTO is entitlement minus taken days.
type LeaveBalanceDTO struct {
	LeaveEntitlementDTO
	Taken     float64 `json:"taken"`
	Remaining float64 `json:"remaining"`
	Exhausted bool    `json:"exhausted"`
}

// =============================================================================
// YEARLY SUMMARY
// =============================================================================

// EntryDTO is one recorded payment.
type EntryDTO struct {
	Label string `json:"label"`
	Gross Amount `json:"gross"`
}

// YearlyRequest is the body for POST /api/yearly. Without entries,
// monthly_gross is repeated for all twelve months.
type YearlyRequest struct {
	Entries         []EntryDTO `json:"entries,omitempty"`
	MonthlyGross    Amount     `json:"monthly_gross"`
	Year            int        `json:"year,omitempty"`
	Children        *int       `json:"children,omitempty"`
	LeaveDays       Amount     `json:"leave_days"`
	EmploymentStart string     `json:"employment_start,omitempty"`
	EmploymentEnd   string     `json:"employment_end,omitempty"`
	WeekType        string     `json:"week_type,omitempty"`
	ProfileID       string     `json:"profile_id,omitempty"`
}

// LineDTO is one payment with its share of the annual deductions.
type LineDTO struct {
	Label         string  `json:"label"`
	Gross         float64 `json:"gross"`
	EFKAEmployee  float64 `json:"efka_employee"`
	EFKAEmployer  float64 `json:"efka_employer"`
	TaxableIncome float64 `json:"taxable_income"`
	IncomeTax     float64 `json:"income_tax"`
	SolidarityTax float64 `json:"solidarity_tax"`
	Net           float64 `json:"net"`
}

// BonusLinesDTO groups the statutory payments of a year.
type BonusLinesDTO struct {
	Easter          LineDTO `json:"easter"`
	Christmas       LineDTO `json:"christmas"`
	Vacation        LineDTO `json:"vacation"`
	LeaveDays       float64 `json:"leave_days"`
	TotalGross      float64 `json:"total_gross"`
	TotalNet        float64 `json:"total_net"`
	TotalDeductions float64 `json:"total_deductions"`
}

// YearlySummaryDTO is the annual forecast.
type YearlySummaryDTO struct {
	ReferenceYear      int           `json:"reference_year"`
	BaseMonthlyGross   float64       `json:"base_monthly_gross"`
	RegularGross       float64       `json:"regular_gross"`
	TotalGross         float64       `json:"total_gross"`
	TotalNet           float64       `json:"total_net"`
	TotalEFKAEmployee  float64       `json:"total_efka_employee"`
	TotalEFKAEmployer  float64       `json:"total_efka_employer"`
	TaxableIncome      float64       `json:"taxable_income"`
	TotalIncomeTax     float64       `json:"total_income_tax"`
	TotalSolidarityTax float64       `json:"total_solidarity_tax"`
	TotalDeductions    float64       `json:"total_deductions"`
	Entries            []LineDTO     `json:"entries"`
	Bonuses            BonusLinesDTO `json:"bonuses"`
}

// =============================================================================
// AMOUNTS, PROFILES, HISTORY
// =============================================================================

// ParseAmountRequest is the body for POST /api/amounts/parse.
type ParseAmountRequest struct {
	Expression string `json:"expression"`
}

// ParseAmountDTO is the evaluated expression.
type ParseAmountDTO struct {
	Expression string  `json:"expression"`
	Value      float64 `json:"value"`
}

// ProfileRequest creates or updates a profile.
type ProfileRequest struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	HireDate     string `json:"hire_date"`
	EndDate      string `json:"end_date,omitempty"`
	WeekType     string `json:"week_type,omitempty"`
	Children     int    `json:"children"`
	MonthlyGross Amount `json:"monthly_gross"`
}

// ProfileDTO represents a profile in API responses.
type ProfileDTO struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	HireDate     string  `json:"hire_date"`
	EndDate      *string `json:"end_date,omitempty"`
	WeekType     string  `json:"week_type"`
	Children     int     `json:"children"`
	MonthlyGross float64 `json:"monthly_gross"`
	CreatedAt    string  `json:"created_at,omitempty"`
	UpdatedAt    string  `json:"updated_at,omitempty"`
}

// CalculationDTO is a history record.
type CalculationDTO struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	ProfileID string          `json:"profile_id,omitempty"`
	Request   json.RawMessage `json:"request"`
	Response  json.RawMessage `json:"response"`
	CreatedAt string          `json:"created_at"`
}

// ScenarioDTO describes a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Profiles    int    `json:"profiles"`
}

// LoadScenarioRequest is the body for POST /api/scenarios/load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func moneyPtr(d decimal.Decimal) *float64 {
	v := money(d)
	return &v
}

func toBreakdownDTO(b salary.Breakdown) BreakdownDTO {
	return BreakdownDTO{
		GrossSalary:     money(b.GrossSalary),
		NetSalary:       money(b.NetSalary),
		EFKAEmployee:    money(b.EFKAEmployee),
		EFKAEmployer:    money(b.EFKAEmployer),
		IncomeTax:       money(b.IncomeTax),
		SolidarityTax:   money(b.SolidarityTax),
		TotalDeductions: money(b.TotalDeductions),
	}
}

func toSeasonalDTO(r bonus.Result) BonusDTO {
	ratio := r.RatioWorked.Round(4).InexactFloat64()
	employmentDays, windowDays := r.EmploymentDays, r.WindowDays
	return BonusDTO{
		Kind:           string(r.Kind),
		Gross:          money(r.Gross),
		FullAmount:     moneyPtr(r.FullAmount),
		EmploymentDays: &employmentDays,
		WindowDays:     &windowDays,
		RatioWorked:    &ratio,
		Breakdown:      toBreakdownDTO(r.Breakdown),
	}
}

func toVacationDTO(r bonus.VacationResult) BonusDTO {
	days := r.LeaveDays.Round(2).InexactFloat64()
	capped := r.Capped
	return BonusDTO{
		Kind:            string(bonus.KindVacation),
		Gross:           money(r.Gross),
		LeaveDays:       &days,
		DailyRate:       moneyPtr(r.DailyRate),
		PayForLeaveDays: moneyPtr(r.PayForLeaveDays),
		Cap:             moneyPtr(r.Cap),
		Capped:          &capped,
		Breakdown:       toBreakdownDTO(r.Breakdown),
	}
}

func toSeveranceDTO(r severance.Result) SeveranceDTO {
	return SeveranceDTO{
		MonthsAwarded:  r.MonthsAwarded,
		GrossAmount:    money(r.GrossAmount),
		YearsOfService: r.YearsOfService,
		LegacyTenure:   r.LegacyTenure,
		Breakdown:      toBreakdownDTO(r.Breakdown),
	}
}

func toLineDTO(l yearly.Line) LineDTO {
	return LineDTO{
		Label:         l.Label,
		Gross:         money(l.Gross),
		EFKAEmployee:  money(l.EFKAEmployee),
		EFKAEmployer:  money(l.EFKAEmployer),
		TaxableIncome: money(l.TaxableIncome),
		IncomeTax:     money(l.IncomeTax),
		SolidarityTax: money(l.SolidarityTax),
		Net:           money(l.Net),
	}
}

func toYearlyDTO(s yearly.Summary) YearlySummaryDTO {
	entries := make([]LineDTO, len(s.Entries))
	for i, l := range s.Entries {
		entries[i] = toLineDTO(l)
	}
	return YearlySummaryDTO{
		ReferenceYear:      s.ReferenceYear,
		BaseMonthlyGross:   money(s.BaseMonthlyGross),
		RegularGross:       money(s.RegularGross),
		TotalGross:         money(s.TotalGross),
		TotalNet:           money(s.TotalNet),
		TotalEFKAEmployee:  money(s.TotalEFKAEmployee),
		TotalEFKAEmployer:  money(s.TotalEFKAEmployer),
		TaxableIncome:      money(s.TaxableIncome),
		TotalIncomeTax:     money(s.TotalIncomeTax),
		TotalSolidarityTax: money(s.TotalSolidarityTax),
		TotalDeductions:    money(s.TotalDeductions),
		Entries:            entries,
		Bonuses: BonusLinesDTO{
			Easter:          toLineDTO(s.Bonuses.Easter),
			Christmas:       toLineDTO(s.Bonuses.Christmas),
			Vacation:        toLineDTO(s.Bonuses.Vacation),
			LeaveDays:       s.Bonuses.LeaveDays.Round(2).InexactFloat64(),
			TotalGross:      money(s.Bonuses.TotalGross),
			TotalNet:        money(s.Bonuses.TotalNet),
			TotalDeductions: money(s.Bonuses.TotalDeductions),
		},
	}
}

func toProfileDTO(p sqlite.Profile) ProfileDTO {
	dto := ProfileDTO{
		ID:           p.ID,
		Name:         p.Name,
		HireDate:     p.HireDate.String(),
		WeekType:     string(p.WeekType),
		Children:     p.Children,
		MonthlyGross: money(p.MonthlyGross),
	}
	if p.EndDate != nil {
		end := p.EndDate.String()
		dto.EndDate = &end
	}
	if !p.CreatedAt.IsZero() {
		dto.CreatedAt = p.CreatedAt.Format(timestampFormat)
	}
	if !p.UpdatedAt.IsZero() {
		dto.UpdatedAt = p.UpdatedAt.Format(timestampFormat)
	}
	return dto
}

func toCalculationDTO(c sqlite.Calculation) CalculationDTO {
	return CalculationDTO{
		ID:        c.ID,
		Kind:      c.Kind,
		ProfileID: c.ProfileID,
		Request:   json.RawMessage(c.RequestJSON),
		Response:  json.RawMessage(c.ResponseJSON),
		CreatedAt: c.CreatedAt.Format(timestampFormat),
	}
}
