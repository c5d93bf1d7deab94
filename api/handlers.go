/*
handlers.go - HTTP API handlers for the payroll engine

PURPOSE:
  Exposes the calculators via REST API. Handles HTTP request/response, JSON
  serialization, profile lookup, caching and history, and delegates the
  math to the salary, bonus, severance, leave and yearly packages.

ENDPOINTS:
  Salary:
    POST   /api/salary/gross-to-net    Monthly gross to net
    POST   /api/salary/net-to-gross    Monthly net to gross
    POST   /api/salary/employer-cost   Gross plus employer EFKA
    POST   /api/salary/payslip         PDF payslip

  Bonuses and severance:
    POST   /api/bonuses/{kind}         easter, christmas, vacation
    POST   /api/severance              Severance by years or dates

  Leave:
    POST   /api/leave/entitlement      Annual leave days
    POST   /api/leave/balance          Entitlement minus taken days

  Yearly:
    POST   /api/yearly                 Annual summary with bonuses

  Reference:
    GET    /api/tax/table              Active tax table
    POST   /api/amounts/parse          Evaluate an amount expression

  Profiles and history: see profiles.go

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: profiles and calculation history
  - Cache: encoded responses keyed by request
  - Engines built once from the active tax table

REQUEST FLOW:
  1. Parse HTTP request
  2. Resolve profile defaults
  3. Validate input
  4. Call the calculator (or answer from cache)
  5. Record history, serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Profile or history record not found
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - profiles.go: Profile and history endpoints
  - scenarios.go: Demo profiles
  - server.go: Router setup and middleware
*/
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/bonus"
	"github.com/warp/payroll-engine/cache"
	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/generic"
	"github.com/warp/payroll-engine/input"
	"github.com/warp/payroll-engine/leave"
	"github.com/warp/payroll-engine/report"
	"github.com/warp/payroll-engine/salary"
	"github.com/warp/payroll-engine/severance"
	"github.com/warp/payroll-engine/store/sqlite"
	"github.com/warp/payroll-engine/tax"
	"github.com/warp/payroll-engine/yearly"
)

const (
	timestampFormat = time.RFC3339
	maxBodyBytes    = 1 << 20
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store        *sqlite.Store
	Cache        cache.Repository
	TableFactory *factory.TaxTableFactory
	Parser       *input.Parser

	// Now is the clock used for default years and dates.
	Now func() time.Time

	table     tax.Table
	converter *salary.Converter
	bonuses   *bonus.Engine
	severance *severance.Engine
	yearly    *yearly.Engine

	// Track currently loaded scenario
	currentScenario string
}

// NewHandler creates a handler that calculates against table.
func NewHandler(store *sqlite.Store, table tax.Table, c cache.Repository) (*Handler, error) {
	parser, err := input.NewParser()
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = cache.NewMemoryCache(cache.DefaultTTL, cache.DefaultMaxEntries)
	}

	converter := salary.NewConverter(table)
	return &Handler{
		Store:        store,
		Cache:        c,
		TableFactory: factory.NewTaxTableFactory(),
		Parser:       parser,
		Now:          time.Now,
		table:        table,
		converter:    converter,
		bonuses:      bonus.NewEngine(converter),
		severance:    severance.NewEngine(converter),
		yearly:       yearly.NewEngine(table),
	}, nil
}

// Table returns the active tax table.
func (h *Handler) Table() tax.Table { return h.table }

// =============================================================================
// SALARY HANDLERS
// =============================================================================

// GrossToNet converts a monthly gross salary to net.
func (h *Handler) GrossToNet(w http.ResponseWriter, r *http.Request) {
	var req SalaryRequest
	body, ok := decodeBody(w, r, &req)
	if !ok {
		return
	}

	h.respond(w, r, "gross-to-net", body, req.ProfileID, func(ctx context.Context) (any, error) {
		gross, children, err := h.salaryInputs(ctx, req)
		if err != nil {
			return nil, err
		}
		b := h.converter.GrossToNet(gross, req.PayPeriods, children)
		return h.salaryDTO(b, req.PayPeriods, children), nil
	})
}

// NetToGross finds the monthly gross for a target net salary.
func (h *Handler) NetToGross(w http.ResponseWriter, r *http.Request) {
	var req NetToGrossRequest
	body, ok := decodeBody(w, r, &req)
	if !ok {
		return
	}

	h.respond(w, r, "net-to-gross", body, req.ProfileID, func(ctx context.Context) (any, error) {
		profile, err := h.profile(ctx, req.ProfileID)
		if err != nil {
			return nil, err
		}
		net, err := h.amount("net", req.Net)
		if err != nil {
			return nil, err
		}
		children := childrenOf(req.Children, profile)
		b := h.converter.NetToGross(net, req.PayPeriods, children)
		return h.salaryDTO(b, req.PayPeriods, children), nil
	})
}

// EmployerCost returns the breakdown plus the employer's total cost.
func (h *Handler) EmployerCost(w http.ResponseWriter, r *http.Request) {
	var req SalaryRequest
	body, ok := decodeBody(w, r, &req)
	if !ok {
		return
	}

	h.respond(w, r, "employer-cost", body, req.ProfileID, func(ctx context.Context) (any, error) {
		gross, children, err := h.salaryInputs(ctx, req)
		if err != nil {
			return nil, err
		}
		c := h.converter.EmployerCost(gross, req.PayPeriods, children)
		return EmployerCostDTO{
			SalaryDTO:         h.salaryDTO(c.Breakdown, req.PayPeriods, children),
			TotalEmployerCost: money(c.TotalEmployerCost),
		}, nil
	})
}

// Payslip renders the gross-to-net breakdown as a PDF.
func (h *Handler) Payslip(w http.ResponseWriter, r *http.Request) {
	var req SalaryRequest
	if _, ok := decodeBody(w, r, &req); !ok {
		return
	}

	ctx := r.Context()
	gross, children, err := h.salaryInputs(ctx, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	name := req.EmployeeName
	if name == "" && req.ProfileID != "" {
		if p, err := h.profile(ctx, req.ProfileID); err == nil {
			name = p.Name
		}
	}

	periods := req.PayPeriods
	if periods <= 0 {
		periods = salary.DefaultPayPeriods
	}

	var buf bytes.Buffer
	err = report.WritePayslip(&buf, report.Payslip{
		EmployeeName: name,
		Period:       req.Period,
		TaxYear:      h.table.Year,
		PayPeriods:   periods,
		Children:     children,
		Breakdown:    h.converter.GrossToNet(gross, periods, children),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render payslip", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="payslip.pdf"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *Handler) salaryInputs(ctx context.Context, req SalaryRequest) (decimal.Decimal, int, error) {
	profile, err := h.profile(ctx, req.ProfileID)
	if err != nil {
		return decimal.Zero, 0, err
	}
	gross, err := h.amountOrProfile("gross", req.Gross, profile)
	if err != nil {
		return decimal.Zero, 0, err
	}
	return gross, childrenOf(req.Children, profile), nil
}

func (h *Handler) salaryDTO(b salary.Breakdown, payPeriods, children int) SalaryDTO {
	if payPeriods <= 0 {
		payPeriods = salary.DefaultPayPeriods
	}
	return SalaryDTO{
		BreakdownDTO: toBreakdownDTO(b),
		PayPeriods:   payPeriods,
		Children:     tax.ClampChildren(children),
		TaxYear:      h.table.Year,
	}
}

// =============================================================================
// BONUS AND SEVERANCE HANDLERS
// =============================================================================

// Bonus computes the Easter, Christmas or vacation payment.
func (h *Handler) Bonus(w http.ResponseWriter, r *http.Request) {
	kind, ok := bonus.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown bonus kind", fmt.Errorf("%q", chi.URLParam(r, "kind")))
		return
	}

	var req BonusRequest
	body, ok := decodeBody(w, r, &req)
	if !ok {
		return
	}

	h.respond(w, r, "bonus-"+string(kind), body, req.ProfileID, func(ctx context.Context) (any, error) {
		profile, err := h.profile(ctx, req.ProfileID)
		if err != nil {
			return nil, err
		}
		monthly, err := h.amountOrProfile("monthly_gross", req.MonthlyGross, profile)
		if err != nil {
			return nil, err
		}
		children := childrenOf(req.Children, profile)
		year := req.Year
		if year == 0 {
			year = h.Now().Year()
		}

		if kind == bonus.KindVacation {
			return h.vacation(req, profile, monthly, year, children)
		}

		hire, err := dateOr("hire_date", req.HireDate, profileHire(profile, generic.StartOfYear(year)))
		if err != nil {
			return nil, err
		}
		end, err := optionalDate("end_date", req.EndDate, profileEnd(profile))
		if err != nil {
			return nil, err
		}

		employment := bonus.Employment{HireDate: hire, EndDate: end}
		if kind == bonus.KindEaster {
			return toSeasonalDTO(h.bonuses.Easter(monthly, year, employment, children)), nil
		}
		return toSeasonalDTO(h.bonuses.Christmas(monthly, year, employment, children)), nil
	})
}

func (h *Handler) vacation(req BonusRequest, profile *sqlite.Profile, monthly decimal.Decimal, year, children int) (any, error) {
	week, err := weekTypeOf(req.WeekType, profile)
	if err != nil {
		return nil, err
	}

	if req.LeaveDays.IsSet() {
		days, err := h.nonNegative("leave_days", req.LeaveDays)
		if err != nil {
			return nil, err
		}
		return toVacationDTO(h.bonuses.Vacation(monthly, days, week, children)), nil
	}

	hire, err := dateOr("hire_date", req.HireDate, profileHire(profile, generic.StartOfYear(year)))
	if err != nil {
		return nil, err
	}
	prorate := req.ProrateFirstYear == nil || *req.ProrateFirstYear
	if req.AsOf == "" && prorate {
		days := leave.AnnualLeaveDaysForYear(hire, year, week)
		return toVacationDTO(h.bonuses.Vacation(monthly, days, week, children)), nil
	}
	asOf, err := dateOr("as_of", req.AsOf, generic.EndOfYear(year))
	if err != nil {
		return nil, err
	}
	return toVacationDTO(h.bonuses.VacationFor(monthly, hire, asOf, week, prorate, children)), nil
}

// Severance computes the statutory severance award.
func (h *Handler) Severance(w http.ResponseWriter, r *http.Request) {
	var req SeveranceRequest
	body, ok := decodeBody(w, r, &req)
	if !ok {
		return
	}

	h.respond(w, r, "severance", body, req.ProfileID, func(ctx context.Context) (any, error) {
		profile, err := h.profile(ctx, req.ProfileID)
		if err != nil {
			return nil, err
		}
		monthly, err := h.amountOrProfile("monthly_gross", req.MonthlyGross, profile)
		if err != nil {
			return nil, err
		}
		children := childrenOf(req.Children, profile)

		if req.YearsOfService != nil {
			if *req.YearsOfService < 0 {
				return nil, &generic.FieldError{Field: "years_of_service", Err: generic.ErrInvalidPeriod}
			}
			return toSeveranceDTO(h.severance.Calculate(monthly, *req.YearsOfService, req.HadLegacyTenure, children)), nil
		}

		hire, err := requiredDate("hire_date", req.HireDate, profile)
		if err != nil {
			return nil, err
		}
		termination, err := dateOr("termination_date", req.TerminationDate, terminationDefault(profile, h.today()))
		if err != nil {
			return nil, err
		}
		if termination.Before(hire) {
			return nil, &generic.FieldError{Field: "termination_date", Err: generic.ErrInvalidPeriod}
		}
		return toSeveranceDTO(h.severance.CalculateFromDates(monthly, hire, termination, children)), nil
	})
}

// =============================================================================
// LEAVE HANDLERS
// =============================================================================

// LeaveEntitlement returns the annual leave days at a date.
func (h *Handler) LeaveEntitlement(w http.ResponseWriter, r *http.Request) {
	var req LeaveRequest
	body, ok := decodeBody(w, r, &req)
	if !ok {
		return
	}

	h.respond(w, r, "leave-entitlement", body, req.ProfileID, func(ctx context.Context) (any, error) {
		ent, _, err := h.entitlement(ctx, req)
		return ent, err
	})
}

// LeaveBalance returns the entitlement minus the days already taken.
func (h *Handler) LeaveBalance(w http.ResponseWriter, r *http.Request) {
	var req LeaveRequest
	body, ok := decodeBody(w, r, &req)
	if !ok {
		return
	}

	h.respond(w, r, "leave-balance", body, req.ProfileID, func(ctx context.Context) (any, error) {
		ent, days, err := h.entitlement(ctx, req)
		if err != nil {
			return nil, err
		}
		taken := decimal.Zero
		if req.Taken.IsSet() {
			if taken, err = h.resolve("taken", req.Taken); err != nil {
				return nil, err
			}
		}
		b := leave.NewBalance(days, taken)
		return LeaveBalanceDTO{
			LeaveEntitlementDTO: ent,
			Taken:               b.Taken.Round(2).InexactFloat64(),
			Remaining:           b.Remaining.Round(2).InexactFloat64(),
			Exhausted:           b.IsExhausted(),
		}, nil
	})
}

// entitlement returns the DTO and the unrounded day count.
func (h *Handler) entitlement(ctx context.Context, req LeaveRequest) (LeaveEntitlementDTO, decimal.Decimal, error) {
	profile, err := h.profile(ctx, req.ProfileID)
	if err != nil {
		return LeaveEntitlementDTO{}, decimal.Zero, err
	}
	hire, err := requiredDate("hire_date", req.HireDate, profile)
	if err != nil {
		return LeaveEntitlementDTO{}, decimal.Zero, err
	}
	asOf, err := dateOr("as_of", req.AsOf, h.today())
	if err != nil {
		return LeaveEntitlementDTO{}, decimal.Zero, err
	}
	week, err := weekTypeOf(req.WeekType, profile)
	if err != nil {
		return LeaveEntitlementDTO{}, decimal.Zero, err
	}
	prorate := req.ProrateFirstYear == nil || *req.ProrateFirstYear

	days := leave.AnnualLeaveDays(hire, asOf, week, prorate)
	return LeaveEntitlementDTO{
		HireDate:     hire.String(),
		AsOf:         asOf.String(),
		WeekType:     string(week),
		ServiceYears: generic.CompletedYears(hire, asOf),
		MonthsWorked: leave.MonthsWorkedInYear(hire, asOf),
		Days:         days.Round(2).InexactFloat64(),
	}, days, nil
}

// =============================================================================
// YEARLY SUMMARY
// =============================================================================

// Yearly builds the annual summary with bonuses.
func (h *Handler) Yearly(w http.ResponseWriter, r *http.Request) {
	var req YearlyRequest
	body, ok := decodeBody(w, r, &req)
	if !ok {
		return
	}

	h.respond(w, r, "yearly", body, req.ProfileID, func(ctx context.Context) (any, error) {
		profile, err := h.profile(ctx, req.ProfileID)
		if err != nil {
			return nil, err
		}

		entries := make([]yearly.Entry, 0, len(req.Entries))
		for i, e := range req.Entries {
			gross, err := h.nonNegative(fmt.Sprintf("entries[%d].gross", i), e.Gross)
			if err != nil {
				return nil, err
			}
			label := e.Label
			if label == "" {
				label = yearly.MonthLabels[i%len(yearly.MonthLabels)]
			}
			entries = append(entries, yearly.Entry{Label: label, Gross: gross})
		}
		if len(entries) == 0 {
			monthly, err := h.amountOrProfile("monthly_gross", req.MonthlyGross, profile)
			if err != nil {
				return nil, err
			}
			entries = yearly.FullYear(monthly)
		}

		opts := yearly.Options{ReferenceYear: req.Year}
		if opts.ReferenceYear == 0 {
			opts.ReferenceYear = h.Now().Year()
		}
		if opts.WeekType, err = weekTypeOf(req.WeekType, profile); err != nil {
			return nil, err
		}
		if req.LeaveDays.IsSet() {
			days, err := h.nonNegative("leave_days", req.LeaveDays)
			if err != nil {
				return nil, err
			}
			opts.LeaveDays = &days
		}
		if req.EmploymentStart != "" || profile != nil {
			start, err := dateOr("employment_start", req.EmploymentStart, profileHire(profile, generic.StartOfYear(opts.ReferenceYear)))
			if err != nil {
				return nil, err
			}
			opts.EmploymentStart = &start
		}
		if opts.EmploymentEnd, err = optionalDate("employment_end", req.EmploymentEnd, profileEnd(profile)); err != nil {
			return nil, err
		}

		summary := h.yearly.Summarize(entries, childrenOf(req.Children, profile), opts)
		return toYearlyDTO(summary), nil
	})
}

// =============================================================================
// REFERENCE HANDLERS
// =============================================================================

// GetTaxTable returns the active tax table in file format.
func (h *Handler) GetTaxTable(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.TableFactory.ToJSON(h.table))
}

// ParseAmount evaluates an amount expression.
func (h *Handler) ParseAmount(w http.ResponseWriter, r *http.Request) {
	var req ParseAmountRequest
	if _, ok := decodeBody(w, r, &req); !ok {
		return
	}

	v, err := h.Parser.Parse(req.Expression)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ParseAmountDTO{Expression: req.Expression, Value: money(v)})
}

// =============================================================================
// CALCULATION PIPELINE
// =============================================================================

// respond runs compute, caching and recording the encoded result. Requests
// that reference a profile bypass the cache since the profile may change.
// Omitted years and dates default to today, so keys are scoped to the day.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, kind string, body []byte, profileID string, compute func(ctx context.Context) (any, error)) {
	ctx := r.Context()

	key := ""
	if profileID == "" {
		key = cache.Key(kind, h.table.Year, h.today().String(), body)
		if cached, ok := h.Cache.Get(ctx, key); ok {
			h.record(ctx, w, kind, profileID, body, []byte(cached))
			writeRaw(w, http.StatusOK, []byte(cached), "HIT")
			return
		}
	}

	result, err := compute(ctx)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to encode response", err)
		return
	}

	if key != "" {
		if err := h.Cache.Set(ctx, key, string(data)); err != nil {
			log.Printf("[API] Cache write failed for %s: %v", kind, err)
		}
	}
	h.record(ctx, w, kind, profileID, body, data)
	writeRaw(w, http.StatusOK, data, "MISS")
}

// record stores the calculation in the history. Failures are logged only.
func (h *Handler) record(ctx context.Context, w http.ResponseWriter, kind, profileID string, request, response []byte) {
	if h.Store == nil {
		return
	}
	if len(bytes.TrimSpace(request)) == 0 {
		request = []byte("{}")
	}
	c, err := h.Store.SaveCalculation(ctx, sqlite.Calculation{
		Kind:         kind,
		ProfileID:    profileID,
		RequestJSON:  string(request),
		ResponseJSON: string(response),
		CreatedAt:    h.Now(),
	})
	if err != nil {
		log.Printf("[API] Failed to record %s calculation: %v", kind, err)
		return
	}
	w.Header().Set("X-Calculation-ID", c.ID)
}

// =============================================================================
// INPUT RESOLUTION
// =============================================================================

func (h *Handler) today() generic.Date {
	return generic.DateOf(h.Now())
}

// profile loads the profile when id is set; nil otherwise.
func (h *Handler) profile(ctx context.Context, id string) (*sqlite.Profile, error) {
	if id == "" || h.Store == nil {
		return nil, nil
	}
	return h.Store.GetProfile(ctx, id)
}

// resolve turns an Amount into a decimal without range checks.
func (h *Handler) resolve(field string, a Amount) (decimal.Decimal, error) {
	switch {
	case a.Value != nil:
		return *a.Value, nil
	case a.Expr != "":
		v, err := h.Parser.Parse(a.Expr)
		if err != nil {
			return decimal.Zero, &generic.FieldError{Field: field, Err: err}
		}
		return v, nil
	default:
		return decimal.Zero, &generic.FieldError{Field: field, Err: generic.ErrInvalidAmount}
	}
}

// amount resolves a required, strictly positive amount.
func (h *Handler) amount(field string, a Amount) (decimal.Decimal, error) {
	v, err := h.resolve(field, a)
	if err != nil {
		return decimal.Zero, err
	}
	if err := generic.ValidateAmount(v); err != nil {
		return decimal.Zero, &generic.FieldError{Field: field, Err: err}
	}
	return v, nil
}

// amountOrProfile falls back to the profile's monthly gross.
func (h *Handler) amountOrProfile(field string, a Amount, profile *sqlite.Profile) (decimal.Decimal, error) {
	if !a.IsSet() && profile != nil && profile.MonthlyGross.IsPositive() {
		return profile.MonthlyGross, nil
	}
	return h.amount(field, a)
}

// nonNegative resolves an amount that may be zero.
func (h *Handler) nonNegative(field string, a Amount) (decimal.Decimal, error) {
	v, err := h.resolve(field, a)
	if err != nil {
		return decimal.Zero, err
	}
	if v.IsNegative() {
		return decimal.Zero, &generic.FieldError{Field: field, Err: generic.ErrInvalidAmount}
	}
	return v, nil
}

func childrenOf(requested *int, profile *sqlite.Profile) int {
	switch {
	case requested != nil:
		return *requested
	case profile != nil:
		return profile.Children
	default:
		return 0
	}
}

func weekTypeOf(requested string, profile *sqlite.Profile) (leave.WeekType, error) {
	if requested == "" && profile != nil {
		requested = string(profile.WeekType)
	}
	week, err := leave.ParseWeekType(requested)
	if err != nil {
		return "", &generic.FieldError{Field: "week_type", Err: err}
	}
	return week, nil
}

func profileHire(profile *sqlite.Profile, fallback generic.Date) generic.Date {
	if profile != nil {
		return profile.HireDate
	}
	return fallback
}

func profileEnd(profile *sqlite.Profile) *generic.Date {
	if profile != nil {
		return profile.EndDate
	}
	return nil
}

func terminationDefault(profile *sqlite.Profile, today generic.Date) generic.Date {
	if end := profileEnd(profile); end != nil {
		return *end
	}
	return today
}

func dateOr(field, s string, fallback generic.Date) (generic.Date, error) {
	if s == "" {
		return fallback, nil
	}
	d, err := generic.ParseDate(s)
	if err != nil {
		return generic.Date{}, &generic.FieldError{Field: field, Err: err}
	}
	return d, nil
}

func optionalDate(field, s string, fallback *generic.Date) (*generic.Date, error) {
	if s == "" {
		return fallback, nil
	}
	d, err := generic.ParseDate(s)
	if err != nil {
		return nil, &generic.FieldError{Field: field, Err: err}
	}
	return &d, nil
}

func requiredDate(field, s string, profile *sqlite.Profile) (generic.Date, error) {
	if s == "" && profile == nil {
		return generic.Date{}, &generic.FieldError{Field: field, Err: generic.ErrInvalidDate}
	}
	return dateOr(field, s, profileHire(profile, generic.Date{}))
}

// =============================================================================
// HELPERS
// =============================================================================

// decodeBody reads and decodes the request body, writing a 400 on failure.
// An empty body decodes as {}.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return nil, false
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return body, true
	}
	if err := json.Unmarshal(body, dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return nil, false
	}
	return body, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeRaw(w http.ResponseWriter, status int, data []byte, cacheStatus string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", cacheStatus)
	w.WriteHeader(status)
	w.Write(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeServiceError maps domain errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case generic.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Not found", err)
	case generic.IsClientError(err):
		writeError(w, http.StatusBadRequest, "Invalid input", err)
	default:
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}
