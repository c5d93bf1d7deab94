/*
scenarios.go - Demo profiles for testing and demonstrations

PURPOSE:

	Provides pre-built employment profiles that exercise the interesting
	branches of the calculators: first-year leave proration, six-day weeks,
	child tax credits, legacy severance tenure and mid-year departures.

AVAILABLE SCENARIOS:

	new-hire:        Hired March 1 this year (prorated leave and Easter bonus)
	family:          Six-day week, two children
	legacy-tenure:   Hired 1992, qualifies for the extended severance table
	leaver:          Left on June 30 this year (partial Christmas bonus)
	office:          All of the above

HOW SCENARIOS WORK:
 1. Build the profiles relative to the current year
 2. Replace every stored profile in one transaction
 3. Remember the loaded scenario

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "family"}

NOTE:

	Loading a scenario replaces all profiles. Calculation history is kept but
	detached from the removed profiles.

SEE ALSO:
  - profiles.go: Profile endpoints
  - store/sqlite/sqlite.go: ReplaceProfiles
*/
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
	"github.com/warp/payroll-engine/leave"
	"github.com/warp/payroll-engine/store/sqlite"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

type scenario struct {
	ScenarioDTO
	profiles func(year int) []sqlite.Profile
}

var scenarios = []scenario{
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "new-hire",
			Name:        "New Hire",
			Description: "Hired March 1 this year: prorated leave, partial Easter bonus",
		},
		profiles: func(year int) []sqlite.Profile { return []sqlite.Profile{newHireProfile(year)} },
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "family",
			Name:        "Family",
			Description: "Six-day week with two children",
		},
		profiles: func(int) []sqlite.Profile { return []sqlite.Profile{familyProfile()} },
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "legacy-tenure",
			Name:        "Legacy Tenure",
			Description: "Hired in 1992, eligible for the extended severance table",
		},
		profiles: func(int) []sqlite.Profile { return []sqlite.Profile{legacyProfile()} },
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "leaver",
			Name:        "Mid-Year Leaver",
			Description: "Left on June 30 this year: partial Christmas bonus",
		},
		profiles: func(year int) []sqlite.Profile { return []sqlite.Profile{leaverProfile(year)} },
	},
	{
		ScenarioDTO: ScenarioDTO{
			ID:          "office",
			Name:        "Small Office",
			Description: "All demo employees together",
		},
		profiles: func(year int) []sqlite.Profile {
			return []sqlite.Profile{newHireProfile(year), familyProfile(), legacyProfile(), leaverProfile(year)}
		},
	},
}

func newHireProfile(year int) sqlite.Profile {
	return sqlite.Profile{
		ID:           "demo-new-hire",
		Name:         "Dimitra Georgiou",
		HireDate:     generic.NewDate(year, time.March, 1),
		WeekType:     leave.FiveDayWeek,
		MonthlyGross: decimal.NewFromInt(1100),
	}
}

func familyProfile() sqlite.Profile {
	return sqlite.Profile{
		ID:           "demo-family",
		Name:         "Kostas Nikolaou",
		HireDate:     generic.NewDate(2018, time.September, 1),
		WeekType:     leave.SixDayWeek,
		Children:     2,
		MonthlyGross: decimal.NewFromInt(1800),
	}
}

func legacyProfile() sqlite.Profile {
	return sqlite.Profile{
		ID:           "demo-legacy",
		Name:         "Maria Papadopoulou",
		HireDate:     generic.NewDate(1992, time.April, 1),
		WeekType:     leave.FiveDayWeek,
		Children:     1,
		MonthlyGross: decimal.NewFromInt(2400),
	}
}

func leaverProfile(year int) sqlite.Profile {
	end := generic.NewDate(year, time.June, 30)
	return sqlite.Profile{
		ID:           "demo-leaver",
		Name:         "Giannis Alexiou",
		HireDate:     generic.NewDate(2019, time.February, 1),
		EndDate:      &end,
		WeekType:     leave.FiveDayWeek,
		MonthlyGross: decimal.NewFromInt(1500),
	}
}

func findScenario(id string) (scenario, bool) {
	for _, s := range scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return scenario{}, false
}

// =============================================================================
// SCENARIO HANDLERS
// =============================================================================

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	year := h.Now().Year()
	dtos := make([]ScenarioDTO, len(scenarios))
	for i, s := range scenarios {
		dtos[i] = s.ScenarioDTO
		dtos[i].Profiles = len(s.profiles(year))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	s, ok := findScenario(h.currentScenario)
	if !ok {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	dto := s.ScenarioDTO
	dto.Profiles = len(s.profiles(h.Now().Year()))
	writeJSON(w, http.StatusOK, dto)
}

// LoadScenario replaces all profiles with a predefined set.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if _, ok := decodeBody(w, r, &req); !ok {
		return
	}

	s, ok := findScenario(req.ScenarioID)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown scenario", fmt.Errorf("%q", req.ScenarioID))
		return
	}

	saved, err := h.Store.ReplaceProfiles(r.Context(), s.profiles(h.Now().Year()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}
	h.currentScenario = s.ID

	dtos := make([]ProfileDTO, len(saved))
	for i, p := range saved {
		dtos[i] = toProfileDTO(p)
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "loaded", "scenario": s.ID, "profiles": dtos})
}

// ResetDatabase clears all profiles and history.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
