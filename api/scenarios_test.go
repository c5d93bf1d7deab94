package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListScenarios(t *testing.T) {
	s := setupTestServer(t)

	rec := s.do(http.MethodGet, "/api/scenarios", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]ScenarioDTO](t, rec)
	require.Len(t, list, len(scenarios))
	for _, sc := range list {
		assert.NotEmpty(t, sc.ID)
		assert.Positive(t, sc.Profiles, sc.ID)
	}
}

func TestLoadScenario(t *testing.T) {
	// GIVEN: A user profile that the scenario will replace
	s := setupTestServer(t)
	createProfile(t, s, `{"name": "Temp", "hire_date": "2020-01-01"}`)

	// WHEN: Loading the office scenario
	rec := s.do(http.MethodPost, "/api/scenarios/load", `{"scenario_id": "office"}`)

	// THEN: Exactly the four demo profiles remain
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = s.do(http.MethodGet, "/api/profiles", nil)
	profiles := decode[[]ProfileDTO](t, rec)
	require.Len(t, profiles, 4)

	rec = s.do(http.MethodGet, "/api/scenarios/current", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	current := decode[ScenarioDTO](t, rec)
	assert.Equal(t, "office", current.ID)
	assert.Equal(t, 4, current.Profiles)
}

func TestLoadScenario_ProfilesDriveCalculations(t *testing.T) {
	s := setupTestServer(t)
	rec := s.do(http.MethodPost, "/api/scenarios/load", `{"scenario_id": "office"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// Hired 1992: legacy tenure, 33 years at 2025-06-15
	rec = s.do(http.MethodPost, "/api/severance", `{"profile_id": "demo-legacy"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	sev := decode[SeveranceDTO](t, rec)
	assert.Equal(t, 33, sev.YearsOfService)
	assert.True(t, sev.LegacyTenure)
	assert.Equal(t, 24, sev.MonthsAwarded)
	assert.InDelta(t, 57600.0, sev.GrossAmount, 0.001)

	// Left on June 30: May and June of the 245-day Christmas window
	rec = s.do(http.MethodPost, "/api/bonuses/christmas", `{"profile_id": "demo-leaver"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	xmas := decode[BonusDTO](t, rec)
	require.NotNil(t, xmas.EmploymentDays)
	assert.Equal(t, 61, *xmas.EmploymentDays)
	assert.InDelta(t, 373.47, xmas.Gross, 0.001)

	// Hired March 1 this year: ten months of the first-year entitlement
	rec = s.do(http.MethodPost, "/api/leave/entitlement", `{"profile_id": "demo-new-hire", "as_of": "2025-12-31"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	ent := decode[LeaveEntitlementDTO](t, rec)
	assert.Equal(t, 10, ent.MonthsWorked)
	assert.InDelta(t, 16.67, ent.Days, 0.001)
}

func TestLoadScenario_Unknown(t *testing.T) {
	s := setupTestServer(t)

	rec := s.do(http.MethodPost, "/api/scenarios/load", `{"scenario_id": "nope"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResetDatabase(t *testing.T) {
	// GIVEN: Loaded profiles and some history
	s := setupTestServer(t)
	s.do(http.MethodPost, "/api/scenarios/load", `{"scenario_id": "family"}`)
	s.do(http.MethodPost, "/api/salary/gross-to-net", `{"gross": 1500}`)

	// WHEN: Resetting
	rec := s.do(http.MethodPost, "/api/scenarios/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// THEN: Everything is gone
	rec = s.do(http.MethodGet, "/api/profiles", nil)
	assert.Empty(t, decode[[]ProfileDTO](t, rec))
	rec = s.do(http.MethodGet, "/api/history", nil)
	assert.Empty(t, decode[[]CalculationDTO](t, rec))
	rec = s.do(http.MethodGet, "/api/scenarios/current", nil)
	assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
}
