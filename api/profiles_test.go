package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createProfile(t *testing.T, s *testServer, body string) ProfileDTO {
	t.Helper()
	rec := s.do(http.MethodPost, "/api/profiles", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[ProfileDTO](t, rec)
}

func TestProfiles_CRUD(t *testing.T) {
	// GIVEN: A new profile
	s := setupTestServer(t)
	created := createProfile(t, s, `{"name": "Eleni Markou", "hire_date": "2019-05-01", "children": 2, "monthly_gross": 1500}`)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "5", created.WeekType)

	// WHEN: Reading it back
	rec := s.do(http.MethodGet, "/api/profiles/"+created.ID, nil)

	// THEN: All fields round-trip
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[ProfileDTO](t, rec)
	assert.Equal(t, "Eleni Markou", got.Name)
	assert.Equal(t, "2019-05-01", got.HireDate)
	assert.Equal(t, 2, got.Children)
	assert.InDelta(t, 1500.0, got.MonthlyGross, 0.001)

	// Update through PUT
	rec = s.do(http.MethodPut, "/api/profiles/"+created.ID, `{"name": "Eleni Markou", "hire_date": "2019-05-01", "end_date": "2025-09-30", "week_type": "6", "monthly_gross": 1600}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[ProfileDTO](t, rec)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "6", updated.WeekType)
	require.NotNil(t, updated.EndDate)
	assert.Equal(t, "2025-09-30", *updated.EndDate)

	rec = s.do(http.MethodGet, "/api/profiles", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]ProfileDTO](t, rec), 1)

	// Delete
	rec = s.do(http.MethodDelete, "/api/profiles/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(http.MethodGet, "/api/profiles/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = s.do(http.MethodDelete, "/api/profiles/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfiles_Validation(t *testing.T) {
	s := setupTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"hire_date": "2019-05-01"}`},
		{"missing hire date", `{"name": "A"}`},
		{"bad hire date", `{"name": "A", "hire_date": "2019-13-01"}`},
		{"end before hire", `{"name": "A", "hire_date": "2019-05-01", "end_date": "2018-01-01"}`},
		{"bad week type", `{"name": "A", "hire_date": "2019-05-01", "week_type": "7"}`},
		{"negative children", `{"name": "A", "hire_date": "2019-05-01", "children": -1}`},
		{"negative gross", `{"name": "A", "hire_date": "2019-05-01", "monthly_gross": -5}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := s.do(http.MethodPost, "/api/profiles", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestProfiles_DefaultsForCalculations(t *testing.T) {
	// GIVEN: A profile with two children, a six-day week and a 1,500 salary
	s := setupTestServer(t)
	p := createProfile(t, s, `{"name": "Kostas", "hire_date": "2015-01-01", "week_type": "6", "children": 2, "monthly_gross": 1500}`)

	// WHEN: Calculating with only the profile ID
	rec := s.do(http.MethodPost, "/api/salary/gross-to-net", `{"profile_id": "`+p.ID+`"}`)

	// THEN: Salary and children come from the profile, and the cache is skipped
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	dto := decode[SalaryDTO](t, rec)
	assert.InDelta(t, 1500.0, dto.GrossSalary, 0.001)
	assert.Equal(t, 2, dto.Children)
	assert.Greater(t, dto.NetSalary, 1153.08)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

	rec = s.do(http.MethodPost, "/api/salary/gross-to-net", `{"profile_id": "`+p.ID+`"}`)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

	// Explicit fields win over the profile
	rec = s.do(http.MethodPost, "/api/salary/gross-to-net", `{"profile_id": "`+p.ID+`", "gross": 2000, "children": 0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	dto = decode[SalaryDTO](t, rec)
	assert.InDelta(t, 2000.0, dto.GrossSalary, 0.001)
	assert.Equal(t, 0, dto.Children)

	// Leave uses the hire date and week type
	rec = s.do(http.MethodPost, "/api/leave/entitlement", `{"profile_id": "`+p.ID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	ent := decode[LeaveEntitlementDTO](t, rec)
	assert.Equal(t, "6", ent.WeekType)
	assert.InDelta(t, 30.0, ent.Days, 0.001)

	// History is linked to the profile
	rec = s.do(http.MethodGet, "/api/history?profile_id="+p.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]CalculationDTO](t, rec), 4)
}

func TestProfiles_UnknownProfile(t *testing.T) {
	s := setupTestServer(t)

	rec := s.do(http.MethodPost, "/api/salary/gross-to-net", `{"profile_id": "missing", "gross": 1500}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodPost, "/api/severance", `{"profile_id": "missing"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHistory(t *testing.T) {
	// GIVEN: Two recorded calculations of different kinds
	s := setupTestServer(t)
	first := s.do(http.MethodPost, "/api/salary/gross-to-net", `{"gross": 1500}`)
	require.Equal(t, http.StatusOK, first.Code)
	s.do(http.MethodPost, "/api/severance", `{"monthly_gross": 1500, "years_of_service": 3}`)
	id := first.Header().Get("X-Calculation-ID")

	// WHEN: Listing
	rec := s.do(http.MethodGet, "/api/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]CalculationDTO](t, rec), 2)

	rec = s.do(http.MethodGet, "/api/history?kind=severance", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]CalculationDTO](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "severance", list[0].Kind)

	rec = s.do(http.MethodGet, "/api/history?limit=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]CalculationDTO](t, rec), 1)

	rec = s.do(http.MethodGet, "/api/history?limit=zero", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// THEN: A single record carries the stored request and response
	rec = s.do(http.MethodGet, "/api/history/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	calc := decode[CalculationDTO](t, rec)
	assert.Equal(t, "gross-to-net", calc.Kind)
	assert.JSONEq(t, first.Body.String(), string(calc.Response))
	assert.Equal(t, testNow.Format(timestampFormat), calc.CreatedAt)

	rec = s.do(http.MethodDelete, "/api/history/"+id, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(http.MethodGet, "/api/history/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
