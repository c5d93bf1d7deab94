package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
	"github.com/warp/payroll-engine/store/sqlite"
)

// =============================================================================
// PROFILE HANDLERS
// =============================================================================

// ListProfiles returns all profiles.
func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.Store.ListProfiles(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list profiles", err)
		return
	}

	dtos := make([]ProfileDTO, len(profiles))
	for i, p := range profiles {
		dtos[i] = toProfileDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetProfile returns a single profile.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.Store.GetProfile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProfileDTO(*p))
}

// SaveProfile creates a profile, or replaces it when the ID exists.
func (h *Handler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if _, ok := decodeBody(w, r, &req); !ok {
		return
	}
	status := http.StatusCreated
	if id := chi.URLParam(r, "id"); id != "" {
		req.ID = id
		status = http.StatusOK
	}

	p, err := h.profileFromRequest(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	saved, err := h.Store.SaveProfile(r.Context(), p)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save profile", err)
		return
	}
	writeJSON(w, status, toProfileDTO(saved))
}

// DeleteProfile removes a profile.
func (h *Handler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteProfile(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) profileFromRequest(req ProfileRequest) (sqlite.Profile, error) {
	if req.Name == "" {
		return sqlite.Profile{}, &generic.FieldError{Field: "name", Err: generic.ErrRequiredField}
	}
	hire, err := generic.ParseDate(req.HireDate)
	if err != nil {
		return sqlite.Profile{}, &generic.FieldError{Field: "hire_date", Err: err}
	}
	end, err := optionalDate("end_date", req.EndDate, nil)
	if err != nil {
		return sqlite.Profile{}, err
	}
	if end != nil && end.Before(hire) {
		return sqlite.Profile{}, &generic.FieldError{Field: "end_date", Err: generic.ErrInvalidPeriod}
	}
	week, err := weekTypeOf(req.WeekType, nil)
	if err != nil {
		return sqlite.Profile{}, err
	}
	if req.Children < 0 {
		return sqlite.Profile{}, &generic.FieldError{Field: "children", Err: generic.ErrInvalidAmount}
	}

	gross := decimal.Zero
	if req.MonthlyGross.IsSet() {
		if gross, err = h.nonNegative("monthly_gross", req.MonthlyGross); err != nil {
			return sqlite.Profile{}, err
		}
	}

	return sqlite.Profile{
		ID:           req.ID,
		Name:         req.Name,
		HireDate:     hire,
		EndDate:      end,
		WeekType:     week,
		Children:     req.Children,
		MonthlyGross: gross,
	}, nil
}

// =============================================================================
// HISTORY HANDLERS
// =============================================================================

// ListHistory returns recorded calculations, newest first. Supports
// ?kind=, ?profile_id= and ?limit= (default 50).
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := sqlite.HistoryFilter{
		Kind:      q.Get("kind"),
		ProfileID: q.Get("profile_id"),
		Limit:     50,
	}
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer", err)
			return
		}
		filter.Limit = n
	}

	calcs, err := h.Store.ListCalculations(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list history", err)
		return
	}

	dtos := make([]CalculationDTO, len(calcs))
	for i, c := range calcs {
		dtos[i] = toCalculationDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetHistory returns a single history record.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	c, err := h.Store.GetCalculation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCalculationDTO(*c))
}

// DeleteHistory removes a history record.
func (h *Handler) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteCalculation(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
