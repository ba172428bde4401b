package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xmljim/retirement-manager/planning"
)

// =============================================================================
// EMPLOYER HANDLERS
// =============================================================================

// ListEmployers returns employers, paginated.
func (h *Handler) ListEmployers(w http.ResponseWriter, r *http.Request) {
	employers, err := h.Store.ListEmployers(r.Context(), parseListOptions(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employers", err)
		return
	}

	dtos := make([]EmployerDTO, len(employers))
	for i, e := range employers {
		dtos[i] = toEmployerDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateEmployer creates a new employer.
func (h *Handler) CreateEmployer(w http.ResponseWriter, r *http.Request) {
	var req EmployerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	e, fields := validateEmployer(req)
	if len(fields) > 0 {
		writeFieldErrors(w, fields)
		return
	}
	e.ID = newID()

	if err := h.Store.CreateEmployer(r.Context(), e); err != nil {
		writeStoreError(w, "create employer", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployerDTO(e))
}

// GetEmployer returns a single employer.
func (h *Handler) GetEmployer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	e, err := h.Store.GetEmployer(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employer", err)
		return
	}
	if e == nil {
		writeError(w, http.StatusNotFound, "Employer not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toEmployerDTO(*e))
}

// UpdateEmployer mutates an existing employer.
func (h *Handler) UpdateEmployer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req EmployerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	e, fields := validateEmployer(req)
	if len(fields) > 0 {
		writeFieldErrors(w, fields)
		return
	}
	e.ID = id

	if err := h.Store.UpdateEmployer(r.Context(), e); err != nil {
		writeStoreError(w, "update employer", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployerDTO(e))
}

// DeleteEmployer removes an employer. Responds 204 on success.
func (h *Handler) DeleteEmployer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Store.DeleteEmployer(r.Context(), id); err != nil {
		writeStoreError(w, "delete employer", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// EMPLOYMENT HANDLERS
// =============================================================================

// ListEmployment returns employment history for a person (via the
// person_id query param), enriched with employer names and tenure.
func (h *Handler) ListEmployment(w http.ResponseWriter, r *http.Request) {
	personID := r.URL.Query().Get("person_id")
	if personID == "" {
		writeError(w, http.StatusBadRequest, "person_id query parameter is required", nil)
		return
	}

	records, err := h.Store.ListEmploymentByPerson(r.Context(), personID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employment", err)
		return
	}

	asOf := h.now()
	dtos := make([]EmploymentDTO, len(records))
	for i, e := range records {
		dtos[i] = toEmploymentDTO(e, h.employerName(r, e.EmployerID), asOf)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) employerName(r *http.Request, employerID string) string {
	employer, err := h.Store.GetEmployer(r.Context(), employerID)
	if err != nil || employer == nil {
		return ""
	}
	return employer.Name
}

// CreateEmployment records an employment span.
func (h *Handler) CreateEmployment(w http.ResponseWriter, r *http.Request) {
	var req EmploymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	e, fields := validateEmployment(req)
	if len(fields) > 0 {
		writeFieldErrors(w, fields)
		return
	}

	// Both referenced entities must exist
	person, err := h.Store.GetPerson(r.Context(), e.PersonID)
	if err == nil && person == nil {
		writeError(w, http.StatusNotFound, "Person not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get person", err)
		return
	}
	employer, err := h.Store.GetEmployer(r.Context(), e.EmployerID)
	if err == nil && employer == nil {
		writeError(w, http.StatusNotFound, "Employer not found", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employer", err)
		return
	}

	e.ID = newID()
	if err := h.Store.CreateEmployment(r.Context(), e); err != nil {
		writeStoreError(w, "create employment", err)
		return
	}

	writeJSON(w, http.StatusCreated, toEmploymentDTO(e, employer.Name, h.now()))
}

// GetEmployment returns a single employment record.
func (h *Handler) GetEmployment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	e, err := h.Store.GetEmployment(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employment", err)
		return
	}
	if e == nil {
		writeError(w, http.StatusNotFound, "Employment not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toEmploymentDTO(*e, h.employerName(r, e.EmployerID), h.now()))
}

// UpdateEmployment mutates an existing employment record.
func (h *Handler) UpdateEmployment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req EmploymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	e, fields := validateEmployment(req)
	if len(fields) > 0 {
		writeFieldErrors(w, fields)
		return
	}

	existing, err := h.Store.GetEmployment(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employment", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Employment not found", nil)
		return
	}

	e.ID = id
	e.PersonID = existing.PersonID

	if err := h.Store.UpdateEmployment(r.Context(), e); err != nil {
		writeStoreError(w, "update employment", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmploymentDTO(e, h.employerName(r, e.EmployerID), h.now()))
}

// DeleteEmployment removes an employment record. Responds 204 on success.
func (h *Handler) DeleteEmployment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Store.DeleteEmployment(r.Context(), id); err != nil {
		writeStoreError(w, "delete employment", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// INCOME HANDLERS
// =============================================================================

// ListIncome returns income records for an employment (via the
// employment_id query param), newest tax year first.
func (h *Handler) ListIncome(w http.ResponseWriter, r *http.Request) {
	employmentID := r.URL.Query().Get("employment_id")
	if employmentID == "" {
		writeError(w, http.StatusBadRequest, "employment_id query parameter is required", nil)
		return
	}

	records, err := h.Store.ListIncomeByEmployment(r.Context(), employmentID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list income", err)
		return
	}

	dtos := make([]IncomeDTO, len(records))
	for i, rec := range records {
		dtos[i] = toIncomeDTO(rec)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateIncome records compensation for an employment and tax year.
func (h *Handler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	var req IncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if fields := validateIncome(req); len(fields) > 0 {
		writeFieldErrors(w, fields)
		return
	}

	employment, err := h.Store.GetEmployment(r.Context(), req.EmploymentID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employment", err)
		return
	}
	if employment == nil {
		writeError(w, http.StatusNotFound, "Employment not found", nil)
		return
	}

	income := req.toDomain(newID())
	if err := h.Store.CreateIncome(r.Context(), income); err != nil {
		if errors.Is(err, planning.ErrDuplicateID) {
			writeError(w, http.StatusConflict, "Income already recorded for that tax year", err)
			return
		}
		writeStoreError(w, "create income", err)
		return
	}

	writeJSON(w, http.StatusCreated, toIncomeDTO(income))
}

// GetIncome returns a single income record.
func (h *Handler) GetIncome(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	income, err := h.Store.GetIncome(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get income", err)
		return
	}
	if income == nil {
		writeError(w, http.StatusNotFound, "Income not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toIncomeDTO(*income))
}

// UpdateIncome mutates an existing income record.
func (h *Handler) UpdateIncome(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req IncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if fields := validateIncome(req); len(fields) > 0 {
		writeFieldErrors(w, fields)
		return
	}

	existing, err := h.Store.GetIncome(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get income", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Income not found", nil)
		return
	}

	income := req.toDomain(id)
	income.EmploymentID = existing.EmploymentID

	if err := h.Store.UpdateIncome(r.Context(), income); err != nil {
		if errors.Is(err, planning.ErrDuplicateID) {
			writeError(w, http.StatusConflict, "Income already recorded for that tax year", err)
			return
		}
		writeStoreError(w, "update income", err)
		return
	}
	writeJSON(w, http.StatusOK, toIncomeDTO(income))
}

// DeleteIncome removes an income record. Responds 204 on success.
func (h *Handler) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Store.DeleteIncome(r.Context(), id); err != nil {
		writeStoreError(w, "delete income", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
