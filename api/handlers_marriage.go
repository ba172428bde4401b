package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// =============================================================================
// MARRIAGE HANDLERS
// =============================================================================
// Marriage DTOs carry the derived duration and Social Security spousal-
// benefit eligibility (10-year threshold), computed as of "today" for
// ongoing marriages.

// ListMarriages returns a person's marriages with derived durations.
func (h *Handler) ListMarriages(w http.ResponseWriter, r *http.Request) {
	personID := chi.URLParam(r, "id")

	marriages, err := h.Store.ListMarriagesByPerson(r.Context(), personID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list marriages", err)
		return
	}

	asOf := h.now()
	dtos := make([]MarriageDTO, len(marriages))
	for i, m := range marriages {
		dtos[i] = toMarriageDTO(m, asOf)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateMarriage records a marriage for a person.
func (h *Handler) CreateMarriage(w http.ResponseWriter, r *http.Request) {
	personID := chi.URLParam(r, "id")

	var req MarriageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	m, fields := validateMarriage(req)
	if len(fields) > 0 {
		writeFieldErrors(w, fields)
		return
	}

	person, err := h.Store.GetPerson(r.Context(), personID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get person", err)
		return
	}
	if person == nil {
		writeError(w, http.StatusNotFound, "Person not found", nil)
		return
	}

	m.ID = newID()
	m.PersonID = personID

	if err := h.Store.CreateMarriage(r.Context(), m); err != nil {
		writeStoreError(w, "create marriage", err)
		return
	}

	writeJSON(w, http.StatusCreated, toMarriageDTO(m, h.now()))
}

// GetMarriage returns a single marriage.
func (h *Handler) GetMarriage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	m, err := h.Store.GetMarriage(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get marriage", err)
		return
	}
	if m == nil {
		writeError(w, http.StatusNotFound, "Marriage not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toMarriageDTO(*m, h.now()))
}

// UpdateMarriage mutates an existing marriage.
func (h *Handler) UpdateMarriage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req MarriageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	m, fields := validateMarriage(req)
	if len(fields) > 0 {
		writeFieldErrors(w, fields)
		return
	}

	existing, err := h.Store.GetMarriage(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get marriage", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Marriage not found", nil)
		return
	}

	m.ID = id
	m.PersonID = existing.PersonID

	if err := h.Store.UpdateMarriage(r.Context(), m); err != nil {
		writeStoreError(w, "update marriage", err)
		return
	}
	writeJSON(w, http.StatusOK, toMarriageDTO(m, h.now()))
}

// DeleteMarriage removes a marriage. Responds 204 on success.
func (h *Handler) DeleteMarriage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Store.DeleteMarriage(r.Context(), id); err != nil {
		writeStoreError(w, "delete marriage", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
