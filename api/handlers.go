/*
handlers.go - HTTP API handlers for the retirement planner

PURPOSE:
  Exposes the planning domain via REST. Handles HTTP request/response,
  JSON serialization, and delegates to the store and the pure planning
  calculations.

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input (validation.go, field-keyed messages)
  3. Call store / domain logic
  4. Serialize response with derived fields (durations, eligibility,
     totals) computed server-side
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input ("fields" carries the map)
  - 404: Resource not found
  - 409: Duplicate (unique constraint)
  - 500: Internal errors

This file holds the handler context, shared helpers, and the person and
account endpoints. Marriage, employment, and limits endpoints live in
their own files.
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/xmljim/retirement-manager/planning"
	"github.com/xmljim/retirement-manager/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store

	// now is overridable in tests so derived durations are deterministic.
	now func() planning.Date
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{
		Store: store,
		now:   planning.Today,
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Message: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeFieldErrors renders a 400 with the field-keyed validation map.
func writeFieldErrors(w http.ResponseWriter, fields map[string]string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Message: "Validation failed",
		Fields:  fields,
	})
}

// writeStoreError maps store sentinel errors to HTTP statuses.
func writeStoreError(w http.ResponseWriter, action string, err error) {
	switch {
	case errors.Is(err, planning.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found", nil)
	case errors.Is(err, planning.ErrDuplicateID):
		writeError(w, http.StatusConflict, "Record already exists", err)
	case errors.Is(err, planning.ErrInUse):
		writeError(w, http.StatusConflict, "Record is referenced by other records", err)
	default:
		writeError(w, http.StatusInternalServerError, "Failed to "+action, err)
	}
}

const maxPageSize = 200

// parseListOptions reads pagination query params: zero-based "page",
// "size", and "sort" ("column" or "column,desc").
func parseListOptions(r *http.Request) sqlite.ListOptions {
	opts := sqlite.ListOptions{Sort: r.URL.Query().Get("sort")}
	if v := r.URL.Query().Get("page"); v != "" {
		opts.Page, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("size"); v != "" {
		opts.Size, _ = strconv.Atoi(v)
	}
	if opts.Size > maxPageSize {
		opts.Size = maxPageSize
	}
	return opts
}

func newID() string { return uuid.NewString() }

// =============================================================================
// PERSON HANDLERS
// =============================================================================

// ListPersons returns persons, paginated.
func (h *Handler) ListPersons(w http.ResponseWriter, r *http.Request) {
	persons, err := h.Store.ListPersons(r.Context(), parseListOptions(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list persons", err)
		return
	}

	asOf := h.now()
	dtos := make([]PersonDTO, len(persons))
	for i, p := range persons {
		dtos[i] = toPersonDTO(p, asOf)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetPerson returns a single person.
func (h *Handler) GetPerson(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.Store.GetPerson(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get person", err)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "Person not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, toPersonDTO(*p, h.now()))
}

// CreatePerson creates a new person profile.
func (h *Handler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req PersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	p, fields := validatePerson(req)
	if len(fields) > 0 {
		writeFieldErrors(w, fields)
		return
	}
	p.ID = newID()

	if err := h.Store.CreatePerson(r.Context(), p); err != nil {
		writeStoreError(w, "create person", err)
		return
	}

	writeJSON(w, http.StatusCreated, toPersonDTO(p, h.now()))
}

// UpdatePerson mutates an existing person profile.
func (h *Handler) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req PersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	p, fields := validatePerson(req)
	if len(fields) > 0 {
		writeFieldErrors(w, fields)
		return
	}
	p.ID = id

	if err := h.Store.UpdatePerson(r.Context(), p); err != nil {
		writeStoreError(w, "update person", err)
		return
	}

	updated, err := h.Store.GetPerson(r.Context(), id)
	if err != nil || updated == nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload person", err)
		return
	}
	writeJSON(w, http.StatusOK, toPersonDTO(*updated, h.now()))
}

// =============================================================================
// ACCOUNT HANDLERS
// =============================================================================

// ListAccounts returns a person's retirement accounts.
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	personID := chi.URLParam(r, "id")

	accounts, err := h.Store.ListAccountsByPerson(r.Context(), personID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list accounts", err)
		return
	}

	dtos := make([]AccountDTO, len(accounts))
	for i, a := range accounts {
		dtos[i] = toAccountDTO(a)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateAccount creates a retirement account for a person.
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	personID := chi.URLParam(r, "id")

	var req AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if fields := validateAccount(req); len(fields) > 0 {
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

	account := req.toDomain(newID(), personID)
	if err := h.Store.CreateAccount(r.Context(), account); err != nil {
		writeStoreError(w, "create account", err)
		return
	}

	writeJSON(w, http.StatusCreated, toAccountDTO(account))
}

// GetAccount returns a single account.
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	a, err := h.Store.GetAccount(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get account", err)
		return
	}
	if a == nil {
		writeError(w, http.StatusNotFound, "Account not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toAccountDTO(*a))
}

// UpdateAccount mutates an existing account.
func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if fields := validateAccount(req); len(fields) > 0 {
		writeFieldErrors(w, fields)
		return
	}

	existing, err := h.Store.GetAccount(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get account", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Account not found", nil)
		return
	}

	account := req.toDomain(id, existing.PersonID)
	if err := h.Store.UpdateAccount(r.Context(), account); err != nil {
		writeStoreError(w, "update account", err)
		return
	}
	writeJSON(w, http.StatusOK, toAccountDTO(account))
}

// DeleteAccount removes an account. Responds 204 on success.
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Store.DeleteAccount(r.Context(), id); err != nil {
		writeStoreError(w, "delete account", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
