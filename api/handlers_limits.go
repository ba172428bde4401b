package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/xmljim/retirement-manager/planning"
	"github.com/xmljim/retirement-manager/store/sqlite"
)

// =============================================================================
// CONTRIBUTION LIMIT HANDLERS
// =============================================================================

// ListLimitYears returns the years for which limits have been published,
// newest first.
func (h *Handler) ListLimitYears(w http.ResponseWriter, r *http.Request) {
	years, err := h.Store.ListLimitYears(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list limit years", err)
		return
	}
	if years == nil {
		years = []int{}
	}
	writeJSON(w, http.StatusOK, map[string][]int{"years": years})
}

// GetLimitsByYear returns every published limit for a tax year.
func (h *Handler) GetLimitsByYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Year must be a number", err)
		return
	}

	limits, err := h.Store.ListLimitsByYear(r.Context(), year)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list limits", err)
		return
	}
	if len(limits) == 0 {
		writeError(w, http.StatusNotFound, "No limits published for that year", nil)
		return
	}

	dtos := make([]LimitsDTO, len(limits))
	for i, l := range limits {
		dtos[i] = toLimitsDTO(l)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetLimitsForAccountType returns the limit for one account type in a tax year.
func (h *Handler) GetLimitsForAccountType(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Year must be a number", err)
		return
	}

	accountType := planning.AccountType(chi.URLParam(r, "accountType"))
	if !accountType.Valid() {
		writeError(w, http.StatusBadRequest, "Unknown account type", nil)
		return
	}

	limits, err := h.Store.GetLimits(r.Context(), year, accountType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get limits", err)
		return
	}
	if limits == nil {
		writeError(w, http.StatusNotFound, "No limits published for that year and account type", nil)
		return
	}
	writeJSON(w, http.StatusOK, toLimitsDTO(*limits))
}

// SeedDefaultLimits publishes the built-in IRS limit table. Existing rows
// for the same year and account type are overwritten.
func (h *Handler) SeedDefaultLimits(w http.ResponseWriter, r *http.Request) {
	if err := SeedDefaultLimits(r.Context(), h.Store); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to seed limits", err)
		return
	}

	years, err := h.Store.ListLimitYears(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list limit years", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string][]int{"years": years})
}

// =============================================================================
// DEFAULT LIMIT TABLE
// =============================================================================

const catchUpAge = 50

func limit(year int, accountType planning.AccountType, base, catchUp int64) planning.ContributionLimits {
	return planning.ContributionLimits{
		Year:         year,
		AccountType:  accountType,
		BaseLimit:    decimal.NewFromInt(base),
		CatchUpLimit: decimal.NewFromInt(catchUp),
		CatchUpAge:   catchUpAge,
	}
}

// defaultLimits is the published IRS elective deferral and IRA contribution
// table for recent tax years.
func defaultLimits() []planning.ContributionLimits {
	return []planning.ContributionLimits{
		limit(2023, planning.Account401K, 22500, 7500),
		limit(2023, planning.Account403B, 22500, 7500),
		limit(2023, planning.AccountIRA, 6500, 1000),
		limit(2023, planning.AccountRothIRA, 6500, 1000),

		limit(2024, planning.Account401K, 23000, 7500),
		limit(2024, planning.Account403B, 23000, 7500),
		limit(2024, planning.AccountIRA, 7000, 1000),
		limit(2024, planning.AccountRothIRA, 7000, 1000),

		limit(2025, planning.Account401K, 23500, 7500),
		limit(2025, planning.Account403B, 23500, 7500),
		limit(2025, planning.AccountIRA, 7000, 1000),
		limit(2025, planning.AccountRothIRA, 7000, 1000),
	}
}

// SeedDefaultLimits upserts the built-in limit table into the store. Called
// on server startup and exposed through POST /limits/defaults.
func SeedDefaultLimits(ctx context.Context, store *sqlite.Store) error {
	for _, l := range defaultLimits() {
		if err := store.SaveLimits(ctx, l); err != nil {
			return err
		}
	}
	return nil
}
