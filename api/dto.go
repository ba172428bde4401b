/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

CONVENTIONS:
  Dates travel as YYYY-MM-DD strings, timestamps as RFC3339, and decimal
  money values as JSON numbers (converted at the boundary).

SEE ALSO:
  - handlers.go: Uses these types
  - validation.go: Field-level validation of *Request types
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xmljim/retirement-manager/planning"
)

// =============================================================================
// SHARED DTOS
// =============================================================================

// DurationDTO is elapsed whole calendar time, with the display string
// rendered server-side ("14 years, 0 months" / "Less than a month").
type DurationDTO struct {
	Years       int    `json:"years"`
	Months      int    `json:"months"`
	TotalMonths int    `json:"total_months"`
	Display     string `json:"display"`
}

// EligibilityDTO reports progress against a policy threshold.
type EligibilityDTO struct {
	Eligible bool    `json:"eligible"`
	Percent  float64 `json:"percent"`
}

// ErrorResponse is the error body for all non-2xx responses.
type ErrorResponse struct {
	Message string            `json:"message"`
	Details string            `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// formatTime renders a timestamp, or "" when it was never set (entities
// echoed back from a create, before any reload).
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func toDurationDTO(d planning.Duration) DurationDTO {
	return DurationDTO{
		Years:       d.Years,
		Months:      d.Months,
		TotalMonths: d.TotalMonths,
		Display:     d.String(),
	}
}

func toEligibilityDTO(e planning.Eligibility) EligibilityDTO {
	return EligibilityDTO{Eligible: e.Eligible, Percent: e.Percent}
}

// =============================================================================
// PERSON
// =============================================================================

type PersonDTO struct {
	ID           string `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	BirthDate    string `json:"birth_date"`
	FilingStatus string `json:"filing_status"`
	State        string `json:"state,omitempty"`
	Age          int    `json:"age"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

type PersonRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	BirthDate    string `json:"birth_date"`
	FilingStatus string `json:"filing_status"`
	State        string `json:"state,omitempty"`
}

func toPersonDTO(p planning.Person, asOf planning.Date) PersonDTO {
	return PersonDTO{
		ID:           p.ID,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		BirthDate:    p.BirthDate.String(),
		FilingStatus: string(p.FilingStatus),
		State:        p.State,
		Age:          p.Age(asOf),
		CreatedAt:    formatTime(p.CreatedAt),
		UpdatedAt:    formatTime(p.UpdatedAt),
	}
}

// =============================================================================
// MARRIAGE
// =============================================================================

type MarriageDTO struct {
	ID          string         `json:"id"`
	PersonID    string         `json:"person_id"`
	SpouseName  string         `json:"spouse_name,omitempty"`
	StartDate   string         `json:"start_date"`
	EndDate     *string        `json:"end_date,omitempty"`
	Status      string         `json:"status"`
	Duration    DurationDTO    `json:"duration"`
	Eligibility EligibilityDTO `json:"spousal_eligibility"`
	CreatedAt   string         `json:"created_at,omitempty"`
}

type MarriageRequest struct {
	SpouseName string  `json:"spouse_name,omitempty"`
	StartDate  string  `json:"start_date"`
	EndDate    *string `json:"end_date,omitempty"`
	Status     string  `json:"status"`
}

func toMarriageDTO(m planning.Marriage, asOf planning.Date) MarriageDTO {
	dto := MarriageDTO{
		ID:          m.ID,
		PersonID:    m.PersonID,
		SpouseName:  m.SpouseName,
		StartDate:   m.StartDate.String(),
		Status:      string(m.Status),
		Duration:    toDurationDTO(m.Duration(asOf)),
		Eligibility: toEligibilityDTO(m.SpousalEligibility(asOf)),
		CreatedAt:   formatTime(m.CreatedAt),
	}
	if m.EndDate != nil {
		s := m.EndDate.String()
		dto.EndDate = &s
	}
	return dto
}

// =============================================================================
// EMPLOYER
// =============================================================================

type EmployerDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	EIN       string `json:"ein,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	Zip       string `json:"zip,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

type EmployerRequest struct {
	Name    string `json:"name"`
	EIN     string `json:"ein,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
}

func toEmployerDTO(e planning.Employer) EmployerDTO {
	return EmployerDTO{
		ID:        e.ID,
		Name:      e.Name,
		EIN:       e.EIN,
		Address:   e.Address,
		City:      e.City,
		State:     e.State,
		Zip:       e.Zip,
		CreatedAt: formatTime(e.CreatedAt),
	}
}

// =============================================================================
// EMPLOYMENT
// =============================================================================

type EmploymentDTO struct {
	ID           string      `json:"id"`
	PersonID     string      `json:"person_id"`
	EmployerID   string      `json:"employer_id"`
	EmployerName string      `json:"employer_name,omitempty"`
	StartDate    string      `json:"start_date"`
	EndDate      *string     `json:"end_date,omitempty"`
	Type         string      `json:"employment_type"`
	PlanEligible bool        `json:"plan_eligible"`
	Current      bool        `json:"current"`
	Tenure       DurationDTO `json:"tenure"`
	CreatedAt    string      `json:"created_at,omitempty"`
}

type EmploymentRequest struct {
	PersonID     string  `json:"person_id"`
	EmployerID   string  `json:"employer_id"`
	StartDate    string  `json:"start_date"`
	EndDate      *string `json:"end_date,omitempty"`
	Type         string  `json:"employment_type"`
	PlanEligible bool    `json:"plan_eligible"`
}

func toEmploymentDTO(e planning.Employment, employerName string, asOf planning.Date) EmploymentDTO {
	dto := EmploymentDTO{
		ID:           e.ID,
		PersonID:     e.PersonID,
		EmployerID:   e.EmployerID,
		EmployerName: employerName,
		StartDate:    e.StartDate.String(),
		Type:         string(e.Type),
		PlanEligible: e.PlanEligible,
		Current:      e.Current(),
		Tenure:       toDurationDTO(e.Tenure(asOf)),
		CreatedAt:    formatTime(e.CreatedAt),
	}
	if e.EndDate != nil {
		s := e.EndDate.String()
		dto.EndDate = &s
	}
	return dto
}

// =============================================================================
// INCOME
// =============================================================================

type IncomeDTO struct {
	ID                string   `json:"id"`
	EmploymentID      string   `json:"employment_id"`
	TaxYear           int      `json:"tax_year"`
	Salary            float64  `json:"salary"`
	Bonus             float64  `json:"bonus"`
	Other             float64  `json:"other"`
	W2Wages           *float64 `json:"w2_wages,omitempty"`
	TotalCompensation float64  `json:"total_compensation"`
	CreatedAt         string   `json:"created_at,omitempty"`
}

type IncomeRequest struct {
	EmploymentID string   `json:"employment_id"`
	TaxYear      int      `json:"tax_year"`
	Salary       float64  `json:"salary"`
	Bonus        float64  `json:"bonus"`
	Other        float64  `json:"other"`
	W2Wages      *float64 `json:"w2_wages,omitempty"`
}

func toIncomeDTO(i planning.EmploymentIncome) IncomeDTO {
	dto := IncomeDTO{
		ID:                i.ID,
		EmploymentID:      i.EmploymentID,
		TaxYear:           i.TaxYear,
		Salary:            i.Salary.InexactFloat64(),
		Bonus:             i.Bonus.InexactFloat64(),
		Other:             i.Other.InexactFloat64(),
		TotalCompensation: i.TotalCompensation().InexactFloat64(),
		CreatedAt:         formatTime(i.CreatedAt),
	}
	if i.W2Wages != nil {
		f := i.W2Wages.InexactFloat64()
		dto.W2Wages = &f
	}
	return dto
}

func (r IncomeRequest) toDomain(id string) planning.EmploymentIncome {
	income := planning.EmploymentIncome{
		ID:           id,
		EmploymentID: r.EmploymentID,
		TaxYear:      r.TaxYear,
		Salary:       decimal.NewFromFloat(r.Salary),
		Bonus:        decimal.NewFromFloat(r.Bonus),
		Other:        decimal.NewFromFloat(r.Other),
	}
	if r.W2Wages != nil {
		d := decimal.NewFromFloat(*r.W2Wages)
		income.W2Wages = &d
	}
	return income
}

// =============================================================================
// ACCOUNT
// =============================================================================

type AccountDTO struct {
	ID          string  `json:"id"`
	PersonID    string  `json:"person_id"`
	Type        string  `json:"account_type"`
	Name        string  `json:"name"`
	Institution string  `json:"institution,omitempty"`
	Balance     float64 `json:"balance"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

type AccountRequest struct {
	Type        string  `json:"account_type"`
	Name        string  `json:"name"`
	Institution string  `json:"institution,omitempty"`
	Balance     float64 `json:"balance"`
}

func (r AccountRequest) toDomain(id, personID string) planning.RetirementAccount {
	return planning.RetirementAccount{
		ID:          id,
		PersonID:    personID,
		Type:        planning.AccountType(r.Type),
		Name:        r.Name,
		Institution: r.Institution,
		Balance:     decimal.NewFromFloat(r.Balance),
	}
}

func toAccountDTO(a planning.RetirementAccount) AccountDTO {
	return AccountDTO{
		ID:          a.ID,
		PersonID:    a.PersonID,
		Type:        string(a.Type),
		Name:        a.Name,
		Institution: a.Institution,
		Balance:     a.Balance.InexactFloat64(),
		CreatedAt:   formatTime(a.CreatedAt),
	}
}

// =============================================================================
// CONTRIBUTION LIMITS
// =============================================================================

type LimitsDTO struct {
	Year         int     `json:"year"`
	AccountType  string  `json:"account_type"`
	BaseLimit    float64 `json:"base_limit"`
	CatchUpLimit float64 `json:"catch_up_limit"`
	CatchUpAge   int     `json:"catch_up_age"`
}

func toLimitsDTO(l planning.ContributionLimits) LimitsDTO {
	return LimitsDTO{
		Year:         l.Year,
		AccountType:  string(l.AccountType),
		BaseLimit:    l.BaseLimit.InexactFloat64(),
		CatchUpLimit: l.CatchUpLimit.InexactFloat64(),
		CatchUpAge:   l.CatchUpAge,
	}
}
