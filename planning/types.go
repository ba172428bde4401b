/*
Package planning holds the retirement-planning domain model and the pure
calculations built on it.

KEY CONCEPTS:
  - Date/Duration: whole-calendar-month arithmetic (dates.go)
  - Eligibility: threshold comparison for spousal benefits (eligibility.go)
  - Entities: Person, Marriage, Employment, Employer, EmploymentIncome,
    RetirementAccount, ContributionLimits

DESIGN PRINCIPLES:
  1. Precision: money uses decimal.Decimal, never float64
  2. Derived values are methods, not stored fields (tenure, totals, age)
  3. Enums are string types validated at the edges, stored as-is
*/
package planning

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ENUMS
// =============================================================================

type FilingStatus string

const (
	FilingSingle             FilingStatus = "SINGLE"
	FilingMarriedJointly     FilingStatus = "MARRIED_FILING_JOINTLY"
	FilingMarriedSeparately  FilingStatus = "MARRIED_FILING_SEPARATELY"
	FilingHeadOfHousehold    FilingStatus = "HEAD_OF_HOUSEHOLD"
	FilingQualifyingWidower  FilingStatus = "QUALIFYING_WIDOWER"
)

func (s FilingStatus) Valid() bool {
	switch s {
	case FilingSingle, FilingMarriedJointly, FilingMarriedSeparately,
		FilingHeadOfHousehold, FilingQualifyingWidower:
		return true
	}
	return false
}

type MarriageStatus string

const (
	MarriageMarried  MarriageStatus = "MARRIED"
	MarriageDivorced MarriageStatus = "DIVORCED"
	MarriageWidowed  MarriageStatus = "WIDOWED"
	MarriageAnnulled MarriageStatus = "ANNULLED"
)

func (s MarriageStatus) Valid() bool {
	switch s {
	case MarriageMarried, MarriageDivorced, MarriageWidowed, MarriageAnnulled:
		return true
	}
	return false
}

type EmploymentType string

const (
	EmploymentFullTime     EmploymentType = "FULL_TIME"
	EmploymentPartTime     EmploymentType = "PART_TIME"
	EmploymentContract     EmploymentType = "CONTRACT"
	EmploymentSelfEmployed EmploymentType = "SELF_EMPLOYED"
)

func (t EmploymentType) Valid() bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentSelfEmployed:
		return true
	}
	return false
}

type AccountType string

const (
	Account401K      AccountType = "401K"
	Account403B      AccountType = "403B"
	AccountIRA       AccountType = "IRA"
	AccountRothIRA   AccountType = "ROTH_IRA"
	AccountSEPIRA    AccountType = "SEP_IRA"
	AccountSimpleIRA AccountType = "SIMPLE_IRA"
)

func (t AccountType) Valid() bool {
	switch t {
	case Account401K, Account403B, AccountIRA, AccountRothIRA, AccountSEPIRA, AccountSimpleIRA:
		return true
	}
	return false
}

// =============================================================================
// ENTITIES
// =============================================================================

// Person is the planning subject. BirthDate must not be in the future;
// that is enforced at the API boundary, not here.
type Person struct {
	ID           string
	FirstName    string
	LastName     string
	BirthDate    Date
	FilingStatus FilingStatus
	State        string // optional two-letter state of residence
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Age returns whole years of age as of the given date.
func (p Person) Age(asOf Date) int {
	return Between(p.BirthDate, asOf).Years
}

// Marriage belongs to exactly one Person. EndDate is nil while the
// marriage is ongoing.
type Marriage struct {
	ID         string
	PersonID   string
	SpouseName string
	StartDate  Date
	EndDate    *Date
	Status     MarriageStatus
	CreatedAt  time.Time
}

// Duration returns elapsed calendar time from the start date to the end
// date, or to asOf when the marriage has no end date.
func (m Marriage) Duration(asOf Date) Duration {
	end := asOf
	if m.EndDate != nil {
		end = *m.EndDate
	}
	return Between(m.StartDate, end)
}

// SpousalEligibility evaluates the 10-year spousal-benefit threshold.
func (m Marriage) SpousalEligibility(asOf Date) Eligibility {
	return SpousalEligibility(m.Duration(asOf).TotalMonths)
}

// Employer is a referenced organization. EIN, when present, is in
// XX-XXXXXXX format.
type Employer struct {
	ID        string
	Name      string
	EIN       string
	Address   string
	City      string
	State     string
	Zip       string
	CreatedAt time.Time
}

// Employment links a Person to an Employer for a span of time.
type Employment struct {
	ID           string
	PersonID     string
	EmployerID   string
	StartDate    Date
	EndDate      *Date
	Type         EmploymentType
	PlanEligible bool // eligible for the employer's retirement plan
	CreatedAt    time.Time
}

// Current reports whether the employment is ongoing (no end date).
func (e Employment) Current() bool { return e.EndDate == nil }

// Tenure returns elapsed calendar time for the employment.
func (e Employment) Tenure(asOf Date) Duration {
	end := asOf
	if e.EndDate != nil {
		end = *e.EndDate
	}
	return Between(e.StartDate, end)
}

// EmploymentIncome records compensation for one employment and tax year.
type EmploymentIncome struct {
	ID           string
	EmploymentID string
	TaxYear      int
	Salary       decimal.Decimal
	Bonus        decimal.Decimal
	Other        decimal.Decimal
	W2Wages      *decimal.Decimal
	CreatedAt    time.Time
}

// TotalCompensation is the derived sum of salary, bonus, and other
// compensation. W-2 wages are informational and excluded.
func (i EmploymentIncome) TotalCompensation() decimal.Decimal {
	return i.Salary.Add(i.Bonus).Add(i.Other)
}

// RetirementAccount is a person-owned savings account.
type RetirementAccount struct {
	ID          string
	PersonID    string
	Type        AccountType
	Name        string
	Institution string
	Balance     decimal.Decimal
	CreatedAt   time.Time
}

// ContributionLimits is published IRS reference data keyed by year and
// account type. Fetched and displayed, never mutated by clients.
type ContributionLimits struct {
	Year         int
	AccountType  AccountType
	BaseLimit    decimal.Decimal
	CatchUpLimit decimal.Decimal
	CatchUpAge   int
}

// LimitFor returns the applicable limit for a saver of the given age,
// including the catch-up allowance once the catch-up age is reached.
func (c ContributionLimits) LimitFor(age int) decimal.Decimal {
	if c.CatchUpAge > 0 && age >= c.CatchUpAge {
		return c.BaseLimit.Add(c.CatchUpLimit)
	}
	return c.BaseLimit
}
