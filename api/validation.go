/*
validation.go - Synchronous, field-keyed request validation

PURPOSE:
  Validates *Request bodies before any store access. Failures come back as
  a field-to-message map rendered in the 400 error body; they are never
  returned as Go errors, keeping the transport/HTTP error taxonomy
  separate from input problems.

RULES ENFORCED:
  - Required fields (names, dates, statuses)
  - Date formats (YYYY-MM-DD) and ordering (end >= start)
  - Birthdate not in the future
  - Enum membership (filing status, marriage status, employment/account type)
  - Marriage status consistency (non-MARRIED requires an end date)
  - EIN format XX-XXXXXXX
*/
package api

import (
	"regexp"
	"strings"

	"github.com/xmljim/retirement-manager/planning"
)

var einPattern = regexp.MustCompile(`^\d{2}-\d{7}$`)

// validatePerson parses and validates a person request. The returned map
// is empty when the request is valid.
func validatePerson(req PersonRequest) (planning.Person, map[string]string) {
	fields := make(map[string]string)
	var p planning.Person

	if strings.TrimSpace(req.FirstName) == "" {
		fields["first_name"] = "First name is required"
	}
	if strings.TrimSpace(req.LastName) == "" {
		fields["last_name"] = "Last name is required"
	}

	if req.BirthDate == "" {
		fields["birth_date"] = "Birth date is required"
	} else {
		birthDate, err := planning.ParseDate(req.BirthDate)
		switch {
		case err != nil:
			fields["birth_date"] = "Birth date must be in YYYY-MM-DD format"
		case birthDate.After(planning.Today()):
			fields["birth_date"] = "Birth date cannot be in the future"
		default:
			p.BirthDate = birthDate
		}
	}

	status := planning.FilingStatus(req.FilingStatus)
	if req.FilingStatus == "" {
		fields["filing_status"] = "Filing status is required"
	} else if !status.Valid() {
		fields["filing_status"] = "Unknown filing status"
	}

	p.FirstName = strings.TrimSpace(req.FirstName)
	p.LastName = strings.TrimSpace(req.LastName)
	p.FilingStatus = status
	p.State = strings.ToUpper(strings.TrimSpace(req.State))

	return p, fields
}

// validateMarriage parses and validates a marriage request.
func validateMarriage(req MarriageRequest) (planning.Marriage, map[string]string) {
	fields := make(map[string]string)
	var m planning.Marriage

	if req.StartDate == "" {
		fields["start_date"] = "Start date is required"
	} else if start, err := planning.ParseDate(req.StartDate); err != nil {
		fields["start_date"] = "Start date must be in YYYY-MM-DD format"
	} else {
		m.StartDate = start
	}

	if req.EndDate != nil {
		end, err := planning.ParseDate(*req.EndDate)
		if err != nil {
			fields["end_date"] = "End date must be in YYYY-MM-DD format"
		} else if fields["start_date"] == "" && end.Before(m.StartDate) {
			fields["end_date"] = "End date must be on or after the start date"
		} else {
			m.EndDate = &end
		}
	}

	status := planning.MarriageStatus(req.Status)
	switch {
	case req.Status == "":
		fields["status"] = "Status is required"
	case !status.Valid():
		fields["status"] = "Unknown marriage status"
	case status != planning.MarriageMarried && req.EndDate == nil:
		fields["end_date"] = "An end date is required unless the marriage is current"
	}

	m.SpouseName = strings.TrimSpace(req.SpouseName)
	m.Status = status

	return m, fields
}

// validateEmployer parses and validates an employer request.
func validateEmployer(req EmployerRequest) (planning.Employer, map[string]string) {
	fields := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "Employer name is required"
	}
	if req.EIN != "" && !einPattern.MatchString(req.EIN) {
		fields["ein"] = "EIN must be in XX-XXXXXXX format"
	}

	e := planning.Employer{
		Name:    strings.TrimSpace(req.Name),
		EIN:     req.EIN,
		Address: strings.TrimSpace(req.Address),
		City:    strings.TrimSpace(req.City),
		State:   strings.ToUpper(strings.TrimSpace(req.State)),
		Zip:     strings.TrimSpace(req.Zip),
	}
	return e, fields
}

// validateEmployment parses and validates an employment request.
func validateEmployment(req EmploymentRequest) (planning.Employment, map[string]string) {
	fields := make(map[string]string)
	var e planning.Employment

	if strings.TrimSpace(req.PersonID) == "" {
		fields["person_id"] = "Person is required"
	}
	if strings.TrimSpace(req.EmployerID) == "" {
		fields["employer_id"] = "Employer is required"
	}

	if req.StartDate == "" {
		fields["start_date"] = "Start date is required"
	} else if start, err := planning.ParseDate(req.StartDate); err != nil {
		fields["start_date"] = "Start date must be in YYYY-MM-DD format"
	} else {
		e.StartDate = start
	}

	if req.EndDate != nil {
		end, err := planning.ParseDate(*req.EndDate)
		if err != nil {
			fields["end_date"] = "End date must be in YYYY-MM-DD format"
		} else if fields["start_date"] == "" && end.Before(e.StartDate) {
			fields["end_date"] = "End date must be on or after the start date"
		} else {
			e.EndDate = &end
		}
	}

	empType := planning.EmploymentType(req.Type)
	if req.Type == "" {
		fields["employment_type"] = "Employment type is required"
	} else if !empType.Valid() {
		fields["employment_type"] = "Unknown employment type"
	}

	e.PersonID = strings.TrimSpace(req.PersonID)
	e.EmployerID = strings.TrimSpace(req.EmployerID)
	e.Type = empType
	e.PlanEligible = req.PlanEligible

	return e, fields
}

// validateIncome validates an income request.
func validateIncome(req IncomeRequest) map[string]string {
	fields := make(map[string]string)

	if strings.TrimSpace(req.EmploymentID) == "" {
		fields["employment_id"] = "Employment is required"
	}
	if req.TaxYear < 1900 || req.TaxYear > 2100 {
		fields["tax_year"] = "Tax year is out of range"
	}
	if req.Salary < 0 {
		fields["salary"] = "Salary cannot be negative"
	}
	if req.Bonus < 0 {
		fields["bonus"] = "Bonus cannot be negative"
	}
	if req.Other < 0 {
		fields["other"] = "Other compensation cannot be negative"
	}
	if req.W2Wages != nil && *req.W2Wages < 0 {
		fields["w2_wages"] = "W-2 wages cannot be negative"
	}

	return fields
}

// validateAccount validates an account request.
func validateAccount(req AccountRequest) map[string]string {
	fields := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		fields["name"] = "Account name is required"
	}
	accountType := planning.AccountType(req.Type)
	if req.Type == "" {
		fields["account_type"] = "Account type is required"
	} else if !accountType.Valid() {
		fields["account_type"] = "Unknown account type"
	}
	if req.Balance < 0 {
		fields["balance"] = "Balance cannot be negative"
	}

	return fields
}
