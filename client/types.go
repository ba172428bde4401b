package client

// Wire types for the API. Dates travel as YYYY-MM-DD strings and money as
// JSON numbers, matching the server DTOs.

// Duration is elapsed whole calendar time as rendered by the server.
type Duration struct {
	Years       int    `json:"years"`
	Months      int    `json:"months"`
	TotalMonths int    `json:"total_months"`
	Display     string `json:"display"`
}

// Eligibility reports progress against a policy threshold.
type Eligibility struct {
	Eligible bool    `json:"eligible"`
	Percent  float64 `json:"percent"`
}

// Person is a planning subject.
type Person struct {
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

// PersonRequest creates or updates a person.
type PersonRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	BirthDate    string `json:"birth_date"`
	FilingStatus string `json:"filing_status"`
	State        string `json:"state,omitempty"`
}

// Marriage is a marriage record with server-derived duration and
// spousal-benefit eligibility.
type Marriage struct {
	ID          string      `json:"id"`
	PersonID    string      `json:"person_id"`
	SpouseName  string      `json:"spouse_name,omitempty"`
	StartDate   string      `json:"start_date"`
	EndDate     *string     `json:"end_date,omitempty"`
	Status      string      `json:"status"`
	Duration    Duration    `json:"duration"`
	Eligibility Eligibility `json:"spousal_eligibility"`
	CreatedAt   string      `json:"created_at,omitempty"`
}

// MarriageRequest creates or updates a marriage.
type MarriageRequest struct {
	SpouseName string  `json:"spouse_name,omitempty"`
	StartDate  string  `json:"start_date"`
	EndDate    *string `json:"end_date,omitempty"`
	Status     string  `json:"status"`
}

// Employer is a referenced organization.
type Employer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	EIN       string `json:"ein,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	Zip       string `json:"zip,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// EmployerRequest creates or updates an employer.
type EmployerRequest struct {
	Name    string `json:"name"`
	EIN     string `json:"ein,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
}

// Employment is an employment span with server-derived tenure.
type Employment struct {
	ID           string   `json:"id"`
	PersonID     string   `json:"person_id"`
	EmployerID   string   `json:"employer_id"`
	EmployerName string   `json:"employer_name,omitempty"`
	StartDate    string   `json:"start_date"`
	EndDate      *string  `json:"end_date,omitempty"`
	Type         string   `json:"employment_type"`
	PlanEligible bool     `json:"plan_eligible"`
	Current      bool     `json:"current"`
	Tenure       Duration `json:"tenure"`
	CreatedAt    string   `json:"created_at,omitempty"`
}

// EmploymentRequest creates or updates an employment record.
type EmploymentRequest struct {
	PersonID     string  `json:"person_id"`
	EmployerID   string  `json:"employer_id"`
	StartDate    string  `json:"start_date"`
	EndDate      *string `json:"end_date,omitempty"`
	Type         string  `json:"employment_type"`
	PlanEligible bool    `json:"plan_eligible"`
}

// Income is compensation for one employment and tax year, with the
// server-derived total.
type Income struct {
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

// IncomeRequest creates or updates an income record.
type IncomeRequest struct {
	EmploymentID string   `json:"employment_id"`
	TaxYear      int      `json:"tax_year"`
	Salary       float64  `json:"salary"`
	Bonus        float64  `json:"bonus"`
	Other        float64  `json:"other"`
	W2Wages      *float64 `json:"w2_wages,omitempty"`
}

// Account is a person-owned retirement account.
type Account struct {
	ID          string  `json:"id"`
	PersonID    string  `json:"person_id"`
	Type        string  `json:"account_type"`
	Name        string  `json:"name"`
	Institution string  `json:"institution,omitempty"`
	Balance     float64 `json:"balance"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

// AccountRequest creates or updates an account.
type AccountRequest struct {
	Type        string  `json:"account_type"`
	Name        string  `json:"name"`
	Institution string  `json:"institution,omitempty"`
	Balance     float64 `json:"balance"`
}

// Limits is published IRS contribution-limit reference data.
type Limits struct {
	Year         int     `json:"year"`
	AccountType  string  `json:"account_type"`
	BaseLimit    float64 `json:"base_limit"`
	CatchUpLimit float64 `json:"catch_up_limit"`
	CatchUpAge   int     `json:"catch_up_age"`
}
