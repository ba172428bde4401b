package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// =============================================================================
// PERSONS
// =============================================================================

func (c *Client) ListPersons(ctx context.Context, page Page) ([]Person, error) {
	var out []Person
	err := c.do(ctx, http.MethodGet, "/persons", page.query(), nil, &out)
	return out, err
}

func (c *Client) CreatePerson(ctx context.Context, req PersonRequest) (*Person, error) {
	var out Person
	if err := c.do(ctx, http.MethodPost, "/persons", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetPerson(ctx context.Context, id string) (*Person, error) {
	var out Person
	if err := c.do(ctx, http.MethodGet, "/persons/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePerson(ctx context.Context, id string, req PersonRequest) (*Person, error) {
	var out Person
	if err := c.do(ctx, http.MethodPut, "/persons/"+url.PathEscape(id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// =============================================================================
// ACCOUNTS
// =============================================================================

func (c *Client) ListAccounts(ctx context.Context, personID string) ([]Account, error) {
	var out []Account
	err := c.do(ctx, http.MethodGet, "/persons/"+url.PathEscape(personID)+"/accounts", nil, nil, &out)
	return out, err
}

func (c *Client) CreateAccount(ctx context.Context, personID string, req AccountRequest) (*Account, error) {
	var out Account
	if err := c.do(ctx, http.MethodPost, "/persons/"+url.PathEscape(personID)+"/accounts", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetAccount(ctx context.Context, id string) (*Account, error) {
	var out Account
	if err := c.do(ctx, http.MethodGet, "/accounts/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAccount(ctx context.Context, id string, req AccountRequest) (*Account, error) {
	var out Account
	if err := c.do(ctx, http.MethodPut, "/accounts/"+url.PathEscape(id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAccount removes an account. A 204 response resolves to nil.
func (c *Client) DeleteAccount(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/accounts/"+url.PathEscape(id), nil, nil, nil)
}

// =============================================================================
// MARRIAGES
// =============================================================================

func (c *Client) ListMarriages(ctx context.Context, personID string) ([]Marriage, error) {
	var out []Marriage
	err := c.do(ctx, http.MethodGet, "/persons/"+url.PathEscape(personID)+"/marriages", nil, nil, &out)
	return out, err
}

func (c *Client) CreateMarriage(ctx context.Context, personID string, req MarriageRequest) (*Marriage, error) {
	var out Marriage
	if err := c.do(ctx, http.MethodPost, "/persons/"+url.PathEscape(personID)+"/marriages", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetMarriage(ctx context.Context, id string) (*Marriage, error) {
	var out Marriage
	if err := c.do(ctx, http.MethodGet, "/marriages/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateMarriage(ctx context.Context, id string, req MarriageRequest) (*Marriage, error) {
	var out Marriage
	if err := c.do(ctx, http.MethodPut, "/marriages/"+url.PathEscape(id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteMarriage(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/marriages/"+url.PathEscape(id), nil, nil, nil)
}

// =============================================================================
// EMPLOYERS
// =============================================================================

func (c *Client) ListEmployers(ctx context.Context, page Page) ([]Employer, error) {
	var out []Employer
	err := c.do(ctx, http.MethodGet, "/employers", page.query(), nil, &out)
	return out, err
}

func (c *Client) CreateEmployer(ctx context.Context, req EmployerRequest) (*Employer, error) {
	var out Employer
	if err := c.do(ctx, http.MethodPost, "/employers", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetEmployer(ctx context.Context, id string) (*Employer, error) {
	var out Employer
	if err := c.do(ctx, http.MethodGet, "/employers/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateEmployer(ctx context.Context, id string, req EmployerRequest) (*Employer, error) {
	var out Employer
	if err := c.do(ctx, http.MethodPut, "/employers/"+url.PathEscape(id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteEmployer(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/employers/"+url.PathEscape(id), nil, nil, nil)
}

// =============================================================================
// EMPLOYMENT
// =============================================================================

// ListEmployment returns the employment history for a person.
func (c *Client) ListEmployment(ctx context.Context, personID string) ([]Employment, error) {
	q := url.Values{}
	q.Set("person_id", personID)
	var out []Employment
	err := c.do(ctx, http.MethodGet, "/employment", q, nil, &out)
	return out, err
}

func (c *Client) CreateEmployment(ctx context.Context, req EmploymentRequest) (*Employment, error) {
	var out Employment
	if err := c.do(ctx, http.MethodPost, "/employment", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetEmployment(ctx context.Context, id string) (*Employment, error) {
	var out Employment
	if err := c.do(ctx, http.MethodGet, "/employment/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateEmployment(ctx context.Context, id string, req EmploymentRequest) (*Employment, error) {
	var out Employment
	if err := c.do(ctx, http.MethodPut, "/employment/"+url.PathEscape(id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteEmployment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/employment/"+url.PathEscape(id), nil, nil, nil)
}

// =============================================================================
// INCOME
// =============================================================================

// ListIncome returns income records for an employment.
func (c *Client) ListIncome(ctx context.Context, employmentID string) ([]Income, error) {
	q := url.Values{}
	q.Set("employment_id", employmentID)
	var out []Income
	err := c.do(ctx, http.MethodGet, "/income", q, nil, &out)
	return out, err
}

func (c *Client) CreateIncome(ctx context.Context, req IncomeRequest) (*Income, error) {
	var out Income
	if err := c.do(ctx, http.MethodPost, "/income", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetIncome(ctx context.Context, id string) (*Income, error) {
	var out Income
	if err := c.do(ctx, http.MethodGet, "/income/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateIncome(ctx context.Context, id string, req IncomeRequest) (*Income, error) {
	var out Income
	if err := c.do(ctx, http.MethodPut, "/income/"+url.PathEscape(id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteIncome(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/income/"+url.PathEscape(id), nil, nil, nil)
}

// =============================================================================
// CONTRIBUTION LIMITS (read-only)
// =============================================================================

// ListLimitYears returns the years with published limits, newest first.
func (c *Client) ListLimitYears(ctx context.Context) ([]int, error) {
	var out struct {
		Years []int `json:"years"`
	}
	if err := c.do(ctx, http.MethodGet, "/limits/years", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.Years, nil
}

// GetLimits returns all published limits for a year.
func (c *Client) GetLimits(ctx context.Context, year int) ([]Limits, error) {
	var out []Limits
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/limits/%d", year), nil, nil, &out)
	return out, err
}

// GetLimitsForAccountType returns the limits for one year and account type.
func (c *Client) GetLimitsForAccountType(ctx context.Context, year int, accountType string) (*Limits, error) {
	var out Limits
	path := fmt.Sprintf("/limits/%d/%s", year, url.PathEscape(accountType))
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
