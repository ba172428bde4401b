/*
Package sqlite provides the SQLite-backed store for the retirement planner.

PURPOSE:
  Persists all planning entities (persons, marriages, employers, employment,
  income, accounts, contribution limits). In production the same patterns
  apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  persons:             Planning subjects
  marriages:           Marriage records per person
  employers:           Referenced organizations
  employment:          Person-to-employer spans
  employment_income:   Compensation per employment and tax year
  accounts:            Retirement accounts per person
  contribution_limits: Published IRS reference data (year + account type)

DATE/MONEY STORAGE:
  Calendar dates are stored as YYYY-MM-DD text, timestamps as RFC3339.
  Money values are stored as decimal strings, never floats.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so readers don't block
  and crash recovery is cleaner.

USAGE:
  store, err := sqlite.New("./data/planner.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). Use ":memory:" for tests.
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/xmljim/retirement-manager/planning"
)

// Store implements persistence for all planning entities using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS persons (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		birth_date TEXT NOT NULL,
		filing_status TEXT NOT NULL,
		state TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS marriages (
		id TEXT PRIMARY KEY,
		person_id TEXT NOT NULL REFERENCES persons(id),
		spouse_name TEXT,
		start_date TEXT NOT NULL,
		end_date TEXT,
		status TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_marriages_person
		ON marriages(person_id, start_date);

	CREATE TABLE IF NOT EXISTS employers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		ein TEXT,
		address TEXT,
		city TEXT,
		state TEXT,
		zip TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS employment (
		id TEXT PRIMARY KEY,
		person_id TEXT NOT NULL REFERENCES persons(id),
		employer_id TEXT NOT NULL REFERENCES employers(id),
		start_date TEXT NOT NULL,
		end_date TEXT,
		employment_type TEXT NOT NULL,
		plan_eligible INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_employment_person
		ON employment(person_id, start_date);
	CREATE INDEX IF NOT EXISTS idx_employment_employer
		ON employment(employer_id);

	CREATE TABLE IF NOT EXISTS employment_income (
		id TEXT PRIMARY KEY,
		employment_id TEXT NOT NULL REFERENCES employment(id),
		tax_year INTEGER NOT NULL,
		salary TEXT NOT NULL,
		bonus TEXT NOT NULL,
		other TEXT NOT NULL,
		w2_wages TEXT,
		created_at TEXT NOT NULL
	);

	-- One income record per employment and tax year
	CREATE UNIQUE INDEX IF NOT EXISTS idx_income_employment_year
		ON employment_income(employment_id, tax_year);

	CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		person_id TEXT NOT NULL REFERENCES persons(id),
		account_type TEXT NOT NULL,
		name TEXT NOT NULL,
		institution TEXT,
		balance TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_accounts_person
		ON accounts(person_id);

	CREATE TABLE IF NOT EXISTS contribution_limits (
		year INTEGER NOT NULL,
		account_type TEXT NOT NULL,
		base_limit TEXT NOT NULL,
		catch_up_limit TEXT NOT NULL,
		catch_up_age INTEGER NOT NULL,
		PRIMARY KEY (year, account_type)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Reset clears all data. Development and test use only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{
		"employment_income", "employment", "accounts", "marriages",
		"employers", "persons", "contribution_limits",
	}
	for _, t := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+t); err != nil {
			return fmt.Errorf("failed to reset %s: %w", t, err)
		}
	}
	return nil
}

// =============================================================================
// LIST OPTIONS - Pagination and sorting
// =============================================================================

// ListOptions carries pagination (zero-based page index) and an optional
// sort expression of the form "column" or "column,desc".
type ListOptions struct {
	Page int
	Size int
	Sort string
}

// orderClause builds a safe ORDER BY from a sort expression, restricted to
// the allowed column set. Unknown columns fall back to the default.
func orderClause(sort string, allowed map[string]bool, def string) string {
	column := def
	direction := "ASC"

	if sort != "" {
		parts := strings.SplitN(sort, ",", 2)
		if allowed[parts[0]] {
			column = parts[0]
		}
		if len(parts) == 2 && strings.EqualFold(parts[1], "desc") {
			direction = "DESC"
		}
	}
	return fmt.Sprintf(" ORDER BY %s %s", column, direction)
}

// limitClause builds LIMIT/OFFSET from page and size. Size <= 0 means no
// pagination.
func limitClause(opts ListOptions) string {
	if opts.Size <= 0 {
		return ""
	}
	page := opts.Page
	if page < 0 {
		page = 0
	}
	return fmt.Sprintf(" LIMIT %d OFFSET %d", opts.Size, page*opts.Size)
}

// =============================================================================
// PERSON STORE
// =============================================================================

// CreatePerson inserts a new person.
func (s *Store) CreatePerson(ctx context.Context, p planning.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO persons (id, first_name, last_name, birth_date, filing_status, state, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.FirstName, p.LastName, p.BirthDate.String(), p.FilingStatus,
		nullString(p.State), now, now,
	)
	if isUniqueConstraintError(err) {
		return planning.ErrDuplicateID
	}
	return err
}

// UpdatePerson mutates an existing person.
func (s *Store) UpdatePerson(ctx context.Context, p planning.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE persons
		SET first_name = ?, last_name = ?, birth_date = ?, filing_status = ?, state = ?, updated_at = ?
		WHERE id = ?`,
		p.FirstName, p.LastName, p.BirthDate.String(), p.FilingStatus,
		nullString(p.State), time.Now().UTC().Format(time.RFC3339), p.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// GetPerson retrieves a person by ID. Returns (nil, nil) when not found.
func (s *Store) GetPerson(ctx context.Context, id string) (*planning.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, first_name, last_name, birth_date, filing_status, state, created_at, updated_at FROM persons WHERE id = ?",
		id,
	)
	p, err := scanPerson(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPersons returns persons, paginated.
func (s *Store) ListPersons(ctx context.Context, opts ListOptions) ([]planning.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed := map[string]bool{"last_name": true, "first_name": true, "birth_date": true, "created_at": true}
	query := "SELECT id, first_name, last_name, birth_date, filing_status, state, created_at, updated_at FROM persons" +
		orderClause(opts.Sort, allowed, "last_name") + limitClause(opts)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var persons []planning.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		persons = append(persons, p)
	}
	return persons, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(row rowScanner) (planning.Person, error) {
	var (
		p                    planning.Person
		birthDate            string
		state                sql.NullString
		createdAt, updatedAt string
	)
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &birthDate, &p.FilingStatus, &state, &createdAt, &updatedAt)
	if err != nil {
		return p, err
	}
	p.BirthDate, _ = planning.ParseDate(birthDate)
	p.State = state.String
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return p, nil
}

// =============================================================================
// MARRIAGE STORE
// =============================================================================

// CreateMarriage inserts a new marriage.
func (s *Store) CreateMarriage(ctx context.Context, m planning.Marriage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO marriages (id, person_id, spouse_name, start_date, end_date, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.PersonID, nullString(m.SpouseName), m.StartDate.String(),
		nullDate(m.EndDate), m.Status, time.Now().UTC().Format(time.RFC3339),
	)
	if isUniqueConstraintError(err) {
		return planning.ErrDuplicateID
	}
	return err
}

// UpdateMarriage mutates an existing marriage.
func (s *Store) UpdateMarriage(ctx context.Context, m planning.Marriage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE marriages
		SET spouse_name = ?, start_date = ?, end_date = ?, status = ?
		WHERE id = ?`,
		nullString(m.SpouseName), m.StartDate.String(), nullDate(m.EndDate), m.Status, m.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// GetMarriage retrieves a marriage by ID. Returns (nil, nil) when not found.
func (s *Store) GetMarriage(ctx context.Context, id string) (*planning.Marriage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, person_id, spouse_name, start_date, end_date, status, created_at FROM marriages WHERE id = ?",
		id,
	)
	m, err := scanMarriage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMarriagesByPerson returns marriages for a person, earliest first.
func (s *Store) ListMarriagesByPerson(ctx context.Context, personID string) ([]planning.Marriage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, person_id, spouse_name, start_date, end_date, status, created_at FROM marriages WHERE person_id = ? ORDER BY start_date",
		personID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var marriages []planning.Marriage
	for rows.Next() {
		m, err := scanMarriage(rows)
		if err != nil {
			return nil, err
		}
		marriages = append(marriages, m)
	}
	return marriages, rows.Err()
}

// DeleteMarriage removes a marriage.
func (s *Store) DeleteMarriage(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM marriages WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanMarriage(row rowScanner) (planning.Marriage, error) {
	var (
		m                    planning.Marriage
		spouseName           sql.NullString
		startDate, createdAt string
		endDate              sql.NullString
	)
	err := row.Scan(&m.ID, &m.PersonID, &spouseName, &startDate, &endDate, &m.Status, &createdAt)
	if err != nil {
		return m, err
	}
	m.SpouseName = spouseName.String
	m.StartDate, _ = planning.ParseDate(startDate)
	m.EndDate = parseNullDate(endDate)
	m.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return m, nil
}

// =============================================================================
// EMPLOYER STORE
// =============================================================================

// CreateEmployer inserts a new employer.
func (s *Store) CreateEmployer(ctx context.Context, e planning.Employer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employers (id, name, ein, address, city, state, zip, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, nullString(e.EIN), nullString(e.Address), nullString(e.City),
		nullString(e.State), nullString(e.Zip), time.Now().UTC().Format(time.RFC3339),
	)
	if isUniqueConstraintError(err) {
		return planning.ErrDuplicateID
	}
	return err
}

// UpdateEmployer mutates an existing employer.
func (s *Store) UpdateEmployer(ctx context.Context, e planning.Employer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE employers
		SET name = ?, ein = ?, address = ?, city = ?, state = ?, zip = ?
		WHERE id = ?`,
		e.Name, nullString(e.EIN), nullString(e.Address), nullString(e.City),
		nullString(e.State), nullString(e.Zip), e.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// GetEmployer retrieves an employer by ID. Returns (nil, nil) when not found.
func (s *Store) GetEmployer(ctx context.Context, id string) (*planning.Employer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, ein, address, city, state, zip, created_at FROM employers WHERE id = ?",
		id,
	)
	e, err := scanEmployer(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListEmployers returns employers, paginated.
func (s *Store) ListEmployers(ctx context.Context, opts ListOptions) ([]planning.Employer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed := map[string]bool{"name": true, "city": true, "state": true, "created_at": true}
	query := "SELECT id, name, ein, address, city, state, zip, created_at FROM employers" +
		orderClause(opts.Sort, allowed, "name") + limitClause(opts)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employers []planning.Employer
	for rows.Next() {
		e, err := scanEmployer(rows)
		if err != nil {
			return nil, err
		}
		employers = append(employers, e)
	}
	return employers, rows.Err()
}

// DeleteEmployer removes an employer. Employers referenced by employment
// rows return ErrInUse.
func (s *Store) DeleteEmployer(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM employers WHERE id = ?", id)
	if isForeignKeyError(err) {
		return planning.ErrInUse
	}
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanEmployer(row rowScanner) (planning.Employer, error) {
	var (
		e                            planning.Employer
		ein, address, city, st, zip  sql.NullString
		createdAt                    string
	)
	err := row.Scan(&e.ID, &e.Name, &ein, &address, &city, &st, &zip, &createdAt)
	if err != nil {
		return e, err
	}
	e.EIN = ein.String
	e.Address = address.String
	e.City = city.String
	e.State = st.String
	e.Zip = zip.String
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return e, nil
}

// =============================================================================
// EMPLOYMENT STORE
// =============================================================================

// CreateEmployment inserts a new employment record.
func (s *Store) CreateEmployment(ctx context.Context, e planning.Employment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employment (id, person_id, employer_id, start_date, end_date, employment_type, plan_eligible, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.PersonID, e.EmployerID, e.StartDate.String(), nullDate(e.EndDate),
		e.Type, boolToInt(e.PlanEligible), time.Now().UTC().Format(time.RFC3339),
	)
	if isUniqueConstraintError(err) {
		return planning.ErrDuplicateID
	}
	return err
}

// UpdateEmployment mutates an existing employment record.
func (s *Store) UpdateEmployment(ctx context.Context, e planning.Employment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE employment
		SET employer_id = ?, start_date = ?, end_date = ?, employment_type = ?, plan_eligible = ?
		WHERE id = ?`,
		e.EmployerID, e.StartDate.String(), nullDate(e.EndDate), e.Type, boolToInt(e.PlanEligible), e.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// GetEmployment retrieves an employment record by ID. Returns (nil, nil)
// when not found.
func (s *Store) GetEmployment(ctx context.Context, id string) (*planning.Employment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, person_id, employer_id, start_date, end_date, employment_type, plan_eligible, created_at FROM employment WHERE id = ?",
		id,
	)
	e, err := scanEmployment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListEmploymentByPerson returns a person's employment history, earliest
// first.
func (s *Store) ListEmploymentByPerson(ctx context.Context, personID string) ([]planning.Employment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, person_id, employer_id, start_date, end_date, employment_type, plan_eligible, created_at FROM employment WHERE person_id = ? ORDER BY start_date",
		personID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []planning.Employment
	for rows.Next() {
		e, err := scanEmployment(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, e)
	}
	return records, rows.Err()
}

// DeleteEmployment removes an employment record. Records referenced by
// income rows return ErrInUse.
func (s *Store) DeleteEmployment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM employment WHERE id = ?", id)
	if isForeignKeyError(err) {
		return planning.ErrInUse
	}
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanEmployment(row rowScanner) (planning.Employment, error) {
	var (
		e                    planning.Employment
		startDate, createdAt string
		endDate              sql.NullString
		planEligible         int
	)
	err := row.Scan(&e.ID, &e.PersonID, &e.EmployerID, &startDate, &endDate, &e.Type, &planEligible, &createdAt)
	if err != nil {
		return e, err
	}
	e.StartDate, _ = planning.ParseDate(startDate)
	e.EndDate = parseNullDate(endDate)
	e.PlanEligible = planEligible != 0
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return e, nil
}

// =============================================================================
// INCOME STORE
// =============================================================================

// CreateIncome inserts a new income record. One record per employment and
// tax year; duplicates return ErrDuplicateID.
func (s *Store) CreateIncome(ctx context.Context, i planning.EmploymentIncome) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employment_income (id, employment_id, tax_year, salary, bonus, other, w2_wages, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		i.ID, i.EmploymentID, i.TaxYear, i.Salary.String(), i.Bonus.String(),
		i.Other.String(), nullDecimal(i.W2Wages), time.Now().UTC().Format(time.RFC3339),
	)
	if isUniqueConstraintError(err) {
		return planning.ErrDuplicateID
	}
	return err
}

// UpdateIncome mutates an existing income record. Moving the record onto a
// tax year that already has one returns ErrDuplicateID.
func (s *Store) UpdateIncome(ctx context.Context, i planning.EmploymentIncome) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE employment_income
		SET tax_year = ?, salary = ?, bonus = ?, other = ?, w2_wages = ?
		WHERE id = ?`,
		i.TaxYear, i.Salary.String(), i.Bonus.String(), i.Other.String(),
		nullDecimal(i.W2Wages), i.ID,
	)
	if isUniqueConstraintError(err) {
		return planning.ErrDuplicateID
	}
	if err != nil {
		return err
	}
	return requireRow(res)
}

// GetIncome retrieves an income record by ID. Returns (nil, nil) when not
// found.
func (s *Store) GetIncome(ctx context.Context, id string) (*planning.EmploymentIncome, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, employment_id, tax_year, salary, bonus, other, w2_wages, created_at FROM employment_income WHERE id = ?",
		id,
	)
	i, err := scanIncome(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// ListIncomeByEmployment returns income records for an employment, newest
// tax year first.
func (s *Store) ListIncomeByEmployment(ctx context.Context, employmentID string) ([]planning.EmploymentIncome, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, employment_id, tax_year, salary, bonus, other, w2_wages, created_at FROM employment_income WHERE employment_id = ? ORDER BY tax_year DESC",
		employmentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []planning.EmploymentIncome
	for rows.Next() {
		i, err := scanIncome(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, i)
	}
	return records, rows.Err()
}

// DeleteIncome removes an income record.
func (s *Store) DeleteIncome(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM employment_income WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanIncome(row rowScanner) (planning.EmploymentIncome, error) {
	var (
		i                    planning.EmploymentIncome
		salary, bonus, other string
		w2Wages              sql.NullString
		createdAt            string
	)
	err := row.Scan(&i.ID, &i.EmploymentID, &i.TaxYear, &salary, &bonus, &other, &w2Wages, &createdAt)
	if err != nil {
		return i, err
	}
	i.Salary = mustDecimal(salary)
	i.Bonus = mustDecimal(bonus)
	i.Other = mustDecimal(other)
	if w2Wages.Valid {
		d := mustDecimal(w2Wages.String)
		i.W2Wages = &d
	}
	i.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return i, nil
}

// =============================================================================
// ACCOUNT STORE
// =============================================================================

// CreateAccount inserts a new retirement account.
func (s *Store) CreateAccount(ctx context.Context, a planning.RetirementAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, person_id, account_type, name, institution, balance, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.PersonID, a.Type, a.Name, nullString(a.Institution),
		a.Balance.String(), time.Now().UTC().Format(time.RFC3339),
	)
	if isUniqueConstraintError(err) {
		return planning.ErrDuplicateID
	}
	return err
}

// UpdateAccount mutates an existing account.
func (s *Store) UpdateAccount(ctx context.Context, a planning.RetirementAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE accounts
		SET account_type = ?, name = ?, institution = ?, balance = ?
		WHERE id = ?`,
		a.Type, a.Name, nullString(a.Institution), a.Balance.String(), a.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// GetAccount retrieves an account by ID. Returns (nil, nil) when not found.
func (s *Store) GetAccount(ctx context.Context, id string) (*planning.RetirementAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, person_id, account_type, name, institution, balance, created_at FROM accounts WHERE id = ?",
		id,
	)
	a, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListAccountsByPerson returns a person's accounts.
func (s *Store) ListAccountsByPerson(ctx context.Context, personID string) ([]planning.RetirementAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, person_id, account_type, name, institution, balance, created_at FROM accounts WHERE person_id = ? ORDER BY name",
		personID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []planning.RetirementAccount
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// DeleteAccount removes an account.
func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM accounts WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanAccount(row rowScanner) (planning.RetirementAccount, error) {
	var (
		a           planning.RetirementAccount
		institution sql.NullString
		balance     string
		createdAt   string
	)
	err := row.Scan(&a.ID, &a.PersonID, &a.Type, &a.Name, &institution, &balance, &createdAt)
	if err != nil {
		return a, err
	}
	a.Institution = institution.String
	a.Balance = mustDecimal(balance)
	a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return a, nil
}

// =============================================================================
// CONTRIBUTION LIMITS STORE
// =============================================================================

// SaveLimits upserts a contribution-limit record. Used by seeding only;
// limits are read-only to API clients.
func (s *Store) SaveLimits(ctx context.Context, l planning.ContributionLimits) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contribution_limits (year, account_type, base_limit, catch_up_limit, catch_up_age)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(year, account_type) DO UPDATE SET
			base_limit = excluded.base_limit,
			catch_up_limit = excluded.catch_up_limit,
			catch_up_age = excluded.catch_up_age`,
		l.Year, l.AccountType, l.BaseLimit.String(), l.CatchUpLimit.String(), l.CatchUpAge,
	)
	return err
}

// GetLimits retrieves the limits for a year and account type. Returns
// (nil, nil) when not published.
func (s *Store) GetLimits(ctx context.Context, year int, accountType planning.AccountType) (*planning.ContributionLimits, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT year, account_type, base_limit, catch_up_limit, catch_up_age FROM contribution_limits WHERE year = ? AND account_type = ?",
		year, accountType,
	)
	l, err := scanLimits(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// ListLimitsByYear returns all published limits for a year.
func (s *Store) ListLimitsByYear(ctx context.Context, year int) ([]planning.ContributionLimits, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT year, account_type, base_limit, catch_up_limit, catch_up_age FROM contribution_limits WHERE year = ? ORDER BY account_type",
		year,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var limits []planning.ContributionLimits
	for rows.Next() {
		l, err := scanLimits(rows)
		if err != nil {
			return nil, err
		}
		limits = append(limits, l)
	}
	return limits, rows.Err()
}

// ListLimitYears returns the years with published limits, newest first.
func (s *Store) ListLimitYears(ctx context.Context) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT year FROM contribution_limits ORDER BY year DESC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

func scanLimits(row rowScanner) (planning.ContributionLimits, error) {
	var (
		l                  planning.ContributionLimits
		baseLimit, catchUp string
	)
	err := row.Scan(&l.Year, &l.AccountType, &baseLimit, &catchUp, &l.CatchUpAge)
	if err != nil {
		return l, err
	}
	l.BaseLimit = mustDecimal(baseLimit)
	l.CatchUpLimit = mustDecimal(catchUp)
	return l, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullDate(d *planning.Date) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func parseNullDate(s sql.NullString) *planning.Date {
	if !s.Valid || s.String == "" {
		return nil
	}
	d, err := planning.ParseDate(s.String)
	if err != nil {
		return nil
	}
	return &d
}

func nullDecimal(d *decimal.Decimal) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return planning.ErrNotFound
	}
	return nil
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
