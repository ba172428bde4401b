/*
sqlite_test.go - Store round-trip and constraint tests

Tests for:
- Entity round-trips (persons, marriages, employment, income, accounts)
- Sentinel errors (not found, duplicate)
- Unique income per employment and tax year
- Contribution limit upserts and year listing
*/
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xmljim/retirement-manager/planning"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func seedPerson(t *testing.T, store *Store, id string) planning.Person {
	t.Helper()
	p := planning.Person{
		ID:           id,
		FirstName:    "Jane",
		LastName:     "Doe",
		BirthDate:    planning.NewDate(1974, time.March, 2),
		FilingStatus: planning.FilingMarriedJointly,
		State:        "CO",
	}
	if err := store.CreatePerson(context.Background(), p); err != nil {
		t.Fatalf("Failed to create person: %v", err)
	}
	return p
}

func TestPersonRoundTrip(t *testing.T) {
	// GIVEN: A stored person
	store := newTestStore(t)
	ctx := context.Background()
	seedPerson(t, store, "person-1")

	// WHEN: Reading the person back
	got, err := store.GetPerson(ctx, "person-1")
	if err != nil {
		t.Fatalf("Failed to get person: %v", err)
	}
	if got == nil {
		t.Fatal("Person not found")
	}

	// THEN: All fields survive the round-trip
	if got.FirstName != "Jane" || got.LastName != "Doe" {
		t.Errorf("Unexpected name: %s %s", got.FirstName, got.LastName)
	}
	if got.BirthDate.String() != "1974-03-02" {
		t.Errorf("Unexpected birth date: %s", got.BirthDate)
	}
	if got.FilingStatus != planning.FilingMarriedJointly {
		t.Errorf("Unexpected filing status: %s", got.FilingStatus)
	}
	if got.State != "CO" {
		t.Errorf("Unexpected state: %s", got.State)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("Timestamps should be set on create")
	}
}

func TestGetPerson_Missing(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetPerson(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != nil {
		t.Error("Expected nil for a missing person")
	}
}

func TestCreatePerson_DuplicateID(t *testing.T) {
	store := newTestStore(t)
	p := seedPerson(t, store, "person-1")

	err := store.CreatePerson(context.Background(), p)
	if !errors.Is(err, planning.ErrDuplicateID) {
		t.Errorf("Expected ErrDuplicateID, got %v", err)
	}
}

func TestUpdatePerson_Missing(t *testing.T) {
	store := newTestStore(t)

	err := store.UpdatePerson(context.Background(), planning.Person{
		ID:           "nope",
		FirstName:    "Jane",
		LastName:     "Doe",
		BirthDate:    planning.NewDate(1974, time.March, 2),
		FilingStatus: planning.FilingSingle,
	})
	if !errors.Is(err, planning.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestMarriageRoundTrip(t *testing.T) {
	// GIVEN: A person with an ended marriage
	store := newTestStore(t)
	ctx := context.Background()
	seedPerson(t, store, "person-1")

	end := planning.NewDate(2008, time.December, 10)
	m := planning.Marriage{
		ID:         "marriage-1",
		PersonID:   "person-1",
		SpouseName: "John Doe",
		StartDate:  planning.NewDate(2002, time.March, 20),
		EndDate:    &end,
		Status:     planning.MarriageDivorced,
	}
	if err := store.CreateMarriage(ctx, m); err != nil {
		t.Fatalf("Failed to create marriage: %v", err)
	}

	// WHEN: Listing by person
	list, err := store.ListMarriagesByPerson(ctx, "person-1")
	if err != nil {
		t.Fatalf("Failed to list marriages: %v", err)
	}

	// THEN: The nullable end date survives
	if len(list) != 1 {
		t.Fatalf("Expected 1 marriage, got %d", len(list))
	}
	got := list[0]
	if got.EndDate == nil || got.EndDate.String() != "2008-12-10" {
		t.Errorf("Unexpected end date: %v", got.EndDate)
	}
	if got.Status != planning.MarriageDivorced {
		t.Errorf("Unexpected status: %s", got.Status)
	}
}

// seedEmploymentWithIncome stores person-1 working at employer-1
// (employment-1) with income records for tax years 2022 and 2023.
// The 2023 record carries W-2 wages of 168500.
func seedEmploymentWithIncome(t *testing.T, store *Store) {
	t.Helper()
	ctx := context.Background()
	seedPerson(t, store, "person-1")

	if err := store.CreateEmployer(ctx, planning.Employer{
		ID:   "employer-1",
		Name: "Acme Corp",
		EIN:  "12-3456789",
	}); err != nil {
		t.Fatalf("Failed to create employer: %v", err)
	}

	if err := store.CreateEmployment(ctx, planning.Employment{
		ID:           "employment-1",
		PersonID:     "person-1",
		EmployerID:   "employer-1",
		StartDate:    planning.NewDate(2015, time.September, 1),
		Type:         planning.EmploymentFullTime,
		PlanEligible: true,
	}); err != nil {
		t.Fatalf("Failed to create employment: %v", err)
	}

	w2 := decimal.NewFromInt(168500)
	for year, salary := range map[int]int64{2022: 140000, 2023: 150000} {
		income := planning.EmploymentIncome{
			ID:           fmt.Sprintf("income-%d", year),
			EmploymentID: "employment-1",
			TaxYear:      year,
			Salary:       decimal.NewFromInt(salary),
			Bonus:        decimal.NewFromInt(20000),
			Other:        decimal.Zero,
		}
		if year == 2023 {
			income.W2Wages = &w2
		}
		if err := store.CreateIncome(ctx, income); err != nil {
			t.Fatalf("Failed to create income for %d: %v", year, err)
		}
	}
}

func TestEmploymentAndIncome(t *testing.T) {
	// GIVEN: A person employed at a stored employer with two income years
	store := newTestStore(t)
	ctx := context.Background()
	seedEmploymentWithIncome(t, store)

	// THEN: Listing returns newest tax year first with exact decimals
	list, err := store.ListIncomeByEmployment(ctx, "employment-1")
	if err != nil {
		t.Fatalf("Failed to list income: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("Expected 2 income records, got %d", len(list))
	}
	if list[0].TaxYear != 2023 || list[1].TaxYear != 2022 {
		t.Errorf("Expected newest first, got %d then %d", list[0].TaxYear, list[1].TaxYear)
	}
	if !list[0].Salary.Equal(decimal.NewFromInt(150000)) {
		t.Errorf("Unexpected salary: %s", list[0].Salary)
	}
	if list[0].W2Wages == nil || !list[0].W2Wages.Equal(decimal.NewFromInt(168500)) {
		t.Errorf("Unexpected W-2 wages: %v", list[0].W2Wages)
	}
	if list[1].W2Wages != nil {
		t.Errorf("Expected nil W-2 wages for 2022, got %v", list[1].W2Wages)
	}

	// AND: A second record for the same tax year is rejected
	err = store.CreateIncome(ctx, planning.EmploymentIncome{
		ID:           "income-dup",
		EmploymentID: "employment-1",
		TaxYear:      2023,
		Salary:       decimal.NewFromInt(1),
		Bonus:        decimal.Zero,
		Other:        decimal.Zero,
	})
	if !errors.Is(err, planning.ErrDuplicateID) {
		t.Errorf("Expected ErrDuplicateID for duplicate tax year, got %v", err)
	}
}

func TestUpdateIncome_DuplicateTaxYear(t *testing.T) {
	// GIVEN: Income records for 2022 and 2023 on the same employment
	store := newTestStore(t)
	ctx := context.Background()
	seedEmploymentWithIncome(t, store)

	// WHEN: Moving the 2022 record onto 2023
	income, err := store.GetIncome(ctx, "income-2022")
	if err != nil || income == nil {
		t.Fatalf("Failed to get income: %v", err)
	}
	income.TaxYear = 2023

	// THEN: The unique index surfaces as the duplicate sentinel
	err = store.UpdateIncome(ctx, *income)
	if !errors.Is(err, planning.ErrDuplicateID) {
		t.Errorf("Expected ErrDuplicateID, got %v", err)
	}
}

func TestDelete_ReferencedRows(t *testing.T) {
	// GIVEN: An employer with employment, and employment with income
	store := newTestStore(t)
	ctx := context.Background()
	seedEmploymentWithIncome(t, store)

	// THEN: Deleting either parent reports the row is in use
	if err := store.DeleteEmployer(ctx, "employer-1"); !errors.Is(err, planning.ErrInUse) {
		t.Errorf("Expected ErrInUse deleting referenced employer, got %v", err)
	}
	if err := store.DeleteEmployment(ctx, "employment-1"); !errors.Is(err, planning.ErrInUse) {
		t.Errorf("Expected ErrInUse deleting referenced employment, got %v", err)
	}

	// AND: Once the children are gone, the deletes succeed bottom-up
	for _, id := range []string{"income-2022", "income-2023"} {
		if err := store.DeleteIncome(ctx, id); err != nil {
			t.Fatalf("Failed to delete income %s: %v", id, err)
		}
	}
	if err := store.DeleteEmployment(ctx, "employment-1"); err != nil {
		t.Errorf("Expected delete to succeed after income removed, got %v", err)
	}
	if err := store.DeleteEmployer(ctx, "employer-1"); err != nil {
		t.Errorf("Expected delete to succeed after employment removed, got %v", err)
	}
}

func TestAccountRoundTrip(t *testing.T) {
	// GIVEN: A person with one account
	store := newTestStore(t)
	ctx := context.Background()
	seedPerson(t, store, "person-1")

	balance := decimal.RequireFromString("250000.50")
	if err := store.CreateAccount(ctx, planning.RetirementAccount{
		ID:          "account-1",
		PersonID:    "person-1",
		Type:        planning.Account401K,
		Name:        "Acme 401(k)",
		Institution: "Fidelity",
		Balance:     balance,
	}); err != nil {
		t.Fatalf("Failed to create account: %v", err)
	}

	// THEN: The decimal balance survives exactly
	got, err := store.GetAccount(ctx, "account-1")
	if err != nil {
		t.Fatalf("Failed to get account: %v", err)
	}
	if got == nil {
		t.Fatal("Account not found")
	}
	if !got.Balance.Equal(balance) {
		t.Errorf("Expected balance %s, got %s", balance, got.Balance)
	}

	// AND: Delete removes it; a second delete reports not found
	if err := store.DeleteAccount(ctx, "account-1"); err != nil {
		t.Fatalf("Failed to delete account: %v", err)
	}
	if err := store.DeleteAccount(ctx, "account-1"); !errors.Is(err, planning.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestLimits_UpsertAndYears(t *testing.T) {
	// GIVEN: A published 2024 401K limit
	store := newTestStore(t)
	ctx := context.Background()

	save := func(year int, base int64) {
		t.Helper()
		err := store.SaveLimits(ctx, planning.ContributionLimits{
			Year:         year,
			AccountType:  planning.Account401K,
			BaseLimit:    decimal.NewFromInt(base),
			CatchUpLimit: decimal.NewFromInt(7500),
			CatchUpAge:   50,
		})
		if err != nil {
			t.Fatalf("Failed to save limits: %v", err)
		}
	}
	save(2024, 23000)
	save(2023, 22500)

	// WHEN: Re-publishing 2024 with a corrected figure
	save(2024, 23500)

	// THEN: The upsert replaced the row instead of adding one
	got, err := store.GetLimits(ctx, 2024, planning.Account401K)
	if err != nil {
		t.Fatalf("Failed to get limits: %v", err)
	}
	if got == nil {
		t.Fatal("Limits not found")
	}
	if !got.BaseLimit.Equal(decimal.NewFromInt(23500)) {
		t.Errorf("Expected upserted base limit 23500, got %s", got.BaseLimit)
	}

	// AND: Years list newest first
	years, err := store.ListLimitYears(ctx)
	if err != nil {
		t.Fatalf("Failed to list years: %v", err)
	}
	if len(years) != 2 || years[0] != 2024 || years[1] != 2023 {
		t.Errorf("Unexpected years: %v", years)
	}
}

func TestListPersons_SortAndPage(t *testing.T) {
	// GIVEN: Three persons
	store := newTestStore(t)
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		p := planning.Person{
			ID:           id,
			FirstName:    "F-" + id,
			LastName:     "L-" + id,
			BirthDate:    planning.NewDate(1980, time.January, 1),
			FilingStatus: planning.FilingSingle,
		}
		if err := store.CreatePerson(ctx, p); err != nil {
			t.Fatalf("Failed to create person %s: %v", id, err)
		}
	}

	// WHEN: Listing sorted descending, one per page
	list, err := store.ListPersons(ctx, ListOptions{Page: 1, Size: 1, Sort: "last_name,desc"})
	if err != nil {
		t.Fatalf("Failed to list persons: %v", err)
	}

	// THEN: The second page holds the middle entry
	if len(list) != 1 {
		t.Fatalf("Expected 1 person, got %d", len(list))
	}
	if list[0].LastName != "L-b" {
		t.Errorf("Expected L-b, got %s", list[0].LastName)
	}

	// AND: An unknown sort column falls back to the default order
	list, err = store.ListPersons(ctx, ListOptions{Sort: "drop table;--"})
	if err != nil {
		t.Fatalf("Failed to list persons: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("Expected 3 persons, got %d", len(list))
	}
	if list[0].LastName != "L-a" {
		t.Errorf("Expected default ascending order, got %s first", list[0].LastName)
	}
}
