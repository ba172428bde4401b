package planning

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSpousalEligibility_Threshold(t *testing.T) {
	// One month short of 10 years: not eligible, just under 100%
	e := SpousalEligibility(119)
	assert.False(t, e.Eligible)
	assert.InDelta(t, 99.17, e.Percent, 0.01)

	// Exactly 10 years: eligible at 100%
	e = SpousalEligibility(120)
	assert.True(t, e.Eligible)
	assert.Equal(t, 100.0, e.Percent)

	// Well past the threshold: percent caps at 100
	e = SpousalEligibility(168)
	assert.True(t, e.Eligible)
	assert.Equal(t, 100.0, e.Percent)
}

func TestSpousalEligibility_Partial(t *testing.T) {
	// 6 years 8 months = 80 months
	e := SpousalEligibility(80)
	assert.False(t, e.Eligible)
	assert.InDelta(t, 66.7, e.Percent, 0.1)
}

func TestSpousalEligibility_NonPositive(t *testing.T) {
	for _, months := range []int{0, -5} {
		e := SpousalEligibility(months)
		assert.False(t, e.Eligible)
		assert.Equal(t, 0.0, e.Percent)
	}
}

func TestMarriage_EndToEnd(t *testing.T) {
	// GIVEN: Marriage dated 2010-06-15, still ongoing
	// WHEN: Evaluated as of 2024-06-15
	// THEN: 14 years 0 months, eligible, 100%
	m := Marriage{
		ID:        "mar-1",
		PersonID:  "per-1",
		StartDate: NewDate(2010, time.June, 15),
		Status:    MarriageMarried,
	}
	asOf := NewDate(2024, time.June, 15)

	d := m.Duration(asOf)
	assert.Equal(t, 14, d.Years)
	assert.Equal(t, 0, d.Months)

	e := m.SpousalEligibility(asOf)
	assert.True(t, e.Eligible)
	assert.Equal(t, 100.0, e.Percent)
}

func TestMarriage_EndedShortOfThreshold(t *testing.T) {
	// GIVEN: Marriage 2002-03-20 to 2008-12-10 (divorced)
	end := NewDate(2008, time.December, 10)
	m := Marriage{
		StartDate: NewDate(2002, time.March, 20),
		EndDate:   &end,
		Status:    MarriageDivorced,
	}

	// asOf is ignored once an end date exists
	d := m.Duration(NewDate(2030, time.January, 1))
	assert.Equal(t, 80, d.TotalMonths)

	e := m.SpousalEligibility(NewDate(2030, time.January, 1))
	assert.False(t, e.Eligible)
	assert.InDelta(t, 66.7, e.Percent, 0.1)
}

func TestEmployment_CurrentAndTenure(t *testing.T) {
	emp := Employment{
		StartDate: NewDate(2018, time.September, 1),
		Type:      EmploymentFullTime,
	}
	assert.True(t, emp.Current())
	assert.Equal(t, 24, emp.Tenure(NewDate(2020, time.September, 1)).TotalMonths)

	end := NewDate(2020, time.August, 31)
	emp.EndDate = &end
	assert.False(t, emp.Current())
	assert.Equal(t, 23, emp.Tenure(NewDate(2099, time.January, 1)).TotalMonths)
}

func TestIncome_TotalCompensation(t *testing.T) {
	inc := EmploymentIncome{
		TaxYear: 2024,
		Salary:  decimal.NewFromInt(150000),
		Bonus:   decimal.NewFromInt(20000),
		Other:   decimal.NewFromFloat(1234.56),
	}
	assert.True(t, inc.TotalCompensation().Equal(decimal.NewFromFloat(171234.56)))
}

func TestContributionLimits_CatchUp(t *testing.T) {
	limits := ContributionLimits{
		Year:         2024,
		AccountType:  Account401K,
		BaseLimit:    decimal.NewFromInt(23000),
		CatchUpLimit: decimal.NewFromInt(7500),
		CatchUpAge:   50,
	}
	assert.True(t, limits.LimitFor(49).Equal(decimal.NewFromInt(23000)))
	assert.True(t, limits.LimitFor(50).Equal(decimal.NewFromInt(30500)))
}

func TestPerson_Age(t *testing.T) {
	p := Person{BirthDate: NewDate(1974, time.July, 2)}
	assert.Equal(t, 49, p.Age(NewDate(2024, time.July, 1)))
	assert.Equal(t, 50, p.Age(NewDate(2024, time.July, 2)))
}
