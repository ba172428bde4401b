package client

import "testing"

func TestKeys_StructuralEquality(t *testing.T) {
	// Same inputs always produce value-equal keys
	cases := []struct{ a, b Key }{
		{PersonsKey(), PersonsKey()},
		{PersonKey("per-1"), PersonKey("per-1")},
		{MarriagesKey("per-1"), MarriagesKey("per-1")},
		{EmployerKey("emp-9"), EmployerKey("emp-9")},
		{LimitsForAccountTypeKey(2024, "401K"), LimitsForAccountTypeKey(2024, "401K")},
	}
	for _, c := range cases {
		if !c.a.Equal(c.b) {
			t.Errorf("expected %v == %v", c.a, c.b)
		}
	}

	if PersonKey("per-1").Equal(PersonKey("per-2")) {
		t.Error("distinct ids must produce distinct keys")
	}
	if PersonsKey().Equal(PersonKey("per-1")) {
		t.Error("keys of different length must not be equal")
	}
}

func TestKeys_Hierarchy(t *testing.T) {
	// Broad keys are prefixes of narrower keys in the same family
	if !EmployerKey("emp-1").HasPrefix(EmployersKey()) {
		t.Error("employer detail should sit under the employers root")
	}
	if !AccountsKey("per-1").HasPrefix(PersonKey("per-1")) {
		t.Error("person accounts should sit under the person detail key")
	}
	if !LimitsForAccountTypeKey(2024, "IRA").HasPrefix(LimitsKey(2024)) {
		t.Error("per-type limits should sit under that year's key")
	}
	if !LimitsKey(2024).HasPrefix(LimitsRootKey()) {
		t.Error("year limits should sit under the limits root")
	}
	if !LimitYearsKey().HasPrefix(LimitsRootKey()) {
		t.Error("the years listing should sit under the limits root")
	}
	if !EmploymentByPersonKey("per-1").HasPrefix(EmploymentRootKey()) {
		t.Error("per-person employment should sit under the employment root")
	}
	if !EmploymentKey("job-1").HasPrefix(EmploymentRootKey()) {
		t.Error("employment detail should sit under the employment root")
	}
	if !IncomeByEmploymentKey("job-1").HasPrefix(IncomeRootKey()) {
		t.Error("per-employment income should sit under the income root")
	}

	// Distinct families do not overlap
	if MarriageKey("mar-1").HasPrefix(PersonsKey()) {
		t.Error("marriage detail must not sit under the persons root")
	}
	if EmploymentByPersonKey("per-1").HasPrefix(PersonKey("per-1")) {
		t.Error("employment family is rooted at employment, not persons")
	}
}
