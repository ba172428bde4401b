package client

import (
	"strconv"
	"strings"
)

// =============================================================================
// CACHE KEYS - Deterministic, hierarchical identifiers for cached queries
// =============================================================================

// Key identifies a cached query as an ordered tuple. Keys built from the
// same inputs are structurally equal, and a broad key (e.g. "employers")
// is a prefix of every narrower key in its family (e.g. an employer
// detail), so a whole family can be invalidated at once.
type Key []string

// Equal reports structural (value) equality.
func (k Key) Equal(other Key) bool {
	if len(k) != len(other) {
		return false
	}
	for i := range k {
		if k[i] != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is a leading sub-tuple of k.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i := range prefix {
		if k[i] != prefix[i] {
			return false
		}
	}
	return true
}

func (k Key) String() string { return strings.Join(k, "/") }

// Key factories, one family per resource.

func PersonsKey() Key               { return Key{"persons"} }
func PersonKey(id string) Key       { return Key{"persons", id} }
func AccountsKey(personID string) Key {
	return Key{"persons", personID, "accounts"}
}
func MarriagesKey(personID string) Key {
	return Key{"persons", personID, "marriages"}
}

func MarriageKey(id string) Key { return Key{"marriages", id} }

func EmployersKey() Key         { return Key{"employers"} }
func EmployerKey(id string) Key { return Key{"employers", id} }

func EmploymentRootKey() Key      { return Key{"employment"} }
func EmploymentKey(id string) Key { return Key{"employment", id} }
func EmploymentByPersonKey(personID string) Key {
	return Key{"employment", "person", personID}
}

func IncomeRootKey() Key      { return Key{"income"} }
func IncomeKey(id string) Key { return Key{"income", id} }
func IncomeByEmploymentKey(employmentID string) Key {
	return Key{"income", "employment", employmentID}
}

func AccountKey(id string) Key { return Key{"accounts", id} }

func LimitsRootKey() Key  { return Key{"limits"} }
func LimitYearsKey() Key  { return Key{"limits", "years"} }
func LimitsKey(year int) Key {
	return Key{"limits", strconv.Itoa(year)}
}
func LimitsForAccountTypeKey(year int, accountType string) Key {
	return Key{"limits", strconv.Itoa(year), accountType}
}
