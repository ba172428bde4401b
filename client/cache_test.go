package client

import "testing"

func TestQueryCache_GetSet(t *testing.T) {
	c := NewQueryCache()

	if _, ok := c.Get(PersonKey("per-1")); ok {
		t.Fatal("empty cache should miss")
	}

	c.Set(PersonKey("per-1"), "alice")
	v, ok := c.Get(PersonKey("per-1"))
	if !ok || v != "alice" {
		t.Fatalf("expected hit with %q, got %v (%v)", "alice", v, ok)
	}

	// Value equality of keys, not identity: a freshly built key hits
	if _, ok := c.Get(Key{"persons", "per-1"}); !ok {
		t.Error("structurally equal key should hit")
	}

	// Last write wins
	c.Set(PersonKey("per-1"), "alice-v2")
	v, _ = c.Get(PersonKey("per-1"))
	if v != "alice-v2" {
		t.Errorf("expected last write to win, got %v", v)
	}
}

func TestQueryCache_InvalidatePrefix(t *testing.T) {
	// GIVEN: Cached entries across two families
	c := NewQueryCache()
	c.Set(EmployersKey(), "list")
	c.Set(EmployerKey("emp-1"), "one")
	c.Set(EmployerKey("emp-2"), "two")
	c.Set(PersonsKey(), "people")

	// WHEN: Invalidating the employers family
	removed := c.InvalidatePrefix(EmployersKey())

	// THEN: The whole family is gone, other families untouched
	if removed != 3 {
		t.Errorf("expected 3 removed, got %d", removed)
	}
	if _, ok := c.Get(EmployerKey("emp-1")); ok {
		t.Error("employer detail should be invalidated")
	}
	if _, ok := c.Get(PersonsKey()); !ok {
		t.Error("persons entry should survive")
	}
}

func TestQueryCache_InvalidateExact(t *testing.T) {
	c := NewQueryCache()
	c.Set(LimitsKey(2024), "limits-2024")
	c.Set(LimitsKey(2023), "limits-2023")

	if !c.Invalidate(LimitsKey(2024)) {
		t.Error("expected an entry to be removed")
	}
	if c.Invalidate(LimitsKey(2024)) {
		t.Error("second invalidation should be a no-op")
	}
	if _, ok := c.Get(LimitsKey(2023)); !ok {
		t.Error("other year should survive exact invalidation")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("expected empty cache after Clear, got %d entries", c.Len())
	}
}
