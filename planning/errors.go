package planning

import "errors"

// Sentinel errors shared by the store and API layers. Use with errors.Is().
var (
	// ErrNotFound is returned when an update or delete targets a row that
	// does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateID is returned when an insert or update collides with an
	// existing primary key or unique constraint.
	ErrDuplicateID = errors.New("duplicate identifier")

	// ErrInUse is returned when a delete targets a row that other rows
	// still reference.
	ErrInUse = errors.New("record in use")
)
