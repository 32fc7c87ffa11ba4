package repository

import "errors"

var (
	// ErrNotFound is returned when a referenced record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when an insert would violate a uniqueness rule
	ErrDuplicate = errors.New("duplicate record")

	// ErrConstraint is returned when an operation would break referential
	// integrity, e.g. deleting a category still referenced by entries
	ErrConstraint = errors.New("constraint violation")
)
