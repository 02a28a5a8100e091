package domain

import "errors"

var (
	// ErrNotFound is returned when an id does not exist in the target table.
	ErrNotFound = errors.New("record not found")

	// ErrValidation is returned for missing or inconsistent required fields,
	// before any database call is made.
	ErrValidation = errors.New("validation failed")
)
