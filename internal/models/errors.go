package models

import "errors"

// Sentinel errors shared by the repository and service layers. Wrap with
// fmt.Errorf("...: %w", ...) and test with errors.Is.
var (
	// ErrNotFound indicates a referenced order, table, menu item or user
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates a request is missing a required field or
	// carries a value outside its allowed range.
	ErrValidation = errors.New("validation failed")
)
