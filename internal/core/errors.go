package core

import "errors"

var (
	// ErrAlreadyExists is returned by a conditional insert that lost to an
	// existing record. It is an expected outcome, not a fault.
	ErrAlreadyExists = errors.New("already exists")

	// ErrNotFound is returned by point lookups for absent keys.
	ErrNotFound = errors.New("not found")
)
