package models

import "errors"

var (
	// ErrValidation is returned by Validate and Save when a record is not
	// in a state the API would accept. Nothing is sent in that case.
	ErrValidation = errors.New("validation failed")

	// ErrImmutableField is returned when assigning id, code after the record
	// has an id, or any other field that is fixed once saved.
	ErrImmutableField = errors.New("field is immutable")

	ErrMissingKey     = errors.New("no such field")
	ErrNotImplemented = errors.New("operation not supported for this kind")
)
