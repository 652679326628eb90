// Package common defines shared constants and sentinel errors used across
// the asndash services and repositories. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors.
	ErrorInvalidInput = errors.New("invalid input")

	// Returned when deleting a work unit that still has employees.
	ErrorUnitInUse = errors.New("unit has assigned employees")
)
