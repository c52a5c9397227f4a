package core

import "errors"

// Domain error taxonomy. Every registry failure wraps exactly one of these
// sentinels so callers can branch on the kind with errors.Is.
var (
	// ErrValidation is returned for malformed or out-of-range input.
	// Always recoverable by the caller correcting the input.
	ErrValidation = errors.New("validation failed")

	// ErrConflict is returned on uniqueness or state-machine violations,
	// such as a duplicate national id or closing an already-closed incident.
	ErrConflict = errors.New("conflict")

	// ErrNotFound is returned when a referenced entity id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrIntegrity is returned when a broadcast payload's digest does not
	// match the digest recomputed from the payload.
	ErrIntegrity = errors.New("integrity check failed")
)
