package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ===================================
// DOMAIN ERRORS
// ===================================

var (
	// ErrAlreadyInside is returned when an ENTRY scan arrives for a
	// student who already has an open entry
	ErrAlreadyInside = errors.New("student already has an open library entry")

	// ErrNotInside is returned when an EXIT scan arrives for a student
	// with no open entry
	ErrNotInside = errors.New("no open library entry found for student")

	// ErrEntryNotFound is returned when an entry id is unknown
	ErrEntryNotFound = errors.New("library entry not found")

	// ErrEntryAlreadyClosed is returned when closing an entry twice
	ErrEntryAlreadyClosed = errors.New("library entry already closed")
)

// NewEntryNotFoundError creates a detailed not found error
func NewEntryNotFoundError(id uuid.UUID) error {
	return fmt.Errorf("%w: id=%s", ErrEntryNotFound, id)
}

// IsConflictError checks if error is a state-transition conflict
func IsConflictError(err error) bool {
	return errors.Is(err, ErrAlreadyInside) ||
		errors.Is(err, ErrNotInside) ||
		errors.Is(err, ErrEntryAlreadyClosed)
}

// IsNotFoundError checks if error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrEntryNotFound)
}
