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
	// ErrStudentNotFound is returned when a student id, email or code
	// is unknown
	ErrStudentNotFound = errors.New("student not found")

	// ErrEmailExists is returned when registering with an email that is
	// already taken
	ErrEmailExists = errors.New("email already registered")

	// ErrStudentCodeExists is returned when registering with a student
	// code that is already taken
	ErrStudentCodeExists = errors.New("student code already registered")

	// ErrInvalidCredentials is returned on a failed login. The message
	// never says which of email/password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrStudentInactive is returned when a deactivated student tries
	// to authenticate
	ErrStudentInactive = errors.New("student account is deactivated")

	// ErrStudentHasRecords is returned when deleting a student who still
	// has borrow or entry history
	ErrStudentHasRecords = errors.New("student has borrow or entry records and cannot be deleted")
)

// NewStudentNotFoundError creates a detailed not found error
func NewStudentNotFoundError(id uuid.UUID) error {
	return fmt.Errorf("%w: id=%s", ErrStudentNotFound, id)
}

// IsNotFoundError checks if error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrStudentNotFound)
}

// IsConflictError checks if error is a uniqueness or integrity conflict
func IsConflictError(err error) bool {
	return errors.Is(err, ErrEmailExists) ||
		errors.Is(err, ErrStudentCodeExists) ||
		errors.Is(err, ErrStudentHasRecords)
}

// IsAuthError checks if error is an authentication failure
func IsAuthError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrStudentInactive)
}
