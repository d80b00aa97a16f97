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
	// ErrLibrarianNotFound is returned when a librarian id or email is
	// unknown
	ErrLibrarianNotFound = errors.New("librarian not found")

	// ErrEmailExists is returned when creating a librarian with a taken
	// email
	ErrEmailExists = errors.New("email already registered")

	// ErrInvalidCredentials is returned on a failed staff login
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrLibrarianInactive is returned when a deactivated staff account
	// tries to authenticate
	ErrLibrarianInactive = errors.New("librarian account is deactivated")
)

// NewLibrarianNotFoundError creates a detailed not found error
func NewLibrarianNotFoundError(id uuid.UUID) error {
	return fmt.Errorf("%w: id=%s", ErrLibrarianNotFound, id)
}

// IsNotFoundError checks if error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrLibrarianNotFound)
}

// IsConflictError checks if error is a uniqueness conflict
func IsConflictError(err error) bool {
	return errors.Is(err, ErrEmailExists)
}

// IsAuthError checks if error is an authentication failure
func IsAuthError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrLibrarianInactive)
}
