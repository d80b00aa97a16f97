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
	// ErrRecordNotFound is returned when a borrow record id is unknown
	ErrRecordNotFound = errors.New("borrow record not found")

	// ErrAlreadyReturned is returned when a return is requested on a
	// record that already has a returned date
	ErrAlreadyReturned = errors.New("borrow record already returned")

	// ErrBookUnavailable is returned when a borrow is requested and the
	// book has no available copies
	ErrBookUnavailable = errors.New("no copies of this book are available")

	// ErrStudentNotFound is returned when the student referenced by a
	// borrow does not exist
	ErrStudentNotFound = errors.New("student not found")

	// ErrBookNotFound is returned when the book referenced by a borrow
	// does not exist
	ErrBookNotFound = errors.New("book not found")

	// ErrInvalidDueDate is returned when a borrow is created with a due
	// date that is not in the future
	ErrInvalidDueDate = errors.New("due date must be in the future")

	// ErrNegativeFine is returned when a manual fine adjustment carries
	// a negative amount
	ErrNegativeFine = errors.New("fine amount cannot be negative")

	// ErrMaxLoansReached is returned when a student already holds the
	// maximum number of active loans
	ErrMaxLoansReached = errors.New("student has reached the active loan limit")

	// ErrFineAlreadyPaid is returned when marking a fine paid twice
	ErrFineAlreadyPaid = errors.New("fine already marked as paid")
)

// NewRecordNotFoundError creates a detailed not found error
func NewRecordNotFoundError(id uuid.UUID) error {
	return fmt.Errorf("%w: id=%s", ErrRecordNotFound, id)
}

// IsNotFoundError checks if error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrRecordNotFound) ||
		errors.Is(err, ErrStudentNotFound) ||
		errors.Is(err, ErrBookNotFound)
}

// IsConflictError checks if error is a state-transition conflict
func IsConflictError(err error) bool {
	return errors.Is(err, ErrAlreadyReturned) ||
		errors.Is(err, ErrBookUnavailable) ||
		errors.Is(err, ErrMaxLoansReached) ||
		errors.Is(err, ErrFineAlreadyPaid)
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidDueDate) ||
		errors.Is(err, ErrNegativeFine)
}
