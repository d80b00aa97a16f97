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
	// ErrBookNotFound is returned when a book id or ISBN is unknown
	ErrBookNotFound = errors.New("book not found")

	// ErrISBNExists is returned when creating a book with a duplicate ISBN
	ErrISBNExists = errors.New("a book with this ISBN already exists")

	// ErrNoCopiesAvailable is returned when all copies are borrowed
	ErrNoCopiesAvailable = errors.New("no copies available for this book")

	// ErrInvalidCopyCount is returned when total copies would drop below
	// the number of copies currently borrowed
	ErrInvalidCopyCount = errors.New("total copies cannot be lower than currently borrowed copies")

	// ErrBookHasActiveBorrows is returned when deleting a book that is
	// still borrowed
	ErrBookHasActiveBorrows = errors.New("book has active borrow records")
)

// NewBookNotFoundError creates a detailed not found error
func NewBookNotFoundError(id uuid.UUID) error {
	return fmt.Errorf("%w: id=%s", ErrBookNotFound, id)
}

// IsNotFoundError checks if error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrBookNotFound)
}

// IsConflictError checks if error is a conflict error
func IsConflictError(err error) bool {
	return errors.Is(err, ErrISBNExists) ||
		errors.Is(err, ErrBookHasActiveBorrows)
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidCopyCount)
}
