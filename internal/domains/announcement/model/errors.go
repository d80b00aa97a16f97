package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrAnnouncementNotFound is returned when an announcement id is
	// unknown
	ErrAnnouncementNotFound = errors.New("announcement not found")
)

// NewAnnouncementNotFoundError creates a detailed not found error
func NewAnnouncementNotFoundError(id uuid.UUID) error {
	return fmt.Errorf("%w: id=%s", ErrAnnouncementNotFound, id)
}

// IsNotFoundError checks if error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrAnnouncementNotFound)
}
