package repository

import (
	"context"

	"library-backend/internal/domains/hours/model"
)

// RepositoryInterface is the data access contract for library hours
type RepositoryInterface interface {
	// GetActive returns the current active schedule.
	// Returns model.ErrHoursNotConfigured when none exists.
	GetActive(ctx context.Context) (*model.LibraryHours, error)

	// Replace deactivates all prior schedules and inserts the new one
	// in a single transaction.
	Replace(ctx context.Context, hours *model.LibraryHours) error

	// ListHistory returns all schedules, newest first
	ListHistory(ctx context.Context) ([]model.LibraryHours, error)
}
