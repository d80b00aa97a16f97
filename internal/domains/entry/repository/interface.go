package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/entry/model"
)

// RepositoryInterface is the data access contract for library entries.
// Per-student open-entry uniqueness is enforced at this layer so that
// two concurrent ENTRY scans cannot both succeed.
type RepositoryInterface interface {
	// CreateOpen inserts a new open entry.
	// Returns model.ErrAlreadyInside when an open entry already exists.
	CreateOpen(ctx context.Context, entry *model.LibraryEntry) error

	// CloseOpen closes the student's open entry with the given exit time.
	// Returns model.ErrNotInside when no open entry exists.
	CloseOpen(ctx context.Context, studentID uuid.UUID, exitTime time.Time, captureRef *string) (*model.LibraryEntry, error)

	// CloseByID closes a specific entry (librarian force-exit).
	CloseByID(ctx context.Context, entryID uuid.UUID, exitTime time.Time, captureRef *string) (*model.LibraryEntry, error)

	// CloseAllOpen closes every open entry; used by the auto-exit job.
	// Returns the number of entries closed.
	CloseAllOpen(ctx context.Context, exitTime time.Time, captureRef string) (int, error)

	// GetByID returns a single entry
	GetByID(ctx context.Context, entryID uuid.UUID) (*model.LibraryEntry, error)

	// ListOpen returns all currently-open entries, oldest first
	ListOpen(ctx context.Context) ([]model.LibraryEntry, error)

	// CountOpen returns the number of students currently inside
	CountOpen(ctx context.Context) (int, error)

	// List returns history with optional filters, newest first
	List(ctx context.Context, filter model.ListEntriesRequest) ([]model.LibraryEntry, int, error)
}
