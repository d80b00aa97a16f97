package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/entry/model"
)

// ServiceInterface tracks each student's entry/exit lifecycle:
// Outside -> Inside on a recorded entry, Inside -> Outside on exit.
type ServiceInterface interface {
	// RecordEntry opens a visit. Fails with model.ErrAlreadyInside
	// when the student already has an open entry.
	RecordEntry(ctx context.Context, studentID uuid.UUID, at time.Time, method string, captureRef *string) (*model.EntryResponse, error)

	// RecordExit closes the open visit. Fails with model.ErrNotInside
	// when the student has no open entry.
	RecordExit(ctx context.Context, studentID uuid.UUID, at time.Time, captureRef *string) (*model.EntryResponse, error)

	// ForceExit closes a specific entry (librarian action)
	ForceExit(ctx context.Context, entryID uuid.UUID, at time.Time) (*model.EntryResponse, error)

	// ListCurrentlyInside returns all open entries
	ListCurrentlyInside(ctx context.Context) ([]model.EntryResponse, error)

	// CountInside returns the number of students currently inside
	CountInside(ctx context.Context) (int, error)

	// List returns visit history with filters
	List(ctx context.Context, filter model.ListEntriesRequest) ([]model.EntryResponse, int, error)

	// AutoExitAll closes every open entry, used when the library closes.
	// Returns the number of entries closed.
	AutoExitAll(ctx context.Context, at time.Time) (int, error)
}
