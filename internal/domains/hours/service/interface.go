package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/hours/model"
)

// ServiceInterface exposes the library hours policy.
// IsOpen gates every scan, so implementations keep it cheap.
type ServiceInterface interface {
	// SetHours replaces the weekly schedule
	SetHours(ctx context.Context, req model.SetHoursRequest, librarianID *uuid.UUID) (*model.HoursResponse, error)

	// GetCurrent returns the active schedule, or ErrHoursNotConfigured
	GetCurrent(ctx context.Context) (*model.HoursResponse, error)

	// GetStatus reports whether the library is open at the given instant
	GetStatus(ctx context.Context, now time.Time) (*model.StatusResponse, error)

	// IsOpen is the policy check used by the scan gateway.
	// With no configured schedule it answers true (safe fallback).
	IsOpen(ctx context.Context, now time.Time) (bool, error)
}
