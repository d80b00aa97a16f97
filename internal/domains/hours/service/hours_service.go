package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/hours/model"
	"library-backend/internal/domains/hours/repository"
	"library-backend/pkg/cache"
	"library-backend/pkg/logger"
)

const (
	hoursCacheKey = "library:hours:active"
	hoursCacheTTL = 30 * time.Second
)

type HoursService struct {
	repo  repository.RepositoryInterface
	cache cache.Cache
}

// NewService creates a new library hours service
func NewService(repo repository.RepositoryInterface, cache cache.Cache) ServiceInterface {
	return &HoursService{
		repo:  repo,
		cache: cache,
	}
}

// SetHours implements ServiceInterface.SetHours
func (s *HoursService) SetHours(ctx context.Context, req model.SetHoursRequest, librarianID *uuid.UUID) (*model.HoursResponse, error) {
	open, err := time.Parse(model.TimeOfDayLayout, req.OpenTime)
	if err != nil {
		return nil, model.ErrInvalidTimeFormat
	}
	close, err := time.Parse(model.TimeOfDayLayout, req.CloseTime)
	if err != nil {
		return nil, model.ErrInvalidTimeFormat
	}
	if !open.Before(close) {
		return nil, model.ErrInvalidTimeRange
	}
	if len(req.WorkingDays) == 0 {
		return nil, model.ErrEmptyWorkingDays
	}

	now := time.Now()
	hours := model.LibraryHours{
		ID:          uuid.New(),
		LibrarianID: librarianID,
		OpenTime:    req.OpenTime,
		CloseTime:   req.CloseTime,
		WorkingDays: req.NormalizedWorkingDays(),
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Replace(ctx, &hours); err != nil {
		return nil, fmt.Errorf("failed to replace library hours: %w", err)
	}

	// Stale schedule must not gate scans; drop the cache entry now.
	if err := s.cache.Delete(ctx, hoursCacheKey); err != nil {
		logger.Warn("failed to invalidate hours cache", map[string]interface{}{"error": err.Error()})
	}

	resp := hours.ToResponse()
	return &resp, nil
}

// GetCurrent implements ServiceInterface.GetCurrent
func (s *HoursService) GetCurrent(ctx context.Context) (*model.HoursResponse, error) {
	hours, err := s.activeHours(ctx)
	if err != nil {
		return nil, err
	}

	resp := hours.ToResponse()
	return &resp, nil
}

// GetStatus implements ServiceInterface.GetStatus
func (s *HoursService) GetStatus(ctx context.Context, now time.Time) (*model.StatusResponse, error) {
	hours, err := s.activeHours(ctx)
	if err != nil {
		if errors.Is(err, model.ErrHoursNotConfigured) {
			return &model.StatusResponse{Open: true, Message: "Library is open"}, nil
		}
		return nil, err
	}

	open := hours.IsOpenAt(now)
	msg := "Library is currently closed"
	if open {
		msg = "Library is currently open"
	}

	resp := hours.ToResponse()
	return &model.StatusResponse{
		Open:        open,
		Message:     msg,
		OpenTime:    resp.OpenTime,
		CloseTime:   resp.CloseTime,
		WorkingDays: resp.WorkingDays,
	}, nil
}

// IsOpen implements ServiceInterface.IsOpen
func (s *HoursService) IsOpen(ctx context.Context, now time.Time) (bool, error) {
	hours, err := s.activeHours(ctx)
	if err != nil {
		// No schedule configured means scans are not gated
		if errors.Is(err, model.ErrHoursNotConfigured) {
			return true, nil
		}
		return false, err
	}

	return hours.IsOpenAt(now), nil
}

// activeHours reads the active schedule through a short-lived cache;
// the policy is consulted on every scan.
func (s *HoursService) activeHours(ctx context.Context) (*model.LibraryHours, error) {
	var cached model.LibraryHours
	found, err := s.cache.Get(ctx, hoursCacheKey, &cached)
	if err != nil {
		logger.Warn("hours cache read failed", map[string]interface{}{"error": err.Error()})
	}
	if found {
		return &cached, nil
	}

	hours, err := s.repo.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, hoursCacheKey, hours, hoursCacheTTL); err != nil {
		logger.Warn("hours cache write failed", map[string]interface{}{"error": err.Error()})
	}

	return hours, nil
}
