package model

import "errors"

// ===================================
// DOMAIN ERRORS
// ===================================

var (
	// ErrHoursNotConfigured is returned when no active schedule exists
	ErrHoursNotConfigured = errors.New("library hours not configured")

	// ErrInvalidTimeFormat is returned when open/close time is not HH:MM
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")

	// ErrInvalidTimeRange is returned when open time is not before close time
	ErrInvalidTimeRange = errors.New("open time must be before close time")

	// ErrEmptyWorkingDays is returned when no working days are given
	ErrEmptyWorkingDays = errors.New("working days must not be empty")

	// ErrInvalidWorkingDay is returned for an unknown weekday code
	ErrInvalidWorkingDay = errors.New("invalid working day code, must be one of: MON, TUE, WED, THU, FRI, SAT, SUN")
)

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidTimeFormat) ||
		errors.Is(err, ErrInvalidTimeRange) ||
		errors.Is(err, ErrEmptyWorkingDays) ||
		errors.Is(err, ErrInvalidWorkingDay)
}
