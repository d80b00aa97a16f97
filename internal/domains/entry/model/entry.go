package model

import (
	"time"

	"github.com/google/uuid"
)

// =====================================================
// ENTRY METHOD CONSTANTS
// =====================================================
const (
	EntryMethodQR     = "QR"
	EntryMethodManual = "MANUAL"
	EntryMethodAuto   = "AUTO"
)

// AutoExitCaptureRef marks entries closed by the worker when the
// library closed with students still inside.
const AutoExitCaptureRef = "AUTO_EXIT_LIBRARY_CLOSED"

// LibraryEntry is one visit: opened by an ENTRY scan, closed by an
// EXIT scan (or by the auto-exit job). A student has at most one open
// entry at a time, enforced by a partial unique index on open rows.
type LibraryEntry struct {
	ID              uuid.UUID  `json:"id"`
	StudentID       uuid.UUID  `json:"student_id"`
	EntryTime       time.Time  `json:"entry_time"`
	ExitTime        *time.Time `json:"exit_time,omitempty"`
	EntryMethod     string     `json:"entry_method"`
	EntryCaptureRef *string    `json:"entry_capture_ref,omitempty"`
	ExitCaptureRef  *string    `json:"exit_capture_ref,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// IsOpen reports whether the visit is still in progress
func (e *LibraryEntry) IsOpen() bool {
	return e.ExitTime == nil
}

// Duration returns the visit length. Zero while the entry is open.
func (e *LibraryEntry) Duration() time.Duration {
	if e.ExitTime == nil {
		return 0
	}
	return e.ExitTime.Sub(e.EntryTime)
}

// EntryResponse is the entry as returned to clients
type EntryResponse struct {
	ID              string     `json:"id"`
	StudentID       string     `json:"student_id"`
	EntryTime       time.Time  `json:"entry_time"`
	ExitTime        *time.Time `json:"exit_time,omitempty"`
	EntryMethod     string     `json:"entry_method"`
	DurationMinutes *int64     `json:"duration_minutes,omitempty"`
}

// ToResponse converts the entity to its response DTO
func (e *LibraryEntry) ToResponse() EntryResponse {
	resp := EntryResponse{
		ID:          e.ID.String(),
		StudentID:   e.StudentID.String(),
		EntryTime:   e.EntryTime,
		ExitTime:    e.ExitTime,
		EntryMethod: e.EntryMethod,
	}
	if e.ExitTime != nil {
		minutes := int64(e.Duration() / time.Minute)
		resp.DurationMinutes = &minutes
	}
	return resp
}

// ToResponseList converts a slice of entities
func ToResponseList(entries []LibraryEntry) []EntryResponse {
	result := make([]EntryResponse, 0, len(entries))
	for i := range entries {
		result = append(result, entries[i].ToResponse())
	}
	return result
}

// ListEntriesRequest filters the history listing
type ListEntriesRequest struct {
	StudentID *uuid.UUID `form:"student_id"`
	From      *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To        *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Page      int        `form:"page,default=1"`
	Limit     int        `form:"limit,default=20"`
}
