package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SetHoursRequest replaces the weekly schedule
type SetHoursRequest struct {
	OpenTime    string   `json:"open_time"`
	CloseTime   string   `json:"close_time"`
	WorkingDays []string `json:"working_days"`
}

// Validate validates SetHoursRequest
func (r SetHoursRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OpenTime,
			validation.Required.Error("open time is required"),
			validation.Date(TimeOfDayLayout).Error("open time must be in HH:MM format"),
		),
		validation.Field(&r.CloseTime,
			validation.Required.Error("close time is required"),
			validation.Date(TimeOfDayLayout).Error("close time must be in HH:MM format"),
		),
		validation.Field(&r.WorkingDays,
			validation.Required.Error("working days must not be empty"),
			validation.Each(validation.By(validateWeekdayCode)),
		),
	)
}

func validateWeekdayCode(value interface{}) error {
	code, _ := value.(string)
	if !IsValidWeekdayCode(strings.ToUpper(strings.TrimSpace(code))) {
		return ErrInvalidWorkingDay
	}
	return nil
}

// NormalizedWorkingDays returns the CSV form stored in the database
func (r SetHoursRequest) NormalizedWorkingDays() string {
	days := make([]string, 0, len(r.WorkingDays))
	for _, d := range r.WorkingDays {
		days = append(days, strings.ToUpper(strings.TrimSpace(d)))
	}
	return strings.Join(days, ",")
}

// HoursResponse is the schedule as returned to clients
type HoursResponse struct {
	ID          string    `json:"id"`
	OpenTime    string    `json:"open_time"`
	CloseTime   string    `json:"close_time"`
	WorkingDays []string  `json:"working_days"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StatusResponse answers "is the library open right now"
type StatusResponse struct {
	Open        bool     `json:"open"`
	Message     string   `json:"message"`
	OpenTime    string   `json:"open_time,omitempty"`
	CloseTime   string   `json:"close_time,omitempty"`
	WorkingDays []string `json:"working_days,omitempty"`
}

// ToResponse converts the entity to its response DTO
func (h *LibraryHours) ToResponse() HoursResponse {
	return HoursResponse{
		ID:          h.ID.String(),
		OpenTime:    h.OpenTime,
		CloseTime:   h.CloseTime,
		WorkingDays: strings.Split(h.WorkingDays, ","),
		Active:      h.Active,
		CreatedAt:   h.CreatedAt,
		UpdatedAt:   h.UpdatedAt,
	}
}
