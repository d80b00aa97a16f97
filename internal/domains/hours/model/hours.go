package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Weekday codes stored in the working_days column, comma separated ("MON,TUE,WED").
var weekdayCodes = map[time.Weekday]string{
	time.Monday:    "MON",
	time.Tuesday:   "TUE",
	time.Wednesday: "WED",
	time.Thursday:  "THU",
	time.Friday:    "FRI",
	time.Saturday:  "SAT",
	time.Sunday:    "SUN",
}

// ValidWeekdayCodes lists the accepted working day codes
var ValidWeekdayCodes = []string{"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN"}

// IsValidWeekdayCode checks a single working day code
func IsValidWeekdayCode(code string) bool {
	for _, valid := range ValidWeekdayCodes {
		if valid == code {
			return true
		}
	}
	return false
}

// WeekdayCode returns the 3-letter code for a weekday ("MON")
func WeekdayCode(d time.Weekday) string {
	return weekdayCodes[d]
}

// LibraryHours is the configured weekly schedule. Replacing the schedule
// deactivates prior rows rather than deleting them, so history is kept.
type LibraryHours struct {
	ID          uuid.UUID  `json:"id"`
	LibrarianID *uuid.UUID `json:"librarian_id,omitempty"`
	OpenTime    string     `json:"open_time"`  // "08:00"
	CloseTime   string     `json:"close_time"` // "17:00"
	WorkingDays string     `json:"working_days"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TimeOfDayLayout is the wire format for open/close times
const TimeOfDayLayout = "15:04"

// minutesOfDay parses "HH:MM" into minutes since midnight.
// Parse errors surface as -1; SetHours validation rejects them up front.
func minutesOfDay(value string) int {
	t, err := time.Parse(TimeOfDayLayout, value)
	if err != nil {
		return -1
	}
	return t.Hour()*60 + t.Minute()
}

// IsOpenAt decides whether the library is open at the given instant.
// Open iff the weekday is a working day and open <= timeOfDay < close
// (half-open interval: the close minute itself is already closed).
func (h *LibraryHours) IsOpenAt(now time.Time) bool {
	today := WeekdayCode(now.Weekday())

	isWorkingDay := false
	for _, d := range strings.Split(h.WorkingDays, ",") {
		if strings.TrimSpace(d) == today {
			isWorkingDay = true
			break
		}
	}
	if !isWorkingDay {
		return false
	}

	open := minutesOfDay(h.OpenTime)
	close := minutesOfDay(h.CloseTime)
	if open < 0 || close < 0 {
		return false
	}

	current := now.Hour()*60 + now.Minute()
	return current >= open && current < close
}
