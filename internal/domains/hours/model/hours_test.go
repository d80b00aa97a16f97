package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func weekdaySchedule() *LibraryHours {
	return &LibraryHours{
		OpenTime:    "08:00",
		CloseTime:   "17:00",
		WorkingDays: "MON,TUE,WED,THU,FRI",
		Active:      true,
	}
}

// 2026-08-24 is a Monday
func mondayAt(hour, minute int) time.Time {
	return time.Date(2026, 8, 24, hour, minute, 0, 0, time.UTC)
}

func TestIsOpenAt(t *testing.T) {
	hours := weekdaySchedule()

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"monday before open", mondayAt(7, 0), false},
		{"monday at open", mondayAt(8, 0), true},
		{"monday mid-morning", mondayAt(9, 30), true},
		{"monday one minute before close", mondayAt(16, 59), true},
		{"monday at close", mondayAt(17, 0), false},
		{"monday after close", mondayAt(20, 15), false},
		{"saturday is not a working day", mondayAt(10, 0).AddDate(0, 0, 5), false},
		{"sunday is not a working day", mondayAt(10, 0).AddDate(0, 0, 6), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hours.IsOpenAt(tt.at))
		})
	}
}

func TestIsOpenAtWithSpacesInWorkingDays(t *testing.T) {
	hours := weekdaySchedule()
	hours.WorkingDays = "MON, TUE, WED"

	assert.True(t, hours.IsOpenAt(mondayAt(10, 0)))
}

func TestIsOpenAtBadTimeFormat(t *testing.T) {
	hours := weekdaySchedule()
	hours.OpenTime = "8am"

	assert.False(t, hours.IsOpenAt(mondayAt(10, 0)))
}

func TestWeekdayCode(t *testing.T) {
	assert.Equal(t, "MON", WeekdayCode(time.Monday))
	assert.Equal(t, "SUN", WeekdayCode(time.Sunday))
}

func TestIsValidWeekdayCode(t *testing.T) {
	assert.True(t, IsValidWeekdayCode("WED"))
	assert.False(t, IsValidWeekdayCode("wed"))
	assert.False(t, IsValidWeekdayCode("FUNDAY"))
}
