package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysLate(t *testing.T) {
	due := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want int64
	}{
		{"returned early", due.Add(-48 * time.Hour), 0},
		{"returned at the deadline", due, 0},
		{"late by one hour", due.Add(time.Hour), 0},
		{"late by 23 hours", due.Add(23 * time.Hour), 0},
		{"late by exactly one day", due.Add(24 * time.Hour), 1},
		{"late by a day and a half", due.Add(36 * time.Hour), 1},
		{"late by three days", due.Add(72 * time.Hour), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysLate(due, tt.at))
		})
	}
}

func TestCalculateFine(t *testing.T) {
	due := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	rate, err := decimal.NewFromString("0.50")
	require.NoError(t, err)

	tests := []struct {
		name       string
		returnedAt time.Time
		want       string
	}{
		{"on time", due.Add(-time.Hour), "0"},
		{"same day late", due.Add(5 * time.Hour), "0"},
		{"one day late", due.Add(24 * time.Hour), "0.5"},
		{"three days late", due.Add(72 * time.Hour), "1.5"},
		{"ten days late", due.Add(240 * time.Hour), "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, err := decimal.NewFromString(tt.want)
			require.NoError(t, err)
			got := CalculateFine(due, tt.returnedAt, rate)
			assert.True(t, want.Equal(got), "want %s, got %s", want, got)
		})
	}
}

func TestEffectiveStatus(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	returned := now.Add(-time.Hour)

	tests := []struct {
		name   string
		record BorrowRecord
		want   string
	}{
		{
			"open record before due date",
			BorrowRecord{Status: StatusBorrowed, DueDate: now.Add(24 * time.Hour)},
			StatusBorrowed,
		},
		{
			"open record past due date",
			BorrowRecord{Status: StatusBorrowed, DueDate: now.Add(-24 * time.Hour)},
			StatusOverdue,
		},
		{
			"open record due exactly now",
			BorrowRecord{Status: StatusBorrowed, DueDate: now},
			StatusBorrowed,
		},
		{
			"returned record past due date stays returned",
			BorrowRecord{Status: StatusReturned, DueDate: now.Add(-24 * time.Hour), ReturnedDate: &returned},
			StatusReturned,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.EffectiveStatus(now))
		})
	}
}
