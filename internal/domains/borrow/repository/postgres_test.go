package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"library-backend/internal/domains/borrow/model"
)

func TestStatusCondition(t *testing.T) {
	tests := []struct {
		name   string
		status string
		want   string
	}{
		{"borrowed", model.StatusBorrowed, " AND returned_date IS NULL AND due_date >= NOW()"},
		{"overdue", model.StatusOverdue, " AND returned_date IS NULL AND due_date < NOW()"},
		{"active covers borrowed and overdue", model.StatusActive, " AND returned_date IS NULL"},
		{"returned", model.StatusReturned, " AND returned_date IS NOT NULL"},
		{"lowercase accepted", "active", " AND returned_date IS NULL"},
		{"empty means no filter", "", ""},
		{"unknown value ignored", "LOST", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusCondition(tt.status))
		})
	}
}
