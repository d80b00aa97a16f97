package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SummaryReport is the dashboard snapshot a librarian sees on login
type SummaryReport struct {
	TotalStudents    int             `json:"total_students"`
	ActiveStudents   int             `json:"active_students"`
	TotalBooks       int             `json:"total_books"`
	TotalCopies      int             `json:"total_copies"`
	AvailableCopies  int             `json:"available_copies"`
	ActiveLoans      int             `json:"active_loans"`
	OverdueLoans     int             `json:"overdue_loans"`
	StudentsInside   int             `json:"students_inside"`
	OutstandingFines decimal.Decimal `json:"outstanding_fines"`
	CollectedFines   decimal.Decimal `json:"collected_fines"`
	GeneratedAt      time.Time       `json:"generated_at"`
}

// DepartmentMetric aggregates lending activity per department
type DepartmentMetric struct {
	Department   string `json:"department"`
	StudentCount int    `json:"student_count"`
	ActiveLoans  int    `json:"active_loans"`
	OverdueLoans int    `json:"overdue_loans"`
	TotalVisits  int    `json:"total_visits"`
}

// BorrowExportRow is one line of the ledger export, denormalized with
// student and book details for the spreadsheet
type BorrowExportRow struct {
	RecordID     uuid.UUID
	StudentCode  string
	StudentName  string
	BookTitle    string
	ISBN         string
	BorrowDate   time.Time
	DueDate      time.Time
	ReturnedDate *time.Time
	Status       string
	FineAmount   decimal.Decimal
	FinePaid     bool
}
