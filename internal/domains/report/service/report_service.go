package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"library-backend/internal/domains/report/model"
	"library-backend/internal/domains/report/repository"
	"library-backend/pkg/logger"
)

// ServiceInterface is the reporting business logic
type ServiceInterface interface {
	Summary(ctx context.Context) (*model.SummaryReport, error)
	DepartmentMetrics(ctx context.Context) ([]model.DepartmentMetric, error)
	ExportBorrowRecords(ctx context.Context, from, to time.Time) (*excelize.File, error)
}

type ReportService struct {
	repo repository.RepositoryInterface
}

// NewService creates a new report service
func NewService(repo repository.RepositoryInterface) ServiceInterface {
	return &ReportService{
		repo: repo,
	}
}

// Summary implements ServiceInterface.Summary. Individual aggregates
// degrade to zero on failure so one broken query does not blank the
// whole dashboard.
func (s *ReportService) Summary(ctx context.Context) (*model.SummaryReport, error) {
	now := time.Now()
	report := model.SummaryReport{
		OutstandingFines: decimal.Zero,
		CollectedFines:   decimal.Zero,
		GeneratedAt:      now,
	}

	var err error
	if report.TotalStudents, report.ActiveStudents, err = s.repo.CountStudents(ctx); err != nil {
		logger.Warn("summary: student counts unavailable", map[string]interface{}{"error": err.Error()})
	}
	if report.TotalBooks, report.TotalCopies, report.AvailableCopies, err = s.repo.CountBooks(ctx); err != nil {
		logger.Warn("summary: book counts unavailable", map[string]interface{}{"error": err.Error()})
	}
	if report.ActiveLoans, report.OverdueLoans, err = s.repo.CountLoans(ctx, now); err != nil {
		logger.Warn("summary: loan counts unavailable", map[string]interface{}{"error": err.Error()})
	}
	if report.StudentsInside, err = s.repo.CountInside(ctx); err != nil {
		logger.Warn("summary: inside count unavailable", map[string]interface{}{"error": err.Error()})
	}
	if report.OutstandingFines, report.CollectedFines, err = s.repo.SumFines(ctx); err != nil {
		logger.Warn("summary: fine totals unavailable", map[string]interface{}{"error": err.Error()})
		report.OutstandingFines = decimal.Zero
		report.CollectedFines = decimal.Zero
	}

	return &report, nil
}

// DepartmentMetrics implements ServiceInterface.DepartmentMetrics
func (s *ReportService) DepartmentMetrics(ctx context.Context) ([]model.DepartmentMetric, error) {
	return s.repo.DepartmentMetrics(ctx, time.Now())
}

// ExportBorrowRecords implements ServiceInterface.ExportBorrowRecords
func (s *ReportService) ExportBorrowRecords(ctx context.Context, from, to time.Time) (*excelize.File, error) {
	records, err := s.repo.BorrowExportRows(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return buildBorrowExcelFile(records)
}

func buildBorrowExcelFile(records []model.BorrowExportRow) (*excelize.File, error) {
	f := excelize.NewFile()

	sheetName := "Borrow records"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{
		"Record ID",
		"Student Code",
		"Student Name",
		"Book Title",
		"ISBN",
		"Borrow Date",
		"Due Date",
		"Returned Date",
		"Status",
		"Fine Amount",
		"Fine Paid",
	}

	for colIdx, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
	})
	if err == nil {
		f.SetCellStyle(sheetName, "A1", "K1", headerStyle)
	}

	const dateLayout = "2006-01-02 15:04"

	for i, r := range records {
		rowNum := i + 2

		cell := func(col int) string {
			name, _ := excelize.CoordinatesToCellName(col, rowNum)
			return name
		}

		f.SetCellValue(sheetName, cell(1), r.RecordID.String())
		f.SetCellValue(sheetName, cell(2), r.StudentCode)
		f.SetCellValue(sheetName, cell(3), r.StudentName)
		f.SetCellValue(sheetName, cell(4), r.BookTitle)
		f.SetCellValue(sheetName, cell(5), r.ISBN)
		f.SetCellValue(sheetName, cell(6), r.BorrowDate.Format(dateLayout))
		f.SetCellValue(sheetName, cell(7), r.DueDate.Format(dateLayout))
		if r.ReturnedDate != nil {
			f.SetCellValue(sheetName, cell(8), r.ReturnedDate.Format(dateLayout))
		}
		f.SetCellValue(sheetName, cell(9), r.Status)
		f.SetCellValue(sheetName, cell(10), r.FineAmount.String())
		f.SetCellValue(sheetName, cell(11), r.FinePaid)
	}

	if len(records) == 0 {
		f.SetCellValue(sheetName, "A2", "No records in the selected period")
	}

	return f, nil
}
