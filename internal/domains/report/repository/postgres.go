package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"library-backend/internal/domains/report/model"
)

// RepositoryInterface defines the reporting queries. Everything here is
// read-only aggregation over the other domains' tables.
type RepositoryInterface interface {
	CountStudents(ctx context.Context) (total int, active int, err error)
	CountBooks(ctx context.Context) (titles int, copies int, available int, err error)
	CountLoans(ctx context.Context, asOf time.Time) (active int, overdue int, err error)
	CountInside(ctx context.Context) (int, error)
	SumFines(ctx context.Context) (outstanding decimal.Decimal, collected decimal.Decimal, err error)
	DepartmentMetrics(ctx context.Context, asOf time.Time) ([]model.DepartmentMetric, error)
	BorrowExportRows(ctx context.Context, from, to time.Time) ([]model.BorrowExportRow, error)
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

// CountStudents implements RepositoryInterface.CountStudents
func (r *postgresRepository) CountStudents(ctx context.Context) (int, int, error) {
	var total, active int
	query := `SELECT COUNT(*), COUNT(*) FILTER (WHERE active) FROM students`
	if err := r.pool.QueryRow(ctx, query).Scan(&total, &active); err != nil {
		return 0, 0, fmt.Errorf("failed to count students: %w", err)
	}
	return total, active, nil
}

// CountBooks implements RepositoryInterface.CountBooks
func (r *postgresRepository) CountBooks(ctx context.Context) (int, int, int, error) {
	var titles, copies, available int
	query := `SELECT COUNT(*), COALESCE(SUM(total_copies), 0), COALESCE(SUM(available_copies), 0) FROM books`
	if err := r.pool.QueryRow(ctx, query).Scan(&titles, &copies, &available); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count books: %w", err)
	}
	return titles, copies, available, nil
}

// CountLoans implements RepositoryInterface.CountLoans
func (r *postgresRepository) CountLoans(ctx context.Context, asOf time.Time) (int, int, error) {
	var active, overdue int
	query := `
		SELECT COUNT(*) FILTER (WHERE returned_date IS NULL),
		       COUNT(*) FILTER (WHERE returned_date IS NULL AND due_date < $1)
		FROM borrow_records
	`
	if err := r.pool.QueryRow(ctx, query, asOf).Scan(&active, &overdue); err != nil {
		return 0, 0, fmt.Errorf("failed to count loans: %w", err)
	}
	return active, overdue, nil
}

// CountInside implements RepositoryInterface.CountInside
func (r *postgresRepository) CountInside(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM library_entries WHERE exit_time IS NULL`
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count students inside: %w", err)
	}
	return count, nil
}

// SumFines implements RepositoryInterface.SumFines
func (r *postgresRepository) SumFines(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	var outstanding, collected decimal.Decimal
	query := `
		SELECT COALESCE(SUM(fine_amount) FILTER (WHERE NOT fine_paid), 0),
		       COALESCE(SUM(fine_amount) FILTER (WHERE fine_paid), 0)
		FROM borrow_records
		WHERE fine_amount > 0
	`
	if err := r.pool.QueryRow(ctx, query).Scan(&outstanding, &collected); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum fines: %w", err)
	}
	return outstanding, collected, nil
}

// DepartmentMetrics implements RepositoryInterface.DepartmentMetrics
func (r *postgresRepository) DepartmentMetrics(ctx context.Context, asOf time.Time) ([]model.DepartmentMetric, error) {
	query := `
		SELECT COALESCE(s.department, 'UNASSIGNED') AS department,
		       COUNT(DISTINCT s.id),
		       COUNT(br.id) FILTER (WHERE br.returned_date IS NULL),
		       COUNT(br.id) FILTER (WHERE br.returned_date IS NULL AND br.due_date < $1),
		       COUNT(le.id)
		FROM students s
		LEFT JOIN borrow_records br ON br.student_id = s.id
		LEFT JOIN library_entries le ON le.student_id = s.id
		GROUP BY COALESCE(s.department, 'UNASSIGNED')
		ORDER BY department ASC
	`

	rows, err := r.pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query department metrics: %w", err)
	}
	defer rows.Close()

	var result []model.DepartmentMetric
	for rows.Next() {
		var m model.DepartmentMetric
		if err := rows.Scan(&m.Department, &m.StudentCount, &m.ActiveLoans, &m.OverdueLoans, &m.TotalVisits); err != nil {
			return nil, fmt.Errorf("failed to scan department metric: %w", err)
		}
		result = append(result, m)
	}

	return result, rows.Err()
}

// BorrowExportRows implements RepositoryInterface.BorrowExportRows
func (r *postgresRepository) BorrowExportRows(ctx context.Context, from, to time.Time) ([]model.BorrowExportRow, error) {
	query := `
		SELECT br.id, s.student_code, s.first_name || ' ' || s.last_name,
		       b.title, b.isbn,
		       br.borrow_date, br.due_date, br.returned_date,
		       CASE
		           WHEN br.returned_date IS NOT NULL THEN 'RETURNED'
		           WHEN br.due_date < NOW() THEN 'OVERDUE'
		           ELSE 'BORROWED'
		       END,
		       br.fine_amount, br.fine_paid
		FROM borrow_records br
		JOIN students s ON s.id = br.student_id
		JOIN books b ON b.id = br.book_id
		WHERE br.borrow_date >= $1 AND br.borrow_date <= $2
		ORDER BY br.borrow_date DESC
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query export rows: %w", err)
	}
	defer rows.Close()

	var result []model.BorrowExportRow
	for rows.Next() {
		var row model.BorrowExportRow
		err := rows.Scan(
			&row.RecordID,
			&row.StudentCode,
			&row.StudentName,
			&row.BookTitle,
			&row.ISBN,
			&row.BorrowDate,
			&row.DueDate,
			&row.ReturnedDate,
			&row.Status,
			&row.FineAmount,
			&row.FinePaid,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan export row: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}
