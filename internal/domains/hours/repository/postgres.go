package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/hours/model"
	"library-backend/pkg/database"
)

// postgresRepository implements RepositoryInterface
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

const hoursColumns = `id, librarian_id, open_time, close_time, working_days, active, created_at, updated_at`

func scanHours(row pgx.Row, h *model.LibraryHours) error {
	return row.Scan(
		&h.ID,
		&h.LibrarianID,
		&h.OpenTime,
		&h.CloseTime,
		&h.WorkingDays,
		&h.Active,
		&h.CreatedAt,
		&h.UpdatedAt,
	)
}

// GetActive implements RepositoryInterface.GetActive
func (r *postgresRepository) GetActive(ctx context.Context) (*model.LibraryHours, error) {
	query := `
		SELECT ` + hoursColumns + `
		FROM library_hours
		WHERE active = TRUE
		ORDER BY created_at DESC
		LIMIT 1
	`

	var hours model.LibraryHours
	err := scanHours(r.pool.QueryRow(ctx, query), &hours)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrHoursNotConfigured
		}
		return nil, fmt.Errorf("failed to get active library hours: %w", err)
	}

	return &hours, nil
}

// Replace implements RepositoryInterface.Replace
func (r *postgresRepository) Replace(ctx context.Context, hours *model.LibraryHours) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `UPDATE library_hours SET active = FALSE, updated_at = NOW() WHERE active = TRUE`); err != nil {
			return fmt.Errorf("failed to deactivate previous hours: %w", err)
		}

		query := `
			INSERT INTO library_hours (
				id, librarian_id, open_time, close_time, working_days, active, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		_, err := tx.Exec(ctx, query,
			hours.ID,
			hours.LibrarianID,
			hours.OpenTime,
			hours.CloseTime,
			hours.WorkingDays,
			hours.Active,
			hours.CreatedAt,
			hours.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert library hours: %w", err)
		}

		return nil
	})
}

// ListHistory implements RepositoryInterface.ListHistory
func (r *postgresRepository) ListHistory(ctx context.Context) ([]model.LibraryHours, error) {
	query := `
		SELECT ` + hoursColumns + `
		FROM library_hours
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list library hours: %w", err)
	}
	defer rows.Close()

	var result []model.LibraryHours
	for rows.Next() {
		var h model.LibraryHours
		if err := scanHours(rows, &h); err != nil {
			return nil, fmt.Errorf("failed to scan library hours: %w", err)
		}
		result = append(result, h)
	}

	return result, rows.Err()
}
