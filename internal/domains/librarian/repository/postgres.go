package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/librarian/model"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{
		pool: pool,
	}
}

const librarianColumns = `id, employee_code, first_name, last_name, email, password_hash, role, active, created_at, updated_at`

func scanLibrarian(row pgx.Row, l *model.Librarian) error {
	return row.Scan(
		&l.ID,
		&l.EmployeeCode,
		&l.FirstName,
		&l.LastName,
		&l.Email,
		&l.PasswordHash,
		&l.Role,
		&l.Active,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
}

// Create implements RepositoryInterface.Create
func (r *postgresRepository) Create(ctx context.Context, librarian *model.Librarian) error {
	query := `
		INSERT INTO librarians (
			id, employee_code, first_name, last_name, email, password_hash,
			role, active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		librarian.ID,
		librarian.EmployeeCode,
		librarian.FirstName,
		librarian.LastName,
		librarian.Email,
		librarian.PasswordHash,
		librarian.Role,
		librarian.Active,
		librarian.CreatedAt,
		librarian.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return model.ErrEmailExists
		}
		return fmt.Errorf("failed to insert librarian: %w", err)
	}

	return nil
}

// GetByID implements RepositoryInterface.GetByID
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Librarian, error) {
	query := `SELECT ` + librarianColumns + ` FROM librarians WHERE id = $1`

	var librarian model.Librarian
	if err := scanLibrarian(r.pool.QueryRow(ctx, query, id), &librarian); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewLibrarianNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get librarian: %w", err)
	}

	return &librarian, nil
}

// GetByEmail implements RepositoryInterface.GetByEmail
func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*model.Librarian, error) {
	query := `SELECT ` + librarianColumns + ` FROM librarians WHERE LOWER(email) = LOWER($1)`

	var librarian model.Librarian
	if err := scanLibrarian(r.pool.QueryRow(ctx, query, email), &librarian); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrLibrarianNotFound
		}
		return nil, fmt.Errorf("failed to get librarian by email: %w", err)
	}

	return &librarian, nil
}

// List implements RepositoryInterface.List
func (r *postgresRepository) List(ctx context.Context) ([]model.Librarian, error) {
	query := `SELECT ` + librarianColumns + ` FROM librarians ORDER BY last_name ASC, first_name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list librarians: %w", err)
	}
	defer rows.Close()

	var result []model.Librarian
	for rows.Next() {
		var l model.Librarian
		if err := scanLibrarian(rows, &l); err != nil {
			return nil, fmt.Errorf("failed to scan librarian: %w", err)
		}
		result = append(result, l)
	}

	return result, rows.Err()
}

// Update implements RepositoryInterface.Update
func (r *postgresRepository) Update(ctx context.Context, librarian *model.Librarian) error {
	query := `
		UPDATE librarians
		SET first_name = $1, last_name = $2, role = $3, active = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := r.pool.Exec(ctx, query,
		librarian.FirstName,
		librarian.LastName,
		librarian.Role,
		librarian.Active,
		librarian.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update librarian: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewLibrarianNotFoundError(librarian.ID)
	}

	return nil
}

// Delete implements RepositoryInterface.Delete
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM librarians WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete librarian: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewLibrarianNotFoundError(id)
	}

	return nil
}
