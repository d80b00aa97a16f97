package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/student/model"
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

const studentColumns = `id, student_code, first_name, last_name, email, password_hash, department, phone_number, photo_url, active, last_login_at, created_at, updated_at`

func scanStudent(row pgx.Row, s *model.Student) error {
	return row.Scan(
		&s.ID,
		&s.StudentCode,
		&s.FirstName,
		&s.LastName,
		&s.Email,
		&s.PasswordHash,
		&s.Department,
		&s.PhoneNumber,
		&s.PhotoURL,
		&s.Active,
		&s.LastLoginAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
}

// Create implements RepositoryInterface.Create
func (r *postgresRepository) Create(ctx context.Context, student *model.Student) error {
	query := `
		INSERT INTO students (
			id, student_code, first_name, last_name, email, password_hash,
			department, phone_number, photo_url, active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		student.ID,
		student.StudentCode,
		student.FirstName,
		student.LastName,
		student.Email,
		student.PasswordHash,
		student.Department,
		student.PhoneNumber,
		student.PhotoURL,
		student.Active,
		student.CreatedAt,
		student.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			if strings.Contains(pgErr.ConstraintName, "email") {
				return model.ErrEmailExists
			}
			return model.ErrStudentCodeExists
		}
		return fmt.Errorf("failed to insert student: %w", err)
	}

	return nil
}

// GetByID implements RepositoryInterface.GetByID
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`

	var student model.Student
	if err := scanStudent(r.pool.QueryRow(ctx, query, id), &student); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewStudentNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}

	return &student, nil
}

// GetByEmail implements RepositoryInterface.GetByEmail
func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE LOWER(email) = LOWER($1)`

	var student model.Student
	if err := scanStudent(r.pool.QueryRow(ctx, query, email), &student); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student by email: %w", err)
	}

	return &student, nil
}

// GetByCode implements RepositoryInterface.GetByCode
func (r *postgresRepository) GetByCode(ctx context.Context, studentCode string) (*model.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE student_code = $1`

	var student model.Student
	if err := scanStudent(r.pool.QueryRow(ctx, query, studentCode), &student); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student by code: %w", err)
	}

	return &student, nil
}

// List implements RepositoryInterface.List
func (r *postgresRepository) List(ctx context.Context, filter model.ListStudentsRequest) ([]model.Student, int, error) {
	queryBuilder := `SELECT ` + studentColumns + ` FROM students WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM students WHERE 1=1`

	args := []interface{}{}
	argCount := 1

	if filter.Search != "" {
		cond := fmt.Sprintf(" AND (first_name ILIKE $%d OR last_name ILIKE $%d OR student_code ILIKE $%d OR email ILIKE $%d)", argCount, argCount, argCount, argCount)
		queryBuilder += cond
		countQuery += cond
		args = append(args, "%"+filter.Search+"%")
		argCount++
	}

	if filter.Department != "" {
		queryBuilder += fmt.Sprintf(" AND department = $%d", argCount)
		countQuery += fmt.Sprintf(" AND department = $%d", argCount)
		args = append(args, filter.Department)
		argCount++
	}

	if filter.Active != nil {
		queryBuilder += fmt.Sprintf(" AND active = $%d", argCount)
		countQuery += fmt.Sprintf(" AND active = $%d", argCount)
		args = append(args, *filter.Active)
		argCount++
	}

	var totalCount int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count students: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	queryBuilder += fmt.Sprintf(" ORDER BY last_name ASC, first_name ASC LIMIT $%d OFFSET $%d", argCount, argCount+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.pool.Query(ctx, queryBuilder, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	var result []model.Student
	for rows.Next() {
		var s model.Student
		if err := scanStudent(rows, &s); err != nil {
			return nil, 0, fmt.Errorf("failed to scan student: %w", err)
		}
		result = append(result, s)
	}

	return result, totalCount, rows.Err()
}

// Update implements RepositoryInterface.Update
func (r *postgresRepository) Update(ctx context.Context, student *model.Student) error {
	query := `
		UPDATE students
		SET first_name = $1, last_name = $2, department = $3, phone_number = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := r.pool.Exec(ctx, query,
		student.FirstName,
		student.LastName,
		student.Department,
		student.PhoneNumber,
		student.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewStudentNotFoundError(student.ID)
	}

	return nil
}

// Delete implements RepositoryInterface.Delete
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return model.ErrStudentHasRecords
		}
		return fmt.Errorf("failed to delete student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewStudentNotFoundError(id)
	}

	return nil
}

// SetActive implements RepositoryInterface.SetActive
func (r *postgresRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE students SET active = $1, updated_at = NOW() WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("failed to set student active flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewStudentNotFoundError(id)
	}

	return nil
}

// SetPhotoURL implements RepositoryInterface.SetPhotoURL
func (r *postgresRepository) SetPhotoURL(ctx context.Context, id uuid.UUID, url string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE students SET photo_url = $1, updated_at = NOW() WHERE id = $2`, url, id)
	if err != nil {
		return fmt.Errorf("failed to set student photo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewStudentNotFoundError(id)
	}

	return nil
}

// TouchLastLogin implements RepositoryInterface.TouchLastLogin
func (r *postgresRepository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.pool.Exec(ctx, `UPDATE students SET last_login_at = $1 WHERE id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("failed to touch last login: %w", err)
	}
	return nil
}
