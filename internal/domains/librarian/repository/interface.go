package repository

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/librarian/model"
)

// RepositoryInterface defines the librarian persistence contract
type RepositoryInterface interface {
	Create(ctx context.Context, librarian *model.Librarian) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Librarian, error)
	GetByEmail(ctx context.Context, email string) (*model.Librarian, error)
	List(ctx context.Context) ([]model.Librarian, error)
	Update(ctx context.Context, librarian *model.Librarian) error
	Delete(ctx context.Context, id uuid.UUID) error
}
