package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/repository"
)

type BookService struct {
	repo repository.RepositoryInterface
}

// NewService creates a new book service
func NewService(repo repository.RepositoryInterface) ServiceInterface {
	return &BookService{
		repo: repo,
	}
}

// Create implements ServiceInterface.Create
func (s *BookService) Create(ctx context.Context, req model.CreateBookRequest) (*model.BookResponse, error) {
	now := time.Now()
	book := model.Book{
		ID:              uuid.New(),
		Title:           req.Title,
		Author:          req.Author,
		ISBN:            req.ISBN,
		Publisher:       req.Publisher,
		PublicationYear: req.PublicationYear,
		Category:        req.Category,
		LocationCode:    req.LocationCode,
		Description:     req.Description,
		TotalCopies:     req.TotalCopies,
		AvailableCopies: req.TotalCopies, // every copy starts on the shelf
		TotalBorrows:    0,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, &book); err != nil {
		return nil, err
	}

	resp := book.ToResponse()
	return &resp, nil
}

// GetByID implements ServiceInterface.GetByID
func (s *BookService) GetByID(ctx context.Context, id uuid.UUID) (*model.BookResponse, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := book.ToResponse()
	return &resp, nil
}

// GetByISBN implements ServiceInterface.GetByISBN
func (s *BookService) GetByISBN(ctx context.Context, isbn string) (*model.BookResponse, error) {
	book, err := s.repo.GetByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}

	resp := book.ToResponse()
	return &resp, nil
}

// List implements ServiceInterface.List
func (s *BookService) List(ctx context.Context, filter model.ListBooksRequest) ([]model.BookResponse, int, error) {
	books, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return model.ToResponseList(books), total, nil
}

// Update implements ServiceInterface.Update.
// Shrinking total_copies below the number of copies currently out
// would break the availability invariant, so it is rejected.
func (s *BookService) Update(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (*model.BookResponse, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Publisher != nil {
		book.Publisher = req.Publisher
	}
	if req.PublicationYear != nil {
		book.PublicationYear = req.PublicationYear
	}
	if req.Category != nil {
		book.Category = req.Category
	}
	if req.LocationCode != nil {
		book.LocationCode = req.LocationCode
	}
	if req.Description != nil {
		book.Description = req.Description
	}
	if req.Notes != nil {
		book.Notes = req.Notes
	}

	if req.TotalCopies != nil {
		borrowed := book.TotalCopies - book.AvailableCopies
		if *req.TotalCopies < borrowed {
			return nil, fmt.Errorf("%w: %d copies currently borrowed", model.ErrInvalidCopyCount, borrowed)
		}
		book.AvailableCopies = *req.TotalCopies - borrowed
		book.TotalCopies = *req.TotalCopies
	}

	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}

	resp := book.ToResponse()
	return &resp, nil
}

// Delete implements ServiceInterface.Delete
func (s *BookService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ListPopular implements ServiceInterface.ListPopular
func (s *BookService) ListPopular(ctx context.Context, limit int) ([]model.BookResponse, error) {
	books, err := s.repo.ListPopular(ctx, limit)
	if err != nil {
		return nil, err
	}

	return model.ToResponseList(books), nil
}

// SetCoverImage implements ServiceInterface.SetCoverImage
func (s *BookService) SetCoverImage(ctx context.Context, id uuid.UUID, url string) error {
	return s.repo.SetCoverImageURL(ctx, id, url)
}
