package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/book/model"
)

// fakeBookRepository keeps the catalog in memory with ISBN uniqueness
type fakeBookRepository struct {
	books map[uuid.UUID]*model.Book
}

func newFakeBookRepository() *fakeBookRepository {
	return &fakeBookRepository{books: make(map[uuid.UUID]*model.Book)}
}

func (f *fakeBookRepository) Create(ctx context.Context, book *model.Book) error {
	for _, b := range f.books {
		if b.ISBN == book.ISBN {
			return model.ErrISBNExists
		}
	}
	clone := *book
	f.books[book.ID] = &clone
	return nil
}

func (f *fakeBookRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	book, ok := f.books[id]
	if !ok {
		return nil, model.NewBookNotFoundError(id)
	}
	clone := *book
	return &clone, nil
}

func (f *fakeBookRepository) GetByISBN(ctx context.Context, isbn string) (*model.Book, error) {
	for _, b := range f.books {
		if b.ISBN == isbn {
			clone := *b
			return &clone, nil
		}
	}
	return nil, model.ErrBookNotFound
}

func (f *fakeBookRepository) List(ctx context.Context, filter model.ListBooksRequest) ([]model.Book, int, error) {
	var out []model.Book
	for _, b := range f.books {
		if filter.Search != "" && !strings.Contains(strings.ToLower(b.Title), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, *b)
	}
	return out, len(out), nil
}

func (f *fakeBookRepository) Update(ctx context.Context, book *model.Book) error {
	if _, ok := f.books[book.ID]; !ok {
		return model.NewBookNotFoundError(book.ID)
	}
	clone := *book
	f.books[book.ID] = &clone
	return nil
}

func (f *fakeBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.books[id]; !ok {
		return model.NewBookNotFoundError(id)
	}
	delete(f.books, id)
	return nil
}

func (f *fakeBookRepository) ListPopular(ctx context.Context, limit int) ([]model.Book, error) {
	var out []model.Book
	for _, b := range f.books {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBookRepository) SetCoverImageURL(ctx context.Context, id uuid.UUID, url string) error {
	book, ok := f.books[id]
	if !ok {
		return model.NewBookNotFoundError(id)
	}
	book.CoverImageURL = &url
	return nil
}

func seedBook(repo *fakeBookRepository, total, available int) *model.Book {
	book := &model.Book{
		ID:              uuid.New(),
		Title:           "The Go Programming Language",
		Author:          "Donovan, Kernighan",
		ISBN:            "9780134190440",
		TotalCopies:     total,
		AvailableCopies: available,
	}
	repo.books[book.ID] = book
	return book
}

func TestCreateStartsWithAllCopiesAvailable(t *testing.T) {
	repo := newFakeBookRepository()
	svc := NewService(repo)

	resp, err := svc.Create(context.Background(), model.CreateBookRequest{
		Title:       "Clean Architecture",
		Author:      "Robert Martin",
		ISBN:        "9780134494166",
		TotalCopies: 4,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, resp.TotalCopies)
	assert.Equal(t, 4, resp.AvailableCopies)
}

func TestCreateDuplicateISBN(t *testing.T) {
	repo := newFakeBookRepository()
	svc := NewService(repo)
	seedBook(repo, 2, 2)

	_, err := svc.Create(context.Background(), model.CreateBookRequest{
		Title:       "Another edition",
		Author:      "Someone",
		ISBN:        "9780134190440",
		TotalCopies: 1,
	})
	assert.ErrorIs(t, err, model.ErrISBNExists)
}

func TestUpdateRejectsShrinkBelowBorrowed(t *testing.T) {
	repo := newFakeBookRepository()
	svc := NewService(repo)
	// 5 copies, 3 out with students
	book := seedBook(repo, 5, 2)

	newTotal := 2
	_, err := svc.Update(context.Background(), book.ID, model.UpdateBookRequest{
		TotalCopies: &newTotal,
	})
	assert.ErrorIs(t, err, model.ErrInvalidCopyCount)

	stored := repo.books[book.ID]
	assert.Equal(t, 5, stored.TotalCopies, "rejected update must not change the stored book")
	assert.Equal(t, 2, stored.AvailableCopies)
}

func TestUpdateTotalCopiesKeepsBorrowedDelta(t *testing.T) {
	repo := newFakeBookRepository()
	svc := NewService(repo)
	// 5 copies, 3 out with students
	book := seedBook(repo, 5, 2)

	newTotal := 8
	resp, err := svc.Update(context.Background(), book.ID, model.UpdateBookRequest{
		TotalCopies: &newTotal,
	})
	require.NoError(t, err)

	assert.Equal(t, 8, resp.TotalCopies)
	assert.Equal(t, 5, resp.AvailableCopies, "the 3 borrowed copies stay out")
}

func TestUpdateShrinkToExactlyBorrowed(t *testing.T) {
	repo := newFakeBookRepository()
	svc := NewService(repo)
	// 5 copies, 3 out with students
	book := seedBook(repo, 5, 2)

	newTotal := 3
	resp, err := svc.Update(context.Background(), book.ID, model.UpdateBookRequest{
		TotalCopies: &newTotal,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.TotalCopies)
	assert.Zero(t, resp.AvailableCopies)
}
