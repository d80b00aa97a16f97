package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/borrow/model"
)

// stubService answers Borrow with a canned error so handler tests can
// verify the status code mapping.
type stubService struct {
	borrowErr error
}

func (s *stubService) Borrow(ctx context.Context, req model.CreateBorrowRequest) (*model.BorrowRecordResponse, error) {
	if s.borrowErr != nil {
		return nil, s.borrowErr
	}
	return &model.BorrowRecordResponse{ID: uuid.New(), Status: model.StatusBorrowed}, nil
}

func (s *stubService) Return(ctx context.Context, recordID uuid.UUID) (*model.BorrowRecordResponse, error) {
	return nil, nil
}

func (s *stubService) GetByID(ctx context.Context, recordID uuid.UUID) (*model.BorrowRecordResponse, error) {
	return nil, nil
}

func (s *stubService) List(ctx context.Context, filter model.ListBorrowRecordsRequest) ([]model.BorrowRecordResponse, int, error) {
	return nil, 0, nil
}

func (s *stubService) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.BorrowRecordResponse, error) {
	return nil, nil
}

func (s *stubService) ListOverdue(ctx context.Context) ([]model.BorrowRecordResponse, error) {
	return nil, nil
}

func (s *stubService) ListWithOutstandingFines(ctx context.Context) ([]model.BorrowRecordResponse, error) {
	return nil, nil
}

func (s *stubService) SetFine(ctx context.Context, recordID uuid.UUID, req model.UpdateFineRequest) (*model.BorrowRecordResponse, error) {
	return nil, nil
}

func (s *stubService) MarkFinePaid(ctx context.Context, recordID uuid.UUID) (*model.BorrowRecordResponse, error) {
	return nil, nil
}

func (s *stubService) AccrueOverdueFines(ctx context.Context) (int, error) {
	return 0, nil
}

func postBorrow(t *testing.T, svc *stubService) *httptest.ResponseRecorder {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/borrow-records", NewHandler(svc).Borrow)

	body, err := json.Marshal(model.CreateBorrowRequest{
		StudentID: uuid.NewString(),
		BookID:    uuid.NewString(),
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/borrow-records", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestBorrowStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"success", nil, http.StatusCreated},
		{"no copy available", model.ErrBookUnavailable, http.StatusBadRequest},
		{"loan limit reached", model.ErrMaxLoansReached, http.StatusConflict},
		{"due date in the past", model.ErrInvalidDueDate, http.StatusBadRequest},
		{"unknown student", model.ErrStudentNotFound, http.StatusNotFound},
		{"unknown book", model.ErrBookNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postBorrow(t, &stubService{borrowErr: tt.serviceErr})
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestBorrowUnavailableBodyIsNotAConflict(t *testing.T) {
	w := postBorrow(t, &stubService{borrowErr: model.ErrBookUnavailable})

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.False(t, body.Success)
	assert.Equal(t, "BAD_REQUEST", body.Error.Code)
}
