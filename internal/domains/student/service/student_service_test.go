package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"library-backend/internal/domains/student/model"
	"library-backend/pkg/jwt"
)

// fakeStudentRepository keeps students in memory keyed by id, with
// email and code uniqueness enforced like the database constraints.
type fakeStudentRepository struct {
	students map[uuid.UUID]*model.Student
	// ids of students with borrow or entry history; Delete refuses them
	withRecords map[uuid.UUID]bool
}

func newFakeStudentRepository() *fakeStudentRepository {
	return &fakeStudentRepository{
		students:    make(map[uuid.UUID]*model.Student),
		withRecords: make(map[uuid.UUID]bool),
	}
}

func (f *fakeStudentRepository) Create(ctx context.Context, student *model.Student) error {
	for _, s := range f.students {
		if strings.EqualFold(s.Email, student.Email) {
			return model.ErrEmailExists
		}
		if s.StudentCode == student.StudentCode {
			return model.ErrStudentCodeExists
		}
	}
	clone := *student
	f.students[student.ID] = &clone
	return nil
}

func (f *fakeStudentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Student, error) {
	student, ok := f.students[id]
	if !ok {
		return nil, model.ErrStudentNotFound
	}
	return student, nil
}

func (f *fakeStudentRepository) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	for _, s := range f.students {
		if strings.EqualFold(s.Email, email) {
			return s, nil
		}
	}
	return nil, model.ErrStudentNotFound
}

func (f *fakeStudentRepository) GetByCode(ctx context.Context, studentCode string) (*model.Student, error) {
	for _, s := range f.students {
		if s.StudentCode == studentCode {
			return s, nil
		}
	}
	return nil, model.ErrStudentNotFound
}

func (f *fakeStudentRepository) List(ctx context.Context, filter model.ListStudentsRequest) ([]model.Student, int, error) {
	out := make([]model.Student, 0, len(f.students))
	for _, s := range f.students {
		out = append(out, *s)
	}
	return out, len(out), nil
}

func (f *fakeStudentRepository) Update(ctx context.Context, student *model.Student) error {
	if _, ok := f.students[student.ID]; !ok {
		return model.ErrStudentNotFound
	}
	clone := *student
	f.students[student.ID] = &clone
	return nil
}

func (f *fakeStudentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.students[id]; !ok {
		return model.ErrStudentNotFound
	}
	if f.withRecords[id] {
		return model.ErrStudentHasRecords
	}
	delete(f.students, id)
	return nil
}

func (f *fakeStudentRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	student, ok := f.students[id]
	if !ok {
		return model.ErrStudentNotFound
	}
	student.Active = active
	return nil
}

func (f *fakeStudentRepository) SetPhotoURL(ctx context.Context, id uuid.UUID, url string) error {
	student, ok := f.students[id]
	if !ok {
		return model.ErrStudentNotFound
	}
	student.PhotoURL = &url
	return nil
}

func (f *fakeStudentRepository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	student, ok := f.students[id]
	if !ok {
		return model.ErrStudentNotFound
	}
	student.LastLoginAt = &at
	return nil
}

func testStudentService(repo *fakeStudentRepository) ServiceInterface {
	return NewService(repo, jwt.NewManager("test-secret", 15, 168))
}

func seedStudent(t *testing.T, repo *fakeStudentRepository, password string, active bool) *model.Student {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	student := &model.Student{
		ID:           uuid.New(),
		StudentCode:  "SE150001",
		FirstName:    "An",
		LastName:     "Nguyen",
		Email:        "an.nguyen@example.edu",
		PasswordHash: string(hash),
		Active:       active,
	}
	repo.students[student.ID] = student
	return student
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := newFakeStudentRepository()
	svc := testStudentService(repo)

	resp, err := svc.Register(context.Background(), model.RegisterStudentRequest{
		StudentCode: "SE150002",
		FirstName:   "Binh",
		LastName:    "Tran",
		Email:       "binh.tran@example.edu",
		Password:    "correct-horse-battery",
	})
	require.NoError(t, err)

	stored := repo.students[resp.ID]
	require.NotNil(t, stored)
	assert.True(t, stored.Active)
	assert.NotEqual(t, "correct-horse-battery", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct-horse-battery")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeStudentRepository()
	svc := testStudentService(repo)
	seedStudent(t, repo, "whatever", true)

	_, err := svc.Register(context.Background(), model.RegisterStudentRequest{
		StudentCode: "SE150099",
		FirstName:   "Chi",
		LastName:    "Le",
		Email:       "AN.NGUYEN@example.edu",
		Password:    "some-password",
	})
	assert.ErrorIs(t, err, model.ErrEmailExists)
}

func TestLoginIssuesTokens(t *testing.T) {
	repo := newFakeStudentRepository()
	svc := testStudentService(repo)
	student := seedStudent(t, repo, "s3cret-pass", true)

	auth, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    student.Email,
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, auth.AccessToken)
	assert.NotEmpty(t, auth.RefreshToken)
	assert.Equal(t, student.ID, auth.Student.ID)
	assert.NotNil(t, repo.students[student.ID].LastLoginAt)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeStudentRepository()
	svc := testStudentService(repo)
	student := seedStudent(t, repo, "s3cret-pass", true)

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    student.Email,
		Password: "not-the-password",
	})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLoginUnknownEmailHidesExistence(t *testing.T) {
	repo := newFakeStudentRepository()
	svc := testStudentService(repo)

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "nobody@example.edu",
		Password: "anything",
	})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLoginInactiveStudent(t *testing.T) {
	repo := newFakeStudentRepository()
	svc := testStudentService(repo)
	student := seedStudent(t, repo, "s3cret-pass", false)

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    student.Email,
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, model.ErrStudentInactive)
}

func TestRefreshRoundTrip(t *testing.T) {
	repo := newFakeStudentRepository()
	svc := testStudentService(repo)
	student := seedStudent(t, repo, "s3cret-pass", true)

	auth, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    student.Email,
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), model.RefreshRequest{RefreshToken: auth.RefreshToken})
	require.NoError(t, err)
	assert.Equal(t, student.ID, refreshed.Student.ID)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	repo := newFakeStudentRepository()
	svc := testStudentService(repo)
	student := seedStudent(t, repo, "s3cret-pass", true)

	auth, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    student.Email,
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), model.RefreshRequest{RefreshToken: auth.AccessToken})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestDeleteStudentWithHistory(t *testing.T) {
	repo := newFakeStudentRepository()
	svc := testStudentService(repo)
	student := seedStudent(t, repo, "s3cret-pass", true)
	repo.withRecords[student.ID] = true

	err := svc.Delete(context.Background(), student.ID)
	assert.ErrorIs(t, err, model.ErrStudentHasRecords)

	_, stillThere := repo.students[student.ID]
	assert.True(t, stillThere)
}

func TestDeactivateThenActivate(t *testing.T) {
	repo := newFakeStudentRepository()
	svc := testStudentService(repo)
	student := seedStudent(t, repo, "s3cret-pass", true)

	resp, err := svc.SetActive(context.Background(), student.ID, false)
	require.NoError(t, err)
	assert.False(t, resp.Active)

	resp, err = svc.SetActive(context.Background(), student.ID, true)
	require.NoError(t, err)
	assert.True(t, resp.Active)
}
