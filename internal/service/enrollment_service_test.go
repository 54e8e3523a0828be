package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/contoso-university-api/internal/models"
	"github.com/noah-isme/contoso-university-api/internal/repository"
	appErrors "github.com/noah-isme/contoso-university-api/pkg/errors"
)

// fakeEnrollmentStore keeps students and enrollments in memory and applies the
// same four-field identity rule as the SQL repository.
type fakeEnrollmentStore struct {
	courses     map[string]int64
	students    map[models.StudentIdentity]int64
	enrollments []models.Enrollment
	counts      []models.EnrollmentDateCount
	deleteErr   error
	err         error
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{
		courses:  map[string]int64{"Calculus I": 1},
		students: map[models.StudentIdentity]int64{},
	}
}

func (f *fakeEnrollmentStore) CountsByDate(ctx context.Context) ([]models.EnrollmentDateCount, error) {
	return f.counts, f.err
}

func (f *fakeEnrollmentStore) EnrollOrCreate(ctx context.Context, identity models.StudentIdentity, courseName string, now time.Time) (*models.EnrollOrCreateResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	courseID, ok := f.courses[courseName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", repository.ErrCourseNotFound, courseName)
	}
	result := &models.EnrollOrCreateResult{CourseID: courseID, EnrolledAt: now}
	id, found := f.students[identity]
	if !found {
		id = int64(len(f.students) + 1)
		f.students[identity] = id
		result.StudentCreated = true
	}
	result.StudentID = id
	result.EnrollmentID = int64(len(f.enrollments) + 1)
	f.enrollments = append(f.enrollments, models.Enrollment{ID: result.EnrollmentID, Date: now, StudentID: id, CourseID: courseID})
	return result, nil
}

func (f *fakeEnrollmentStore) Delete(ctx context.Context, id int64) error {
	return f.deleteErr
}

func newEnrollmentServiceForTest(store *fakeEnrollmentStore) *EnrollmentService {
	svc := NewEnrollmentService(store, nil, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 9, 3, 10, 0, 0, 0, time.UTC) }
	return svc
}

func samLeeRequest() EnrollRequest {
	return EnrollRequest{FirstName: "Sam", LastName: "Lee", BirthDate: "1999-01-01", Email: "sam@x.edu", CourseName: "Calculus I"}
}

func TestEnrollmentServiceEnrollOrCreateTwiceKeepsOneStudent(t *testing.T) {
	store := newFakeEnrollmentStore()
	svc := newEnrollmentServiceForTest(store)

	first, err := svc.EnrollOrCreate(context.Background(), samLeeRequest())
	require.NoError(t, err)
	second, err := svc.EnrollOrCreate(context.Background(), samLeeRequest())
	require.NoError(t, err)

	assert.Len(t, store.students, 1)
	require.Len(t, store.enrollments, 2)
	assert.Equal(t, first.StudentID, second.StudentID)
	assert.True(t, first.StudentCreated)
	assert.False(t, second.StudentCreated)
	for _, e := range store.enrollments {
		assert.Equal(t, first.StudentID, e.StudentID)
		assert.Equal(t, int64(1), e.CourseID)
	}
	for identity := range store.students {
		assert.Equal(t, "Sam", identity.FirstName)
		assert.Equal(t, "Lee", identity.LastName)
		assert.Equal(t, time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC), identity.BirthDate)
	}
}

func TestEnrollmentServiceDefaultsMissingEmail(t *testing.T) {
	store := newFakeEnrollmentStore()
	svc := newEnrollmentServiceForTest(store)

	req := samLeeRequest()
	req.Email = "  "
	_, err := svc.EnrollOrCreate(context.Background(), req)
	require.NoError(t, err)
	for identity := range store.students {
		assert.Equal(t, models.UnspecifiedEmail, identity.Email)
	}
}

func TestEnrollmentServiceRejectsBadInput(t *testing.T) {
	svc := newEnrollmentServiceForTest(newFakeEnrollmentStore())

	cases := map[string]func(*EnrollRequest){
		"missing first name": func(r *EnrollRequest) { r.FirstName = " " },
		"missing course":     func(r *EnrollRequest) { r.CourseName = "" },
		"unparseable date":   func(r *EnrollRequest) { r.BirthDate = "01/01/1999" },
		"invalid email":      func(r *EnrollRequest) { r.Email = "sam" },
	}
	for name, mutate := range cases {
		req := samLeeRequest()
		mutate(&req)
		_, err := svc.EnrollOrCreate(context.Background(), req)
		require.Error(t, err, name)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code, name)
	}
}

func TestEnrollmentServiceUnknownCourse(t *testing.T) {
	store := newFakeEnrollmentStore()
	svc := newEnrollmentServiceForTest(store)

	req := samLeeRequest()
	req.CourseName = "Alchemy"
	_, err := svc.EnrollOrCreate(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
	assert.Empty(t, store.students)
	assert.Empty(t, store.enrollments)
}

func TestEnrollmentServiceCountsByDate(t *testing.T) {
	store := newFakeEnrollmentStore()
	store.counts = []models.EnrollmentDateCount{
		{Date: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC), Count: 6},
		{Date: time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC), Count: 3},
	}
	svc := newEnrollmentServiceForTest(store)

	counts, err := svc.CountsByDate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, store.counts, counts)
}

func TestEnrollmentServiceDeleteErrors(t *testing.T) {
	store := newFakeEnrollmentStore()
	svc := newEnrollmentServiceForTest(store)

	require.NoError(t, svc.Delete(context.Background(), 1))

	store.deleteErr = fmt.Errorf("delete enrollment: %w", &pq.Error{Code: "23503"})
	err := svc.Delete(context.Background(), 1)
	assert.True(t, errors.Is(err, appErrors.ErrConflict))
}
