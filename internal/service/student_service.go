package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/contoso-university-api/internal/models"
	appErrors "github.com/noah-isme/contoso-university-api/pkg/errors"
)

type studentRepository interface {
	Search(ctx context.Context, search string) ([]models.Student, error)
	Summary(ctx context.Context) ([]models.StudentEnrollmentSummary, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	UpdateNameEmail(ctx context.Context, id int64, firstName, lastName, email string) error
	Delete(ctx context.Context, id int64) error
}

type studentEnrollmentReader interface {
	ListByStudent(ctx context.Context, studentID int64) ([]models.EnrollmentDetail, error)
}

// UpdateStudentRequest holds payload for updating students. Name is the full
// name; it is split on the first space into first and last name.
type UpdateStudentRequest struct {
	Name  string `json:"name" validate:"max=201"`
	Email string `json:"email" validate:"omitempty,email,max=256"`
}

// UpdateStudentResult reports the stored student and whether anything changed.
// Updated is false when the name had fewer than two tokens.
type UpdateStudentResult struct {
	Student models.Student `json:"student"`
	Updated bool           `json:"updated"`
}

// StudentService handles student use-cases.
type StudentService struct {
	repo        studentRepository
	enrollments studentEnrollmentReader
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, enrollments studentEnrollmentReader, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, enrollments: enrollments, validator: validate, logger: logger}
}

// Search finds students by name tokens. An empty search returns every student.
func (s *StudentService) Search(ctx context.Context, search string) ([]models.Student, error) {
	students, err := s.repo.Search(ctx, search)
	if err != nil {
		s.logger.Error("search students failed", zap.Error(err))
		return nil, storeError(err, "failed to search students")
	}
	return students, nil
}

// Summary returns enrollment counts per student per date.
func (s *StudentService) Summary(ctx context.Context) ([]models.StudentEnrollmentSummary, error) {
	rows, err := s.repo.Summary(ctx)
	if err != nil {
		s.logger.Error("student summary failed", zap.Error(err))
		return nil, storeError(err, "failed to build student summary")
	}
	return rows, nil
}

// Get returns a student with their enrollments.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.StudentDetail, error) {
	student, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	enrollments, err := s.enrollments.ListByStudent(ctx, id)
	if err != nil {
		return nil, storeError(err, "failed to load enrollments")
	}
	return &models.StudentDetail{Student: *student, Enrollments: enrollments}, nil
}

// Update renames a student and optionally changes the email. A name with
// fewer than two tokens leaves the record untouched and reports Updated=false.
// An empty email keeps the stored one.
func (s *StudentService) Update(ctx context.Context, id int64, req UpdateStudentRequest) (*UpdateStudentResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	firstName, lastName, ok := splitFullName(req.Name)
	if !ok {
		s.logger.Info("student update skipped: name needs first and last name",
			zap.Int64("student_id", id),
			zap.String("name", req.Name),
		)
		return &UpdateStudentResult{Student: *student, Updated: false}, nil
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = student.Email
	}
	if err := s.repo.UpdateNameEmail(ctx, id, firstName, lastName, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		s.logger.Error("update student failed", zap.Int64("student_id", id), zap.Error(err))
		return nil, storeError(err, "failed to update student")
	}

	student.FirstName = firstName
	student.LastName = lastName
	student.Email = email
	return &UpdateStudentResult{Student: *student, Updated: true}, nil
}

// Delete removes a student and, through the store's cascade, their enrollments.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		s.logger.Error("delete student failed", zap.Int64("student_id", id), zap.Error(err))
		return storeError(err, "failed to delete student")
	}
	return nil
}

func (s *StudentService) load(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, storeError(err, "failed to load student")
	}
	return student, nil
}

// splitFullName splits on the first space. Both halves must be non-empty.
func splitFullName(name string) (string, string, bool) {
	first, last, found := strings.Cut(strings.TrimSpace(name), " ")
	last = strings.TrimSpace(last)
	if !found || first == "" || last == "" {
		return "", "", false
	}
	return first, last, true
}
