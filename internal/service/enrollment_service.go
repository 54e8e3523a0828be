package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/contoso-university-api/internal/models"
	"github.com/noah-isme/contoso-university-api/internal/repository"
	appErrors "github.com/noah-isme/contoso-university-api/pkg/errors"
)

type enrollmentRepository interface {
	CountsByDate(ctx context.Context) ([]models.EnrollmentDateCount, error)
	EnrollOrCreate(ctx context.Context, identity models.StudentIdentity, courseName string, now time.Time) (*models.EnrollOrCreateResult, error)
	Delete(ctx context.Context, id int64) error
}

// EnrollRequest identifies a student by name, birth date and email and names
// the course to enroll them in.
type EnrollRequest struct {
	FirstName  string `json:"first_name" validate:"required,max=100"`
	LastName   string `json:"last_name" validate:"required,max=100"`
	BirthDate  string `json:"birth_date" validate:"required"`
	Email      string `json:"email" validate:"omitempty,email,max=256"`
	CourseName string `json:"course_name" validate:"required,max=200"`
}

// EnrollmentService handles enrollment use-cases.
type EnrollmentService struct {
	repo      enrollmentRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewEnrollmentService constructs the enrollment service.
func NewEnrollmentService(repo enrollmentRepository, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{
		repo:      repo,
		validator: validate,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CountsByDate returns the number of enrollments per calendar date, oldest first.
func (s *EnrollmentService) CountsByDate(ctx context.Context) ([]models.EnrollmentDateCount, error) {
	counts, err := s.repo.CountsByDate(ctx)
	if err != nil {
		s.logger.Error("count enrollments by date failed", zap.Error(err))
		return nil, storeError(err, "failed to count enrollments")
	}
	return counts, nil
}

// EnrollOrCreate enrolls the identified student in a course, creating the
// student when no existing record matches all four identity fields. Repeating
// the call with the same identity reuses the student and adds another
// enrollment.
func (s *EnrollmentService) EnrollOrCreate(ctx context.Context, req EnrollRequest) (*models.EnrollOrCreateResult, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.BirthDate = strings.TrimSpace(req.BirthDate)
	req.Email = strings.TrimSpace(req.Email)
	req.CourseName = strings.TrimSpace(req.CourseName)

	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid enrollment payload")
	}
	birthDate, err := time.Parse(models.DateLayout, req.BirthDate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "birth_date must be formatted YYYY-MM-DD")
	}
	if req.Email == "" {
		req.Email = models.UnspecifiedEmail
	}

	identity := models.StudentIdentity{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: birthDate,
		Email:     req.Email,
	}
	result, err := s.repo.EnrollOrCreate(ctx, identity, req.CourseName, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "course not found")
		}
		s.logger.Error("enroll or create failed", zap.String("course", req.CourseName), zap.Error(err))
		return nil, storeError(err, "failed to enroll student")
	}

	if result.StudentCreated {
		s.logger.Info("student created on enrollment",
			zap.Int64("student_id", result.StudentID),
			zap.String("course", req.CourseName),
		)
	}
	return result, nil
}

// Delete removes one enrollment.
func (s *EnrollmentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		s.logger.Error("delete enrollment failed", zap.Int64("enrollment_id", id), zap.Error(err))
		return storeError(err, "failed to delete enrollment")
	}
	return nil
}
