package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/contoso-university-api/internal/models"
)

type courseRepository interface {
	ListByDepartmentName(ctx context.Context, department string) ([]models.Course, error)
	ListByName(ctx context.Context, name string) ([]models.Course, error)
	ListDetails(ctx context.Context) ([]models.CourseDetail, error)
}

// CourseService exposes course lookups.
type CourseService struct {
	repo   courseRepository
	logger *zap.Logger
}

// NewCourseService constructs the course service.
func NewCourseService(repo courseRepository, logger *zap.Logger) *CourseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, logger: logger}
}

// ListByDepartment returns the courses of a department. An unknown department
// yields an empty list.
func (s *CourseService) ListByDepartment(ctx context.Context, department string) ([]models.Course, error) {
	courses, err := s.repo.ListByDepartmentName(ctx, department)
	if err != nil {
		s.logger.Error("list courses by department failed", zap.String("department", department), zap.Error(err))
		return nil, storeError(err, "failed to list courses")
	}
	return courses, nil
}

// ListByName returns courses whose name matches exactly.
func (s *CourseService) ListByName(ctx context.Context, name string) ([]models.Course, error) {
	courses, err := s.repo.ListByName(ctx, name)
	if err != nil {
		s.logger.Error("list courses by name failed", zap.String("name", name), zap.Error(err))
		return nil, storeError(err, "failed to list courses")
	}
	return courses, nil
}

// ListDetails returns every course with department, instructor and enrollment count.
func (s *CourseService) ListDetails(ctx context.Context) ([]models.CourseDetail, error) {
	courses, err := s.repo.ListDetails(ctx)
	if err != nil {
		s.logger.Error("list course details failed", zap.Error(err))
		return nil, storeError(err, "failed to list courses")
	}
	return courses, nil
}
