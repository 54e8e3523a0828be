package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/contoso-university-api/internal/models"
)

type departmentRepository interface {
	List(ctx context.Context) ([]models.DepartmentDetail, error)
}

// DepartmentService lists departments.
type DepartmentService struct {
	repo   departmentRepository
	logger *zap.Logger
}

// NewDepartmentService constructs the department service.
func NewDepartmentService(repo departmentRepository, logger *zap.Logger) *DepartmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DepartmentService{repo: repo, logger: logger}
}

// List returns all departments.
func (s *DepartmentService) List(ctx context.Context) ([]models.DepartmentDetail, error) {
	departments, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("list departments failed", zap.Error(err))
		return nil, storeError(err, "failed to list departments")
	}
	return departments, nil
}
