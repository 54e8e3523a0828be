package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/contoso-university-api/internal/models"
	"github.com/noah-isme/contoso-university-api/internal/repository"
	appErrors "github.com/noah-isme/contoso-university-api/pkg/errors"
)

type instructorRepository interface {
	ListSorted(ctx context.Context, column string, direction models.SortDirection) ([]models.Instructor, error)
}

// InstructorService lists instructors.
type InstructorService struct {
	repo   instructorRepository
	logger *zap.Logger
}

// NewInstructorService constructs the instructor service.
func NewInstructorService(repo instructorRepository, logger *zap.Logger) *InstructorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstructorService{repo: repo, logger: logger}
}

// List returns instructors in store order, or ordered by sortColumn when one
// is given. Direction is ascending only for "asc".
func (s *InstructorService) List(ctx context.Context, sortColumn, direction string) ([]models.Instructor, error) {
	instructors, err := s.repo.ListSorted(ctx, sortColumn, models.ParseSortDirection(direction))
	if err != nil {
		if errors.Is(err, repository.ErrInvalidSortColumn) {
			s.logger.Warn("rejected instructor sort column", zap.String("column", sortColumn))
			return nil, appErrors.WrapAs(appErrors.ErrInvalidSort, err, "unsupported sort column")
		}
		s.logger.Error("list instructors failed", zap.Error(err))
		return nil, storeError(err, "failed to list instructors")
	}
	return instructors, nil
}
