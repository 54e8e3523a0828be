package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/contoso-university-api/internal/models"
)

// DepartmentRepository reads departments.
type DepartmentRepository struct {
	db       *sqlx.DB
	observer QueryObserver
}

// NewDepartmentRepository constructs a DepartmentRepository.
func NewDepartmentRepository(db *sqlx.DB, observer QueryObserver) *DepartmentRepository {
	return &DepartmentRepository{db: db, observer: observerOrNop(observer)}
}

// List returns departments with their managing instructor and course count.
// The managing instructor is joined loosely because the reference has no
// foreign key.
func (r *DepartmentRepository) List(ctx context.Context) ([]models.DepartmentDetail, error) {
	defer track(r.observer, "departments.list")()
	const query = `SELECT d.department_id, d.department_name, d.building_number, d.managing_instructor_id,
        i.first_name || ' ' || i.last_name AS managing_instructor_name,
        COUNT(c.course_id) AS course_count
        FROM departments d
        LEFT JOIN instructors i ON i.instructor_id = d.managing_instructor_id
        LEFT JOIN courses c ON c.department_id = d.department_id
        GROUP BY d.department_id, i.first_name, i.last_name
        ORDER BY d.department_id`
	departments := []models.DepartmentDetail{}
	if err := r.db.SelectContext(ctx, &departments, query); err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return departments, nil
}
