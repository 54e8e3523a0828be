package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/contoso-university-api/internal/models"
)

// CourseRepository reads course reference data.
type CourseRepository struct {
	db       *sqlx.DB
	observer QueryObserver
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB, observer QueryObserver) *CourseRepository {
	return &CourseRepository{db: db, observer: observerOrNop(observer)}
}

// ListByDepartmentName returns the courses of the department with the exact
// given name in insertion order. An unknown department yields an empty slice.
func (r *CourseRepository) ListByDepartmentName(ctx context.Context, department string) ([]models.Course, error) {
	defer track(r.observer, "courses.list_by_department")()
	const query = `SELECT c.course_id, c.course_name, c.students_max, c.department_id, c.instructor_id
        FROM courses c
        JOIN departments d ON d.department_id = c.department_id
        WHERE d.department_name = $1
        ORDER BY c.course_id`
	courses := []models.Course{}
	if err := r.db.SelectContext(ctx, &courses, query, department); err != nil {
		return nil, fmt.Errorf("list courses by department: %w", err)
	}
	return courses, nil
}

// ListByName returns every course whose name equals name exactly.
func (r *CourseRepository) ListByName(ctx context.Context, name string) ([]models.Course, error) {
	defer track(r.observer, "courses.list_by_name")()
	const query = `SELECT course_id, course_name, students_max, department_id, instructor_id FROM courses WHERE course_name = $1 ORDER BY course_id`
	courses := []models.Course{}
	if err := r.db.SelectContext(ctx, &courses, query, name); err != nil {
		return nil, fmt.Errorf("list courses by name: %w", err)
	}
	return courses, nil
}

// ListDetails returns all courses with department, instructor and enrollment count.
func (r *CourseRepository) ListDetails(ctx context.Context) ([]models.CourseDetail, error) {
	defer track(r.observer, "courses.list_details")()
	const query = `SELECT c.course_id, c.course_name, c.students_max, c.department_id, c.instructor_id,
        d.department_name,
        i.first_name || ' ' || i.last_name AS instructor_name,
        COUNT(e.enrollment_id) AS enrollment_count
        FROM courses c
        JOIN departments d ON d.department_id = c.department_id
        JOIN instructors i ON i.instructor_id = c.instructor_id
        LEFT JOIN enrollments e ON e.course_id = c.course_id
        GROUP BY c.course_id, d.department_name, i.first_name, i.last_name
        ORDER BY c.course_id`
	details := []models.CourseDetail{}
	if err := r.db.SelectContext(ctx, &details, query); err != nil {
		return nil, fmt.Errorf("list course details: %w", err)
	}
	return details, nil
}

// findCourseByName returns the first course with the given name or
// sql.ErrNoRows. Enroll-or-create runs it inside its transaction.
func findCourseByName(ctx context.Context, q sqlx.QueryerContext, name string) (*models.Course, error) {
	const query = `SELECT course_id, course_name, students_max, department_id, instructor_id FROM courses WHERE course_name = $1 ORDER BY course_id LIMIT 1`
	var course models.Course
	if err := sqlx.GetContext(ctx, q, &course, query, name); err != nil {
		return nil, err
	}
	return &course, nil
}
