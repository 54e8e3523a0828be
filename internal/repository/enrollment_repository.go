package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/contoso-university-api/internal/models"
	"github.com/noah-isme/contoso-university-api/pkg/database"
)

// EnrollmentRepository handles persistence of enrollments.
type EnrollmentRepository struct {
	db       *sqlx.DB
	observer QueryObserver
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB, observer QueryObserver) *EnrollmentRepository {
	return &EnrollmentRepository{db: db, observer: observerOrNop(observer)}
}

// CountsByDate groups enrollments by calendar date, oldest first.
func (r *EnrollmentRepository) CountsByDate(ctx context.Context) ([]models.EnrollmentDateCount, error) {
	defer track(r.observer, "enrollments.counts_by_date")()
	const query = `SELECT DATE(enrollment_date) AS enrollment_day, COUNT(*) AS enrollment_count
        FROM enrollments
        GROUP BY DATE(enrollment_date)
        ORDER BY enrollment_day`
	counts := []models.EnrollmentDateCount{}
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count enrollments by date: %w", err)
	}
	return counts, nil
}

// ListByStudent returns a student's enrollments with course names.
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.EnrollmentDetail, error) {
	defer track(r.observer, "enrollments.list_by_student")()
	const query = `SELECT e.enrollment_id, e.enrollment_date, e.student_id, e.course_id, c.course_name
        FROM enrollments e
        JOIN courses c ON c.course_id = e.course_id
        WHERE e.student_id = $1
        ORDER BY e.enrollment_date, e.enrollment_id`
	enrollments := []models.EnrollmentDetail{}
	if err := r.db.SelectContext(ctx, &enrollments, query, studentID); err != nil {
		return nil, fmt.Errorf("list student enrollments: %w", err)
	}
	return enrollments, nil
}

// Delete removes a single enrollment.
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	defer track(r.observer, "enrollments.delete")()
	res, err := r.db.ExecContext(ctx, `DELETE FROM enrollments WHERE enrollment_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete enrollment: %w", err)
	}
	return requireAffected(res, "delete enrollment")
}

// EnrollOrCreate enrolls the student identified by identity in the named
// course, creating the student first when no row matches the identity. The
// identity lookup, optional insert, course lookup and enrollment insert run in
// one transaction; a transaction-scoped advisory lock on the identity
// serialises concurrent calls for the same person.
func (r *EnrollmentRepository) EnrollOrCreate(ctx context.Context, identity models.StudentIdentity, courseName string, now time.Time) (*models.EnrollOrCreateResult, error) {
	defer track(r.observer, "enrollments.enroll_or_create")()

	result := &models.EnrollOrCreateResult{EnrolledAt: now}
	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, identityLockKey(identity)); err != nil {
			return fmt.Errorf("lock student identity: %w", err)
		}

		studentID, found, err := findStudentByIdentity(ctx, tx, identity)
		if err != nil {
			return err
		}
		if !found {
			if studentID, err = insertStudent(ctx, tx, identity); err != nil {
				return err
			}
			result.StudentCreated = true
		}
		result.StudentID = studentID

		course, err := findCourseByName(ctx, tx, courseName)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: %q", ErrCourseNotFound, courseName)
			}
			return fmt.Errorf("find course: %w", err)
		}
		result.CourseID = course.ID

		const insert = `INSERT INTO enrollments (enrollment_date, student_id, course_id) VALUES ($1, $2, $3) RETURNING enrollment_id`
		if err := tx.GetContext(ctx, &result.EnrollmentID, insert, now, studentID, course.ID); err != nil {
			return fmt.Errorf("create enrollment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func identityLockKey(identity models.StudentIdentity) string {
	return fmt.Sprintf("student:%s|%s|%s|%s",
		identity.FirstName,
		identity.LastName,
		identity.BirthDate.Format(models.DateLayout),
		identity.Email,
	)
}
