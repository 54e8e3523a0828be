package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/contoso-university-api/internal/models"
)

var studentColumns = []string{"student_id", "first_name", "last_name", "birth_date", "email"}

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db       *sqlx.DB
	observer QueryObserver
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB, observer QueryObserver) *StudentRepository {
	return &StudentRepository{db: db, observer: observerOrNop(observer)}
}

// Search returns students matching a free-text name search. With two or more
// whitespace separated tokens the first name must contain the first token and
// the last name the second. With one token either name may contain it. An
// empty search applies no filter.
func (r *StudentRepository) Search(ctx context.Context, search string) ([]models.Student, error) {
	builder := psql.Select(studentColumns...).From("students").OrderBy("student_id")

	tokens := strings.Fields(search)
	switch {
	case len(tokens) >= 2:
		builder = builder.Where(squirrel.And{
			containsFold("first_name", tokens[0]),
			containsFold("last_name", tokens[1]),
		})
	case len(tokens) == 1:
		builder = builder.Where(squirrel.Or{
			containsFold("first_name", tokens[0]),
			containsFold("last_name", tokens[0]),
		})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build student search: %w", err)
	}

	defer track(r.observer, "students.search")()
	students := []models.Student{}
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, fmt.Errorf("search students: %w", err)
	}
	return students, nil
}

// Summary joins students with their enrollments and counts enrollments per
// student per calendar date.
func (r *StudentRepository) Summary(ctx context.Context) ([]models.StudentEnrollmentSummary, error) {
	defer track(r.observer, "students.summary")()
	const query = `SELECT s.student_id,
        TO_CHAR(DATE(e.enrollment_date), 'YYYY-MM-DD') AS enrollment_day,
        s.first_name || ' ' || s.last_name AS full_name,
        s.email,
        COUNT(e.enrollment_id) AS enrollment_count
        FROM students s
        JOIN enrollments e ON e.student_id = s.student_id
        GROUP BY DATE(e.enrollment_date), s.student_id, s.first_name, s.last_name, s.email
        ORDER BY DATE(e.enrollment_date), s.student_id`
	rows := []models.StudentEnrollmentSummary{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("summarise student enrollments: %w", err)
	}
	return rows, nil
}

// FindByID fetches a student by primary key.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	defer track(r.observer, "students.find_by_id")()
	const query = `SELECT student_id, first_name, last_name, birth_date, email FROM students WHERE student_id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// UpdateNameEmail overwrites a student's names and email.
func (r *StudentRepository) UpdateNameEmail(ctx context.Context, id int64, firstName, lastName, email string) error {
	defer track(r.observer, "students.update")()
	const query = `UPDATE students SET first_name = $2, last_name = $3, email = $4 WHERE student_id = $1`
	res, err := r.db.ExecContext(ctx, query, id, firstName, lastName, email)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return requireAffected(res, "update student")
}

// Delete removes a student. Their enrollments are removed by the store's
// cascade rule.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	defer track(r.observer, "students.delete")()
	const query = `DELETE FROM students WHERE student_id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return requireAffected(res, "delete student")
}

// findStudentByIdentity decides whether an enrolling student already exists.
// It is the only place that defines student identity for enroll-or-create:
// exact equality on first name, last name, birth date and email.
func findStudentByIdentity(ctx context.Context, q sqlx.QueryerContext, identity models.StudentIdentity) (int64, bool, error) {
	const query = `SELECT student_id FROM students
        WHERE first_name = $1 AND last_name = $2 AND birth_date = $3 AND email = $4
        ORDER BY student_id LIMIT 1`
	var id int64
	err := sqlx.GetContext(ctx, q, &id, query,
		identity.FirstName,
		identity.LastName,
		identity.BirthDate.Format(models.DateLayout),
		identity.Email,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("find student by identity: %w", err)
	}
	return id, true, nil
}

func insertStudent(ctx context.Context, q sqlx.QueryerContext, identity models.StudentIdentity) (int64, error) {
	const query = `INSERT INTO students (first_name, last_name, birth_date, email) VALUES ($1, $2, $3, $4) RETURNING student_id`
	var id int64
	err := sqlx.GetContext(ctx, q, &id, query,
		identity.FirstName,
		identity.LastName,
		identity.BirthDate.Format(models.DateLayout),
		identity.Email,
	)
	if err != nil {
		return 0, fmt.Errorf("create student: %w", err)
	}
	return id, nil
}

func requireAffected(res sql.Result, op string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
