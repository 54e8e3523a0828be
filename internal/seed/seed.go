package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/contoso-university-api/pkg/database"
)

type person struct {
	first, last string
	birth       time.Time
	email       string
}

type department struct {
	name       string
	building   int
	managerIdx int
}

type course struct {
	name          string
	maxStudents   int
	departmentIdx int
	instructorIdx int
}

type enrollment struct {
	studentIdx, courseIdx int
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var (
	instructors = []person{
		{"John", "Smith", date(1975, time.March, 15), "john.smith@contoso.edu"},
		{"Emily", "Johnson", date(1980, time.July, 22), "emily.johnson@contoso.edu"},
		{"Michael", "Brown", date(1978, time.November, 8), "michael.brown@contoso.edu"},
	}
	departments = []department{
		{"Computer Science", 1, 0},
		{"Mathematics", 2, 1},
		{"Physics", 3, 2},
	}
	courses = []course{
		{"Introduction to Programming", 30, 0, 0},
		{"Data Structures", 25, 0, 0},
		{"Calculus I", 40, 1, 1},
		{"Linear Algebra", 35, 1, 1},
		{"Physics I", 30, 2, 2},
	}
	students = []person{
		{"Alice", "Williams", date(2000, time.May, 10), "alice.williams@student.contoso.edu"},
		{"Bob", "Davis", date(1999, time.August, 25), "bob.davis@student.contoso.edu"},
		{"Charlie", "Miller", date(2001, time.February, 14), "charlie.miller@student.contoso.edu"},
		{"Diana", "Wilson", date(2000, time.November, 30), "diana.wilson@student.contoso.edu"},
		{"Eve", "Moore", date(1999, time.June, 18), "eve.moore@student.contoso.edu"},
	}
	enrollments = []enrollment{
		{0, 0}, {0, 2},
		{1, 0}, {1, 1},
		{2, 2}, {2, 3},
		{3, 4},
		{4, 0}, {4, 4},
	}
	enrollmentDate = date(2024, time.September, 1)
)

// Run loads the reference data set when the students table is empty. It
// reports whether anything was inserted. All rows are written in one
// transaction.
func Run(ctx context.Context, db *sqlx.DB, logger *zap.Logger) (bool, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	seeded := false
	err := database.WithTx(ctx, db, func(tx *sqlx.Tx) error {
		var populated bool
		if err := tx.GetContext(ctx, &populated, `SELECT EXISTS (SELECT 1 FROM students)`); err != nil {
			return fmt.Errorf("check students: %w", err)
		}
		if populated {
			return nil
		}

		instructorIDs, err := insertPeople(ctx, tx, "instructors", "instructor_id", instructors)
		if err != nil {
			return err
		}

		departmentIDs := make([]int64, len(departments))
		for i, d := range departments {
			err := tx.GetContext(ctx, &departmentIDs[i],
				`INSERT INTO departments (department_name, building_number, managing_instructor_id) VALUES ($1, $2, $3) RETURNING department_id`,
				d.name, d.building, instructorIDs[d.managerIdx])
			if err != nil {
				return fmt.Errorf("seed department %q: %w", d.name, err)
			}
		}

		courseIDs := make([]int64, len(courses))
		for i, c := range courses {
			err := tx.GetContext(ctx, &courseIDs[i],
				`INSERT INTO courses (course_name, students_max, department_id, instructor_id) VALUES ($1, $2, $3, $4) RETURNING course_id`,
				c.name, c.maxStudents, departmentIDs[c.departmentIdx], instructorIDs[c.instructorIdx])
			if err != nil {
				return fmt.Errorf("seed course %q: %w", c.name, err)
			}
		}

		studentIDs, err := insertPeople(ctx, tx, "students", "student_id", students)
		if err != nil {
			return err
		}

		for _, e := range enrollments {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO enrollments (enrollment_date, student_id, course_id) VALUES ($1, $2, $3)`,
				enrollmentDate, studentIDs[e.studentIdx], courseIDs[e.courseIdx])
			if err != nil {
				return fmt.Errorf("seed enrollment: %w", err)
			}
		}

		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if seeded {
		logger.Info("seeded reference data",
			zap.Int("departments", len(departments)),
			zap.Int("instructors", len(instructors)),
			zap.Int("courses", len(courses)),
			zap.Int("students", len(students)),
			zap.Int("enrollments", len(enrollments)),
		)
	} else {
		logger.Debug("seed skipped: students already present")
	}
	return seeded, nil
}

func insertPeople(ctx context.Context, tx *sqlx.Tx, table, idColumn string, people []person) ([]int64, error) {
	query := fmt.Sprintf(`INSERT INTO %s (first_name, last_name, birth_date, email) VALUES ($1, $2, $3, $4) RETURNING %s`, table, idColumn)
	ids := make([]int64, len(people))
	for i, p := range people {
		if err := tx.GetContext(ctx, &ids[i], query, p.first, p.last, p.birth, p.email); err != nil {
			return nil, fmt.Errorf("seed %s %s %s: %w", table, p.first, p.last, err)
		}
	}
	return ids, nil
}
