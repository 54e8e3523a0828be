package models

import "time"

// DateLayout is the short date format used in report projections.
const DateLayout = "2006-01-02"

// Enrollment links one student to one course on a given date.
type Enrollment struct {
	ID        int64     `db:"enrollment_id" json:"id"`
	Date      time.Time `db:"enrollment_date" json:"date"`
	StudentID int64     `db:"student_id" json:"student_id"`
	CourseID  int64     `db:"course_id" json:"course_id"`
}

// EnrollmentDetail enriches Enrollment with the course name.
type EnrollmentDetail struct {
	Enrollment
	CourseName string `db:"course_name" json:"course_name"`
}

// EnrollmentDateCount is the number of enrollments made on one calendar date.
type EnrollmentDateCount struct {
	Date  time.Time `db:"enrollment_day" json:"date"`
	Count int       `db:"enrollment_count" json:"count"`
}

// EnrollOrCreateResult describes what an enroll-or-create call did.
type EnrollOrCreateResult struct {
	StudentID      int64     `json:"student_id"`
	CourseID       int64     `json:"course_id"`
	EnrollmentID   int64     `json:"enrollment_id"`
	EnrolledAt     time.Time `json:"enrolled_at"`
	StudentCreated bool      `json:"student_created"`
}
