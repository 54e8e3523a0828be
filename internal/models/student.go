package models

import "time"

// UnspecifiedEmail is stored when a student enrolls without giving an email.
const UnspecifiedEmail = "Has not specified"

// Student represents a learner registered at the university.
type Student struct {
	ID        int64     `db:"student_id" json:"id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	BirthDate time.Time `db:"birth_date" json:"birth_date"`
	Email     string    `db:"email" json:"email"`
}

// StudentDetail is a student with their enrollments.
type StudentDetail struct {
	Student
	Enrollments []EnrollmentDetail `json:"enrollments"`
}

// StudentIdentity is the natural key used to decide whether an enrolling
// student already exists: all four fields must match exactly.
type StudentIdentity struct {
	FirstName string
	LastName  string
	BirthDate time.Time
	Email     string
}

// StudentEnrollmentSummary is one row of the student/enrollment report:
// enrollments per student per calendar date.
type StudentEnrollmentSummary struct {
	StudentID int64  `db:"student_id" json:"student_id"`
	Date      string `db:"enrollment_day" json:"date"`
	FullName  string `db:"full_name" json:"full_name"`
	Email     string `db:"email" json:"email"`
	Count     int    `db:"enrollment_count" json:"count"`
}
