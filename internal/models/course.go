package models

// Course belongs to one department and one instructor.
type Course struct {
	ID           int64  `db:"course_id" json:"id"`
	Name         string `db:"course_name" json:"name"`
	MaxStudents  int    `db:"students_max" json:"max_students"`
	DepartmentID int64  `db:"department_id" json:"department_id"`
	InstructorID int64  `db:"instructor_id" json:"instructor_id"`
}

// CourseDetail adds department, instructor and enrollment context.
type CourseDetail struct {
	Course
	DepartmentName  string `db:"department_name" json:"department_name"`
	InstructorName  string `db:"instructor_name" json:"instructor_name"`
	EnrollmentCount int    `db:"enrollment_count" json:"enrollment_count"`
}
