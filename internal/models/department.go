package models

// Department groups courses and is managed by an instructor.
type Department struct {
	ID                   int64  `db:"department_id" json:"id"`
	Name                 string `db:"department_name" json:"name"`
	BuildingNumber       int    `db:"building_number" json:"building_number"`
	ManagingInstructorID int64  `db:"managing_instructor_id" json:"managing_instructor_id"`
}

// DepartmentDetail includes the managing instructor's name when the
// reference resolves, and the number of courses offered.
type DepartmentDetail struct {
	Department
	ManagingInstructorName *string `db:"managing_instructor_name" json:"managing_instructor_name,omitempty"`
	CourseCount            int     `db:"course_count" json:"course_count"`
}
