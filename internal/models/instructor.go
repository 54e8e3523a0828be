package models

import (
	"strings"
	"time"
)

// Instructor teaches courses and may manage a department.
type Instructor struct {
	ID        int64     `db:"instructor_id" json:"id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	BirthDate time.Time `db:"birth_date" json:"birth_date"`
	Email     string    `db:"email" json:"email"`
}

// SortDirection is the ORDER BY direction for sorted listings.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// ParseSortDirection returns SortAsc only for "asc" (any case); everything
// else, including an empty value, sorts descending.
func ParseSortDirection(raw string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(raw), "asc") {
		return SortAsc
	}
	return SortDesc
}
