package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/contoso-university-api/internal/models"
)

var instructorColumns = []string{"instructor_id", "first_name", "last_name", "birth_date", "email"}

// instructorSortColumns is the allow-list of sortable columns keyed by the
// normalised user spelling. Only values from this map reach the SQL text.
var instructorSortColumns = map[string]string{
	"id":           "instructor_id",
	"instructorid": "instructor_id",
	"firstname":    "first_name",
	"lastname":     "last_name",
	"birthdate":    "birth_date",
	"email":        "email",
}

var sortKeyNormalizer = strings.NewReplacer("_", "", " ", "")

// InstructorSortColumn resolves a requested sort column against the allow-list.
// Matching ignores case, underscores and spaces, so "FirstName", "first_name"
// and "first name" are equivalent.
func InstructorSortColumn(raw string) (string, error) {
	key := sortKeyNormalizer.Replace(strings.ToLower(strings.TrimSpace(raw)))
	column, ok := instructorSortColumns[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidSortColumn, raw)
	}
	return column, nil
}

// InstructorRepository reads instructors.
type InstructorRepository struct {
	db       *sqlx.DB
	observer QueryObserver
}

// NewInstructorRepository constructs an InstructorRepository.
func NewInstructorRepository(db *sqlx.DB, observer QueryObserver) *InstructorRepository {
	return &InstructorRepository{db: db, observer: observerOrNop(observer)}
}

// List returns all instructors in store order.
func (r *InstructorRepository) List(ctx context.Context) ([]models.Instructor, error) {
	return r.list(ctx, "instructor_id ASC")
}

// ListSorted returns all instructors ordered by an allow-listed column. An
// empty column behaves like List. A column outside the allow-list fails with
// ErrInvalidSortColumn without touching the store.
func (r *InstructorRepository) ListSorted(ctx context.Context, column string, direction models.SortDirection) ([]models.Instructor, error) {
	if strings.TrimSpace(column) == "" {
		return r.List(ctx)
	}
	resolved, err := InstructorSortColumn(column)
	if err != nil {
		return nil, err
	}
	if direction != models.SortAsc {
		direction = models.SortDesc
	}
	return r.list(ctx, resolved+" "+string(direction))
}

func (r *InstructorRepository) list(ctx context.Context, orderBy string) ([]models.Instructor, error) {
	query, args, err := psql.Select(instructorColumns...).From("instructors").OrderBy(orderBy).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build instructor query: %w", err)
	}

	defer track(r.observer, "instructors.list")()
	instructors := []models.Instructor{}
	if err := r.db.SelectContext(ctx, &instructors, query, args...); err != nil {
		return nil, fmt.Errorf("list instructors: %w", err)
	}
	return instructors, nil
}
