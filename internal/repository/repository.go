package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
)

var (
	// ErrInvalidSortColumn is returned before any query runs when a sort column
	// is not in the allow-list.
	ErrInvalidSortColumn = errors.New("invalid sort column")
	// ErrCourseNotFound is returned by enroll-or-create when no course has the
	// requested name.
	ErrCourseNotFound = errors.New("course not found")
)

// QueryObserver receives the duration of each store round trip.
type QueryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveDBQuery(string, time.Duration) {}

func observerOrNop(o QueryObserver) QueryObserver {
	if o == nil {
		return nopObserver{}
	}
	return o
}

// track starts a timer; calling the returned func reports the elapsed time.
func track(o QueryObserver, label string) func() {
	start := time.Now()
	return func() { o.ObserveDBQuery(label, time.Since(start)) }
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsFold matches rows whose column contains token, ignoring case.
func containsFold(column, token string) squirrel.Sqlizer {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(token)) + "%"
	return squirrel.Expr("LOWER("+column+") LIKE ?", pattern)
}
