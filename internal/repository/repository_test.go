package repository

import (
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

type recordingObserver struct {
	labels []string
}

func (o *recordingObserver) ObserveDBQuery(label string, _ time.Duration) {
	o.labels = append(o.labels, label)
}

func TestContainsFoldEscapesWildcards(t *testing.T) {
	sql, args, err := containsFold("first_name", "50%_Off").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "LOWER(first_name) LIKE ?", sql)
	assert.Equal(t, []interface{}{`%50\%\_off%`}, args)
}

func TestObserverOrNop(t *testing.T) {
	assert.NotPanics(t, func() { track(observerOrNop(nil), "noop")() })

	rec := &recordingObserver{}
	track(observerOrNop(rec), "students.search")()
	assert.Equal(t, []string{"students.search"}, rec.labels)
}
