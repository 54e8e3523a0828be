package errors

import (
	"database/sql"
	stdErrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	err := Clone(ErrNotFound, "student not found")
	got := FromError(err)
	assert.Equal(t, "NOT_FOUND", got.Code)
	assert.Equal(t, http.StatusNotFound, got.Status)
	assert.Equal(t, "student not found", got.Message)
}

func TestFromErrorWrapsUnknownErrors(t *testing.T) {
	got := FromError(sql.ErrConnDone)
	assert.Equal(t, ErrInternal.Code, got.Code)
	assert.ErrorIs(t, got, sql.ErrConnDone)
	assert.Nil(t, FromError(nil))
}

func TestClonesMatchSentinel(t *testing.T) {
	err := WrapAs(ErrStorageUnavailable, stdErrors.New("dial tcp: connection refused"), "")
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "storage unavailable: dial tcp: connection refused", err.Error())
}

func TestCloneNil(t *testing.T) {
	assert.Nil(t, Clone(nil, "x"))
	var e *Error
	assert.Equal(t, "<nil>", e.Error())
}
