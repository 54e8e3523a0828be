package service

import (
	"github.com/noah-isme/contoso-university-api/pkg/database"
	appErrors "github.com/noah-isme/contoso-university-api/pkg/errors"
)

// storeError maps a repository failure onto the error taxonomy. Connectivity
// problems surface as STORAGE_UNAVAILABLE and are never retried.
func storeError(err error, message string) error {
	switch {
	case database.IsUnavailable(err):
		return appErrors.WrapAs(appErrors.ErrStorageUnavailable, err, "")
	case database.IsForeignKeyViolation(err):
		return appErrors.WrapAs(appErrors.ErrConflict, err, "")
	default:
		return appErrors.WrapAs(appErrors.ErrInternal, err, message)
	}
}
