package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jmoiron/sqlx"
)

//go:embed schema.sql
var schemaSQL string

// Schema returns the DDL for the five university tables.
func Schema() string {
	return schemaSQL
}

// EnsureSchema creates any missing tables and indexes. It is safe to call on
// every start-up.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	return WithTx(ctx, db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
		return nil
	})
}
