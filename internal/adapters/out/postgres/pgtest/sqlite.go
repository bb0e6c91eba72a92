// Package pgtest provides a migrated in-memory database for tests that need
// real repositories but not a Postgres container.
package pgtest

import (
	"testing"

	"logistics/internal/adapters/out/postgres"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewSQLite opens a private shared-cache in-memory database. The pool is
// capped at one connection so the database survives idle periods and
// transactions never contend with themselves.
func NewSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := postgres.Open(t.Context(), postgres.Options{
		Driver:       postgres.DriverSQLite,
		DSN:          "file:logistics_" + uuid.NewString() + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))

	t.Cleanup(func() {
		_ = postgres.Close(db)
	})
	return db
}
