// Package dbtest provides an in-memory sqlite database with the schema
// applied, for tests that need real SQL semantics (ordering, constraints,
// cascades) rather than sqlmock expectations.
package dbtest

import (
	"testing"

	"blogsite/internal/database"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func New(t testing.TB) *database.DB {
	t.Helper()

	db, err := sqlx.Connect(database.DriverSQLite, "file::memory:?_foreign_keys=on")
	require.NoError(t, err)

	// every new connection to :memory: is a fresh, empty database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	d := database.NewDB(db, database.DriverSQLite)
	require.NoError(t, d.RunMigrations())

	return d
}
