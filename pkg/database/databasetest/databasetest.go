// Package databasetest opens throwaway SQLite databases with the embedded
// schema applied, for tests of code that talks to the store.
package databasetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/biztime/migrations"
	"github.com/garyjia/biztime/pkg/database"
)

// New returns a migrated SQLite database living in t.TempDir(). It is closed
// when the test finishes.
func New(t testing.TB) *database.DB {
	t.Helper()

	logger := zap.NewNop()
	db, err := database.New(database.Config{
		Driver: database.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "biztime_test.db"),
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	err = database.NewMigrator(db, logger).RunMigrations(context.Background(), migrations.FS, db.Driver())
	require.NoError(t, err)
	return db
}
