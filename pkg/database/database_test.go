package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/biztime/migrations"
)

func openSQLite(t *testing.T) *DB {
	t.Helper()
	db, err := New(Config{
		Driver: DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "test.db"),
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDataSourceName(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    string
		wantErr bool
	}{
		{
			name: "sqlite path",
			cfg:  Config{Driver: DriverSQLite, DSN: "data/biztime.db"},
			want: "file:data/biztime.db?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on",
		},
		{
			name: "sqlite dsn kept",
			cfg:  Config{Driver: DriverSQLite, DSN: "file::memory:?_foreign_keys=on"},
			want: "file::memory:?_foreign_keys=on",
		},
		{
			name: "postgres url kept",
			cfg:  Config{Driver: DriverPostgres, DSN: "postgres://localhost:5432/biztime"},
			want: "postgres://localhost:5432/biztime",
		},
		{
			name:    "unknown driver",
			cfg:     Config{Driver: "oracle", DSN: "x"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dataSourceName(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRebind(t *testing.T) {
	query := "UPDATE invoices SET amt = ?, paid = ? WHERE id = ?"

	sqlite := &DB{driver: DriverSQLite}
	assert.Equal(t, query, sqlite.Rebind(query))

	pg := &DB{driver: DriverPostgres}
	assert.Equal(t, "UPDATE invoices SET amt = $1, paid = $2 WHERE id = $3", pg.Rebind(query))
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()
	migrator := NewMigrator(db, zap.NewNop())

	require.NoError(t, migrator.RunMigrations(ctx, migrations.FS, DriverSQLite))
	require.NoError(t, migrator.RunMigrations(ctx, migrations.FS, DriverSQLite))

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)

	_, err := db.ExecContext(ctx, "INSERT INTO companies (code, name, description) VALUES (?, ?, ?)", "test", "Test Co.", "")
	assert.NoError(t, err)
}

func TestLoadMigrations_SortedByVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"m/002_add_index.sql":   {Data: []byte("CREATE INDEX x ON t (a);")},
		"m/001_create.sql":      {Data: []byte("CREATE TABLE t (a INTEGER);")},
		"m/README.md":           {Data: []byte("ignored")},
		"m/010_late_change.sql": {Data: []byte("SELECT 1;")},
	}

	got, err := LoadMigrations(fsys, "m")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 1, got[0].Version)
	assert.Equal(t, "create", got[0].Name)
	assert.Equal(t, 2, got[1].Version)
	assert.Equal(t, 10, got[2].Version)
	assert.Equal(t, "late_change", got[2].Name)
}

func TestLoadMigrations_BadFilename(t *testing.T) {
	fsys := fstest.MapFS{
		"m/schema.sql": {Data: []byte("SELECT 1;")},
	}

	_, err := LoadMigrations(fsys, "m")
	assert.Error(t, err)
}

func TestWithTransaction(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()
	_, err := db.ExecContext(ctx, "CREATE TABLE items (name TEXT NOT NULL)")
	require.NoError(t, err)

	t.Run("commits on success", func(t *testing.T) {
		err := db.WithTransaction(ctx, func(ctx context.Context) error {
			_, err := db.ExecContext(ctx, "INSERT INTO items (name) VALUES (?)", "kept")
			return err
		})
		require.NoError(t, err)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := db.WithTransaction(ctx, func(ctx context.Context) error {
			if _, err := db.ExecContext(ctx, "INSERT INTO items (name) VALUES (?)", "dropped"); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)
	})

	var names []string
	rows, err := db.QueryContext(ctx, "SELECT name FROM items")
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"kept"}, names)
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New(Config{Driver: "oracle"}, zap.NewNop())
	assert.Error(t, err)
}

func TestNew_CreatesSQLiteDirectory(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "data", "nested", "biztime.db")

	db, err := New(Config{Driver: DriverSQLite, DSN: dsn}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	assert.DirExists(t, filepath.Dir(dsn))
	assert.FileExists(t, dsn)
}
