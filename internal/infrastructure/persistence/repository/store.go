package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"

	"github.com/garyjia/biztime/internal/application/port"
)

// Store is the query surface the repositories run against.
// *database.DB satisfies it.
type Store interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// rowScanner is implemented by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// wrapError prefixes err with the failed operation and, for constraint
// violations, also wraps the matching port sentinel.
func wrapError(op string, err error) error {
	if kind := classify(err); kind != nil {
		return fmt.Errorf("failed to %s: %w: %w", op, kind, err)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// classify maps driver constraint errors to port sentinels, nil otherwise
func classify(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return port.ErrDuplicateKey
		case sqlite3.ErrConstraintForeignKey:
			return port.ErrMissingReference
		case sqlite3.ErrConstraintCheck, sqlite3.ErrConstraintNotNull:
			return port.ErrInvalidValue
		}
		return nil
	}

	// SQLSTATE class 23, integrity constraint violation
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return port.ErrDuplicateKey
		case "23503":
			return port.ErrMissingReference
		case "23502", "23514":
			return port.ErrInvalidValue
		}
	}
	return nil
}

// nullTime scans timestamps from either driver. SQLite hands back text
// whenever the column type is unknown to it, e.g. in RETURNING clauses.
type nullTime struct {
	Time  time.Time
	Valid bool
}

func (t *nullTime) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		t.Time, t.Valid = time.Time{}, false
		return nil
	case time.Time:
		t.Time, t.Valid = v, true
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("unsupported timestamp type %T", value)
	}
}

func (t *nullTime) parse(s string) error {
	for _, layout := range sqlite3.SQLiteTimestampFormats {
		if ts, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t.Time, t.Valid = ts, true
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

func (t nullTime) ptr() *time.Time {
	if !t.Valid {
		return nil
	}
	ts := t.Time
	return &ts
}
