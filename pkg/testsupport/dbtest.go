package testsupport

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"
)

// NewSQLiteBunDB opens a private in-memory sqlite database wrapped in bun.
func NewSQLiteBunDB(t testing.TB) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared", sanitize(t.Name())))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// NewMockBunDB returns a bun DB speaking dialect over a sqlmock connection.
func NewMockBunDB(t testing.TB, dialect schema.Dialect) (*bun.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqldb, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	db := bun.NewDB(sqldb, dialect)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// NewMockPostgres returns a Postgres-dialect bun DB over sqlmock.
func NewMockPostgres(t testing.TB) (*bun.DB, sqlmock.Sqlmock) {
	t.Helper()
	return NewMockBunDB(t, pgdialect.New())
}

// NewMockMySQL returns a MySQL-dialect bun DB over sqlmock.
func NewMockMySQL(t testing.TB) (*bun.DB, sqlmock.Sqlmock) {
	t.Helper()
	return NewMockBunDB(t, mysqldialect.New())
}

func sanitize(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
