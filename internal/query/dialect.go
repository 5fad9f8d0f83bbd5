package query

import (
	"errors"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

// ErrUnsupportedDialect is returned by strict builders when the connection
// dialect has no known JSON containment form.
var ErrUnsupportedDialect = errors.New("query: unsupported database dialect")

// Dialect tags the JSON query family of a connection.
type Dialect int

const (
	DialectUnknown Dialect = iota
	// DialectNativeContainment covers Postgres: `@>` against a jsonb cast.
	DialectNativeContainment
	// DialectDocumentFunction covers MySQL and MariaDB: JSON_CONTAINS.
	DialectDocumentFunction
	// DialectPathEquality covers SQLite: compares values extracted by path.
	DialectPathEquality
)

func (d Dialect) String() string {
	switch d {
	case DialectNativeContainment:
		return "native-containment"
	case DialectDocumentFunction:
		return "document-function"
	case DialectPathEquality:
		return "path-equality"
	default:
		return "unknown"
	}
}

// Resolve maps a bun dialect name to its tag.
func Resolve(name dialect.Name) Dialect {
	switch name {
	case dialect.PG:
		return DialectNativeContainment
	case dialect.MySQL:
		return DialectDocumentFunction
	case dialect.SQLite:
		return DialectPathEquality
	default:
		return DialectUnknown
	}
}

// ResolveDB resolves the tag of db's dialect.
func ResolveDB(db bun.IDB) Dialect {
	if db == nil {
		return DialectUnknown
	}
	return Resolve(db.Dialect().Name())
}
