package query

import (
	"encoding/json"
	"sync"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-json-translate/internal/logging"
	"github.com/goliatone/go-json-translate/pkg/interfaces"
)

const (
	unsupportedDialectCode = "TRANSLATION_DIALECT_UNSUPPORTED"
	literalEncodeCode      = "TRANSLATION_LITERAL_ENCODE_FAILED"
)

// Scope refines a select query; it has the shape go-repository-bun expects
// from SelectRawProcessor.
type Scope func(*bun.SelectQuery) *bun.SelectQuery

// Builder emits translation query fragments for columns of one table.
type Builder struct {
	table  string
	strict bool
	logger interfaces.Logger
	warned sync.Once
}

// BuilderOption customises a Builder.
type BuilderOption func(*Builder)

// WithStrictDialect makes unknown dialects an error instead of assuming the
// native containment form.
func WithStrictDialect(strict bool) BuilderOption {
	return func(b *Builder) {
		b.strict = strict
	}
}

// WithBuilderLogger sets the builder logger.
func WithBuilderLogger(logger interfaces.Logger) BuilderOption {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBuilder constructs a builder qualifying columns with table (which may be
// a table name or alias, or empty for unqualified columns).
func NewBuilder(table string, opts ...BuilderOption) *Builder {
	b := &Builder{
		table:  table,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Table returns the column qualifier.
func (b *Builder) Table() string { return b.table }

// Column returns the qualified reference to column.
func (b *Builder) Column(column string) Column {
	return Column{Table: b.table, Name: column}
}

func (b *Builder) dialect(d Dialect) (Dialect, error) {
	if d != DialectUnknown {
		return d, nil
	}
	if b.strict {
		return d, goerrors.Wrap(ErrUnsupportedDialect, goerrors.CategoryValidation, "resolve translation query dialect").
			WithTextCode(unsupportedDialectCode)
	}
	b.warned.Do(func() {
		b.logger.Warn("unknown dialect, assuming native jsonb containment", "table", b.table)
	})
	return DialectNativeContainment, nil
}

// Contains builds the predicate "document in column holds {locale: value}".
func (b *Builder) Contains(d Dialect, column, locale string, value any) (Expr, error) {
	d, err := b.dialect(d)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(map[string]any{locale: value})
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "encode containment literal").
			WithTextCode(literalEncodeCode)
	}
	literal := Quoted{Value: string(encoded)}
	col := b.Column(column)

	switch d {
	case DialectDocumentFunction:
		return NamedFunc{
			Name: "JSON_CONTAINS",
			Args: []Expr{col, literal, Quoted{Value: "$"}},
		}, nil
	case DialectPathEquality:
		path := Quoted{Value: jsonPath(locale)}
		return Infix{
			Operator: "=",
			Left:     Grouping{Expr: Infix{Operator: "->", Left: col, Right: path}},
			Right:    Grouping{Expr: Infix{Operator: "->", Left: literal, Right: path}},
		}, nil
	default:
		return Infix{
			Operator: "@>",
			Left:     col,
			Right:    Cast{Expr: literal, Type: "jsonb"},
		}, nil
	}
}

// Extract builds the expression returning the JSON value stored for locale.
func (b *Builder) Extract(d Dialect, column, locale string) (Expr, error) {
	d, err := b.dialect(d)
	if err != nil {
		return nil, err
	}
	key := Quoted{Value: locale}
	if d != DialectNativeContainment {
		key = Quoted{Value: jsonPath(locale)}
	}
	return Infix{Operator: "->", Left: b.Column(column), Right: key}, nil
}

// Select wraps Extract as a named output column.
func (b *Builder) Select(d Dialect, column, locale, alias string) (Expr, error) {
	expr, err := b.Extract(d, column, locale)
	if err != nil {
		return nil, err
	}
	if alias == "" {
		return expr, nil
	}
	return As{Expr: expr, Alias: alias}, nil
}

// Order wraps Extract as a sort key. Only a case-insensitive "desc" sorts
// descending. SQLite sorts on the unwrapped SQL value (->>) because its ->
// yields JSON text, which would order 10 before 9.
func (b *Builder) Order(d Dialect, column, locale, direction string) (Expr, error) {
	d, err := b.dialect(d)
	if err != nil {
		return nil, err
	}
	expr, err := b.Extract(d, column, locale)
	if err != nil {
		return nil, err
	}
	if d == DialectPathEquality {
		expr = Infix{Operator: "->>", Left: b.Column(column), Right: Quoted{Value: jsonPath(locale)}}
	}
	return Ordering{Expr: expr, Direction: ParseDirection(direction)}, nil
}

// WhereContains returns a scope filtering on Contains. The dialect is
// resolved from the query's database on every call.
func (b *Builder) WhereContains(column, locale string, value any) Scope {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		expr, err := b.Contains(ResolveDB(q.DB()), column, locale, value)
		if err != nil {
			return q.Err(err)
		}
		return q.Where("?", expr)
	}
}

// SelectColumn returns a scope projecting Select.
func (b *Builder) SelectColumn(column, locale, alias string) Scope {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		expr, err := b.Select(ResolveDB(q.DB()), column, locale, alias)
		if err != nil {
			return q.Err(err)
		}
		return q.ColumnExpr("?", expr)
	}
}

// OrderBy returns a scope ordering by Order.
func (b *Builder) OrderBy(column, locale, direction string) Scope {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		expr, err := b.Order(ResolveDB(q.DB()), column, locale, direction)
		if err != nil {
			return q.Err(err)
		}
		return q.OrderExpr("?", expr)
	}
}

// jsonPath renders the JSON path selecting key, quoting it as a JSON string
// so locales such as pt-BR stay a single path member.
func jsonPath(key string) string {
	quoted, _ := json.Marshal(key)
	return "$." + string(quoted)
}
