package query

import (
	"strings"

	"github.com/uptrace/bun/schema"
)

// Expr is a SQL expression node rendered through bun's formatter, so
// identifier and literal quoting follows the active dialect.
type Expr = schema.QueryAppender

// Column references a column, qualified by Table when set.
type Column struct {
	Table string
	Name  string
}

func (c Column) AppendQuery(fmter schema.QueryGen, b []byte) ([]byte, error) {
	if c.Table == "" {
		return fmter.AppendIdent(b, c.Name), nil
	}
	return fmter.AppendIdent(b, c.Table+"."+c.Name), nil
}

// Quoted is a literal value.
type Quoted struct {
	Value any
}

func (q Quoted) AppendQuery(fmter schema.QueryGen, b []byte) ([]byte, error) {
	return fmter.AppendQuery(b, "?", q.Value), nil
}

// Infix joins two expressions with a binary operator.
type Infix struct {
	Operator string
	Left     Expr
	Right    Expr
}

func (i Infix) AppendQuery(fmter schema.QueryGen, b []byte) ([]byte, error) {
	return fmter.AppendQuery(b, "? "+i.Operator+" ?", i.Left, i.Right), nil
}

// Grouping wraps an expression in parentheses.
type Grouping struct {
	Expr Expr
}

func (g Grouping) AppendQuery(fmter schema.QueryGen, b []byte) ([]byte, error) {
	return fmter.AppendQuery(b, "(?)", g.Expr), nil
}

// NamedFunc is a function call such as JSON_CONTAINS(a, b, c).
type NamedFunc struct {
	Name string
	Args []Expr
}

func (f NamedFunc) AppendQuery(fmter schema.QueryGen, b []byte) ([]byte, error) {
	var err error
	b = append(b, f.Name...)
	b = append(b, '(')
	for i, arg := range f.Args {
		if i > 0 {
			b = append(b, ", "...)
		}
		if b, err = arg.AppendQuery(fmter, b); err != nil {
			return nil, err
		}
	}
	return append(b, ')'), nil
}

// Cast converts an expression to Type.
type Cast struct {
	Expr Expr
	Type string
}

func (c Cast) AppendQuery(fmter schema.QueryGen, b []byte) ([]byte, error) {
	return fmter.AppendQuery(b, "CAST(? AS "+c.Type+")", c.Expr), nil
}

// As names an expression in a projection.
type As struct {
	Expr  Expr
	Alias string
}

func (a As) AppendQuery(fmter schema.QueryGen, b []byte) ([]byte, error) {
	return fmter.AppendQuery(b, "? AS ?", a.Expr, schema.Ident(a.Alias)), nil
}

// Direction is a sort direction.
type Direction string

const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)

// ParseDirection maps a case-insensitive "desc" to Descending and anything
// else to Ascending.
func ParseDirection(direction string) Direction {
	if strings.EqualFold(strings.TrimSpace(direction), "desc") {
		return Descending
	}
	return Ascending
}

// Ordering is a sort key.
type Ordering struct {
	Expr      Expr
	Direction Direction
}

func (o Ordering) AppendQuery(fmter schema.QueryGen, b []byte) ([]byte, error) {
	direction := o.Direction
	if direction != Descending {
		direction = Ascending
	}
	return fmter.AppendQuery(b, "? "+string(direction), o.Expr), nil
}

// Render formats expr into a SQL string using fmter.
func Render(fmter schema.QueryGen, expr Expr) (string, error) {
	b, err := expr.AppendQuery(fmter, nil)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
