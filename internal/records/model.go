package records

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/uptrace/bun/schema"

	"github.com/goliatone/go-json-translate/pkg/interfaces"
)

// ErrModelPointerRequired indicates NewModel received something other than a
// pointer to a struct.
var ErrModelPointerRequired = errors.New("records: model must be a non-nil pointer to a struct")

var (
	// ErrUnknownColumn indicates SetColumn named a column the model does not map.
	ErrUnknownColumn = errors.New("records: unknown column")
	// ErrColumnNotAssignable indicates the value does not fit the mapped field.
	ErrColumnNotAssignable = errors.New("records: value not assignable to column")
)

// TableResolver resolves bun table metadata; *bun.DB satisfies it.
type TableResolver interface {
	Table(typ reflect.Type) *schema.Table
}

// Model adapts a bun model struct to interfaces.Record. Columns are the
// fields bun maps for the model's table.
type Model struct {
	table *schema.Table
	strct reflect.Value
}

var _ interfaces.Record = (*Model)(nil)

// NewModel wraps model, which must be a pointer to a bun model struct.
func NewModel(tables TableResolver, model any) (*Model, error) {
	rv := reflect.ValueOf(model)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, ErrModelPointerRequired
	}
	if tables == nil {
		return nil, errors.New("records: table resolver is required")
	}
	table := tables.Table(rv.Elem().Type())
	if table == nil {
		return nil, fmt.Errorf("records: no bun table for %T", model)
	}
	return &Model{table: table, strct: rv.Elem()}, nil
}

// MustModel is NewModel that panics on error.
func MustModel(tables TableResolver, model any) *Model {
	m, err := NewModel(tables, model)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Model) HasColumn(name string) bool {
	_, ok := m.table.FieldMap[name]
	return ok
}

func (m *Model) Column(name string) any {
	field, ok := m.table.FieldMap[name]
	if !ok {
		return nil
	}
	return field.Value(m.strct).Interface()
}

// SetColumn assigns value to the mapped field. Encoded JSON strings are
// handed to sql.Scanner fields, converted for string and []byte fields and
// decoded into map, slice and struct fields. Values that fit none of these
// are rejected with ErrColumnNotAssignable.
func (m *Model) SetColumn(name string, value any) error {
	field, ok := m.table.FieldMap[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, name)
	}
	dest := field.Value(m.strct)
	if !dest.CanSet() {
		return fmt.Errorf("%w: %s is not settable", ErrColumnNotAssignable, name)
	}

	if value == nil {
		dest.Set(reflect.Zero(dest.Type()))
		return nil
	}

	if dest.CanAddr() {
		if scanner, ok := dest.Addr().Interface().(sql.Scanner); ok {
			if err := scanner.Scan(value); err != nil {
				return fmt.Errorf("%w: %s: %w", ErrColumnNotAssignable, name, err)
			}
			return nil
		}
	}

	src := reflect.ValueOf(value)
	switch {
	case src.Type().AssignableTo(dest.Type()):
		dest.Set(src)
		return nil
	case convertible(src.Type(), dest.Type()):
		dest.Set(src.Convert(dest.Type()))
		return nil
	case dest.Kind() == reflect.Pointer && convertible(src.Type(), dest.Type().Elem()):
		ptr := reflect.New(dest.Type().Elem())
		ptr.Elem().Set(src.Convert(dest.Type().Elem()))
		dest.Set(ptr)
		return nil
	}

	if data, ok := encodedJSON(value); ok && holdsJSON(dest.Type()) {
		fresh := reflect.New(dest.Type())
		if err := unmarshalJSON(data, fresh.Interface()); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrColumnNotAssignable, name, err)
		}
		dest.Set(fresh.Elem())
		return nil
	}

	return fmt.Errorf("%w: %s cannot hold %T", ErrColumnNotAssignable, name, value)
}

func encodedJSON(value any) ([]byte, bool) {
	switch v := value.(type) {
	case string:
		return []byte(v), true
	case []byte:
		return v, true
	case json.RawMessage:
		return v, true
	}
	return nil, false
}

// holdsJSON reports whether a field of type typ stores a decoded JSON value.
func holdsJSON(typ reflect.Type) bool {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	switch typ.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return true
	}
	return false
}

// unmarshalJSON keeps numbers as json.Number so large integers survive.
func unmarshalJSON(data []byte, dest any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(dest); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}

// convertible excludes integer to string conversions, which reflect treats
// as rune conversions.
func convertible(src, dest reflect.Type) bool {
	if dest.Kind() == reflect.String && src.Kind() != reflect.String {
		return src.Kind() == reflect.Slice && src.Elem().Kind() == reflect.Uint8
	}
	return src.ConvertibleTo(dest)
}
