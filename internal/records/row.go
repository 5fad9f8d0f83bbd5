package records

import "github.com/goliatone/go-json-translate/pkg/interfaces"

// Row adapts a column map, such as one scanned by bun into a
// map[string]any, to interfaces.Record. A key counts as a native column.
type Row map[string]any

var _ interfaces.Record = Row(nil)

func (r Row) HasColumn(name string) bool {
	_, ok := r[name]
	return ok
}

func (r Row) Column(name string) any {
	return r[name]
}

func (r Row) SetColumn(name string, value any) error {
	r[name] = value
	return nil
}
