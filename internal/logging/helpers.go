package logging

import (
	"maps"

	"github.com/goliatone/go-json-translate/pkg/interfaces"
)

// WithFields returns logger annotated with a copy of fields. Loggers that do
// not implement interfaces.FieldsLogger are returned unchanged.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	fl, ok := logger.(interfaces.FieldsLogger)
	if !ok || len(fields) == 0 {
		return logger
	}
	return fl.WithFields(maps.Clone(fields))
}
