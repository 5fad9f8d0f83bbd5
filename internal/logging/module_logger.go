package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-json-translate/pkg/interfaces"
)

const (
	rootModule     = "translates"
	accessorModule = "translates.accessor"
	queryModule    = "translates.query"
	registryModule = "translates.registry"
	localesModule  = "translates.locales"
)

const (
	fieldAttribute = "attribute"
	fieldLocale    = "locale"
	fieldDialect   = "dialect"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// AccessorLogger returns the logger namespace reserved for translation accessors.
func AccessorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, accessorModule)
}

// QueryLogger returns the logger namespace reserved for dialect query builders.
func QueryLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, queryModule)
}

// RegistryLogger returns the logger namespace reserved for attribute declarations.
func RegistryLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, registryModule)
}

// LocalesLogger returns the logger namespace reserved for the locale catalog.
func LocalesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, localesModule)
}

// WithTranslationContext enriches the logger with the attribute, locale and
// dialect involved in an operation. Empty values are ignored.
func WithTranslationContext(logger interfaces.Logger, attribute, locale, dialect string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(attribute); trimmed != "" {
		fields[fieldAttribute] = trimmed
	}
	if trimmed := strings.TrimSpace(locale); trimmed != "" {
		fields[fieldLocale] = trimmed
	}
	if trimmed := strings.TrimSpace(dialect); trimmed != "" {
		fields[fieldDialect] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
