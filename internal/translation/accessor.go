package translation

import (
	"context"

	"github.com/goliatone/go-json-translate/internal/logging"
	"github.com/goliatone/go-json-translate/pkg/interfaces"
)

// Accessor reads and writes one translated attribute on host records.
type Accessor struct {
	name       string
	column     string
	allowBlank bool
	catalog    interfaces.LocaleCatalog
	logger     interfaces.Logger
}

// AccessorOption customises an Accessor.
type AccessorOption func(*Accessor)

// WithSuffix overrides the backing column suffix.
func WithSuffix(suffix string) AccessorOption {
	return func(a *Accessor) {
		if suffix != "" {
			a.column = a.name + suffix
		}
	}
}

// WithAttributeAllowBlank stores blank values instead of deleting the locale key.
func WithAttributeAllowBlank(allow bool) AccessorOption {
	return func(a *Accessor) {
		a.allowBlank = allow
	}
}

// WithLogger sets the accessor logger.
func WithLogger(logger interfaces.Logger) AccessorOption {
	return func(a *Accessor) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAccessor constructs an accessor for attribute name.
func NewAccessor(name string, catalog interfaces.LocaleCatalog, opts ...AccessorOption) *Accessor {
	a := &Accessor{
		name:    name,
		column:  name + Suffix,
		catalog: catalog,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

func (a *Accessor) Name() string     { return a.name }
func (a *Accessor) Column() string   { return a.column }
func (a *Accessor) AllowBlank() bool { return a.allowBlank }

type callOptions struct {
	locale     string
	fallback   bool
	allowBlank bool
}

// Option tunes a single Read or Write call.
type Option func(*callOptions)

// WithLocale targets locale instead of the current locale.
func WithLocale(locale string) Option {
	return func(o *callOptions) {
		o.locale = locale
	}
}

// WithFallback toggles the fallback chain on reads.
func WithFallback(enabled bool) Option {
	return func(o *callOptions) {
		o.fallback = enabled
	}
}

// WithAllowBlank overrides the attribute blank policy for a write.
func WithAllowBlank(allow bool) Option {
	return func(o *callOptions) {
		o.allowBlank = allow
	}
}

func (a *Accessor) resolve(ctx context.Context, opts []Option) callOptions {
	resolved := callOptions{fallback: true, allowBlank: a.allowBlank}
	for _, opt := range opts {
		if opt != nil {
			opt(&resolved)
		}
	}
	if resolved.locale == "" && a.catalog != nil {
		resolved.locale = a.catalog.CurrentLocale(ctx)
	}
	return resolved
}

// Read returns the value stored for the call locale. When the record has a
// native column named after the attribute its raw value is returned as-is.
func (a *Accessor) Read(ctx context.Context, rec interfaces.Record, opts ...Option) (any, error) {
	if rec == nil {
		return nil, ErrRecordRequired
	}
	if rec.HasColumn(a.name) {
		return rec.Column(a.name), nil
	}

	call := a.resolve(ctx, opts)
	doc, err := a.document(rec)
	if err != nil {
		return nil, err
	}

	if value, ok := doc[call.locale]; ok {
		return value, nil
	}
	if !call.fallback || a.catalog == nil {
		return nil, nil
	}

	for _, candidate := range a.catalog.Fallbacks(call.locale) {
		if value, ok := doc[candidate]; ok {
			a.logger.WithContext(ctx).Trace("translation fallback",
				"attribute", a.name, "locale", call.locale, "fallback", candidate)
			return value, nil
		}
	}
	return nil, nil
}

// Write stores value for the call locale and replaces the backing column
// with the re-encoded document. Blank values delete the locale key unless
// blanks are allowed. The input value is returned.
func (a *Accessor) Write(ctx context.Context, rec interfaces.Record, value any, opts ...Option) (any, error) {
	if rec == nil {
		return nil, ErrRecordRequired
	}
	if rec.HasColumn(a.name) {
		if err := rec.SetColumn(a.name, value); err != nil {
			return nil, wrapAssignError(err, a.name)
		}
		return value, nil
	}

	call := a.resolve(ctx, opts)
	doc, err := a.document(rec)
	if err != nil {
		return nil, err
	}

	if !call.allowBlank && IsBlank(value) {
		delete(doc, call.locale)
	} else {
		doc[call.locale] = value
	}

	encoded, err := doc.Encode()
	if err != nil {
		return nil, wrapEncodeError(err, a.column)
	}
	if err := rec.SetColumn(a.column, encoded); err != nil {
		a.logger.Error("translation document assign failed", "column", a.column, "error", err)
		return nil, wrapAssignError(err, a.column)
	}
	return value, nil
}

// Document decodes the full translation document of rec.
func (a *Accessor) Document(rec interfaces.Record) (Document, error) {
	if rec == nil {
		return nil, ErrRecordRequired
	}
	return a.document(rec)
}

func (a *Accessor) document(rec interfaces.Record) (Document, error) {
	doc, err := Decode(rec.Column(a.column))
	if err != nil {
		a.logger.Error("translation document decode failed", "column", a.column, "error", err)
		return nil, wrapDecodeError(err, a.column)
	}
	return doc, nil
}
