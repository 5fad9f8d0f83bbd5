package registry

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-json-translate/internal/query"
)

type queryOptions struct {
	locale    string
	alias     *string
	direction string
	value     any
}

// QueryOption tunes a generated query member.
type QueryOption func(*queryOptions)

// WithQueryLocale targets locale instead of the current locale.
func WithQueryLocale(locale string) QueryOption {
	return func(o *queryOptions) { o.locale = locale }
}

// WithAlias names the projected column. An empty alias disables aliasing.
func WithAlias(alias string) QueryOption {
	return func(o *queryOptions) { o.alias = &alias }
}

// WithDirection sets the sort direction; only "desc" (any case) sorts descending.
func WithDirection(direction string) QueryOption {
	return func(o *queryOptions) { o.direction = direction }
}

// WithValue sets the value matched by with_<attr>_translation.
func WithValue(value any) QueryOption {
	return func(o *queryOptions) { o.value = value }
}

func (d *Definition) queryOptions(ctx context.Context, opts []QueryOption) queryOptions {
	resolved := queryOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&resolved)
		}
	}
	if resolved.locale == "" {
		resolved.locale = d.catalog.CurrentLocale(ctx)
	}
	return resolved
}

// Arel returns the extraction expression of attribute for dialect, aliased
// when WithAlias is given.
func (d *Definition) Arel(ctx context.Context, dialect query.Dialect, attribute string, opts ...QueryOption) (query.Expr, error) {
	accessor, err := d.Accessor(attribute)
	if err != nil {
		return nil, err
	}
	o := d.queryOptions(ctx, opts)
	alias := ""
	if o.alias != nil {
		alias = *o.alias
	}
	return d.builder.Select(dialect, accessor.Column(), o.locale, alias)
}

// WithTranslation returns a scope keeping records whose document maps the
// locale to value.
func (d *Definition) WithTranslation(ctx context.Context, attribute string, value any, opts ...QueryOption) (query.Scope, error) {
	accessor, err := d.Accessor(attribute)
	if err != nil {
		return nil, err
	}
	o := d.queryOptions(ctx, opts)
	return d.builder.WhereContains(accessor.Column(), o.locale, value), nil
}

// SelectTranslation returns a scope projecting the locale value, aliased to
// the attribute name unless WithAlias says otherwise.
func (d *Definition) SelectTranslation(ctx context.Context, attribute string, opts ...QueryOption) (query.Scope, error) {
	accessor, err := d.Accessor(attribute)
	if err != nil {
		return nil, err
	}
	o := d.queryOptions(ctx, opts)
	alias := attribute
	if o.alias != nil {
		alias = *o.alias
	}
	return d.builder.SelectColumn(accessor.Column(), o.locale, alias), nil
}

// OrderTranslation returns a scope ordering by the locale value.
func (d *Definition) OrderTranslation(ctx context.Context, attribute string, opts ...QueryOption) (query.Scope, error) {
	accessor, err := d.Accessor(attribute)
	if err != nil {
		return nil, err
	}
	o := d.queryOptions(ctx, opts)
	return d.builder.OrderBy(accessor.Column(), o.locale, o.direction), nil
}

// Scope resolves a scope member by name: with_<attr>_translation (requires
// WithValue), select_<attr> or order_<attr>.
func (d *Definition) Scope(ctx context.Context, name string, opts ...QueryOption) (query.Scope, error) {
	member, ok := d.Member(name)
	if !ok {
		return nil, unknownMember(name)
	}
	switch member.Kind {
	case KindWithTranslation:
		o := d.queryOptions(ctx, opts)
		return d.WithTranslation(ctx, member.Attribute, o.value, opts...)
	case KindSelect:
		return d.SelectTranslation(ctx, member.Attribute, opts...)
	case KindOrder:
		return d.OrderTranslation(ctx, member.Attribute, opts...)
	default:
		return nil, unknownMember(name)
	}
}

// ArelFor resolves an arel_<attr> member for the dialect of db.
func (d *Definition) ArelFor(ctx context.Context, db bun.IDB, name string, opts ...QueryOption) (query.Expr, error) {
	member, ok := d.Member(name)
	if !ok || member.Kind != KindArel {
		return nil, unknownMember(name)
	}
	return d.Arel(ctx, query.ResolveDB(db), member.Attribute, opts...)
}
