package registry

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-json-translate/internal/logging"
	"github.com/goliatone/go-json-translate/internal/query"
	"github.com/goliatone/go-json-translate/internal/translation"
	"github.com/goliatone/go-json-translate/pkg/interfaces"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Attribute is a declared translated attribute.
type Attribute struct {
	Name       string
	AllowBlank bool
}

// Definition is the result of declaring translated attributes on a record
// type: accessors, the generated member table, query scopes and the
// permitted attribute set. It is immutable once returned by Declare.
type Definition struct {
	table      string
	catalog    interfaces.LocaleCatalog
	parent     *Definition
	attributes []Attribute
	accessors  map[string]*translation.Accessor
	members    map[string]Member
	builder    *query.Builder
	permitted  PermittedSet
	logger     interfaces.Logger
}

type declareOptions struct {
	allowBlank bool
	parent     *Definition
	suffix     string
	strict     bool
	logger     interfaces.Logger
	accessorLg interfaces.Logger
	queryLg    interfaces.Logger
}

// Option customises Declare.
type Option func(*declareOptions)

// WithAllowBlank keeps explicit blank values instead of deleting the locale.
func WithAllowBlank(allow bool) Option {
	return func(o *declareOptions) { o.allowBlank = allow }
}

// WithParent composes the declaration with a parent type's definition.
func WithParent(parent *Definition) Option {
	return func(o *declareOptions) { o.parent = parent }
}

// WithSuffix overrides the backing column suffix.
func WithSuffix(suffix string) Option {
	return func(o *declareOptions) { o.suffix = suffix }
}

// WithStrictDialect rejects connections whose dialect has no known JSON form.
func WithStrictDialect(strict bool) Option {
	return func(o *declareOptions) { o.strict = strict }
}

// WithLogger sets the logger used by the definition, and by its accessors
// and query builder unless they get their own.
func WithLogger(logger interfaces.Logger) Option {
	return func(o *declareOptions) { o.logger = logger }
}

// WithAccessorLogger sets the logger used by attribute accessors.
func WithAccessorLogger(logger interfaces.Logger) Option {
	return func(o *declareOptions) { o.accessorLg = logger }
}

// WithQueryLogger sets the logger used by the query builder.
func WithQueryLogger(logger interfaces.Logger) Option {
	return func(o *declareOptions) { o.queryLg = logger }
}

type declaration struct {
	Attributes []string
}

func (d declaration) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Attributes,
			validation.Required,
			validation.Each(validation.Required, validation.Match(identifierPattern)),
			validation.By(func(value any) error {
				names, _ := value.([]string)
				seen := make(map[string]struct{}, len(names))
				for _, name := range names {
					if _, ok := seen[name]; ok {
						return fmt.Errorf("attribute %q declared twice", name)
					}
					seen[name] = struct{}{}
				}
				return nil
			}),
		),
	)
}

// Declare registers attrs as translated attributes of the records stored in
// table. Columns in generated queries are qualified with table; pass the
// model alias when queries alias the table, or "" to leave them unqualified.
func Declare(table string, catalog interfaces.LocaleCatalog, attrs []string, opts ...Option) (*Definition, error) {
	if catalog == nil {
		return nil, wrapDeclarationError(ErrCatalogRequired)
	}

	options := declareOptions{suffix: translation.Suffix}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	if options.logger == nil {
		options.logger = logging.NoOp()
	}
	if options.accessorLg == nil {
		options.accessorLg = options.logger
	}
	if options.queryLg == nil {
		options.queryLg = options.logger
	}

	names := make([]string, len(attrs))
	for i, attr := range attrs {
		names[i] = strings.TrimSpace(attr)
	}
	if err := (declaration{Attributes: names}).Validate(); err != nil {
		return nil, wrapDeclarationError(err)
	}

	def := &Definition{
		table:     table,
		catalog:   catalog,
		parent:    options.parent,
		accessors: make(map[string]*translation.Accessor, len(names)),
		members:   make(map[string]Member),
		logger:    options.logger,
		builder: query.NewBuilder(table,
			query.WithStrictDialect(options.strict),
			query.WithBuilderLogger(logging.WithFields(options.queryLg, map[string]any{"table": table})),
		),
	}

	available := catalog.AvailableLocales()
	identifiers := make([]string, 0, len(names)*len(available))

	for _, name := range names {
		def.attributes = append(def.attributes, Attribute{Name: name, AllowBlank: options.allowBlank})
		def.accessors[name] = translation.NewAccessor(name, catalog,
			translation.WithSuffix(options.suffix),
			translation.WithAttributeAllowBlank(options.allowBlank),
			translation.WithLogger(logging.WithTranslationContext(options.accessorLg, name, "", "")),
		)

		for _, member := range memberTable(name, available) {
			if existing, ok := def.members[member.Name]; ok {
				def.logger.Warn("translated member redefined",
					"member", member.Name, "locale", member.Locale, "previous_locale", existing.Locale)
			}
			def.members[member.Name] = member
		}
		for _, locale := range available {
			identifiers = append(identifiers, name+"_"+locale)
		}
	}

	def.permitted = NewPermittedSet(identifiers...)
	if def.parent != nil {
		def.permitted = def.parent.Permitted().Union(def.permitted)
	}

	def.logger.Debug("translated attributes declared",
		"table", table, "attributes", names, "locales", len(available))
	return def, nil
}

// Translates reports whether the definition declares translated attributes.
func (d *Definition) Translates() bool {
	return d != nil && len(d.attributes) > 0
}

// Table returns the column qualifier used in generated queries.
func (d *Definition) Table() string { return d.table }

// Parent returns the definition this one was composed with.
func (d *Definition) Parent() *Definition { return d.parent }

// Attributes returns the attributes declared by this definition.
func (d *Definition) Attributes() []Attribute {
	return slices.Clone(d.attributes)
}

// TranslatedAttributeNames returns the names declared by this definition.
func (d *Definition) TranslatedAttributeNames() []string {
	names := make([]string, len(d.attributes))
	for i, attr := range d.attributes {
		names[i] = attr.Name
	}
	return names
}

// Permitted returns the effective permitted set, including ancestors.
func (d *Definition) Permitted() PermittedSet {
	if d == nil {
		return PermittedSet{}
	}
	return d.permitted
}

// Accessor returns the accessor of attribute, searching parents.
func (d *Definition) Accessor(attribute string) (*translation.Accessor, error) {
	for def := d; def != nil; def = def.parent {
		if accessor, ok := def.accessors[attribute]; ok {
			return accessor, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownAttribute, attribute)
}

// Member resolves a generated member by name, searching parents.
func (d *Definition) Member(name string) (Member, bool) {
	for def := d; def != nil; def = def.parent {
		if member, ok := def.members[name]; ok {
			return member, true
		}
	}
	return Member{}, false
}

// Members lists the members generated by this definition, sorted by name.
func (d *Definition) Members() []Member {
	out := make([]Member, 0, len(d.members))
	for _, member := range d.members {
		out = append(out, member)
	}
	slices.SortFunc(out, func(a, b Member) int { return strings.Compare(a.Name, b.Name) })
	return out
}

func (d *Definition) lookup(name string, kinds ...MemberKind) (Member, *translation.Accessor, error) {
	member, ok := d.Member(name)
	if !ok || !slices.Contains(kinds, member.Kind) {
		return Member{}, nil, unknownMember(name)
	}
	accessor, err := d.Accessor(member.Attribute)
	if err != nil {
		return Member{}, nil, err
	}
	return member, accessor, nil
}

// Read invokes a reader member: "title" reads the current locale with
// fallbacks, "title_fr" reads fr without fallbacks. opts are applied last
// so callers can override either default.
func (d *Definition) Read(ctx context.Context, rec interfaces.Record, name string, opts ...translation.Option) (any, error) {
	member, accessor, err := d.lookup(name, KindReader, KindLocaleReader)
	if err != nil {
		return nil, err
	}
	if member.Kind == KindLocaleReader {
		opts = append([]translation.Option{
			translation.WithLocale(member.Locale),
			translation.WithFallback(false),
		}, opts...)
	}
	return accessor.Read(ctx, rec, opts...)
}

// Write invokes a writer member. The trailing "=" is optional, so "title_fr"
// and "title_fr=" both target the fr writer.
func (d *Definition) Write(ctx context.Context, rec interfaces.Record, name string, value any, opts ...translation.Option) (any, error) {
	if !strings.HasSuffix(name, "=") {
		name += "="
	}
	member, accessor, err := d.lookup(name, KindWriter, KindLocaleWriter)
	if err != nil {
		return nil, err
	}
	if member.Kind == KindLocaleWriter {
		opts = append([]translation.Option{translation.WithLocale(member.Locale)}, opts...)
	}
	return accessor.Write(ctx, rec, value, opts...)
}
