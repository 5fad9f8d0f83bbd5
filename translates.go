// Package jsontranslate stores per-locale values of an attribute in one JSON
// column and generates locale-aware accessors and SQL fragments for it.
package jsontranslate

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-json-translate/internal/localeconfig"
	"github.com/goliatone/go-json-translate/internal/locales"
	"github.com/goliatone/go-json-translate/internal/logging"
	"github.com/goliatone/go-json-translate/internal/logging/gologger"
	"github.com/goliatone/go-json-translate/internal/query"
	"github.com/goliatone/go-json-translate/internal/records"
	"github.com/goliatone/go-json-translate/internal/registry"
	"github.com/goliatone/go-json-translate/internal/store"
	"github.com/goliatone/go-json-translate/internal/translation"
	"github.com/goliatone/go-json-translate/pkg/interfaces"
)

// Definition is the result of declaring translated attributes.
type Definition = registry.Definition

// PermittedSet lists the {attribute}_{locale} identifiers a host may accept.
type PermittedSet = registry.PermittedSet

type (
	Attribute     = registry.Attribute
	Member        = registry.Member
	MemberKind    = registry.MemberKind
	DeclareOption = registry.Option
	QueryOption   = registry.QueryOption

	Document   = translation.Document
	Accessor   = translation.Accessor
	CallOption = translation.Option

	Record        = interfaces.Record
	LocaleCatalog = interfaces.LocaleCatalog
	Row           = records.Row
	Scope         = query.Scope
	Dialect       = query.Dialect

	LocaleSettings           = localeconfig.Settings
	LocaleSettingsRepository = localeconfig.Repository

	NotFoundError = store.NotFoundError
)

var (
	ErrMalformedDocument  = translation.ErrMalformedDocument
	ErrRecordRequired     = translation.ErrRecordRequired
	ErrUnsupportedDialect = query.ErrUnsupportedDialect
	ErrInvalidDeclaration = registry.ErrInvalidDeclaration
	ErrUnknownAttribute   = registry.ErrUnknownAttribute
	ErrUnknownMember      = registry.ErrUnknownMember
)

const (
	DialectNativeContainment = query.DialectNativeContainment
	DialectDocumentFunction  = query.DialectDocumentFunction
	DialectPathEquality      = query.DialectPathEquality
)

var (
	WithAllowBlank = registry.WithAllowBlank
	WithParent     = registry.WithParent

	WithQueryLocale = registry.WithQueryLocale
	WithAlias       = registry.WithAlias
	WithDirection   = registry.WithDirection
	WithValue       = registry.WithValue

	WithLocale         = translation.WithLocale
	WithFallback       = translation.WithFallback
	WithCallAllowBlank = translation.WithAllowBlank

	// ContextWithLocale sets the current locale for reads, writes and scopes.
	ContextWithLocale = locales.WithLocale
	NormalizeLocale   = locales.Normalize
	ResolveDialect    = query.ResolveDB
	RenderExpr        = query.Render
)

// Option customises a Module.
type Option func(*Module)

// WithLoggerProvider overrides the provider configured through Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		if provider != nil {
			m.loggerProvider = provider
		}
	}
}

// Module owns the locale catalog and logging shared by every declaration.
type Module struct {
	cfg            Config
	catalog        *locales.Holder
	loggerProvider interfaces.LoggerProvider
	logger         interfaces.Logger
}

// New validates cfg and constructs a Module.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{
		cfg: cfg,
		catalog: locales.NewHolder(locales.NewCatalog(locales.Config{
			DefaultLocale: cfg.DefaultLocale,
			Locales:       cfg.Locales,
			Fallbacks:     cfg.Fallbacks,
		})),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	if m.loggerProvider == nil && cfg.Features.Logger {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
		})
		if err != nil {
			return nil, err
		}
		m.loggerProvider = provider
	}
	m.logger = logging.ModuleLogger(m.loggerProvider, "")
	return m, nil
}

// Config returns the configuration the module was built with.
func (m *Module) Config() Config { return m.cfg }

// Catalog returns the active locale catalog.
func (m *Module) Catalog() LocaleCatalog { return m.catalog }

// Logger returns the module logger.
func (m *Module) Logger() interfaces.Logger { return m.logger }

// Translates declares attrs as translated attributes of the records stored in
// table (the table alias used by queries). Module options are applied first
// so opts can override them.
func (m *Module) Translates(table string, attrs []string, opts ...DeclareOption) (*Definition, error) {
	base := []DeclareOption{
		registry.WithStrictDialect(m.cfg.Query.StrictDialect),
		registry.WithLogger(logging.RegistryLogger(m.loggerProvider)),
		registry.WithAccessorLogger(logging.AccessorLogger(m.loggerProvider)),
		registry.WithQueryLogger(logging.QueryLogger(m.loggerProvider)),
	}
	if m.cfg.Suffix != "" {
		base = append(base, registry.WithSuffix(m.cfg.Suffix))
	}
	return registry.Declare(table, m.catalog, attrs, append(base, opts...)...)
}

// LoadLocaleSettings replaces the catalog with stored settings, if any.
func (m *Module) LoadLocaleSettings(ctx context.Context, repo LocaleSettingsRepository) error {
	return localeconfig.Load(ctx, repo, m.catalog)
}

// WatchLocaleSettings applies stored settings changes to the catalog until
// ctx is cancelled. Member tables of existing definitions are not rebuilt.
func (m *Module) WatchLocaleSettings(ctx context.Context, repo LocaleSettingsRepository) error {
	return localeconfig.Watch(ctx, repo, m.catalog, logging.LocalesLogger(m.loggerProvider))
}

// NewLocaleSettingsRepository returns a bun-backed settings repository.
func NewLocaleSettingsRepository(db *bun.DB) *localeconfig.BunRepository {
	return localeconfig.NewBunRepository(db)
}

// NewMemoryLocaleSettingsRepository returns an in-memory settings repository.
func NewMemoryLocaleSettingsRepository() *localeconfig.MemoryRepository {
	return localeconfig.NewMemoryRepository()
}

// NewModel adapts a pointer to a bun model to Record.
func NewModel(db *bun.DB, model any) (Record, error) {
	rec, err := records.NewModel(db, model)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// NewStore builds a repository for models carrying the attributes of def.
func NewStore[T any](db *bun.DB, def *Definition, handlers repository.ModelHandlers[T]) (*store.Repository[T], error) {
	return store.New(db, def, handlers)
}

// UUIDHandlers builds go-repository-bun handlers for uuid keyed models.
func UUIDHandlers[T any](newRecord func() T, getID func(T) uuid.UUID, setID func(T, uuid.UUID)) repository.ModelHandlers[T] {
	return store.UUIDHandlers(newRecord, getID, setID)
}
