package store

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-json-translate/internal/records"
	"github.com/goliatone/go-json-translate/internal/registry"
	"github.com/goliatone/go-json-translate/internal/translation"
)

var (
	// ErrDefinitionRequired indicates a store was built without a definition.
	ErrDefinitionRequired = errors.New("store: translated definition is required")
	// ErrAliasMismatch indicates the definition qualifies columns with
	// something other than the model's table alias.
	ErrAliasMismatch = errors.New("store: definition table does not match model alias")
)

// NotFoundError is returned when a record cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// Repository persists models carrying translated attributes and filters or
// orders them by a locale value.
type Repository[T any] struct {
	db       *bun.DB
	def      *registry.Definition
	repo     repository.Repository[T]
	resource string
}

// New wraps handlers in a go-repository-bun repository. The definition must
// qualify columns with the model's table alias.
func New[T any](db *bun.DB, def *registry.Definition, handlers repository.ModelHandlers[T]) (*Repository[T], error) {
	if def == nil {
		return nil, ErrDefinitionRequired
	}
	if db == nil {
		return nil, errors.New("store: database is required")
	}

	table := db.Table(reflect.TypeOf(handlers.NewRecord()))
	if def.Table() != "" && table.Alias != def.Table() {
		return nil, goerrors.Wrap(ErrAliasMismatch, goerrors.CategoryValidation,
			fmt.Sprintf("definition qualifies columns with %q but model alias is %q", def.Table(), table.Alias)).
			WithTextCode("TRANSLATION_TABLE_ALIAS_MISMATCH")
	}

	return &Repository[T]{
		db:       db,
		def:      def,
		repo:     repository.MustNewRepository(db, handlers),
		resource: table.Name,
	}, nil
}

// UUIDHandlers builds model handlers for models keyed by a uuid primary key.
func UUIDHandlers[T any](newRecord func() T, getID func(T) uuid.UUID, setID func(T, uuid.UUID)) repository.ModelHandlers[T] {
	return repository.ModelHandlers[T]{
		NewRecord: newRecord,
		GetID:     getID,
		SetID:     setID,
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record T) string {
			return getID(record).String()
		},
	}
}

// Definition returns the translated attribute definition.
func (r *Repository[T]) Definition() *registry.Definition { return r.def }

func (r *Repository[T]) Create(ctx context.Context, record T) (T, error) {
	return r.repo.Create(ctx, record)
}

func (r *Repository[T]) Update(ctx context.Context, record T) (T, error) {
	return r.repo.Update(ctx, record)
}

func (r *Repository[T]) GetByID(ctx context.Context, id uuid.UUID) (T, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		var zero T
		return zero, r.mapError(err, id.String())
	}
	return record, nil
}

// FindByTranslation lists records whose attribute maps the locale (current
// locale unless registry.WithQueryLocale is given) to value.
func (r *Repository[T]) FindByTranslation(ctx context.Context, attribute string, value any, opts ...registry.QueryOption) ([]T, error) {
	scope, err := r.def.WithTranslation(ctx, attribute, value, opts...)
	if err != nil {
		return nil, err
	}
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(scope))
	if err != nil {
		return nil, fmt.Errorf("%s repository error: %w", r.resource, err)
	}
	return records, nil
}

// ListOrdered lists records ordered by the locale value of attribute.
func (r *Repository[T]) ListOrdered(ctx context.Context, attribute string, opts ...registry.QueryOption) ([]T, error) {
	scope, err := r.def.OrderTranslation(ctx, attribute, opts...)
	if err != nil {
		return nil, err
	}
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(scope))
	if err != nil {
		return nil, fmt.Errorf("%s repository error: %w", r.resource, err)
	}
	return records, nil
}

// Read invokes a reader member on record.
func (r *Repository[T]) Read(ctx context.Context, record T, member string, opts ...translation.Option) (any, error) {
	rec, err := records.NewModel(r.db, record)
	if err != nil {
		return nil, err
	}
	return r.def.Read(ctx, rec, member, opts...)
}

// Write invokes a writer member on record. Changes are persisted by Update.
func (r *Repository[T]) Write(ctx context.Context, record T, member string, value any, opts ...translation.Option) error {
	rec, err := records.NewModel(r.db, record)
	if err != nil {
		return err
	}
	_, err = r.def.Write(ctx, rec, member, value, opts...)
	return err
}

func (r *Repository[T]) mapError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: r.resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", r.resource, err)
}
