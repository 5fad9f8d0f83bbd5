package localeconfig

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
)

const settingsRowID = 1

// BunRepository persists locale settings in a single bun-managed row.
type BunRepository struct {
	db   *bun.DB
	feed *settingsFeed
}

// NewBunRepository constructs a bun-backed repository.
func NewBunRepository(db *bun.DB) *BunRepository {
	return &BunRepository{
		db:   db,
		feed: newSettingsFeed(),
	}
}

// CreateTable creates the settings table when it is missing.
func (r *BunRepository) CreateTable(ctx context.Context) error {
	if r.db == nil {
		return ErrDatabaseRequired
	}
	_, err := r.db.NewCreateTable().Model((*settingsModel)(nil)).IfNotExists().Exec(ctx)
	return err
}

// Get returns the persisted settings.
func (r *BunRepository) Get(ctx context.Context) (Settings, error) {
	model, err := r.load(ctx)
	if err != nil {
		return Settings{}, err
	}
	return model.settings(), nil
}

// Upsert validates, then creates or updates the persisted settings.
func (r *BunRepository) Upsert(ctx context.Context, settings Settings) (Settings, error) {
	if err := settings.Validate(); err != nil {
		return Settings{}, err
	}

	existing, err := r.load(ctx)
	created := errors.Is(err, ErrSettingsNotFound)
	if err != nil && !created {
		return Settings{}, err
	}

	model := modelFromSettings(settings)
	model.ID = settingsRowID
	model.UpdatedAt = time.Now().UTC()

	if created {
		if _, err := r.db.NewInsert().Model(model).Exec(ctx); err != nil {
			return Settings{}, err
		}
	} else {
		if existing.settings().Equal(settings) {
			return existing.settings(), nil
		}
		if _, err := r.db.NewUpdate().
			Model(model).
			Column("default_locale", "locales", "fallbacks", "updated_at").
			WherePK().
			Exec(ctx); err != nil {
			return Settings{}, err
		}
	}

	stored, err := r.Get(ctx)
	if err != nil {
		return Settings{}, err
	}

	eventType := ChangeUpdated
	if created {
		eventType = ChangeCreated
	}
	r.feed.publish(newChangeEvent(eventType, stored))
	return stored, nil
}

// Delete clears persisted settings.
func (r *BunRepository) Delete(ctx context.Context) error {
	model, err := r.load(ctx)
	if err != nil {
		return err
	}
	if _, err := r.db.NewDelete().Model(model).WherePK().Exec(ctx); err != nil {
		return err
	}
	r.feed.publish(newChangeEvent(ChangeDeleted, Settings{}))
	return nil
}

// Subscribe delivers change events until ctx is cancelled.
func (r *BunRepository) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	return r.feed.subscribe(ctx), nil
}

func (r *BunRepository) load(ctx context.Context) (*settingsModel, error) {
	if r.db == nil {
		return nil, ErrDatabaseRequired
	}
	model := new(settingsModel)
	if err := r.db.NewSelect().Model(model).Where("id = ?", settingsRowID).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, err
	}
	return model, nil
}

type settingsModel struct {
	bun.BaseModel `bun:"table:i18n_locale_settings"`

	ID            int                 `bun:",pk"`
	DefaultLocale string              `bun:"default_locale,notnull"`
	Locales       []string            `bun:"locales,type:json"`
	Fallbacks     map[string][]string `bun:"fallbacks,type:json"`
	UpdatedAt     time.Time           `bun:"updated_at"`
}

func modelFromSettings(settings Settings) *settingsModel {
	return &settingsModel{
		DefaultLocale: settings.DefaultLocale,
		Locales:       settings.Locales,
		Fallbacks:     settings.Fallbacks,
	}
}

func (m *settingsModel) settings() Settings {
	if m == nil {
		return Settings{}
	}
	return Settings{
		DefaultLocale: m.DefaultLocale,
		Locales:       m.Locales,
		Fallbacks:     m.Fallbacks,
	}
}
