package localeconfig

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-json-translate/internal/locales"
)

// ErrSettingsNotFound indicates that locale settings have not been stored yet.
var ErrSettingsNotFound = errors.New("localeconfig: settings not found")

// ErrDatabaseRequired indicates a bun repository was built without a database.
var ErrDatabaseRequired = errors.New("localeconfig: bun repository requires a database")

// Settings capture the locale catalog persisted for a deployment.
type Settings struct {
	DefaultLocale string
	Locales       []string
	Fallbacks     map[string][]string
}

// Validate checks the settings can seed a catalog.
func (s Settings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.DefaultLocale, validation.Required),
		validation.Field(&s.Locales, validation.Each(validation.By(notBlank))),
	)
}

// CatalogConfig converts the settings into a locale catalog configuration.
func (s Settings) CatalogConfig() locales.Config {
	return locales.Config{
		DefaultLocale: s.DefaultLocale,
		Locales:       slices.Clone(s.Locales),
		Fallbacks:     cloneFallbacks(s.Fallbacks),
	}
}

// Equal reports whether both settings describe the same catalog.
func (s Settings) Equal(other Settings) bool {
	return s.DefaultLocale == other.DefaultLocale &&
		slices.Equal(s.Locales, other.Locales) &&
		maps.EqualFunc(s.Fallbacks, other.Fallbacks, slices.Equal[[]string])
}

func (s Settings) clone() Settings {
	return Settings{
		DefaultLocale: s.DefaultLocale,
		Locales:       slices.Clone(s.Locales),
		Fallbacks:     cloneFallbacks(s.Fallbacks),
	}
}

func cloneFallbacks(src map[string][]string) map[string][]string {
	if src == nil {
		return nil
	}
	out := make(map[string][]string, len(src))
	for locale, chain := range src {
		out[locale] = slices.Clone(chain)
	}
	return out
}

func notBlank(value any) error {
	if s, _ := value.(string); strings.TrimSpace(s) == "" {
		return errors.New("locale code cannot be blank")
	}
	return nil
}

// Repository persists locale settings and emits change notifications.
type Repository interface {
	Get(ctx context.Context) (Settings, error)
	Upsert(ctx context.Context, settings Settings) (Settings, error)
	Delete(ctx context.Context) error
	Subscribe(ctx context.Context) (<-chan ChangeEvent, error)
}

// ChangeType enumerates settings change events.
type ChangeType string

const (
	// ChangeCreated indicates settings were first persisted.
	ChangeCreated ChangeType = "created"
	// ChangeUpdated indicates settings were updated.
	ChangeUpdated ChangeType = "updated"
	// ChangeDeleted indicates settings were cleared.
	ChangeDeleted ChangeType = "deleted"
)

// ChangeEvent reports settings mutations to subscribers.
type ChangeEvent struct {
	Type     ChangeType
	Settings Settings
}

func newChangeEvent(changeType ChangeType, settings Settings) ChangeEvent {
	return ChangeEvent{Type: changeType, Settings: settings.clone()}
}
