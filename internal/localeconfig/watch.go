package localeconfig

import (
	"context"
	"errors"

	"github.com/goliatone/go-json-translate/internal/locales"
	"github.com/goliatone/go-json-translate/internal/logging"
	"github.com/goliatone/go-json-translate/pkg/interfaces"
)

// Load seeds holder from the stored settings. Missing settings leave the
// holder untouched and are not an error.
func Load(ctx context.Context, repo Repository, holder *locales.Holder) error {
	settings, err := repo.Get(ctx)
	if errors.Is(err, ErrSettingsNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	holder.Store(locales.NewCatalog(settings.CatalogConfig()))
	return nil
}

// Watch applies settings changes to holder until ctx is cancelled. Deleting
// the settings restores fallback, the catalog active when Watch was called.
func Watch(ctx context.Context, repo Repository, holder *locales.Holder, logger interfaces.Logger) error {
	if logger == nil {
		logger = logging.NoOp()
	}
	events, err := repo.Subscribe(ctx)
	if err != nil {
		return err
	}
	fallback := holder.Load()

	go func() {
		for evt := range events {
			switch evt.Type {
			case ChangeDeleted:
				holder.Store(fallback)
			default:
				holder.Store(locales.NewCatalog(evt.Settings.CatalogConfig()))
			}
			logger.Info("locale settings applied",
				"change", string(evt.Type),
				"default_locale", holder.DefaultLocale(),
				"locales", holder.AvailableLocales(),
			)
		}
	}()
	return nil
}
