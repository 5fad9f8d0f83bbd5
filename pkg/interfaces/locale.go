package interfaces

import "context"

// LocaleCatalog provides the locales known to the process, the locale active
// for a given context, and the substitutes tried when a value is missing.
type LocaleCatalog interface {
	AvailableLocales() []string
	CurrentLocale(ctx context.Context) string
	Fallbacks(locale string) []string
}
