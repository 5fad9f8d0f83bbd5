package locales

import (
	"context"
	"strings"
)

type contextKey string

const localeContextKey contextKey = "translates.locale"

// WithLocale returns a context whose current locale is locale.
func WithLocale(ctx context.Context, locale string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, localeContextKey, strings.TrimSpace(locale))
}

// FromContext returns the locale stored on ctx, if any.
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	locale, _ := ctx.Value(localeContextKey).(string)
	return locale
}
