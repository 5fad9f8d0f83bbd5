package runtimeconfig

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrDefaultLocaleRequired = errors.New("translates config: default locale is required")
var ErrLocaleInvalid = errors.New("translates config: locale codes cannot be blank")

// ErrFallbackLocaleUnknown ensures fallback chains only reference configured locales.
var ErrFallbackLocaleUnknown = errors.New("translates config: fallback references an unknown locale")

// ErrSuffixInvalid guards the column suffix used to locate JSON documents.
var ErrSuffixInvalid = errors.New("translates config: column suffix must start with an underscore and contain no spaces")
var ErrLoggingProviderRequired = errors.New("translates config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("translates config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("translates config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("translates config: logging format is invalid")

// Config aggregates locale, query and logging options for translated attributes.
type Config struct {
	DefaultLocale string
	Locales       []string
	// Fallbacks overrides the computed fallback chain per locale.
	Fallbacks map[string][]string
	// Suffix is appended to attribute names to find their JSON column.
	Suffix   string
	Query    QueryConfig
	Features Features
	Logging  LoggingConfig
}

// QueryConfig captures query fragment behaviour.
type QueryConfig struct {
	// StrictDialect fails fragment generation on databases that are neither
	// Postgres, MySQL nor SQLite instead of assuming Postgres syntax.
	StrictDialect bool
}

// Features toggles module functionality.
type Features struct {
	Logger bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
}

// DefaultConfig returns the defaults used when hosts configure nothing.
func DefaultConfig() Config {
	return Config{
		DefaultLocale: "en",
		Locales:       []string{"en"},
		Fallbacks:     map[string][]string{},
		Suffix:        "_translations",
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.DefaultLocale) == "" {
		return ErrDefaultLocaleRequired
	}
	for _, locale := range cfg.Locales {
		if strings.TrimSpace(locale) == "" {
			return ErrLocaleInvalid
		}
	}
	known := append(slices.Clone(cfg.Locales), cfg.DefaultLocale)
	for locale, chain := range cfg.Fallbacks {
		if !slices.Contains(known, locale) {
			return fmt.Errorf("%w: %s", ErrFallbackLocaleUnknown, locale)
		}
		for _, fallback := range chain {
			if !slices.Contains(known, fallback) {
				return fmt.Errorf("%w: %s -> %s", ErrFallbackLocaleUnknown, locale, fallback)
			}
		}
	}
	if suffix := cfg.Suffix; suffix != "" && (!strings.HasPrefix(suffix, "_") || strings.ContainsAny(suffix, " \t\n")) {
		return fmt.Errorf("%w: %q", ErrSuffixInvalid, suffix)
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	return provider == "gologger"
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
