package locales

import (
	"context"
	"slices"
	"strings"

	"golang.org/x/text/language"

	"github.com/goliatone/go-json-translate/pkg/interfaces"
)

// Config describes the locales known to a catalog.
type Config struct {
	DefaultLocale string
	Locales       []string
	// Fallbacks overrides the derived chain for specific locales.
	Fallbacks map[string][]string
}

// Catalog is an immutable LocaleCatalog built from Config.
type Catalog struct {
	defaultLocale string
	locales       []string
	fallbacks     map[string][]string
}

var _ interfaces.LocaleCatalog = (*Catalog)(nil)

// NewCatalog constructs a catalog. The default locale is appended to the
// available set when missing.
func NewCatalog(cfg Config) *Catalog {
	defaultLocale := strings.TrimSpace(cfg.DefaultLocale)

	available := make([]string, 0, len(cfg.Locales)+1)
	for _, code := range cfg.Locales {
		code = strings.TrimSpace(code)
		if code == "" || slices.Contains(available, code) {
			continue
		}
		available = append(available, code)
	}
	if defaultLocale != "" && !slices.Contains(available, defaultLocale) {
		available = append(available, defaultLocale)
	}

	fallbacks := make(map[string][]string, len(cfg.Fallbacks))
	for code, chain := range cfg.Fallbacks {
		fallbacks[strings.TrimSpace(code)] = append([]string(nil), chain...)
	}

	return &Catalog{
		defaultLocale: defaultLocale,
		locales:       available,
		fallbacks:     fallbacks,
	}
}

// AvailableLocales returns the ordered locale codes.
func (c *Catalog) AvailableLocales() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.locales...)
}

// DefaultLocale returns the configured default locale.
func (c *Catalog) DefaultLocale() string {
	if c == nil {
		return ""
	}
	return c.defaultLocale
}

// CurrentLocale returns the locale attached to ctx, or the default locale.
func (c *Catalog) CurrentLocale(ctx context.Context) string {
	if locale := FromContext(ctx); locale != "" {
		return locale
	}
	return c.DefaultLocale()
}

// Fallbacks returns the substitute locales tried, in order, when locale has
// no value. The requested locale itself is never part of the chain.
func (c *Catalog) Fallbacks(locale string) []string {
	if c == nil {
		return nil
	}
	locale = strings.TrimSpace(locale)

	var chain []string
	if configured, ok := c.fallbacks[locale]; ok {
		chain = append(chain, configured...)
	} else {
		chain = append(chain, parents(locale)...)
	}
	chain = append(chain, c.defaultLocale)

	out := make([]string, 0, len(chain))
	for _, candidate := range chain {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" || candidate == locale || slices.Contains(out, candidate) {
			continue
		}
		out = append(out, candidate)
	}
	return out
}

// parents derives the less specific tags of locale (zh-Hant-TW -> zh-Hant,
// zh), keeping the separator style of the input.
func parents(locale string) []string {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil
	}
	base, script, region := tag.Raw()
	sep := "-"
	if strings.Contains(locale, "_") {
		sep = "_"
	}

	var out []string
	if script != (language.Script{}) && region != (language.Region{}) {
		out = append(out, base.String()+sep+script.String())
	}
	if script != (language.Script{}) || region != (language.Region{}) {
		out = append(out, base.String())
	}
	return out
}

// Normalize lowercases locale and strips every character outside a-z,
// producing the suffix used for per-locale member names (pt-BR -> ptbr).
func Normalize(locale string) string {
	var b strings.Builder
	b.Grow(len(locale))
	for _, r := range strings.ToLower(locale) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
