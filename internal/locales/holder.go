package locales

import (
	"context"
	"sync/atomic"

	"github.com/goliatone/go-json-translate/pkg/interfaces"
)

// Holder is a LocaleCatalog whose backing catalog can be swapped at runtime.
type Holder struct {
	current atomic.Pointer[Catalog]
}

var _ interfaces.LocaleCatalog = (*Holder)(nil)

// NewHolder seeds a holder with catalog.
func NewHolder(catalog *Catalog) *Holder {
	h := &Holder{}
	h.Store(catalog)
	return h
}

// Load returns the active catalog.
func (h *Holder) Load() *Catalog {
	if h == nil {
		return nil
	}
	return h.current.Load()
}

// Store replaces the active catalog. Nil is ignored.
func (h *Holder) Store(catalog *Catalog) {
	if h == nil || catalog == nil {
		return
	}
	h.current.Store(catalog)
}

func (h *Holder) AvailableLocales() []string {
	return h.Load().AvailableLocales()
}

func (h *Holder) CurrentLocale(ctx context.Context) string {
	return h.Load().CurrentLocale(ctx)
}

func (h *Holder) Fallbacks(locale string) []string {
	return h.Load().Fallbacks(locale)
}

func (h *Holder) DefaultLocale() string {
	return h.Load().DefaultLocale()
}
