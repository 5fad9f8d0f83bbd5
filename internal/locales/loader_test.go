package locales

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoaderReadsCatalogFile(t *testing.T) {
	cfg, err := NewLoader(filepath.Join("testdata", "catalog.json")).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	catalog := NewCatalog(cfg)
	if got := catalog.AvailableLocales(); !reflect.DeepEqual(got, []string{"en", "fr", "es", "es-MX"}) {
		t.Fatalf("unexpected locales %v", got)
	}
	if got := catalog.Fallbacks("fr"); !reflect.DeepEqual(got, []string{"es", "en"}) {
		t.Fatalf("unexpected fr fallbacks %v", got)
	}
}

func TestLoaderErrors(t *testing.T) {
	if _, err := NewLoader("").Load(context.Background()); !errors.Is(err, ErrLoaderPathRequired) {
		t.Fatalf("expected ErrLoaderPathRequired, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewLoader("testdata/catalog.json").Load(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if _, err := decodeConfig(strings.NewReader(`{"default_locale":"en","extra":true}`)); err == nil {
		t.Fatal("expected unknown fields to be rejected")
	}

	cfg, err := decodeConfig(strings.NewReader(""))
	if err != nil || cfg.DefaultLocale != "" {
		t.Fatalf("expected empty input to decode to zero config, got %+v (%v)", cfg, err)
	}
}
