package localeconfig

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/goliatone/go-json-translate/pkg/testsupport"
)

func newTestRepository(t *testing.T) *BunRepository {
	t.Helper()
	repo := NewBunRepository(testsupport.NewSQLiteBunDB(t))
	if err := repo.CreateTable(context.Background()); err != nil {
		t.Fatalf("create table: %v", err)
	}
	return repo
}

func TestBunRepository_CRUDEvents(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if _, err := repo.Get(ctx); !errors.Is(err, ErrSettingsNotFound) {
		t.Fatalf("expected ErrSettingsNotFound, got %v", err)
	}

	events, err := repo.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	settings := sampleSettings()
	if _, err := repo.Upsert(ctx, settings); err != nil {
		t.Fatalf("Upsert() create error = %v", err)
	}
	assertEvent(t, events, ChangeCreated)

	settings.DefaultLocale = "fr"
	settings.Fallbacks = map[string][]string{"es-MX": {"es", "fr"}}
	if _, err := repo.Upsert(ctx, settings); err != nil {
		t.Fatalf("Upsert() update error = %v", err)
	}
	assertEvent(t, events, ChangeUpdated)

	fetched, err := repo.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if fetched.DefaultLocale != "fr" || !reflect.DeepEqual(fetched.Locales, settings.Locales) {
		t.Fatalf("Get() returned %+v", fetched)
	}
	if !reflect.DeepEqual(fetched.Fallbacks, settings.Fallbacks) {
		t.Fatalf("expected fallbacks to round trip, got %v", fetched.Fallbacks)
	}

	if err := repo.Delete(ctx); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	assertEvent(t, events, ChangeDeleted)

	if _, err := repo.Get(ctx); !errors.Is(err, ErrSettingsNotFound) {
		t.Fatalf("expected ErrSettingsNotFound, got %v", err)
	}
}

func TestBunRepository_DeleteMissing(t *testing.T) {
	repo := newTestRepository(t)
	if err := repo.Delete(context.Background()); !errors.Is(err, ErrSettingsNotFound) {
		t.Fatalf("expected ErrSettingsNotFound, got %v", err)
	}
}

func TestBunRepository_RequiresDatabase(t *testing.T) {
	repo := NewBunRepository(nil)
	if _, err := repo.Get(context.Background()); !errors.Is(err, ErrDatabaseRequired) {
		t.Fatalf("expected ErrDatabaseRequired, got %v", err)
	}
}
