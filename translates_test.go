package jsontranslate_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	jsontranslate "github.com/goliatone/go-json-translate"
	"github.com/goliatone/go-json-translate/pkg/interfaces"
	"github.com/goliatone/go-json-translate/pkg/testsupport"
)

type page struct {
	bun.BaseModel `bun:"table:pages,alias:p"`

	ID    uuid.UUID              `bun:"id,pk,type:uuid"`
	Title jsontranslate.Document `bun:"title_translations,type:text"`
	Body  jsontranslate.Document `bun:"body_translations,type:text"`
}

type namedProvider struct {
	names []string
}

func (p *namedProvider) GetLogger(name string) interfaces.Logger {
	p.names = append(p.names, name)
	return nil
}

func newModule(t *testing.T, opts ...jsontranslate.Option) *jsontranslate.Module {
	t.Helper()
	cfg := jsontranslate.DefaultConfig()
	cfg.Locales = []string{"en", "fr", "es-MX"}
	module, err := jsontranslate.New(cfg, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return module
}

func TestModuleTranslatesRows(t *testing.T) {
	ctx := context.Background()
	module := newModule(t)

	def, err := module.Translates("pages", []string{"title"})
	if err != nil {
		t.Fatalf("Translates() error = %v", err)
	}

	row := jsontranslate.Row{}
	if _, err := def.Write(ctx, row, "title", "Hello"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if _, err := def.Write(ctx, row, "title_es", "Hola"); !errors.Is(err, jsontranslate.ErrUnknownMember) {
		t.Fatalf("expected ErrUnknownMember, got %v", err)
	}
	if _, err := def.Write(ctx, row, "title_esmx", "Hola"); err != nil {
		t.Fatalf("Write(title_esmx) error = %v", err)
	}

	mx := jsontranslate.ContextWithLocale(ctx, "es-MX")
	if got, _ := def.Read(mx, row, "title"); got != "Hola" {
		t.Fatalf("expected Hola, got %v", got)
	}
	fr := jsontranslate.ContextWithLocale(ctx, "fr")
	if got, _ := def.Read(fr, row, "title"); got != "Hello" {
		t.Fatalf("expected fallback to default, got %v", got)
	}
	if got, _ := def.Read(fr, row, "title", jsontranslate.WithFallback(false)); got != nil {
		t.Fatalf("expected nil without fallback, got %v", got)
	}

	want := []string{"title_en", "title_es-MX", "title_fr"}
	if got := def.Permitted().Items(); len(got) != len(want) || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		t.Fatalf("unexpected permitted set %v", got)
	}
}

func TestModuleUsesConfiguredSuffixAndLoggers(t *testing.T) {
	provider := &namedProvider{}
	cfg := jsontranslate.DefaultConfig()
	cfg.Suffix = "_i18n"
	module, err := jsontranslate.New(cfg, jsontranslate.WithLoggerProvider(provider))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	def, err := module.Translates("pages", []string{"title"})
	if err != nil {
		t.Fatalf("Translates() error = %v", err)
	}
	accessor, err := def.Accessor("title")
	if err != nil {
		t.Fatalf("Accessor() error = %v", err)
	}
	if accessor.Column() != "title_i18n" {
		t.Fatalf("expected configured suffix, got %q", accessor.Column())
	}

	seen := map[string]bool{}
	for _, name := range provider.names {
		seen[name] = true
	}
	for _, name := range []string{"translates", "translates.registry", "translates.accessor", "translates.query"} {
		if !seen[name] {
			t.Fatalf("expected logger %q to be requested, got %v", name, provider.names)
		}
	}
}

func TestModuleGoLoggerProvider(t *testing.T) {
	cfg := jsontranslate.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Level = "error"
	module, err := jsontranslate.New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if module.Logger() == nil {
		t.Fatal("expected module logger")
	}
}

func TestModuleWatchLocaleSettings(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	module := newModule(t)
	repo := jsontranslate.NewMemoryLocaleSettingsRepository()
	if err := module.WatchLocaleSettings(ctx, repo); err != nil {
		t.Fatalf("WatchLocaleSettings() error = %v", err)
	}

	if _, err := repo.Upsert(ctx, jsontranslate.LocaleSettings{
		DefaultLocale: "fr",
		Locales:       []string{"fr", "en"},
	}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for module.Catalog().CurrentLocale(context.Background()) != "fr" {
		if time.Now().After(deadline) {
			t.Fatal("expected stored default locale to be applied")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestModuleStoreOnSQLite(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewSQLiteBunDB(t)
	if _, err := db.NewCreateTable().Model((*page)(nil)).Exec(ctx); err != nil {
		t.Fatalf("create table: %v", err)
	}

	module := newModule(t)
	def, err := module.Translates("p", []string{"title", "body"})
	if err != nil {
		t.Fatalf("Translates() error = %v", err)
	}
	pages, err := jsontranslate.NewStore(db, def, jsontranslate.UUIDHandlers(
		func() *page { return &page{} },
		func(p *page) uuid.UUID { return p.ID },
		func(p *page, id uuid.UUID) { p.ID = id },
	))
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	record := &page{ID: uuid.New()}
	if err := pages.Write(ctx, record, "title_fr", "Accueil"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := pages.Write(ctx, record, "body_en", "Welcome"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if _, err := pages.Create(ctx, record); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	found, err := pages.FindByTranslation(ctx, "title", "Accueil", jsontranslate.WithQueryLocale("fr"))
	if err != nil {
		t.Fatalf("FindByTranslation() error = %v", err)
	}
	if len(found) != 1 || found[0].ID != record.ID {
		t.Fatalf("expected the created page, got %d results", len(found))
	}

	if jsontranslate.ResolveDialect(db) != jsontranslate.DialectPathEquality {
		t.Fatal("expected sqlite to resolve to the path equality dialect")
	}

	rec, err := jsontranslate.NewModel(db, found[0])
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	if got, _ := def.Read(ctx, rec, "body"); got != "Welcome" {
		t.Fatalf("expected Welcome, got %v", got)
	}
}
