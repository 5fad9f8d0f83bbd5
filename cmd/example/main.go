package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"

	jsontranslate "github.com/goliatone/go-json-translate"
	"github.com/goliatone/go-json-translate/internal/locales"
	"github.com/goliatone/go-json-translate/internal/logging"
)

type post struct {
	bun.BaseModel `bun:"table:posts,alias:p"`

	ID    uuid.UUID              `bun:"id,pk"`
	Slug  string                 `bun:"slug"`
	Title jsontranslate.Document `bun:"title_translations"`
}

var schemas = map[string]string{
	"sqlite3":  `CREATE TABLE IF NOT EXISTS posts (id TEXT PRIMARY KEY, slug TEXT NOT NULL, title_translations TEXT)`,
	"postgres": `CREATE TABLE IF NOT EXISTS posts (id UUID PRIMARY KEY, slug TEXT NOT NULL, title_translations JSONB)`,
	"mysql":    `CREATE TABLE IF NOT EXISTS posts (id CHAR(36) PRIMARY KEY, slug VARCHAR(255) NOT NULL, title_translations JSON)`,
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("translates example: %v", err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("translates-example", flag.ExitOnError)
	driver := fs.String("driver", "sqlite3", "Database driver: sqlite3, postgres or mysql")
	dsn := fs.String("dsn", "file:translates_example?mode=memory&cache=shared", "Driver specific data source name")
	catalogPath := fs.String("catalog", "", "JSON catalog file with default_locale, locales and fallbacks (overrides -locales)")
	localeList := fs.String("locales", "en,fr,es-MX", "Comma separated list of available locales")
	defaultLocale := fs.String("default-locale", "en", "Default locale used when no locale is requested")
	locale := fs.String("locale", "fr", "Locale used for the demo queries")
	search := fs.String("search", "Bonjour", "Title searched with with_title_translation")
	direction := fs.String("order", "asc", "Order direction for order_title (asc or desc)")
	strict := fs.Bool("strict-dialect", false, "Fail on databases without a known JSON dialect")
	storeSettings := fs.Bool("store-settings", false, "Persist the locale flags and load them back through the settings table")
	logLevel := fs.String("log-level", "info", "Log level for the go-logger provider")
	logFormat := fs.String("log-format", "console", "Log format for the go-logger provider (json, console, pretty)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	db, err := openDB(*driver, *dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	cfg := jsontranslate.DefaultConfig()
	cfg.DefaultLocale = *defaultLocale
	cfg.Locales = splitLocales(*localeList)
	if *catalogPath != "" {
		catalog, err := locales.NewLoader(*catalogPath).Load(context.Background())
		if err != nil {
			return err
		}
		cfg.DefaultLocale = catalog.DefaultLocale
		cfg.Locales = catalog.Locales
		cfg.Fallbacks = catalog.Fallbacks
	}
	cfg.Query.StrictDialect = *strict
	cfg.Features.Logger = true
	cfg.Logging.Level = *logLevel
	cfg.Logging.Format = *logFormat

	module, err := jsontranslate.New(cfg)
	if err != nil {
		return fmt.Errorf("configure module: %w", err)
	}

	ctx := logging.ContextWithFields(context.Background(), map[string]any{"driver": *driver})
	logger := module.Logger().WithContext(ctx)

	if *storeSettings {
		settings := jsontranslate.NewLocaleSettingsRepository(db)
		if err := settings.CreateTable(ctx); err != nil {
			return fmt.Errorf("create settings table: %w", err)
		}
		if _, err := settings.Upsert(ctx, settingsFromConfig(cfg)); err != nil {
			return fmt.Errorf("store settings: %w", err)
		}
		if err := module.LoadLocaleSettings(ctx, settings); err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
	}

	if _, err := db.ExecContext(ctx, schemas[*driver]); err != nil {
		return fmt.Errorf("create posts table: %w", err)
	}

	def, err := module.Translates("p", []string{"title"})
	if err != nil {
		return fmt.Errorf("declare translated attributes: %w", err)
	}
	logger.Info("translated attributes declared",
		"attributes", def.TranslatedAttributeNames(),
		"permitted", def.Permitted().Items(),
		"dialect", jsontranslate.ResolveDialect(db).String(),
	)

	posts, err := jsontranslate.NewStore(db, def, jsontranslate.UUIDHandlers(
		func() *post { return &post{} },
		func(p *post) uuid.UUID { return p.ID },
		func(p *post, id uuid.UUID) { p.ID = id },
	))
	if err != nil {
		return fmt.Errorf("build store: %w", err)
	}

	seed := []map[string]string{
		{"slug": "hello", "title_en": "Hello", "title_fr": "Bonjour"},
		{"slug": "welcome", "title_en": "Welcome", "title_fr": "Bienvenue"},
		{"slug": "goodbye", "title_en": "Goodbye"},
	}
	for _, values := range seed {
		record := &post{ID: uuid.New(), Slug: values["slug"]}
		for member, value := range values {
			if member == "slug" {
				continue
			}
			if err := posts.Write(ctx, record, member, value); err != nil {
				return fmt.Errorf("write %s: %w", member, err)
			}
		}
		if _, err := posts.Create(ctx, record); err != nil {
			return fmt.Errorf("create post %s: %w", record.Slug, err)
		}
	}

	localeCtx := jsontranslate.ContextWithLocale(ctx, *locale)

	found, err := posts.FindByTranslation(localeCtx, "title", *search)
	if err != nil {
		return fmt.Errorf("find by translation: %w", err)
	}
	for _, record := range found {
		logger.Info("matched post", "slug", record.Slug, "locale", *locale, "title", *search)
	}

	ordered, err := posts.ListOrdered(localeCtx, "title", jsontranslate.WithDirection(*direction))
	if err != nil {
		return fmt.Errorf("list ordered: %w", err)
	}
	for _, record := range ordered {
		title, err := posts.Read(localeCtx, record, "title")
		if err != nil {
			return fmt.Errorf("read title: %w", err)
		}
		fmt.Fprintf(os.Stdout, "%-8s %v\n", record.Slug, title)
	}
	return nil
}

func openDB(driver, dsn string) (*bun.DB, error) {
	var dialect schema.Dialect
	switch driver {
	case "sqlite3":
		dialect = sqlitedialect.New()
	case "postgres":
		dialect = pgdialect.New()
	case "mysql":
		dialect = mysqldialect.New()
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	sqldb, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == "sqlite3" {
		sqldb.SetMaxOpenConns(1)
	}
	return bun.NewDB(sqldb, dialect), nil
}

// settingsFromConfig carries the full locale setup, fallbacks included, into
// the stored settings that replace the catalog on load.
func settingsFromConfig(cfg jsontranslate.Config) jsontranslate.LocaleSettings {
	return jsontranslate.LocaleSettings{
		DefaultLocale: cfg.DefaultLocale,
		Locales:       cfg.Locales,
		Fallbacks:     cfg.Fallbacks,
	}
}

func splitLocales(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
