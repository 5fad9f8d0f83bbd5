package records_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-json-translate/internal/locales"
	"github.com/goliatone/go-json-translate/internal/records"
	"github.com/goliatone/go-json-translate/internal/translation"
	"github.com/goliatone/go-json-translate/pkg/testsupport"
)

type article struct {
	bun.BaseModel `bun:"table:articles"`

	ID                int64                `bun:",pk,autoincrement"`
	Title             string               `bun:"title"`
	BodyTranslations  translation.Document `bun:"body_translations,type:jsonb"`
	TitleTranslations string               `bun:"title_translations"`
	Summary           *string              `bun:"summary"`
	Views             int                  `bun:"views"`
}

func TestRowRecord(t *testing.T) {
	row := records.Row{"id": int64(1)}
	if !row.HasColumn("id") || row.HasColumn("title") {
		t.Fatal("unexpected column presence")
	}
	if err := row.SetColumn("title", "x"); err != nil {
		t.Fatalf("SetColumn error = %v", err)
	}
	if row.Column("title") != "x" {
		t.Fatalf("expected title to be set, got %v", row.Column("title"))
	}
}

func TestModelRecordColumns(t *testing.T) {
	db := testsupport.NewSQLiteBunDB(t)
	model := &article{Title: "plain"}
	rec := records.MustModel(db, model)

	if !rec.HasColumn("title") || !rec.HasColumn("body_translations") {
		t.Fatal("expected mapped columns")
	}
	if rec.HasColumn("Title") || rec.HasColumn("missing") {
		t.Fatal("expected only SQL column names to resolve")
	}
	if rec.Column("title") != "plain" {
		t.Fatalf("unexpected title %v", rec.Column("title"))
	}

	if err := rec.SetColumn("body_translations", `{"en":"Body"}`); err != nil {
		t.Fatalf("SetColumn(body_translations) error = %v", err)
	}
	if model.BodyTranslations["en"] != "Body" {
		t.Fatalf("expected scanner field to decode, got %#v", model.BodyTranslations)
	}

	if err := rec.SetColumn("title_translations", `{"en":"Title"}`); err != nil {
		t.Fatalf("SetColumn(title_translations) error = %v", err)
	}
	if model.TitleTranslations != `{"en":"Title"}` {
		t.Fatalf("expected string field assignment, got %q", model.TitleTranslations)
	}

	if err := rec.SetColumn("summary", "short"); err != nil {
		t.Fatalf("SetColumn(summary) error = %v", err)
	}
	if model.Summary == nil || *model.Summary != "short" {
		t.Fatalf("expected pointer field assignment, got %v", model.Summary)
	}

	if err := rec.SetColumn("title", 42); !errors.Is(err, records.ErrColumnNotAssignable) {
		t.Fatalf("expected ErrColumnNotAssignable for integer into string column, got %v", err)
	}
	if model.Title != "plain" {
		t.Fatalf("expected integer to be rejected for string column, got %q", model.Title)
	}

	if err := rec.SetColumn("summary", nil); err != nil {
		t.Fatalf("SetColumn(summary, nil) error = %v", err)
	}
	if model.Summary != nil {
		t.Fatal("expected nil to reset pointer field")
	}

	if err := rec.SetColumn("missing", "ignored"); !errors.Is(err, records.ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn, got %v", err)
	}

	if err := rec.SetColumn("body_translations", `{"en":`); !errors.Is(err, records.ErrColumnNotAssignable) {
		t.Fatalf("expected scanner failure to surface, got %v", err)
	}
}

type postMeta struct {
	Views int64 `json:"views"`
}

type mappedPost struct {
	bun.BaseModel `bun:"table:mapped_posts"`

	ID                int64             `bun:",pk,autoincrement"`
	TitleTranslations map[string]any    `bun:"title_translations,type:jsonb"`
	BodyTranslations  map[string]string `bun:"body_translations,type:jsonb"`
	Meta              *postMeta         `bun:"meta,type:jsonb"`
}

func TestModelRecordDecodesJSONIntoMapFields(t *testing.T) {
	db := testsupport.NewSQLiteBunDB(t)
	model := &mappedPost{TitleTranslations: map[string]any{"stale": "x"}}
	rec := records.MustModel(db, model)

	if err := rec.SetColumn("title_translations", `{"en":"hello","n":9007199254740993}`); err != nil {
		t.Fatalf("SetColumn error = %v", err)
	}
	if model.TitleTranslations["en"] != "hello" {
		t.Fatalf("expected decoded map, got %#v", model.TitleTranslations)
	}
	if _, ok := model.TitleTranslations["stale"]; ok {
		t.Fatalf("expected assignment to replace the previous map, got %#v", model.TitleTranslations)
	}
	if model.TitleTranslations["n"] != json.Number("9007199254740993") {
		t.Fatalf("expected exact number, got %#v", model.TitleTranslations["n"])
	}

	if err := rec.SetColumn("meta", `{"views":7}`); err != nil {
		t.Fatalf("SetColumn(meta) error = %v", err)
	}
	if model.Meta == nil || model.Meta.Views != 7 {
		t.Fatalf("expected decoded struct pointer, got %#v", model.Meta)
	}

	if err := rec.SetColumn("body_translations", `{"en":5}`); !errors.Is(err, records.ErrColumnNotAssignable) {
		t.Fatalf("expected type mismatch to surface, got %v", err)
	}
}

func TestModelRecordMapFieldWithAccessor(t *testing.T) {
	db := testsupport.NewSQLiteBunDB(t)
	catalog := locales.NewCatalog(locales.Config{DefaultLocale: "en", Locales: []string{"en", "fr"}})
	model := &mappedPost{}
	rec := records.MustModel(db, model)
	ctx := context.Background()

	title := translation.NewAccessor("title", catalog)
	if _, err := title.Write(ctx, rec, "hello", translation.WithLocale("en")); err != nil {
		t.Fatalf("Write error = %v", err)
	}
	if model.TitleTranslations["en"] != "hello" {
		t.Fatalf("expected map field update, got %#v", model.TitleTranslations)
	}

	body := translation.NewAccessor("body", catalog)
	if _, err := body.Write(ctx, rec, "Bonjour", translation.WithLocale("fr")); err != nil {
		t.Fatalf("Write(body) error = %v", err)
	}
	got, err := body.Read(ctx, rec, translation.WithLocale("fr"), translation.WithFallback(false))
	if err != nil || got != "Bonjour" {
		t.Fatalf("expected Bonjour from typed map field, got %v (%v)", got, err)
	}

	if _, err := body.Write(ctx, rec, 12, translation.WithLocale("en")); err == nil {
		t.Fatal("expected a number to be rejected by a map[string]string field")
	}
	if _, ok := model.BodyTranslations["en"]; ok {
		t.Fatalf("expected failed write to leave the field unchanged, got %#v", model.BodyTranslations)
	}

	missing := translation.NewAccessor("summary", catalog)
	if _, err := missing.Write(ctx, rec, "x"); !errors.Is(err, records.ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn for unmapped backing column, got %v", err)
	}
}

func TestModelRecordWithAccessor(t *testing.T) {
	db := testsupport.NewSQLiteBunDB(t)
	catalog := locales.NewCatalog(locales.Config{DefaultLocale: "en", Locales: []string{"en", "fr"}})
	model := &article{}
	rec := records.MustModel(db, model)
	ctx := context.Background()

	body := translation.NewAccessor("body", catalog)
	if _, err := body.Write(ctx, rec, "Bonjour", translation.WithLocale("fr")); err != nil {
		t.Fatalf("Write error = %v", err)
	}
	if model.BodyTranslations["fr"] != "Bonjour" {
		t.Fatalf("expected model document update, got %#v", model.BodyTranslations)
	}

	got, err := body.Read(ctx, rec, translation.WithLocale("fr"))
	if err != nil || got != "Bonjour" {
		t.Fatalf("expected Bonjour, got %v (%v)", got, err)
	}

	got, err = body.Read(ctx, rec)
	if err != nil || got != nil {
		t.Fatalf("expected nil for default locale, got %v (%v)", got, err)
	}
}

func TestNewModelRequiresStructPointer(t *testing.T) {
	db := testsupport.NewSQLiteBunDB(t)
	if _, err := records.NewModel(db, article{}); !errors.Is(err, records.ErrModelPointerRequired) {
		t.Fatalf("expected ErrModelPointerRequired, got %v", err)
	}
	var nilModel *article
	if _, err := records.NewModel(db, nilModel); !errors.Is(err, records.ErrModelPointerRequired) {
		t.Fatalf("expected ErrModelPointerRequired for nil pointer, got %v", err)
	}
}
