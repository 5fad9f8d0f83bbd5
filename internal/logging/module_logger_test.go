package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-json-translate/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "translates.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger.Debug("noop")
}

func TestModuleLoggerAnnotatesModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = QueryLogger(provider)

	if len(provider.requested) != 1 || provider.requested[0] != queryModule {
		t.Fatalf("expected module %s, got %v", queryModule, provider.requested)
	}
	if len(rec.fields) != 1 || rec.fields[0]["module"] != queryModule {
		t.Fatalf("expected module field %s, got %v", queryModule, rec.fields)
	}
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, "")

	if provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
}

func TestNamespacedLoggers(t *testing.T) {
	cases := []struct {
		name string
		get  func(interfaces.LoggerProvider) interfaces.Logger
		want string
	}{
		{"accessor", AccessorLogger, accessorModule},
		{"registry", RegistryLogger, registryModule},
		{"locales", LocalesLogger, localesModule},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := &stubProvider{logger: &recordingLogger{}}
			_ = tc.get(provider)
			if len(provider.requested) == 0 || provider.requested[0] != tc.want {
				t.Fatalf("expected %s, got %v", tc.want, provider.requested)
			}
		})
	}
}

func TestWithTranslationContextSkipsEmptyValues(t *testing.T) {
	rec := &recordingLogger{}
	_ = WithTranslationContext(rec, "title", " ", "pg")

	if len(rec.fields) != 1 {
		t.Fatalf("expected one WithFields call, got %d", len(rec.fields))
	}
	got := rec.fields[0]
	if got[fieldAttribute] != "title" || got[fieldDialect] != "pg" {
		t.Fatalf("unexpected fields %v", got)
	}
	if _, ok := got[fieldLocale]; ok {
		t.Fatalf("expected blank locale to be skipped, got %v", got)
	}
}

func TestContextFieldsMerge(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"request_id": "r-1"})
	ctx = ContextWithFields(ctx, map[string]any{"locale": "fr"})

	fields := ContextFields(ctx)
	if fields["request_id"] != "r-1" || fields["locale"] != "fr" {
		t.Fatalf("expected merged fields, got %v", fields)
	}
}

func TestContextFieldsAreCopies(t *testing.T) {
	base := ContextWithFields(context.Background(), map[string]any{"locale": "en"})
	child := ContextWithFields(base, map[string]any{"locale": "fr"})

	if ContextFields(base)["locale"] != "en" {
		t.Fatalf("expected parent context fields to stay unchanged, got %v", ContextFields(base))
	}
	if ContextFields(child)["locale"] != "fr" {
		t.Fatalf("expected child override, got %v", ContextFields(child))
	}

	fields := ContextFields(child)
	fields["locale"] = "de"
	if ContextFields(child)["locale"] != "fr" {
		t.Fatal("expected ContextFields to return a copy")
	}
	if ContextFields(context.Background()) != nil {
		t.Fatal("expected nil fields for a bare context")
	}
}

type plainLogger struct{}

func (plainLogger) Trace(string, ...any)                          {}
func (plainLogger) Debug(string, ...any)                          {}
func (plainLogger) Info(string, ...any)                           {}
func (plainLogger) Warn(string, ...any)                           {}
func (plainLogger) Error(string, ...any)                          {}
func (plainLogger) Fatal(string, ...any)                          {}
func (plainLogger) WithContext(context.Context) interfaces.Logger { return plainLogger{} }

func TestWithFieldsSkipsLoggersWithoutFieldSupport(t *testing.T) {
	var logger interfaces.Logger = plainLogger{}
	if got := WithFields(logger, map[string]any{"k": "v"}); got != logger {
		t.Fatalf("expected logger unchanged, got %T", got)
	}
}
