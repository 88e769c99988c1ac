package translation

import (
	"context"
	"errors"
	"testing"
)

// post is a minimal translatable host record used across resolver tests.
type post struct {
	id     int64
	fields []Field
	values map[string]any
}

func newPost(id int64) *post {
	return &post{
		id: id,
		fields: []Field{
			{Name: "title"},
			{Name: "body"},
		},
		values: map[string]any{
			"title": "Original Title",
			"body":  "Original Body",
		},
	}
}

func (p *post) TranslationOwner() Owner {
	return Owner{Type: "post", ID: p.id}
}

func (p *post) TranslatableFields() []Field {
	return p.fields
}

func (p *post) BaseValue(field string) any {
	return p.values[field]
}

func newTestResolver(t *testing.T, record Record, settings Settings, opts ...ResolverOption) (*Resolver, *MemoryStore) {
	t.Helper()

	store := NewMemoryStore()
	resolver, err := NewResolver(record, store, settings, opts...)
	if err != nil {
		t.Fatalf("NewResolver() error = %v", err)
	}
	return resolver, store
}

func TestResolverGetFallsBackToBaseValue(t *testing.T) {
	resolver, _ := newTestResolver(t, newPost(1), Settings{DefaultLocale: "en"})
	ctx := context.Background()

	got, err := resolver.Get(ctx, "title", "fr")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "Original Title" {
		t.Fatalf("Get() = %v, want base value", got)
	}
}

func TestResolverSetThenGetPerLocale(t *testing.T) {
	resolver, _ := newTestResolver(t, newPost(1), Settings{DefaultLocale: "en"})
	ctx := context.Background()

	if err := resolver.Set(ctx, "title", "es", "Título en Español"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	en, err := resolver.Get(ctx, "title", "en")
	if err != nil {
		t.Fatalf("Get(en) error = %v", err)
	}
	if en != "Original Title" {
		t.Fatalf("Get(en) = %v, want base value", en)
	}

	es, err := resolver.Get(ctx, "title", "es")
	if err != nil {
		t.Fatalf("Get(es) error = %v", err)
	}
	if es != "Título en Español" {
		t.Fatalf("Get(es) = %v", es)
	}

	fr, err := resolver.Get(ctx, "title", "fr")
	if err != nil {
		t.Fatalf("Get(fr) error = %v", err)
	}
	if fr != "Original Title" {
		t.Fatalf("Get(fr) = %v, want fallback to base value", fr)
	}
}

func TestResolverUsesAmbientContextLocale(t *testing.T) {
	resolver, _ := newTestResolver(t, newPost(1), Settings{DefaultLocale: "en"})
	ctx := ContextWithLocale(context.Background(), "es")

	if err := resolver.Set(ctx, "title", "es", "Hola"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := resolver.Get(ctx, "title")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "Hola" {
		t.Fatalf("Get() = %v, want ambient locale translation", got)
	}

	// explicit argument wins over the ambient locale
	base, err := resolver.Get(ctx, "title", "en")
	if err != nil {
		t.Fatalf("Get(en) error = %v", err)
	}
	if base != "Original Title" {
		t.Fatalf("Get(en) = %v", base)
	}
}

func TestResolverRejectsUndeclaredFields(t *testing.T) {
	resolver, _ := newTestResolver(t, newPost(1), Settings{DefaultLocale: "en"})
	ctx := context.Background()

	if _, err := resolver.Get(ctx, "slug"); !errors.Is(err, ErrNotTranslatable) {
		t.Fatalf("Get() expected ErrNotTranslatable, got %v", err)
	}

	err := resolver.Set(ctx, "slug", "es", "valor")
	if !errors.Is(err, ErrNotTranslatable) {
		t.Fatalf("Set() expected ErrNotTranslatable, got %v", err)
	}
	var notTranslatable *NotTranslatableError
	if !errors.As(err, &notTranslatable) || notTranslatable.Field != "slug" {
		t.Fatalf("expected field context, got %v", err)
	}
}

func TestResolverTypedFieldRoundTrip(t *testing.T) {
	record := &post{
		id:     1,
		fields: []Field{{Name: "published", Kind: KindBool}},
		values: map[string]any{"published": false},
	}
	resolver, store := newTestResolver(t, record, Settings{DefaultLocale: "en"})
	ctx := context.Background()

	if err := resolver.Set(ctx, "published", "es", true); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	row, err := store.Find(ctx, record.TranslationOwner(), "published", "es")
	if err != nil || row == nil {
		t.Fatalf("Find() = %+v, %v", row, err)
	}
	if row.Value != "1" {
		t.Fatalf("stored text = %q, want canonical \"1\"", row.Value)
	}

	got, err := resolver.Get(ctx, "published", "es")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != true {
		t.Fatalf("Get() = %v, want true", got)
	}

	if err := resolver.Set(ctx, "published", "es", false); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err = resolver.Get(ctx, "published", "es")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != false {
		t.Fatalf("Get() = %v, want false", got)
	}
}

func TestResolverMalformedStoredValueSurfacesCoercionError(t *testing.T) {
	record := &post{
		id:     1,
		fields: []Field{{Name: "position", Kind: KindInt}},
		values: map[string]any{"position": int64(1)},
	}
	resolver, store := newTestResolver(t, record, Settings{DefaultLocale: "en"})
	ctx := context.Background()

	if _, err := store.Upsert(ctx, record.TranslationOwner(), "position", "es", "not-a-number"); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	_, err := resolver.Get(ctx, "position", "es")
	if !errors.Is(err, ErrCoercion) {
		t.Fatalf("expected ErrCoercion, got %v", err)
	}
	var coercionErr *CoercionError
	if !errors.As(err, &coercionErr) {
		t.Fatalf("expected *CoercionError, got %T", err)
	}
	if coercionErr.Field != "position" || coercionErr.Locale != "es" || coercionErr.Raw != "not-a-number" {
		t.Fatalf("missing diagnostic context: %+v", coercionErr)
	}
}

func TestResolverResolveAllIsolatesFieldFailures(t *testing.T) {
	record := &post{
		id: 1,
		fields: []Field{
			{Name: "title"},
			{Name: "position", Kind: KindInt},
		},
		values: map[string]any{"title": "Original Title", "position": int64(9)},
	}
	resolver, store := newTestResolver(t, record, Settings{DefaultLocale: "en"})
	ctx := context.Background()

	if err := resolver.Set(ctx, "title", "es", "Hola"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := store.Upsert(ctx, record.TranslationOwner(), "position", "es", "broken"); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	values, err := resolver.ResolveAll(ctx, "es")
	if !errors.Is(err, ErrCoercion) {
		t.Fatalf("expected joined ErrCoercion, got %v", err)
	}
	if values["title"] != "Hola" {
		t.Fatalf("expected healthy field resolved, got %v", values["title"])
	}
	if _, ok := values["position"]; ok {
		t.Fatal("expected failed field to be absent from results")
	}
}

func TestResolverLoadServesReadsFromCache(t *testing.T) {
	record := newPost(1)
	resolver, store := newTestResolver(t, record, Settings{DefaultLocale: "en"})
	ctx := context.Background()

	if _, err := store.Upsert(ctx, record.TranslationOwner(), "title", "es", "Hola"); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := resolver.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// row added behind the cache is not visible until reload
	if _, err := store.Upsert(ctx, record.TranslationOwner(), "body", "es", "Cuerpo"); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	title, err := resolver.Get(ctx, "title", "es")
	if err != nil {
		t.Fatalf("Get(title) error = %v", err)
	}
	if title != "Hola" {
		t.Fatalf("Get(title) = %v", title)
	}

	body, err := resolver.Get(ctx, "body", "es")
	if err != nil {
		t.Fatalf("Get(body) error = %v", err)
	}
	if body != "Original Body" {
		t.Fatalf("Get(body) = %v, want stale cache fallback", body)
	}

	if err := resolver.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	body, err = resolver.Get(ctx, "body", "es")
	if err != nil {
		t.Fatalf("Get(body) error = %v", err)
	}
	if body != "Cuerpo" {
		t.Fatalf("Get(body) = %v after reload", body)
	}
}

func TestResolverSyncOnSaveWritesThroughForDefaultLocale(t *testing.T) {
	record := newPost(1)
	resolver, store := newTestResolver(t, record, Settings{DefaultLocale: "en"})
	ctx := ContextWithLocale(context.Background(), "en")

	routed, err := resolver.SyncOnSave(ctx)
	if err != nil {
		t.Fatalf("SyncOnSave() error = %v", err)
	}
	if routed {
		t.Fatal("expected write-through for default locale")
	}

	rows, err := store.ListForOwner(ctx, record.TranslationOwner())
	if err != nil {
		t.Fatalf("ListForOwner() error = %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected zero stored rows, got %d", len(rows))
	}
}

func TestResolverSyncOnSaveRoutesNonDefaultLocaleToStore(t *testing.T) {
	record := newPost(1)
	record.values["body"] = ""
	resolver, store := newTestResolver(t, record, Settings{DefaultLocale: "en"})
	ctx := ContextWithLocale(context.Background(), "es")

	routed, err := resolver.SyncOnSave(ctx)
	if err != nil {
		t.Fatalf("SyncOnSave() error = %v", err)
	}
	if !routed {
		t.Fatal("expected routing to store for non-default locale")
	}

	rows, err := store.ListForOwner(ctx, record.TranslationOwner())
	if err != nil {
		t.Fatalf("ListForOwner() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected only non-empty fields stored, got %d rows", len(rows))
	}
	if rows[0].Field != "title" || rows[0].Locale != "es" || rows[0].Value != "Original Title" {
		t.Fatalf("unexpected stored row: %+v", rows[0])
	}
}

func TestResolverSyncOnSaveDefaultLocaleFlag(t *testing.T) {
	record := newPost(1)
	resolver, store := newTestResolver(t, record, Settings{
		DefaultLocale:                     "en",
		CreateTranslationForDefaultLocale: true,
	})
	ctx := ContextWithLocale(context.Background(), "en")

	routed, err := resolver.SyncOnSave(ctx)
	if err != nil {
		t.Fatalf("SyncOnSave() error = %v", err)
	}
	if !routed {
		t.Fatal("expected routing when default-locale flag is set")
	}

	row, err := store.Find(ctx, record.TranslationOwner(), "title", "en")
	if err != nil || row == nil {
		t.Fatalf("Find() = %+v, %v", row, err)
	}
	if row.Value != "Original Title" {
		t.Fatalf("stored value = %q", row.Value)
	}
}

func TestResolverSyncOnSaveCustomPolicy(t *testing.T) {
	record := newPost(1)
	resolver, store := newTestResolver(t, record, Settings{DefaultLocale: "en"},
		WithSavePolicy(func(string, Settings) bool { return true }),
	)
	ctx := ContextWithLocale(context.Background(), "en")

	routed, err := resolver.SyncOnSave(ctx)
	if err != nil {
		t.Fatalf("SyncOnSave() error = %v", err)
	}
	if !routed {
		t.Fatal("expected custom policy to force routing")
	}

	rows, err := store.ListForOwner(ctx, record.TranslationOwner())
	if err != nil {
		t.Fatalf("ListForOwner() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected both fields stored, got %d", len(rows))
	}
}

func TestResolverPurgeRemovesAllRows(t *testing.T) {
	record := newPost(1)
	resolver, store := newTestResolver(t, record, Settings{DefaultLocale: "en"})
	ctx := context.Background()

	if err := resolver.Set(ctx, "title", "es", "Hola"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := resolver.Set(ctx, "title", "fr", "Bonjour"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if err := resolver.Purge(ctx); err != nil {
		t.Fatalf("Purge() error = %v", err)
	}

	rows, err := store.ListForOwner(ctx, record.TranslationOwner())
	if err != nil {
		t.Fatalf("ListForOwner() error = %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected zero rows after purge, got %d", len(rows))
	}
}

func TestResolverConstructorValidation(t *testing.T) {
	store := NewMemoryStore()

	if _, err := NewResolver(nil, store, Settings{DefaultLocale: "en"}); !errors.Is(err, ErrRecordRequired) {
		t.Fatalf("expected ErrRecordRequired, got %v", err)
	}
	if _, err := NewResolver(newPost(1), nil, Settings{DefaultLocale: "en"}); !errors.Is(err, ErrStoreRequired) {
		t.Fatalf("expected ErrStoreRequired, got %v", err)
	}
	if _, err := NewResolver(newPost(1), store, Settings{}); !errors.Is(err, ErrLocaleRequired) {
		t.Fatalf("expected ErrLocaleRequired, got %v", err)
	}
}
