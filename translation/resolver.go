package translation

import (
	"context"
	"errors"
	"sync"

	"github.com/goliatone/go-translatable/internal/logging"
	"github.com/goliatone/go-translatable/pkg/interfaces"
)

// Settings captures the locale policy a resolver operates under.
type Settings struct {
	// DefaultLocale is the locale whose value is authoritative on the base
	// record when no explicit translation exists.
	DefaultLocale string

	// CreateTranslationForDefaultLocale also routes default-locale saves
	// through the store instead of relying solely on the base record.
	CreateTranslationForDefaultLocale bool
}

// SavePolicy decides whether a save routes translatable fields through the
// store (true) or writes through to the base record (false). The default
// policy routes whenever the effective locale differs from the default locale
// or the default-locale flag is set; hosts can install a different trigger.
type SavePolicy func(locale string, settings Settings) bool

// DefaultSavePolicy keeps exactly one source of truth for the default-locale
// value: the base record. Every other locale routes through the store.
func DefaultSavePolicy(locale string, settings Settings) bool {
	return locale != settings.DefaultLocale || settings.CreateTranslationForDefaultLocale
}

// CurrentLocale supplies the ambient locale for calls that pass none.
type CurrentLocale func(ctx context.Context) string

// ResolverOption configures a Resolver instance.
type ResolverOption func(*Resolver)

// WithCodec overrides the value codec, e.g. to install a cipher.
func WithCodec(codec *Codec) ResolverOption {
	return func(r *Resolver) {
		if codec != nil {
			r.codec = codec
		}
	}
}

// WithSavePolicy overrides the store-vs-base routing trigger.
func WithSavePolicy(policy SavePolicy) ResolverOption {
	return func(r *Resolver) {
		if policy != nil {
			r.policy = policy
		}
	}
}

// WithCurrentLocale overrides the ambient locale accessor. Defaults to
// LocaleFromContext.
func WithCurrentLocale(current CurrentLocale) ResolverOption {
	return func(r *Resolver) {
		if current != nil {
			r.current = current
		}
	}
}

// WithLogger injects the resolver logger. Defaults to a no-op logger.
func WithLogger(logger interfaces.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Resolver routes field reads and writes for one translatable record: reads
// resolve the effective value for a locale with base-value fallback, writes
// become store upserts, and saves apply the routing policy. Reads and writes
// go through the explicit accessor pair; no reflection is involved.
type Resolver struct {
	record   Record
	store    Store
	codec    *Codec
	settings Settings
	policy   SavePolicy
	current  CurrentLocale
	logger   interfaces.Logger

	mu     sync.RWMutex
	loaded bool
	cache  map[string]map[string]*Translation
}

// NewResolver wraps a record. The settings' DefaultLocale must be set.
func NewResolver(record Record, store Store, settings Settings, opts ...ResolverOption) (*Resolver, error) {
	if record == nil {
		return nil, ErrRecordRequired
	}
	if store == nil {
		return nil, ErrStoreRequired
	}
	if settings.DefaultLocale == "" {
		return nil, ErrLocaleRequired
	}

	r := &Resolver{
		record:   record,
		store:    store,
		codec:    NewCodec(),
		settings: settings,
		policy:   DefaultSavePolicy,
		current:  LocaleFromContext,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Fields returns the record's declared translatable fields in order.
func (r *Resolver) Fields() []Field {
	declared := r.record.TranslatableFields()
	out := make([]Field, len(declared))
	copy(out, declared)
	return out
}

// Get resolves the effective value for a field. The locale is the explicit
// argument when given, else the ambient locale, else the default locale. A
// store miss falls back to the base value; only coercion of a stored value or
// a store failure produce errors.
func (r *Resolver) Get(ctx context.Context, field string, locale ...string) (any, error) {
	decl, ok := r.fieldByName(field)
	if !ok {
		return nil, &NotTranslatableError{Field: field}
	}

	loc := r.effectiveLocale(ctx, locale...)
	row, err := r.lookup(ctx, field, loc)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return r.record.BaseValue(field), nil
	}
	return r.codec.Decode(decl, loc, row.Value)
}

// Set stores a localized value for the field, upserting against the tuple.
func (r *Resolver) Set(ctx context.Context, field, locale string, value any) error {
	decl, ok := r.fieldByName(field)
	if !ok {
		return &NotTranslatableError{Field: field}
	}
	if locale == "" {
		return ErrLocaleRequired
	}

	encoded, err := r.codec.Encode(decl, locale, value)
	if err != nil {
		return err
	}

	stored, err := r.store.Upsert(ctx, r.record.TranslationOwner(), field, locale, encoded)
	if err != nil {
		return err
	}

	r.mu.Lock()
	if r.loaded {
		locales, ok := r.cache[field]
		if !ok {
			locales = make(map[string]*Translation)
			r.cache[field] = locales
		}
		locales[locale] = stored
	}
	r.mu.Unlock()

	r.logger.Debug("translation.set", "field", field, "locale", locale)
	return nil
}

// Load eager-fetches every stored translation for the record so subsequent
// reads resolve from memory. Correctness does not depend on it; Get produces
// the same answers without a prior Load.
func (r *Resolver) Load(ctx context.Context) error {
	rows, err := r.store.ListForOwner(ctx, r.record.TranslationOwner())
	if err != nil {
		return err
	}

	cache := make(map[string]map[string]*Translation, len(rows))
	for _, row := range rows {
		locales, ok := cache[row.Field]
		if !ok {
			locales = make(map[string]*Translation)
			cache[row.Field] = locales
		}
		locales[row.Locale] = row
	}

	r.mu.Lock()
	r.cache = cache
	r.loaded = true
	r.mu.Unlock()

	r.logger.Debug("translation.load", "rows", len(rows))
	return nil
}

// Translations returns every stored translation row for the record.
func (r *Resolver) Translations(ctx context.Context) ([]*Translation, error) {
	return r.store.ListForOwner(ctx, r.record.TranslationOwner())
}

// ResolveAll materializes the effective value of every declared field for the
// locale. A coercion failure on one field does not block the others: resolved
// values are returned alongside the joined per-field errors.
func (r *Resolver) ResolveAll(ctx context.Context, locale ...string) (map[string]any, error) {
	values := make(map[string]any)
	var errs []error
	for _, decl := range r.record.TranslatableFields() {
		value, err := r.Get(ctx, decl.Name, locale...)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		values[decl.Name] = value
	}
	return values, errors.Join(errs...)
}

// SyncOnSave applies the write-path policy for the record's save: when the
// policy routes to the store, every declared field with a non-empty base
// value is persisted as a translation for the effective locale in one
// all-or-nothing batch, and the host must skip base-field persistence for
// those fields. Returns whether routing happened.
func (r *Resolver) SyncOnSave(ctx context.Context) (bool, error) {
	loc := r.effectiveLocale(ctx)
	if !r.policy(loc, r.settings) {
		return false, nil
	}

	var entries []FieldValue
	for _, decl := range r.record.TranslatableFields() {
		value := r.record.BaseValue(decl.Name)
		if isEmptyValue(value) {
			continue
		}
		encoded, err := r.codec.Encode(decl, loc, value)
		if err != nil {
			return false, err
		}
		entries = append(entries, FieldValue{Field: decl.Name, Value: encoded})
	}

	if err := r.store.UpsertBatch(ctx, r.record.TranslationOwner(), loc, entries); err != nil {
		return false, err
	}

	r.invalidate()
	r.logger.Debug("translation.sync_on_save", "locale", loc, "fields", len(entries))
	return true, nil
}

// Purge removes every stored translation for the record. Hosts call it before
// or as part of deleting the owning record so no orphan rows remain.
func (r *Resolver) Purge(ctx context.Context) error {
	removed, err := r.store.DeleteForOwner(ctx, r.record.TranslationOwner())
	if err != nil {
		return err
	}

	r.invalidate()
	r.logger.Debug("translation.purge", "rows", removed)
	return nil
}

func (r *Resolver) lookup(ctx context.Context, field, locale string) (*Translation, error) {
	r.mu.RLock()
	if r.loaded {
		var row *Translation
		if locales, ok := r.cache[field]; ok {
			row = locales[locale]
		}
		r.mu.RUnlock()
		return row, nil
	}
	r.mu.RUnlock()

	return r.store.Find(ctx, r.record.TranslationOwner(), field, locale)
}

func (r *Resolver) fieldByName(name string) (Field, bool) {
	for _, decl := range r.record.TranslatableFields() {
		if decl.Name == name {
			return decl, true
		}
	}
	return Field{}, false
}

func (r *Resolver) effectiveLocale(ctx context.Context, explicit ...string) string {
	if len(explicit) > 0 && explicit[0] != "" {
		return explicit[0]
	}
	if loc := r.current(ctx); loc != "" {
		return loc
	}
	return r.settings.DefaultLocale
}

func (r *Resolver) invalidate() {
	r.mu.Lock()
	r.loaded = false
	r.cache = nil
	r.mu.Unlock()
}

func isEmptyValue(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return s == ""
	}
	return false
}
