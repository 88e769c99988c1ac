package translatable

import (
	"github.com/uptrace/bun"

	cache "github.com/goliatone/go-repository-cache/cache"
	translationscmd "github.com/goliatone/go-translatable/internal/commands/translations"
	"github.com/goliatone/go-translatable/internal/logging"
	"github.com/goliatone/go-translatable/internal/logging/gologger"
	"github.com/goliatone/go-translatable/pkg/interfaces"
	"github.com/goliatone/go-translatable/translation"
)

// Translation exports the stored row model.
type Translation = translation.Translation

// Owner exports the polymorphic owner reference.
type Owner = translation.Owner

// Field exports the translatable field declaration.
type Field = translation.Field

// Kind exports the semantic field kind.
type Kind = translation.Kind

// Record exports the contract host types implement to become translatable.
type Record = translation.Record

// Store exports the translation storage contract.
type Store = translation.Store

// Resolver exports the per-record read/write router.
type Resolver = translation.Resolver

// Settings exports the resolver locale policy.
type Settings = translation.Settings

// Codec exports the value codec.
type Codec = translation.Codec

// Cipher exports the contract encrypted fields encrypt through.
type Cipher = translation.Cipher

// SetTranslationCommand exports the store-level upsert command message.
type SetTranslationCommand = translationscmd.SetTranslationCommand

// PurgeTranslationsCommand exports the cascade cleanup command message.
type PurgeTranslationsCommand = translationscmd.PurgeTranslationsCommand

const (
	KindString    = translation.KindString
	KindBool      = translation.KindBool
	KindInt       = translation.KindInt
	KindFloat     = translation.KindFloat
	KindJSON      = translation.KindJSON
	KindTime      = translation.KindTime
	KindEncrypted = translation.KindEncrypted
)

// Option overrides module dependencies during construction.
type Option func(*Module)

// WithDB installs the bun database backing the default store.
func WithDB(db *bun.DB) Option {
	return func(m *Module) {
		m.db = db
	}
}

// WithStore installs a pre-built store, bypassing provider selection.
func WithStore(store Store) Option {
	return func(m *Module) {
		m.store = store
	}
}

// WithCache wires the repository cache service used by the bun store.
func WithCache(service cache.CacheService, serializer cache.KeySerializer) Option {
	return func(m *Module) {
		m.cacheService = service
		m.cacheSerializer = serializer
	}
}

// WithLoggerProvider installs the logger provider used for module loggers.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		m.loggers = provider
	}
}

// WithCipher installs the cipher used by encrypted fields.
func WithCipher(cipher Cipher) Option {
	return func(m *Module) {
		m.cipher = cipher
	}
}

// Module is the top level translatable runtime facade. It owns the store and
// shared codec and mints resolvers for host records.
type Module struct {
	config  Config
	db      *bun.DB
	store   Store
	codec   *Codec
	cipher  Cipher
	loggers interfaces.LoggerProvider

	cacheService    cache.CacheService
	cacheSerializer cache.KeySerializer
}

// New constructs a module from the provided configuration and overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{config: cfg}
	for _, opt := range opts {
		opt(m)
	}

	if m.loggers == nil && cfg.Logging.Enabled {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
		})
		if err != nil {
			return nil, err
		}
		m.loggers = provider
	}

	if m.store == nil {
		store, err := m.buildStore()
		if err != nil {
			return nil, err
		}
		m.store = store
		logging.StoreLogger(m.loggers).Debug("translation.store.ready",
			"provider", cfg.Storage.Provider,
			"cache", cfg.Cache.Enabled,
		)
	}

	codecOpts := []translation.CodecOption{}
	if m.cipher != nil {
		codecOpts = append(codecOpts, translation.WithCipher(m.cipher))
	}
	m.codec = translation.NewCodec(codecOpts...)

	return m, nil
}

// Store returns the configured translation store.
func (m *Module) Store() Store {
	return m.store
}

// Config returns the module configuration.
func (m *Module) Config() Config {
	return m.config
}

// Settings returns the resolver locale policy derived from configuration.
func (m *Module) Settings() Settings {
	return Settings{
		DefaultLocale:                     m.config.DefaultLocale,
		CreateTranslationForDefaultLocale: m.config.CreateTranslationForDefaultLocale,
	}
}

// Resolver wraps a host record with the module's store, codec and settings.
func (m *Module) Resolver(record Record, opts ...translation.ResolverOption) (*Resolver, error) {
	base := []translation.ResolverOption{
		translation.WithCodec(m.codec),
		translation.WithLogger(logging.ResolverLogger(m.loggers)),
	}
	base = append(base, opts...)
	return translation.NewResolver(record, m.store, m.Settings(), base...)
}

// SetTranslationHandler returns a command handler that upserts stored values
// through the module store.
func (m *Module) SetTranslationHandler() *translationscmd.SetTranslationHandler {
	return translationscmd.NewSetTranslationHandler(m.store, logging.CommandsLogger(m.loggers))
}

// PurgeTranslationsHandler returns a command handler that removes an owner's
// stored translations through the module store.
func (m *Module) PurgeTranslationsHandler() *translationscmd.PurgeTranslationsHandler {
	return translationscmd.NewPurgeTranslationsHandler(m.store, logging.CommandsLogger(m.loggers))
}

func (m *Module) buildStore() (Store, error) {
	switch m.config.Storage.Provider {
	case "", "bun":
		if m.db == nil {
			return nil, ErrDatabaseRequired
		}
		if m.config.Cache.Enabled && m.cacheService != nil && m.cacheSerializer != nil {
			return translation.NewBunStoreWithCache(m.db, m.cacheService, m.cacheSerializer), nil
		}
		return translation.NewBunStore(m.db), nil
	case "memory":
		return translation.NewMemoryStore(), nil
	default:
		return nil, ErrStorageProviderUnknown
	}
}
