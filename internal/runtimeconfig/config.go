package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrDefaultLocaleRequired = errors.New("translatable config: default locale is required")
var ErrStorageProviderUnknown = errors.New("translatable config: storage provider is invalid")
var ErrCacheTTLInvalid = errors.New("translatable config: cache ttl must be zero or positive")
var ErrLoggingLevelInvalid = errors.New("translatable config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("translatable config: logging format is invalid")

// DefaultLocaleKey is the conventional configuration key host applications use
// to expose their application locale. Hosts that keep locale settings in their
// own configuration tree can read the key and feed the value into Config.
const DefaultLocaleKey = "app.locale"

// Config aggregates locale policy and adapter bindings for the translatable module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	// DefaultLocale is the locale whose values are authoritative on the base
	// record. Base fields remain the single source of truth for it unless
	// CreateTranslationForDefaultLocale is set.
	DefaultLocale string

	// CreateTranslationForDefaultLocale also persists default-locale values as
	// translation rows instead of relying solely on the base record.
	CreateTranslationForDefaultLocale bool

	Storage StorageConfig
	Cache   CacheConfig
	Logging LoggingConfig
}

// StorageConfig lists identifiers for storage-related dependencies.
type StorageConfig struct {
	Provider string
}

// CacheConfig captures cache behaviour toggles for the bun store wrapper.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// LoggingConfig configures the go-logger provider adapter.
type LoggingConfig struct {
	Enabled   bool
	Level     string
	Format    string
	AddSource bool
}

// DefaultConfig returns the canonical baseline configuration.
func DefaultConfig() Config {
	return Config{
		DefaultLocale:                     "en",
		CreateTranslationForDefaultLocale: false,
		Storage: StorageConfig{
			Provider: "bun",
		},
		Cache: CacheConfig{
			Enabled:    false,
			DefaultTTL: time.Minute,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
			Format:  "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.DefaultLocale) == "" {
		return ErrDefaultLocaleRequired
	}
	if provider := normalizeToken(cfg.Storage.Provider); provider != "" && !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, provider)
	}
	if cfg.Cache.DefaultTTL < 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.Logging.Enabled {
		if level := normalizeToken(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := normalizeToken(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalizeToken(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "bun", "memory":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch level {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch format {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
