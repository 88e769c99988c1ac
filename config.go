package translatable

import (
	"errors"

	"github.com/goliatone/go-translatable/internal/runtimeconfig"
)

var (
	ErrDefaultLocaleRequired  = runtimeconfig.ErrDefaultLocaleRequired
	ErrStorageProviderUnknown = runtimeconfig.ErrStorageProviderUnknown
	ErrCacheTTLInvalid        = runtimeconfig.ErrCacheTTLInvalid
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

// ErrDatabaseRequired indicates the bun storage provider was selected without a database.
var ErrDatabaseRequired = errors.New("translatable: bun storage provider requires a database")

type (
	Config        = runtimeconfig.Config
	StorageConfig = runtimeconfig.StorageConfig
	CacheConfig   = runtimeconfig.CacheConfig
	LoggingConfig = runtimeconfig.LoggingConfig
)

// DefaultLocaleKey is the conventional host configuration key for the
// application default locale.
const DefaultLocaleKey = runtimeconfig.DefaultLocaleKey

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
