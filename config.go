package jsontranslate

import "github.com/goliatone/go-json-translate/internal/runtimeconfig"

var (
	ErrDefaultLocaleRequired   = runtimeconfig.ErrDefaultLocaleRequired
	ErrLocaleInvalid           = runtimeconfig.ErrLocaleInvalid
	ErrFallbackLocaleUnknown   = runtimeconfig.ErrFallbackLocaleUnknown
	ErrSuffixInvalid           = runtimeconfig.ErrSuffixInvalid
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config        = runtimeconfig.Config
	QueryConfig   = runtimeconfig.QueryConfig
	Features      = runtimeconfig.Features
	LoggingConfig = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
