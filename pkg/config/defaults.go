package config

import "vanishing-hq/vanishing/pkg/retention"

// Default values for configuration fields.
const (
	// File location
	DirName  = "vanishing"
	FileName = "config.toml"

	// Logging defaults
	DefaultLoggingLevel  = "info"
	DefaultLoggingFormat = "text"
)

// Environment variables consulted by ResolvePath and LoadWithEnvOverrides.
const (
	EnvConfigPath    = "VANISHING_CONFIG"
	EnvLoggingLevel  = "VANISHING_LOGGING_LEVEL"
	EnvLoggingFormat = "VANISHING_LOGGING_FORMAT"
)

// Default returns the configuration in effect when no file exists.
func Default() *Config {
	cfg := &Config{
		Policy: retention.Default(),
		Source: SourceDefault,
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills in zero-valued settings.
func ApplyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Policy == nil {
		cfg.Policy = retention.Default()
	}
}
