package config

import "vanishing-hq/vanishing/pkg/retention"

// Source records where a Config came from.
type Source string

const (
	// SourceFile means the configuration was read from a file.
	SourceFile Source = "file"
	// SourceDefault means no file existed and defaults are in effect.
	SourceDefault Source = "default"
)

// Config is the loaded vanishing configuration.
type Config struct {
	// Policy maps size ranges to retention durations. Never nil after a
	// successful load.
	Policy *retention.Policy

	// Logging configures the process logger.
	Logging LoggingConfig

	// Path is the file the configuration was loaded from, or would have been
	// loaded from when Source is SourceDefault.
	Path string

	// Source records whether the file existed.
	Source Source
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	Level string `toml:"level"`

	// Format is the log output format ("text", "json").
	Format string `toml:"format"`
}

// document mirrors the TOML file layout. Limits is a pointer so that a
// missing key can be told apart from an empty list.
type document struct {
	Limits  *[][]any      `toml:"limits"`
	Logging LoggingConfig `toml:"logging"`
}
