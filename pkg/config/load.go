package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"

	"vanishing-hq/vanishing/pkg/bytesize"
	"vanishing-hq/vanishing/pkg/retention"
)

// ErrInvalidEnvOverride is returned by LoadWithEnvOverrides when a
// VANISHING_LOGGING_* variable holds an invalid value. The file itself
// loaded fine, so the error carries no retention.ErrorKind.
var ErrInvalidEnvOverride = errors.New("invalid environment override")

// Load reads the configuration file at path, applies defaults and validates
// it. A missing file yields Default(). Environment variables are not
// consulted; use LoadWithEnvOverrides for that.
func Load(path string) (*Config, error) {
	logger := slog.Default().With("component", "config")

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("config not found, falling back to default", "path", path)
			cfg := Default()
			cfg.Path = path
			return cfg, nil
		}
		return nil, retention.NewIOError(path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.Path = path

	if cfg.Policy.Len() == 0 {
		logger.Warn("config declares no limits, no file will ever expire", "path", path)
	}
	for _, o := range cfg.Policy.Overlaps() {
		logger.Warn("overlapping size ranges, the narrowest range applies",
			"path", path,
			"first", o.First.String(),
			"second", o.Second.String(),
		)
	}

	logger.Debug("config loaded", "path", path, "limits", cfg.Policy.Len())
	return cfg, nil
}

// LoadWithEnvOverrides loads the configuration like Load and then applies
// VANISHING_LOGGING_* environment overrides. Environment variables win over
// the file and over defaults.
func LoadWithEnvOverrides(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("%w (%s, %s): %w", ErrInvalidEnvOverride, EnvLoggingLevel, EnvLoggingFormat, err)
	}
	return cfg, nil
}

// LoadPolicy loads only the retention policy from path.
func LoadPolicy(path string) (*retention.Policy, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return cfg.Policy, nil
}

// Parse decodes and validates configuration text. The returned Config has
// SourceFile and no Path.
func Parse(data []byte) (*Config, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, retention.NewParseError(describeDecodeError(err), nil)
	}
	if doc.Limits == nil {
		return nil, retention.NewParseError("missing field `limits`", nil)
	}

	raw, err := parseLimits(*doc.Limits)
	if err != nil {
		return nil, err
	}

	policy, err := retention.Build(raw)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Policy:  policy,
		Logging: doc.Logging,
		Source:  SourceFile,
	}
	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, retention.NewParseError("invalid settings", err)
	}
	return cfg, nil
}

// parseLimits converts decoded [lower, upper, duration] rows into raw
// policy tuples. Duration text is left for retention.Build to parse.
func parseLimits(rows [][]any) ([]retention.RawEntry, error) {
	raw := make([]retention.RawEntry, 0, len(rows))
	for i, row := range rows {
		if len(row) != 3 {
			return nil, retention.NewParseError(
				fmt.Sprintf("limits[%d]: expected [lower, upper, duration], got %d elements", i, len(row)), nil)
		}

		lower, err := bytesize.FromValue(row[0])
		if err != nil {
			return nil, retention.NewParseError(fmt.Sprintf("limits[%d] lower bound", i), err)
		}
		upper, err := bytesize.FromValue(row[1])
		if err != nil {
			return nil, retention.NewParseError(fmt.Sprintf("limits[%d] upper bound", i), err)
		}
		duration, ok := row[2].(string)
		if !ok {
			return nil, retention.NewParseError(
				fmt.Sprintf("limits[%d] duration: expected a string, got %T", i, row[2]), nil)
		}

		raw = append(raw, retention.RawEntry{
			Lower:    lower.Uint64(),
			Upper:    upper.Uint64(),
			Duration: duration,
		})
	}
	return raw, nil
}

// describeDecodeError renders go-toml errors with their position.
func describeDecodeError(err error) string {
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		row, col := derr.Position()
		return fmt.Sprintf("line %d, column %d: %s", row, col, derr.Error())
	}
	return err.Error()
}

// applyEnvOverrides applies VANISHING_* environment overrides.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv(EnvLoggingLevel); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv(EnvLoggingFormat); val != "" {
		cfg.Logging.Format = val
	}
}
