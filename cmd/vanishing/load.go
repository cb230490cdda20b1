package main

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"vanishing-hq/vanishing/pkg/cli"
	"vanishing-hq/vanishing/pkg/config"
	"vanishing-hq/vanishing/pkg/telemetry/logging"
	"vanishing-hq/vanishing/pkg/telemetry/metrics"
)

// session is the state shared by every command once the config is loaded.
type session struct {
	ctx    context.Context
	cfg    *config.Config
	logger *logging.Logger
	format cli.OutputFormat
}

// loadSession resolves the config path, sets up logging, loads the config
// and writes the metrics textfile if one was requested. A config that fails
// to load still gets its failure recorded in the textfile.
func loadSession(cmd *cobra.Command) (*session, error) {
	format, err := cli.ParseFormat(outputFormat)
	if err != nil {
		return nil, cli.NewUsageError("%v", err)
	}

	path, err := config.ResolvePath(cfgFile)
	if err != nil {
		return nil, cli.NewConfigError("", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithInvocationID(ctx, logging.NewInvocationID())
	ctx = logging.WithConfigPath(ctx, path)

	// Bootstrap logger until the config's own logging settings are known.
	logger, err := newLogger(cmd, config.LoggingConfig{Level: config.DefaultLoggingLevel, Format: config.DefaultLoggingFormat})
	if err != nil {
		return nil, err
	}
	logger.SetDefault()

	logger.DebugContext(ctx, "loading config")
	cfg, loadErr := config.LoadWithEnvOverrides(path)

	if metricsTextfile != "" {
		if err := writeMetrics(cfg, loadErr); err != nil {
			logger.WarnContext(ctx, "failed to write metrics textfile", "path", metricsTextfile, "error", err)
		}
	}

	if errors.Is(loadErr, config.ErrInvalidEnvOverride) {
		return nil, cli.NewConfigError("", loadErr)
	}
	if loadErr != nil {
		return nil, cli.NewConfigError(path, loadErr)
	}

	logger, err = newLogger(cmd, cfg.Logging)
	if err != nil {
		return nil, cli.NewConfigError(path, err)
	}
	logger.SetDefault()

	logger.DebugContext(ctx, "retention policy loaded",
		"source", string(cfg.Source),
		"limits", cfg.Policy.Len(),
	)

	return &session{
		ctx:    ctx,
		cfg:    cfg,
		logger: logger,
		format: format,
	}, nil
}

// newLogger builds a stderr logger; --verbose forces debug level.
func newLogger(cmd *cobra.Command, lc config.LoggingConfig) (*logging.Logger, error) {
	level := lc.Level
	if verbose {
		level = "debug"
	}
	return logging.New(logging.Config{
		Level:  level,
		Format: lc.Format,
		Writer: cmd.ErrOrStderr(),
	})
}

func writeMetrics(cfg *config.Config, loadErr error) error {
	registry := prometheus.NewRegistry()
	pm := metrics.NewPolicyMetrics(metrics.Config{}, registry)

	if loadErr != nil {
		pm.RecordLoad(string(config.SourceFile), loadErr)
	} else {
		pm.RecordLoad(string(cfg.Source), nil)
		pm.ObservePolicy(cfg.Policy, cfg.Source == config.SourceDefault)
	}

	return metrics.WriteTextfile(metricsTextfile, registry)
}
