// Package logging provides structured logging for vanishing.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging in text or JSON format
//   - Context-aware logging with an invocation ID and config path
//   - Configurable log levels (debug, info, warn, error)
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "text",
//	    Writer: os.Stderr,
//	})
//	if err != nil {
//	    return err
//	}
//	logger.SetDefault()
//
//	ctx := logging.WithInvocationID(ctx, logging.NewInvocationID())
//	logger.InfoContext(ctx, "policy loaded", "limits", 3)
//
// SetDefault installs the logger as slog's default so packages that log via
// slog.Default() (such as config) share its level, format and writer.
package logging
