/*
Package cli provides command-line interface utilities for vanishing.

Output Formatting:

The cli package supports multiple output formats (text, JSON, YAML) for
displaying command results:

	formatter, err := cli.NewFormatter(cli.FormatYAML)
	if err != nil {
		return err
	}
	if err := formatter.FormatTo(os.Stdout, report); err != nil {
		return err
	}

Values that implement TextRenderer control their own text output; anything
else is printed with %v.

Errors:

ConfigError, CommandError and UsageError carry enough context for the
command to print one line and exit with ExitCode(err).
*/
package cli
