package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"vanishing-hq/vanishing/pkg/cli"
)

var (
	// Global flags
	cfgFile         string
	verbose         bool
	outputFormat    string
	metricsTextfile string
)

var rootCmd = &cobra.Command{
	Use:   "vanishing",
	Short: "vanishing - size-based file retention policy",
	Long: `vanishing assigns each file size range a retention duration. A file whose
age exceeds the retention of its size range becomes eligible for deletion.

Run without arguments to load the retention policy and print it. When no
config file exists the default policy applies: every file is kept for 24 hours.

The config file is looked up in this order:
  1. --config flag
  2. VANISHING_CONFIG environment variable
  3. <user config dir>/vanishing/config.toml`,
	Version:       Version,
	Args:          noPositionalArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          showPolicy,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default <user config dir>/vanishing/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format: text, json, yaml")
	rootCmd.PersistentFlags().StringVar(&metricsTextfile, "metrics-textfile", "", "write policy metrics to this file in Prometheus textfile format")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return cli.NewUsageError("%v", err)
	})
}

func noPositionalArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return cli.NewUsageError("`%s` doesn't take any positional arguments, got %q", cmd.CommandPath(), args)
	}
	return nil
}
