package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"vanishing-hq/vanishing/pkg/bytesize"
	"vanishing-hq/vanishing/pkg/cli"
	"vanishing-hq/vanishing/pkg/config"
	"vanishing-hq/vanishing/pkg/durations"
	"vanishing-hq/vanishing/pkg/retention"
)

// policyReport is the printed form of a loaded policy.
type policyReport struct {
	Source   string        `json:"source" yaml:"source"`
	Path     string        `json:"path" yaml:"path"`
	Limits   []limitView   `json:"limits" yaml:"limits"`
	Overlaps []overlapView `json:"overlaps,omitempty" yaml:"overlaps,omitempty"`
}

type limitView struct {
	Lower            uint64  `json:"lower" yaml:"lower"`
	Upper            uint64  `json:"upper" yaml:"upper"`
	Retention        string  `json:"retention" yaml:"retention"`
	RetentionSeconds float64 `json:"retention_seconds" yaml:"retention_seconds"`
}

type overlapView struct {
	First  retention.SizeRange `json:"first" yaml:"first"`
	Second retention.SizeRange `json:"second" yaml:"second"`
}

func newLimitView(e retention.Entry) limitView {
	return limitView{
		Lower:            e.Range.Lower,
		Upper:            e.Range.Upper,
		Retention:        durations.Format(e.Retention),
		RetentionSeconds: e.Retention.Seconds(),
	}
}

func newPolicyReport(cfg *config.Config) policyReport {
	report := policyReport{
		Source: string(cfg.Source),
		Path:   cfg.Path,
		Limits: make([]limitView, 0, cfg.Policy.Len()),
	}
	for _, e := range cfg.Policy.Entries() {
		report.Limits = append(report.Limits, newLimitView(e))
	}
	for _, o := range cfg.Policy.Overlaps() {
		report.Overlaps = append(report.Overlaps, overlapView{First: o.First, Second: o.Second})
	}
	return report
}

// RenderText prints the policy as a table.
func (r policyReport) RenderText(w io.Writer) error {
	source := r.Path
	if r.Source == string(config.SourceDefault) {
		source = fmt.Sprintf("%s (not found, using default policy)", r.Path)
	}
	if _, err := fmt.Fprintf(w, "Config: %s\n\n", source); err != nil {
		return err
	}

	if len(r.Limits) == 0 {
		_, err := fmt.Fprintln(w, "No limits configured.")
		return err
	}

	// Rows are buffered; write errors surface from Flush.
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LOWER\tUPPER\tRETENTION")
	for _, l := range r.Limits {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", bytesize.Size(l.Lower), bytesize.Size(l.Upper), l.Retention)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(r.Overlaps) > 0 {
		if _, err := fmt.Fprintf(w, "\nWarning: %d overlapping range pair(s); the narrowest matching range applies:\n", len(r.Overlaps)); err != nil {
			return err
		}
		for _, o := range r.Overlaps {
			if _, err := fmt.Fprintf(w, "  %s overlaps %s\n", o.First, o.Second); err != nil {
				return err
			}
		}
	}
	return nil
}

// showPolicy is the root command: load the policy and print it.
func showPolicy(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}

	return render(cmd, s.format, newPolicyReport(s.cfg))
}

// render writes report to the command's stdout in the requested format.
func render(cmd *cobra.Command, format cli.OutputFormat, report any) error {
	formatter, err := cli.NewFormatter(format)
	if err != nil {
		return cli.NewUsageError("%v", err)
	}
	if err := formatter.FormatTo(cmd.OutOrStdout(), report); err != nil {
		return cli.NewCommandError(cmd.Name(), err)
	}
	return nil
}
