package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"vanishing-hq/vanishing/pkg/bytesize"
	"vanishing-hq/vanishing/pkg/cli"
	"vanishing-hq/vanishing/pkg/durations"
)

var lookupFlags struct {
	age string
}

var lookupCmd = &cobra.Command{
	Use:   "lookup SIZE",
	Short: "Show the retention that applies to a file size",
	Long: `Resolve which size range governs a file of the given size and print its
retention. When ranges overlap, the narrowest matching range applies.

With --age, also report whether a file of that age has outlived its retention.

Examples:
  vanishing lookup 15MB
  vanishing lookup 1048576 --age 3d
  vanishing lookup 2GiB --age "1h 30m" --output json`,
	Args: exactlyOneSize,
	RunE: lookupSize,
}

func init() {
	rootCmd.AddCommand(lookupCmd)

	lookupCmd.Flags().StringVar(&lookupFlags.age, "age", "", "file age to check against the retention (e.g. 36h, 3d)")
}

func exactlyOneSize(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return cli.NewUsageError("`%s` takes exactly one SIZE argument, got %d", cmd.CommandPath(), len(args))
	}
	return nil
}

// lookupReport is the printed result of a lookup.
type lookupReport struct {
	Size       uint64     `json:"size" yaml:"size"`
	Matched    bool       `json:"matched" yaml:"matched"`
	Limit      *limitView `json:"limit,omitempty" yaml:"limit,omitempty"`
	Candidates int        `json:"candidates" yaml:"candidates"`
	Age        string     `json:"age,omitempty" yaml:"age,omitempty"`
	Expired    *bool      `json:"expired,omitempty" yaml:"expired,omitempty"`
}

// RenderText prints the lookup result.
func (r lookupReport) RenderText(w io.Writer) error {
	size := bytesize.Size(r.Size)
	if !r.Matched {
		_, err := fmt.Fprintf(w, "No range matches %s; files of this size are never deleted.\n", size)
		return err
	}

	if _, err := fmt.Fprintf(w, "%s falls in [%s, %s]: retention %s\n",
		size, bytesize.Size(r.Limit.Lower), bytesize.Size(r.Limit.Upper), r.Limit.Retention); err != nil {
		return err
	}
	if r.Candidates > 1 {
		if _, err := fmt.Fprintf(w, "%d ranges match; the narrowest was chosen.\n", r.Candidates); err != nil {
			return err
		}
	}
	if r.Expired != nil {
		verdict := "kept"
		if *r.Expired {
			verdict = "expired"
		}
		if _, err := fmt.Fprintf(w, "A file aged %s is %s.\n", r.Age, verdict); err != nil {
			return err
		}
	}
	return nil
}

func lookupSize(cmd *cobra.Command, args []string) error {
	size, err := bytesize.Parse(args[0])
	if err != nil {
		return cli.NewUsageError("%v", err)
	}

	var age time.Duration
	if lookupFlags.age != "" {
		age, err = durations.Parse(lookupFlags.age)
		if err != nil {
			return cli.NewUsageError("invalid --age: %v", err)
		}
	}

	s, err := loadSession(cmd)
	if err != nil {
		return err
	}

	report := lookupReport{
		Size:       size.Uint64(),
		Candidates: len(s.cfg.Policy.Matches(size.Uint64())),
	}

	expired, entry, ok := s.cfg.Policy.Expired(size.Uint64(), age)
	if ok {
		view := newLimitView(entry)
		report.Matched = true
		report.Limit = &view
	}
	if lookupFlags.age != "" {
		report.Age = durations.Format(age)
		report.Expired = &expired
	}

	s.logger.DebugContext(s.ctx, "lookup resolved",
		"size", report.Size,
		"matched", report.Matched,
		"candidates", report.Candidates,
	)

	return render(cmd, s.format, report)
}
