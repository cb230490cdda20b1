package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"vanishing-hq/vanishing/pkg/cli"
	"vanishing-hq/vanishing/pkg/retention"
)

const sampleConfig = `
limits = [
  [0, 9_999_999, "30days"],
  ["10MB", 999_999_999, "7d"],
  ["1GB", "max", "24h"],
]
`

// executeCommand clears the VANISHING_* environment and runs the root
// command with args, returning stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv("VANISHING_CONFIG", "")
	t.Setenv("VANISHING_LOGGING_LEVEL", "")
	t.Setenv("VANISHING_LOGGING_FORMAT", "")
	return runCommand(t, args...)
}

// runCommand resets the global flags and runs the root command with args
// under the current environment.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cfgFile = ""
	verbose = false
	outputFormat = "text"
	metricsTextfile = ""
	lookupFlags.age = ""

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestShowPolicyFromFile(t *testing.T) {
	path := writeConfig(t, sampleConfig)

	out, err := executeCommand(t, "--config", path)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, want := range []string{path, "LOWER", "RETENTION", "30d", "7d", "1d", "max"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Warning") {
		t.Errorf("unexpected overlap warning:\n%s", out)
	}
}

func TestShowPolicyMissingFileUsesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	out, err := executeCommand(t, "--config", path, "--output", "json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var report policyReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if report.Source != "default" {
		t.Errorf("Source = %q, want default", report.Source)
	}
	if len(report.Limits) != 1 {
		t.Fatalf("got %d limits, want 1", len(report.Limits))
	}
	full := retention.FullRange()
	if report.Limits[0].Lower != full.Lower || report.Limits[0].Upper != full.Upper {
		t.Errorf("limit = [%d, %d], want full range", report.Limits[0].Lower, report.Limits[0].Upper)
	}
	if report.Limits[0].RetentionSeconds != 86400 {
		t.Errorf("RetentionSeconds = %v, want 86400", report.Limits[0].RetentionSeconds)
	}
}

func TestShowPolicyYAMLReportsOverlaps(t *testing.T) {
	path := writeConfig(t, `limits = [[0, 100, "1h"], [50, 200, "2h"]]`)

	out, err := executeCommand(t, "-c", path, "-o", "yaml")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var report policyReport
	if err := yaml.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, out)
	}
	if len(report.Overlaps) != 1 {
		t.Fatalf("got %d overlaps, want 1", len(report.Overlaps))
	}
	if report.Overlaps[0].First != (retention.SizeRange{Lower: 0, Upper: 100}) {
		t.Errorf("First = %v", report.Overlaps[0].First)
	}
}

func TestShowPolicyRejectsPositionalArgs(t *testing.T) {
	_, err := executeCommand(t, "extra")
	if err == nil {
		t.Fatal("expected error for positional argument")
	}
	if code := cli.ExitCode(err); code != cli.ExitUsage {
		t.Errorf("ExitCode() = %d, want %d", code, cli.ExitUsage)
	}
}

func TestShowPolicyInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		kind    error
	}{
		{"inverted", `limits = [[100, 10, "1h"]]`, retention.ErrInvertedRange},
		{"duplicate", `limits = [[0, 10, "1h"], [0, 10, "2h"]]`, retention.ErrDuplicateRange},
		{"bad duration", `limits = [[0, 10, "soon"]]`, retention.ErrInvalidDuration},
		{"syntax", `limits = [`, retention.ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)

			_, err := executeCommand(t, "--config", path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.kind) {
				t.Errorf("error = %v, want kind %v", err, tt.kind)
			}
			if code := cli.ExitCode(err); code != cli.ExitError {
				t.Errorf("ExitCode() = %d, want %d", code, cli.ExitError)
			}
		})
	}
}

func TestShowPolicyRejectsUnknownOutput(t *testing.T) {
	_, err := executeCommand(t, "--output", "xml")
	if code := cli.ExitCode(err); code != cli.ExitUsage {
		t.Errorf("ExitCode() = %d, want %d (err: %v)", code, cli.ExitUsage, err)
	}
}

func TestShowPolicyWritesMetricsTextfile(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	textfile := filepath.Join(t.TempDir(), "metrics", "vanishing.prom")

	if _, err := executeCommand(t, "--config", path, "--metrics-textfile", textfile); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	data, err := os.ReadFile(textfile)
	if err != nil {
		t.Fatalf("textfile not written: %v", err)
	}
	for _, want := range []string{
		"vanishing_policy_entries 3",
		"vanishing_policy_default 0",
		`vanishing_config_loads_total{result="success",source="file"} 1`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("textfile missing %q:\n%s", want, data)
		}
	}
}

func TestShowPolicyRecordsFailedLoadInTextfile(t *testing.T) {
	path := writeConfig(t, `limits = [[100, 10, "1h"]]`)
	textfile := filepath.Join(t.TempDir(), "vanishing.prom")

	if _, err := executeCommand(t, "--config", path, "--metrics-textfile", textfile); err == nil {
		t.Fatal("expected error")
	}

	data, err := os.ReadFile(textfile)
	if err != nil {
		t.Fatalf("textfile not written: %v", err)
	}
	if want := `vanishing_config_loads_total{result="inverted_range",source="file"} 1`; !strings.Contains(string(data), want) {
		t.Errorf("textfile missing %q:\n%s", want, data)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRenderWrapsWriteFailure(t *testing.T) {
	for _, format := range cli.Formats {
		t.Run(string(format), func(t *testing.T) {
			cmd := &cobra.Command{Use: "lookup"}
			cmd.SetOut(failingWriter{})

			report := lookupReport{Size: 42, Matched: true, Limit: &limitView{Upper: 100, Retention: "1h"}}
			err := render(cmd, format, report)
			if err == nil {
				t.Fatal("expected error")
			}

			var cmdErr *cli.CommandError
			if !errors.As(err, &cmdErr) {
				t.Fatalf("expected *cli.CommandError, got %T: %v", err, err)
			}
			if cmdErr.Command != "lookup" {
				t.Errorf("Command = %q, want lookup", cmdErr.Command)
			}
			if code := cli.ExitCode(err); code != cli.ExitError {
				t.Errorf("ExitCode() = %d, want %d", code, cli.ExitError)
			}
		})
	}
}

func TestShowPolicyInvalidEnvOverride(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	t.Setenv("VANISHING_LOGGING_LEVEL", "loud")
	t.Setenv("VANISHING_LOGGING_FORMAT", "")

	_, err := runCommand(t, "--config", path)
	if err == nil {
		t.Fatal("expected error")
	}

	var cfgErr *cli.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *cli.ConfigError, got %T: %v", err, err)
	}
	if cfgErr.Path != "" {
		t.Errorf("Path = %q, want empty since the file is valid", cfgErr.Path)
	}
	if kind := retention.KindOf(err); kind != "" {
		t.Errorf("KindOf() = %q, want no policy error kind", kind)
	}
}
