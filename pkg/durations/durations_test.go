package durations

import (
	"errors"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "hours", input: "24h", want: 24 * time.Hour},
		{name: "minutes", input: "30m", want: 30 * time.Minute},
		{name: "go compound", input: "1h30m", want: 90 * time.Minute},
		{name: "fractional go", input: "1.5h", want: 90 * time.Minute},
		{name: "zero", input: "0", want: 0},
		{name: "spaced terms", input: "1h 30m", want: 90 * time.Minute},
		{name: "days long form", input: "7days", want: 7 * Day},
		{name: "day short form", input: "2d", want: 2 * Day},
		{name: "number space unit", input: "2 weeks", want: 2 * Week},
		{name: "month capital M", input: "1M", want: Month},
		{name: "year", input: "1year", want: Year},
		{name: "mixed long units", input: "15days 2min 2s", want: 15*Day + 2*time.Minute + 2*time.Second},
		{name: "case insensitive", input: "3 Hours", want: 3 * time.Hour},
		{name: "micro sign", input: "5µs", want: 5 * time.Microsecond},
		{name: "surrounding space", input: "  10s ", want: 10 * time.Second},
		{name: "not a duration", input: "notaduration", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "blank", input: "   ", wantErr: true},
		{name: "bare number", input: "10", wantErr: true},
		{name: "negative", input: "-1h", wantErr: true},
		{name: "negative term", input: "1h -5m", wantErr: true},
		{name: "unknown unit", input: "5 fortnights", wantErr: true},
		{name: "trailing number", input: "1h 30", wantErr: true},
		{name: "overflow", input: "9999999999 years", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_ErrorKinds(t *testing.T) {
	if _, err := Parse(""); !errors.Is(err, ErrEmpty) {
		t.Errorf("Parse(\"\") error = %v, want ErrEmpty", err)
	}
	if _, err := Parse("-5m"); !errors.Is(err, ErrNegative) {
		t.Errorf("Parse(\"-5m\") error = %v, want ErrNegative", err)
	}
	if _, err := Parse("9999999999 years"); !errors.Is(err, ErrOverflow) {
		t.Errorf("Parse overflow error = %v, want ErrOverflow", err)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		input time.Duration
		want  string
	}{
		{0, "0s"},
		{24 * time.Hour, "1d"},
		{36 * time.Hour, "1d 12h"},
		{90 * time.Minute, "1h 30m"},
		{1500 * time.Millisecond, "1s 500ms"},
		{250 * time.Millisecond, "250ms"},
	}

	for _, tt := range tests {
		if got := Format(tt.input); got != tt.want {
			t.Errorf("Format(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormat_ParsesBack(t *testing.T) {
	for _, d := range []time.Duration{time.Second, Day, Week + 3*time.Hour, Month, Year, 1500 * time.Millisecond} {
		got, err := Parse(Format(d))
		if err != nil {
			t.Fatalf("Parse(Format(%v)) error: %v", d, err)
		}
		if got != d {
			t.Errorf("Parse(Format(%v)) = %v", d, got)
		}
	}
}
