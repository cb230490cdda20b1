// Package bytesize parses and formats the byte-size literals used as range
// bounds in a retention configuration.
//
// A literal is one of:
//
//   - a non-negative integer (TOML integer or decimal string): "1048576"
//   - a humanized size: "10MB" (10*1000^2), "10MiB" (10*1024^2), "1.5 GB"
//   - the keyword "max" for the largest representable byte count
//
// Integer strings are parsed exactly, so bounds near math.MaxUint64 do not
// lose precision the way float-based parsing would.
package bytesize

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Max is the largest representable byte count.
const Max = Size(math.MaxUint64)

// MaxKeyword is the literal accepted for Max.
const MaxKeyword = "max"

// ErrNegative is returned when a literal denotes a negative byte count.
var ErrNegative = errors.New("byte size must not be negative")

// Size is a count of bytes.
type Size uint64

// Parse parses a byte-size literal.
func Parse(s string) (Size, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("invalid byte size %q: empty", s)
	}
	if strings.EqualFold(trimmed, MaxKeyword) {
		return Max, nil
	}
	if strings.HasPrefix(trimmed, "-") {
		return 0, fmt.Errorf("invalid byte size %q: %w", s, ErrNegative)
	}

	// Exact integer path
	if n, err := strconv.ParseUint(strings.ReplaceAll(trimmed, "_", ""), 10, 64); err == nil {
		return Size(n), nil
	}

	n, err := humanize.ParseBytes(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size %q: %w", s, err)
	}
	return Size(n), nil
}

// FromValue converts a decoded configuration value into a Size. It accepts
// the integer types produced by TOML/YAML decoders and strings.
func FromValue(v any) (Size, error) {
	switch val := v.(type) {
	case string:
		return Parse(val)
	case int64:
		return fromInt(val)
	case int:
		return fromInt(int64(val))
	case uint64:
		return Size(val), nil
	case float64:
		if val < 0 {
			return 0, fmt.Errorf("invalid byte size %v: %w", val, ErrNegative)
		}
		if val != math.Trunc(val) || val >= math.MaxUint64 {
			return 0, fmt.Errorf("invalid byte size %v: must be a whole number of bytes", val)
		}
		return Size(val), nil
	case nil:
		return 0, errors.New("invalid byte size: missing value")
	default:
		return 0, fmt.Errorf("invalid byte size: unsupported type %T", v)
	}
}

func fromInt(v int64) (Size, error) {
	if v < 0 {
		return 0, fmt.Errorf("invalid byte size %d: %w", v, ErrNegative)
	}
	return Size(v), nil
}

// Uint64 returns the size as a plain byte count.
func (s Size) Uint64() uint64 {
	return uint64(s)
}

// String formats the size for humans. Max is rendered as "max"; other values
// use IEC units ("10 MiB") or SI units ("10 MB") when either renders the
// value exactly, otherwise the exact byte count is kept.
func (s Size) String() string {
	if s == Max {
		return MaxKeyword
	}
	if s < 1024 {
		return fmt.Sprintf("%d B", uint64(s))
	}
	for _, format := range []func(uint64) string{humanize.IBytes, humanize.Bytes} {
		human := format(uint64(s))
		if parsed, err := humanize.ParseBytes(human); err == nil && parsed == uint64(s) {
			return human
		}
	}
	return strconv.FormatUint(uint64(s), 10) + " B"
}

// MarshalText renders the size as a literal that Parse accepts back.
func (s Size) MarshalText() ([]byte, error) {
	if s == Max {
		return []byte(MaxKeyword), nil
	}
	return []byte(strconv.FormatUint(uint64(s), 10)), nil
}

// UnmarshalText parses a byte-size literal.
func (s *Size) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
