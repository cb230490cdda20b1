// Package durations parses the human-readable retention durations used in a
// retention configuration ("24h", "30m", "7days", "1h 30m", "2weeks").
//
// Any string accepted by time.ParseDuration is accepted as long as it is not
// negative. In addition, terms may be separated by whitespace and the
// calendar units d, w, M and y are understood:
//
//	ns, us, µs, ms                       sub-second units
//	s, sec, secs, second, seconds        seconds
//	m, min, mins, minute, minutes        minutes
//	h, hr, hrs, hour, hours              hours
//	d, day, days                         24 hours
//	w, week, weeks                       7 days
//	M, month, months                     30.44 days
//	y, year, years                       365.25 days
package durations

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	Day   = 24 * time.Hour
	Week  = 7 * Day
	Month = time.Duration(30.44 * float64(Day))
	Year  = time.Duration(365.25 * float64(Day))
)

var (
	// ErrEmpty is returned for blank input.
	ErrEmpty = errors.New("empty duration")

	// ErrNegative is returned for negative durations.
	ErrNegative = errors.New("duration must not be negative")

	// ErrOverflow is returned when the duration does not fit time.Duration.
	ErrOverflow = errors.New("duration is too large")
)

var units = map[string]time.Duration{
	"ns":      time.Nanosecond,
	"nsec":    time.Nanosecond,
	"us":      time.Microsecond,
	"µs":      time.Microsecond,
	"usec":    time.Microsecond,
	"ms":      time.Millisecond,
	"msec":    time.Millisecond,
	"s":       time.Second,
	"sec":     time.Second,
	"secs":    time.Second,
	"second":  time.Second,
	"seconds": time.Second,
	"m":       time.Minute,
	"min":     time.Minute,
	"mins":    time.Minute,
	"minute":  time.Minute,
	"minutes": time.Minute,
	"h":       time.Hour,
	"hr":      time.Hour,
	"hrs":     time.Hour,
	"hour":    time.Hour,
	"hours":   time.Hour,
	"d":       Day,
	"day":     Day,
	"days":    Day,
	"w":       Week,
	"week":    Week,
	"weeks":   Week,
	"M":       Month,
	"month":   Month,
	"months":  Month,
	"y":       Year,
	"year":    Year,
	"years":   Year,
}

// Parse parses a retention duration.
func Parse(s string) (time.Duration, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("invalid duration %q: %w", s, ErrEmpty)
	}
	if strings.HasPrefix(trimmed, "-") {
		return 0, fmt.Errorf("invalid duration %q: %w", s, ErrNegative)
	}

	if d, err := time.ParseDuration(trimmed); err == nil {
		return d, nil
	}

	total, err := parseTerms(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return total, nil
}

// parseTerms parses a sequence of <number><unit> terms.
func parseTerms(s string) (time.Duration, error) {
	var total float64
	rest := s
	terms := 0

	for {
		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
		if rest == "" {
			break
		}

		numEnd := strings.IndexFunc(rest, func(r rune) bool {
			return !unicode.IsDigit(r) && r != '.'
		})
		if numEnd == 0 {
			return 0, fmt.Errorf("expected a number at %q", rest)
		}
		if numEnd < 0 {
			return 0, fmt.Errorf("missing unit after %q", rest)
		}
		value, err := strconv.ParseFloat(rest[:numEnd], 64)
		if err != nil {
			return 0, fmt.Errorf("bad number %q", rest[:numEnd])
		}
		rest = strings.TrimLeftFunc(rest[numEnd:], unicode.IsSpace)

		unitEnd := strings.IndexFunc(rest, func(r rune) bool {
			return !unicode.IsLetter(r)
		})
		if unitEnd < 0 {
			unitEnd = len(rest)
		}
		if unitEnd == 0 {
			return 0, fmt.Errorf("missing unit after %q", strconv.FormatFloat(value, 'f', -1, 64))
		}
		name := rest[:unitEnd]
		unit, ok := lookupUnit(name)
		if !ok {
			return 0, fmt.Errorf("unknown unit %q", name)
		}
		rest = rest[unitEnd:]

		total += value * float64(unit)
		if total >= math.MaxInt64 {
			return 0, ErrOverflow
		}
		terms++
	}

	if terms == 0 {
		return 0, ErrEmpty
	}
	return time.Duration(total), nil
}

// lookupUnit resolves a unit name. "M" (month) and "m" (minute) are told
// apart by case; every other unit is case-insensitive.
func lookupUnit(name string) (time.Duration, bool) {
	if name == "M" {
		return Month, true
	}
	unit, ok := units[strings.ToLower(name)]
	return unit, ok
}

// Format renders d using day, hour, minute and second terms, largest first.
// The result is accepted by Parse.
func Format(d time.Duration) string {
	if d == 0 {
		return "0s"
	}
	if d < 0 {
		return d.String()
	}
	if d < time.Second {
		return d.String()
	}

	var parts []string
	remaining := d
	for _, step := range []struct {
		unit   time.Duration
		suffix string
	}{
		{Day, "d"},
		{time.Hour, "h"},
		{time.Minute, "m"},
		{time.Second, "s"},
	} {
		if n := remaining / step.unit; n > 0 {
			parts = append(parts, fmt.Sprintf("%d%s", n, step.suffix))
			remaining -= n * step.unit
		}
	}
	if remaining > 0 {
		parts = append(parts, remaining.String())
	}
	return strings.Join(parts, " ")
}
