package retention

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes a policy loading or validation failure.
type ErrorKind string

const (
	KindIO              ErrorKind = "io"               // Config file exists but could not be read
	KindParse           ErrorKind = "parse"            // Config text is not well-formed
	KindInvertedRange   ErrorKind = "inverted_range"   // Lower bound greater than upper bound
	KindDuplicateRange  ErrorKind = "duplicate_range"  // Same (lower, upper) pair declared twice
	KindInvalidDuration ErrorKind = "invalid_duration" // Retention duration could not be parsed
)

// Sentinels for errors.Is. An *Error matches the sentinel of its kind.
var (
	ErrIO              = &Error{Kind: KindIO}
	ErrParse           = &Error{Kind: KindParse}
	ErrInvertedRange   = &Error{Kind: KindInvertedRange}
	ErrDuplicateRange  = &Error{Kind: KindDuplicateRange}
	ErrInvalidDuration = &Error{Kind: KindInvalidDuration}
)

// Error is returned by Build and by the policy loader. Every failure carries
// exactly one kind so callers can tell a broken configuration apart from an
// unreadable one.
type Error struct {
	Kind    ErrorKind
	Message string

	// Range is set for InvertedRange and DuplicateRange.
	Range *SizeRange

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindIO:
		return fmt.Sprintf("I/O error reading config file - %s", e.detail())
	case KindParse:
		return fmt.Sprintf("failed parsing config file - %s", e.detail())
	case KindInvertedRange:
		if e.Range != nil {
			return fmt.Sprintf("lower bound greater than upper bound. Lower: %d Upper: %d", e.Range.Lower, e.Range.Upper)
		}
	case KindDuplicateRange:
		if e.Range != nil {
			return fmt.Sprintf("duplicate entry for range %s", e.Range)
		}
	case KindInvalidDuration:
		return fmt.Sprintf("invalid retention duration - %s", e.detail())
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.detail())
}

func (e *Error) detail() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return string(e.Kind)
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or "" if
// there is none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// NewIOError wraps a read failure of the config file at path.
func NewIOError(path string, err error) *Error {
	return &Error{Kind: KindIO, Message: path, Err: err}
}

// NewParseError reports malformed configuration text.
func NewParseError(message string, err error) *Error {
	return &Error{Kind: KindParse, Message: message, Err: err}
}

func newInvertedRangeError(r SizeRange) *Error {
	return &Error{Kind: KindInvertedRange, Range: &r}
}

func newDuplicateRangeError(r SizeRange) *Error {
	return &Error{Kind: KindDuplicateRange, Range: &r}
}

func newInvalidDurationError(text string, err error) *Error {
	return &Error{Kind: KindInvalidDuration, Message: fmt.Sprintf("%q", text), Err: err}
}
