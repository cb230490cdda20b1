// Package retention models a size-based file retention policy.
//
// # Policy
//
// A Policy maps closed byte-size ranges to retention durations. A file whose
// size falls in a range becomes eligible for deletion once its age exceeds
// the range's retention:
//
//	policy, err := retention.Build([]retention.RawEntry{
//	    {Lower: 0, Upper: 10_000_000, Duration: "30days"},
//	    {Lower: 10_000_001, Upper: math.MaxUint64, Duration: "24h"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	expired, entry, ok := policy.Expired(fileSize, fileAge)
//
// # Validation
//
// Build processes tuples in input order and stops at the first failure:
//
//   - the duration text must parse (see package durations)
//   - the lower bound must not exceed the upper bound
//   - the exact (lower, upper) pair must not repeat
//
// Ranges are NOT checked for overlap. Overlapping ranges are accepted and
// reported by Policy.Overlaps. When several ranges contain a size, Lookup
// picks the narrowest one, breaking ties by range order.
//
// # Default Policy
//
// Default returns a single range covering every byte count with a retention
// of 24 hours. It is the policy in effect when no configuration file exists.
//
// # Errors
//
// Every failure is an *Error with one of five kinds. Use errors.Is with the
// ErrIO, ErrParse, ErrInvertedRange, ErrDuplicateRange and ErrInvalidDuration
// sentinels, or KindOf, to classify them.
package retention
