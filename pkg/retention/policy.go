package retention

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"vanishing-hq/vanishing/pkg/bytesize"
	"vanishing-hq/vanishing/pkg/durations"
)

// DefaultRetention is the retention of the single range in the default policy.
const DefaultRetention = 24 * time.Hour

// SizeRange is a closed interval of byte counts.
type SizeRange struct {
	Lower uint64 `json:"lower" yaml:"lower"`
	Upper uint64 `json:"upper" yaml:"upper"`
}

// FullRange spans every representable byte count.
func FullRange() SizeRange {
	return SizeRange{Lower: 0, Upper: math.MaxUint64}
}

// Valid reports whether Lower <= Upper.
func (r SizeRange) Valid() bool {
	return r.Lower <= r.Upper
}

// Contains reports whether size lies within the range, bounds included.
func (r SizeRange) Contains(size uint64) bool {
	return r.Lower <= size && size <= r.Upper
}

// Width returns Upper - Lower.
func (r SizeRange) Width() uint64 {
	return r.Upper - r.Lower
}

// Overlaps reports whether the two ranges share at least one byte count.
func (r SizeRange) Overlaps(other SizeRange) bool {
	return r.Lower <= other.Upper && other.Lower <= r.Upper
}

// Compare orders ranges by lower bound, then by upper bound.
func (r SizeRange) Compare(other SizeRange) int {
	if c := cmp.Compare(r.Lower, other.Lower); c != 0 {
		return c
	}
	return cmp.Compare(r.Upper, other.Upper)
}

func (r SizeRange) String() string {
	return fmt.Sprintf("[%s, %s]", bytesize.Size(r.Lower), bytesize.Size(r.Upper))
}

// Entry pairs a size range with its retention.
type Entry struct {
	Range     SizeRange
	Retention time.Duration
}

func (e Entry) String() string {
	return fmt.Sprintf("%s -> %s", e.Range, durations.Format(e.Retention))
}

// RawEntry is an unvalidated configuration tuple. Duration is still text.
type RawEntry struct {
	Lower    uint64
	Upper    uint64
	Duration string
}

// Policy maps size ranges to retention durations. Entries are kept sorted by
// range and are never modified after construction, so a Policy may be shared
// between goroutines without locking.
type Policy struct {
	entries []Entry
	index   map[SizeRange]int
}

// Build validates raw configuration tuples in input order and returns the
// resulting policy. It stops at the first invalid tuple; nothing is returned
// alongside an error.
func Build(raw []RawEntry) (*Policy, error) {
	b := newBuilder(len(raw))
	for _, r := range raw {
		retention, err := durations.Parse(r.Duration)
		if err != nil {
			return nil, newInvalidDurationError(r.Duration, err)
		}
		if err := b.add(SizeRange{Lower: r.Lower, Upper: r.Upper}, retention); err != nil {
			return nil, err
		}
	}
	return b.finish(), nil
}

// New builds a policy from already-parsed entries with the same range checks
// as Build.
func New(entries ...Entry) (*Policy, error) {
	b := newBuilder(len(entries))
	for _, e := range entries {
		if e.Retention < 0 {
			return nil, newInvalidDurationError(e.Retention.String(), durations.ErrNegative)
		}
		if err := b.add(e.Range, e.Retention); err != nil {
			return nil, err
		}
	}
	return b.finish(), nil
}

// Default returns the policy used when no configuration exists: every file
// size is kept for 24 hours. Each call returns a fresh value.
func Default() *Policy {
	return &Policy{
		entries: []Entry{{Range: FullRange(), Retention: DefaultRetention}},
		index:   map[SizeRange]int{FullRange(): 0},
	}
}

type builder struct {
	entries []Entry
	seen    map[SizeRange]struct{}
}

func newBuilder(n int) *builder {
	return &builder{
		entries: make([]Entry, 0, n),
		seen:    make(map[SizeRange]struct{}, n),
	}
}

func (b *builder) add(r SizeRange, retention time.Duration) error {
	if !r.Valid() {
		return newInvertedRangeError(r)
	}
	if _, dup := b.seen[r]; dup {
		return newDuplicateRangeError(r)
	}
	b.seen[r] = struct{}{}
	b.entries = append(b.entries, Entry{Range: r, Retention: retention})
	return nil
}

func (b *builder) finish() *Policy {
	slices.SortFunc(b.entries, func(a, c Entry) int {
		return a.Range.Compare(c.Range)
	})
	index := make(map[SizeRange]int, len(b.entries))
	for i, e := range b.entries {
		index[e.Range] = i
	}
	return &Policy{entries: b.entries, index: index}
}

// Len returns the number of entries.
func (p *Policy) Len() int {
	return len(p.entries)
}

// Entries returns a copy of the entries in range order.
func (p *Policy) Entries() []Entry {
	return slices.Clone(p.entries)
}

// Ranges returns the ranges in order.
func (p *Policy) Ranges() []SizeRange {
	ranges := make([]SizeRange, len(p.entries))
	for i, e := range p.entries {
		ranges[i] = e.Range
	}
	return ranges
}

// Get returns the retention configured for exactly r.
func (p *Policy) Get(r SizeRange) (time.Duration, bool) {
	i, ok := p.index[r]
	if !ok {
		return 0, false
	}
	return p.entries[i].Retention, true
}

// Matches returns every entry whose range contains size, in range order.
func (p *Policy) Matches(size uint64) []Entry {
	var matches []Entry
	for _, e := range p.entries {
		if e.Range.Lower > size {
			break
		}
		if e.Range.Contains(size) {
			matches = append(matches, e)
		}
	}
	return matches
}

// Lookup returns the entry that governs files of the given size. Ranges may
// overlap; when several contain size the narrowest wins, and among equally
// narrow ranges the first in range order wins.
func (p *Policy) Lookup(size uint64) (Entry, bool) {
	var (
		best  Entry
		found bool
	)
	for _, e := range p.Matches(size) {
		if !found || e.Range.Width() < best.Range.Width() {
			best = e
			found = true
		}
	}
	return best, found
}

// Expired reports whether a file of the given size and age has outlived its
// retention. The governing entry is returned alongside; ok is false when no
// range contains size, in which case the file is never expired.
func (p *Policy) Expired(size uint64, age time.Duration) (expired bool, entry Entry, ok bool) {
	entry, ok = p.Lookup(size)
	if !ok {
		return false, Entry{}, false
	}
	return age > entry.Retention, entry, true
}

// Overlap is a pair of distinct ranges that share byte counts.
type Overlap struct {
	First  SizeRange
	Second SizeRange
}

// Overlaps returns every pair of intersecting ranges, First ordered before
// Second. An empty result means every size has at most one matching range.
func (p *Policy) Overlaps() []Overlap {
	var overlaps []Overlap
	for i := range p.entries {
		for j := i + 1; j < len(p.entries); j++ {
			// Sorted by lower bound: once j starts past i's upper bound, no
			// later entry can overlap i.
			if p.entries[j].Range.Lower > p.entries[i].Range.Upper {
				break
			}
			overlaps = append(overlaps, Overlap{First: p.entries[i].Range, Second: p.entries[j].Range})
		}
	}
	return overlaps
}

// Equal reports whether both policies hold the same entries.
func (p *Policy) Equal(other *Policy) bool {
	if p == nil || other == nil {
		return p == other
	}
	return slices.Equal(p.entries, other.entries)
}

func (p *Policy) String() string {
	var sb strings.Builder
	sb.WriteString("Policy{")
	for i, e := range p.entries {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.String())
	}
	sb.WriteString("}")
	return sb.String()
}
