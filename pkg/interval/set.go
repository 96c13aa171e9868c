package interval

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
)

// Set is a set of integers held as intervals. The intervals are kept
// canonical: sorted ascending by From, pairwise disjoint, and never
// adjacent (contiguous runs are fused into one interval). The
// implementation of every method relies on this property.
//
// A Set is safe for concurrent reads. In-place operations replace the
// interval sequence without locking; callers mutating a shared Set
// must synchronize externally.
type Set struct {
	intervals []Interval
}

// New returns the empty set.
func New() *Set {
	return &Set{}
}

// Single returns the set holding the single value v.
func Single(v int64) *Set {
	return &Set{intervals: []Interval{{from: v, to: v}}}
}

// FromValues builds a set from an unordered collection of values.
// Duplicates are allowed and silently dropped. O(n logn); use
// FromSortedValues for the O(n) path when the input is already
// sorted ascending.
func FromValues(vals []int64) *Set {
	vs := append([]int64{}, vals...)
	sort.Slice(vs, func(i, j int) bool { return vs[i] < vs[j] })
	return foldValues(vs)
}

// FromSortedValues builds a set from values the caller asserts are
// already sorted ascending. Duplicates are allowed. The assertion is
// not verified; unsorted input produces a corrupt set.
func FromSortedValues(vals []int64) *Set {
	return foldValues(vals)
}

// foldValues folds sorted values into maximal intervals in one pass,
// extending the running interval while each value continues the run.
func foldValues(vals []int64) *Set {
	s := &Set{}
	if len(vals) == 0 {
		return s
	}
	cur := Interval{from: vals[0], to: vals[0]}
	for _, v := range vals[1:] {
		switch {
		case v == cur.to:
			// Duplicate.
		case v == cur.to+1:
			cur.to = v
		default:
			s.intervals = append(s.intervals, cur)
			cur = Interval{from: v, to: v}
		}
	}
	s.intervals = append(s.intervals, cur)
	return s
}

// FromIntervals builds a set from pairwise disjoint intervals.
// Disjointness is assumed, not verified, but the intervals may be
// adjacent or unsorted; adjacent runs are fused. Use the EndExclusive
// helper for pairs whose end bound is exclusive. An interval with
// From > To fails with ErrInvalidInput.
func FromIntervals(ivs []Interval) (*Set, error) {
	for _, iv := range ivs {
		if !iv.IsValid() {
			return nil, fmt.Errorf("%w: interval from %d is bigger than to %d", ErrInvalidInput, iv.from, iv.to)
		}
	}
	in := append([]Interval{}, ivs...)
	sort.Slice(in, func(i, j int) bool { return in[i].Less(in[j]) })
	return &Set{intervals: coalesceSorted(in)}, nil
}

// FromSortedIntervals is FromIntervals for input the caller asserts is
// already sorted ascending by From. The assertion is not verified.
func FromSortedIntervals(ivs []Interval) (*Set, error) {
	for _, iv := range ivs {
		if !iv.IsValid() {
			return nil, fmt.Errorf("%w: interval from %d is bigger than to %d", ErrInvalidInput, iv.from, iv.to)
		}
	}
	return &Set{intervals: coalesceSorted(ivs)}, nil
}

// Wrap returns a set adopting s's interval sequence without copying
// it. The two sets share backing memory. Interval sequences are never
// written in place — in-place operations rebind the receiver's whole
// sequence — so reads through either set stay consistent, but an
// in-place operation on one is not reflected in the other. Callers
// needing an independent set must use Copy.
func Wrap(s *Set) *Set {
	return &Set{intervals: s.intervals}
}

// Copy returns an independent set backed by a duplicate of the
// interval sequence.
func (r *Set) Copy() *Set {
	return &Set{intervals: append([]Interval{}, r.intervals...)}
}

// coalesceSorted fuses a From-sorted interval list into the minimal
// canonical sequence, merging runs that overlap or touch.
func coalesceSorted(ivs []Interval) []Interval {
	if len(ivs) == 0 {
		return nil
	}
	out := make([]Interval, 1, len(ivs))
	out[0] = ivs[0]
	for _, iv := range ivs[1:] {
		prev := &out[len(out)-1]
		switch {
		case iv.from == prev.to+1:
			// prev and iv touch, fuse them.
			//
			//   prev    iv
			// f------tf-----t
			prev.to = iv.to
		case prev.to < iv.from:
			// Gap between prev and iv, start a new run.
			//
			//   prev       iv
			// f------t  f-----t
			out = append(out, iv)
		case prev.to < iv.to:
			// Partial overlap, extend prev.
			//
			//   prev
			// f------t
			//     f-----t
			//       iv
			prev.to = iv.to
		default:
			// iv entirely contained in prev, nothing to do.
		}
	}
	return out
}

// IsEmpty returns whether the set holds no values.
func (r *Set) IsEmpty() bool {
	return len(r.intervals) == 0
}

// NumIntervals returns the number of disjoint intervals in the set.
func (r *Set) NumIntervals() int {
	return len(r.intervals)
}

// Size returns the number of values represented by the set.
func (r *Set) Size() int64 {
	var n int64
	for _, iv := range r.intervals {
		n += iv.to - iv.from + 1
	}
	return n
}

// Contains returns whether v is in the set, in O(log m) time where m
// is the number of intervals.
func (r *Set) Contains(v int64) bool {
	lo, hi := 0, len(r.intervals)
	for lo < hi {
		mid := (lo + hi) / 2
		iv := r.intervals[mid]
		switch {
		case v < iv.from:
			hi = mid
		case v > iv.to:
			lo = mid + 1
		default:
			return true
		}
	}
	return false
}

// Smallest returns the smallest value in the set. ok is false when the
// set is empty.
func (r *Set) Smallest() (v int64, ok bool) {
	if len(r.intervals) == 0 {
		return 0, false
	}
	return r.intervals[0].from, true
}

// Largest returns the largest value in the set. ok is false when the
// set is empty.
func (r *Set) Largest() (v int64, ok bool) {
	if len(r.intervals) == 0 {
		return 0, false
	}
	return r.intervals[len(r.intervals)-1].to, true
}

// Equal returns whether r and other hold exactly the same values. Both
// sides being canonical, this is an element-wise interval comparison.
func (r *Set) Equal(other *Set) bool {
	if len(r.intervals) != len(other.intervals) {
		return false
	}
	for i, iv := range r.intervals {
		if iv != other.intervals[i] {
			return false
		}
	}
	return true
}

// Hash returns a hash that is stable under Equal: equal sets hash
// equal. The empty set hashes to a fixed sentinel.
func (r *Set) Hash() uint64 {
	// The fnv-1a offset basis doubles as the empty-set sentinel.
	sum := fnv.New64a().Sum64()
	var buf [16]byte
	for _, iv := range r.intervals {
		h := fnv.New64a()
		binary.BigEndian.PutUint64(buf[:8], uint64(iv.from))
		binary.BigEndian.PutUint64(buf[8:], uint64(iv.to))
		h.Write(buf[:])
		sum ^= h.Sum64()
	}
	return sum
}

// IsSubsetOf returns whether every value of r is in other.
func (r *Set) IsSubsetOf(other *Set) bool {
	return r.Union(other).Equal(other)
}

// IsStrictSubsetOf returns whether r is a subset of other and not
// equal to it.
func (r *Set) IsStrictSubsetOf(other *Set) bool {
	return r.IsSubsetOf(other) && !r.Equal(other)
}

// IsSupersetOf returns whether every value of other is in r.
func (r *Set) IsSupersetOf(other *Set) bool {
	return r.Union(other).Equal(r)
}

// IsStrictSupersetOf returns whether r is a superset of other and not
// equal to it.
func (r *Set) IsStrictSupersetOf(other *Set) bool {
	return r.IsSupersetOf(other) && !r.Equal(other)
}

// IsDisjointFrom returns whether r and other share no values.
func (r *Set) IsDisjointFrom(other *Set) bool {
	return r.Intersect(other).IsEmpty()
}

// Intervals returns a copy of the canonical interval sequence.
func (r *Set) Intervals() []Interval {
	return append([]Interval{}, r.intervals...)
}

// Values returns an iterator over every value in the set in ascending
// order. Request a new iterator to restart.
func (r *Set) Values() *Iterator {
	return &Iterator{intervals: r.intervals}
}

// AppendValues appends every value in the set to dst in ascending
// order and returns the extended slice.
func (r *Set) AppendValues(dst []int64) []int64 {
	for _, iv := range r.intervals {
		for v := iv.from; ; v++ {
			dst = append(dst, v)
			if v == iv.to {
				break
			}
		}
	}
	return dst
}

// String renders the set as comma-separated tokens, "v" for a single
// value and "from-to" for a run: "1-3,5-6,9".
func (r *Set) String() string {
	var sb strings.Builder
	for i, iv := range r.intervals {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(iv.String())
	}
	return sb.String()
}

// Parse is the inverse of String. The empty string parses to the
// empty set.
func Parse(s string) (*Set, error) {
	if s == "" {
		return New(), nil
	}
	tokens := strings.Split(s, ",")
	ivs := make([]Interval, 0, len(tokens))
	for _, token := range tokens {
		iv, err := ParseInterval(token)
		if err != nil {
			return nil, err
		}
		ivs = append(ivs, iv)
	}
	return FromIntervals(ivs)
}
