// Package interval represents sets of integers as sorted, disjoint,
// maximal closed intervals. Contiguous runs are compressed into a
// single interval, so memory usage is O(m) in the number of runs
// rather than O(n) in the number of values.
package interval

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidInput is the only error kind surfaced by this package.
// Constructors wrap it with context; everything else is total.
var ErrInvalidInput = errors.New("invalid input")

// Interval is a closed range of integers [from, to]. The zero value
// is the single value 0.
type Interval struct {
	from int64
	to   int64
}

func MakeInterval(from, to int64) Interval {
	return Interval{from: from, to: to}
}

// EndExclusive builds an interval from a pair whose end bound is
// exclusive. A pair with from == to still denotes the single value
// from, not an empty interval.
func EndExclusive(from, to int64) Interval {
	if to > from {
		to--
	}
	return Interval{from: from, to: to}
}

// From returns the lower bound of r.
func (r Interval) From() int64 { return r.from }

// To returns the upper bound of r.
func (r Interval) To() int64 { return r.to }

func (r Interval) IsValid() bool {
	return r.from <= r.to
}

// Contains returns whether v falls within r.
func (r Interval) Contains(v int64) bool {
	return r.from <= v && v <= r.to
}

// Overlaps returns whether r and other have a non-empty intersection.
func (r Interval) Overlaps(other Interval) bool {
	return r.from <= other.to && other.from <= r.to
}

func (r Interval) Less(other Interval) bool {
	if r.from != other.from {
		return r.from < other.from
	}
	return other.to < r.to
}

// EntirelyBefore returns whether r lies entirely before other on the
// number line, without touching it.
func (r Interval) EntirelyBefore(other Interval) bool {
	return r.to < other.from
}

// CoveredBy returns whether r is entirely contained within other.
func (r Interval) CoveredBy(other Interval) bool {
	return other.from <= r.from && r.to <= other.to
}

// InMiddleOf returns whether r is inside other, but not touching the
// edges of other.
func (r Interval) InMiddleOf(other Interval) bool {
	return other.from < r.from && r.to < other.to
}

// OverlapsStartOf returns whether r entirely overlaps the start of
// other, but not all of other.
func (r Interval) OverlapsStartOf(other Interval) bool {
	return r.from <= other.from && r.to < other.to
}

// OverlapsEndOf returns whether r entirely overlaps the end of
// other, but not all of other.
func (r Interval) OverlapsEndOf(other Interval) bool {
	return other.from < r.from && other.to <= r.to
}

func (r Interval) String() string {
	if r.from == r.to {
		return strconv.FormatInt(r.from, 10)
	}
	return fmt.Sprintf("%d-%d", r.from, r.to)
}

// ParseInterval parses the String form of an interval: either a single
// value "v" or a range "from-to". Negative bounds keep their sign, so
// "-5--3" is the interval [-5, -3].
func ParseInterval(s string) (Interval, error) {
	var r Interval
	if s == "" {
		return r, fmt.Errorf("%w: empty interval", ErrInvalidInput)
	}
	// Skip a leading sign so the hyphen search only sees separators.
	h := strings.IndexByte(s[1:], '-')
	if h == -1 {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return r, fmt.Errorf("%w: invalid value %q", ErrInvalidInput, s)
		}
		return Interval{from: v, to: v}, nil
	}
	h++
	from, to := s[:h], s[h+1:]
	fromInt, err := strconv.ParseInt(from, 10, 64)
	if err != nil {
		return r, fmt.Errorf("%w: invalid from value %q in interval %q", ErrInvalidInput, from, s)
	}
	toInt, err := strconv.ParseInt(to, 10, 64)
	if err != nil {
		return r, fmt.Errorf("%w: invalid to value %q in interval %q", ErrInvalidInput, to, s)
	}
	r = Interval{from: fromInt, to: toInt}
	if !r.IsValid() {
		return Interval{}, fmt.Errorf("%w: from %d is bigger than to %d in interval %q", ErrInvalidInput, fromInt, toInt, s)
	}
	return r, nil
}
