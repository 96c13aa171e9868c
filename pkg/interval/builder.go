package interval

import (
	"errors"
	"fmt"
	"sort"
)

// SetBuilder stages additions and removals and produces a canonical
// Set. The zero value is ready to use. Malformed input is collected
// and reported by Set; every reported error wraps ErrInvalidInput.
type SetBuilder struct {
	in   []Interval
	out  []Interval
	errs error
}

// AddValue adds the single value v to the builder.
func (s *SetBuilder) AddValue(v int64) {
	s.AddInterval(Interval{from: v, to: v})
}

// RemoveValue removes the single value v from the builder.
func (s *SetBuilder) RemoveValue(v int64) {
	s.RemoveInterval(Interval{from: v, to: v})
}

// AddInterval adds every value in iv to the builder.
func (s *SetBuilder) AddInterval(iv Interval) {
	if !iv.IsValid() {
		s.errs = errors.Join(s.errs, fmt.Errorf("%w: addInterval(%d-%d)", ErrInvalidInput, iv.from, iv.to))
		return
	}
	// Additions after a pending removal must not be removed by it;
	// settle the removals first.
	if len(s.out) > 0 {
		s.normalize()
	}
	s.in = append(s.in, iv)
}

// RemoveInterval removes every value in iv from the builder.
func (s *SetBuilder) RemoveInterval(iv Interval) {
	if !iv.IsValid() {
		s.errs = errors.Join(s.errs, fmt.Errorf("%w: removeInterval(%d-%d)", ErrInvalidInput, iv.from, iv.to))
		return
	}
	s.out = append(s.out, iv)
}

// AddSet adds every value in b to the builder.
func (s *SetBuilder) AddSet(b *Set) {
	if b == nil {
		return
	}
	for _, iv := range b.intervals {
		s.AddInterval(iv)
	}
}

// RemoveSet removes every value in b from the builder.
func (s *SetBuilder) RemoveSet(b *Set) {
	if b == nil {
		return
	}
	for _, iv := range b.intervals {
		s.RemoveInterval(iv)
	}
}

// normalize settles the staged state: s.in becomes the minimal sorted
// interval list describing the builder, and s.out becomes empty.
func (s *SetBuilder) normalize() {
	in := sortAndCoalesce(s.in)
	out := sortAndCoalesce(s.out)

	// in and out are sorted ascending and have no overlaps within
	// each other, so the removal is a single merged pass.
	min := make([]Interval, 0, len(in))
	for len(in) > 0 && len(out) > 0 {
		rin, rout := in[0], out[0]

		switch {
		case rout.EntirelyBefore(rin):
			// "out" is entirely before "in".
			//
			//    out         in
			// f-------t   f-------t
			out = out[1:]
		case rin.EntirelyBefore(rout):
			// "in" is entirely before "out".
			//
			//    in         out
			// f------t   f-------t
			min = append(min, rin)
			in = in[1:]
		case rin.CoveredBy(rout):
			// "out" entirely covers "in".
			//
			//       out
			// f-------------t
			//    f------t
			//       in
			in = in[1:]
		case rout.InMiddleOf(rin):
			// "in" entirely covers "out".
			//
			//       in
			// f-------------t
			//    f------t
			//       out
			min = append(min, Interval{from: rin.from, to: rout.from - 1})
			// Adjust in[0], not rin, so the mutated remainder is
			// considered on the next iteration.
			in[0] = Interval{from: rout.to + 1, to: rin.to}
			out = out[1:]
		case rout.OverlapsStartOf(rin):
			// "out" overlaps start of "in".
			//
			//   out
			// f------t
			//    f------t
			//       in
			in[0] = Interval{from: rout.to + 1, to: rin.to}
			// Can't move in[0] onto min yet, another later out might
			// trim it further. Just discard out and continue.
			out = out[1:]
		case rout.OverlapsEndOf(rin):
			// "out" overlaps end of "in".
			//
			//           out
			//        f------t
			//    f------t
			//       in
			min = append(min, Interval{from: rin.from, to: rout.from - 1})
			in = in[1:]
		default:
			// The above should account for all combinations of in and
			// out overlapping, but insert a panic to be sure.
			panic("unexpected overlap scenario during builder merge")
		}
	}
	// Ran out of removals before the end of in.
	min = append(min, in...)

	s.in = min
	s.out = nil
}

// sortAndCoalesce returns the minimal sorted interval list covering
// ivs. Always returns a fresh slice to avoid aliasing the caller's
// memory.
func sortAndCoalesce(ivs []Interval) []Interval {
	in := append([]Interval{}, ivs...)
	sort.Slice(in, func(i, j int) bool { return in[i].Less(in[j]) })
	return coalesceSorted(in)
}

// Set settles the staged state and returns the built set, together
// with any input errors collected since the previous call. The
// builder remains usable afterwards.
func (s *SetBuilder) Set() (*Set, error) {
	s.normalize()
	set := &Set{intervals: append([]Interval{}, s.in...)}
	if s.errs == nil {
		return set, nil
	}
	errs := s.errs
	s.errs = nil
	return set, errs
}
