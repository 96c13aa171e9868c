package interval

// Union returns a new set holding every value of r and other. Neither
// operand is mutated. O(n1+n2) in the operands' interval counts.
//
// The sweep keeps one accumulator interval and two cursors. The lead
// sequence is the one probed for an extension of the accumulator; the
// roles swap whenever the accumulator's end bound moves, so each
// interval is examined a constant number of times.
func (r *Set) Union(other *Set) *Set {
	if r.IsEmpty() {
		return other.Copy()
	}
	if other.IsEmpty() {
		return r.Copy()
	}

	out := make([]Interval, 0, len(r.intervals)+len(other.intervals))

	// Seed with the globally leftmost interval.
	var cur Interval
	var lead, follow []Interval
	if r.intervals[0].from < other.intervals[0].from {
		cur = r.intervals[0]
		lead = other.intervals
		follow = r.intervals
	} else {
		cur = other.intervals[0]
		lead = r.intervals
		follow = other.intervals
	}
	i, j := 0, 1

	for i < len(lead) || j < len(follow) {
		if i < len(lead) && lead[i].from <= cur.to {
			// lead overlaps the accumulator.
			if lead[i].to > cur.to {
				cur.to = lead[i].to
				i++
				lead, follow = follow, lead
				i, j = j, i
			} else {
				i++
			}
			continue
		}
		// No overlap; close the accumulator and seed a new one from
		// whichever sequence offers the smaller next interval.
		out = append(out, cur)
		switch {
		case i < len(lead) && j < len(follow):
			if lead[i].from <= follow[j].from {
				cur = lead[i]
				i++
				lead, follow = follow, lead
				i, j = j, i
			} else {
				cur = follow[j]
				j++
			}
		case i < len(lead):
			cur = lead[i]
			i++
		default:
			cur = follow[j]
			j++
		}
	}
	out = append(out, cur)

	// Emitted intervals never overlap but may touch; re-merge.
	return &Set{intervals: coalesceSorted(out)}
}

// UnionInPlace replaces r's interval sequence with the union of r and
// other.
func (r *Set) UnionInPlace(other *Set) {
	if other.IsEmpty() {
		return
	}
	if r.IsEmpty() {
		r.intervals = append([]Interval{}, other.intervals...)
		return
	}
	r.intervals = r.Union(other).intervals
}

// Intersect returns a new set holding the values present in both r
// and other. Neither operand is mutated. O(n1+n2).
func (r *Set) Intersect(other *Set) *Set {
	var out []Interval
	j := 0
	for _, iv := range r.intervals {
		for j < len(other.intervals) {
			o := other.intervals[j]
			if iv.Overlaps(o) {
				out = append(out, Interval{from: max64(iv.from, o.from), to: min64(iv.to, o.to)})
				if o.to <= iv.to {
					j++
				} else {
					break
				}
			} else {
				if o.to < iv.from {
					j++
				} else {
					break
				}
			}
		}
	}
	return &Set{intervals: coalesceSorted(out)}
}

// IntersectInPlace replaces r's interval sequence with the
// intersection of r and other.
func (r *Set) IntersectInPlace(other *Set) {
	r.intervals = r.Intersect(other).intervals
}

// Difference returns a new set holding the values of r that are not
// in other. Neither operand is mutated. O(n1+n2).
func (r *Set) Difference(other *Set) *Set {
	if other.IsEmpty() {
		return r.Copy()
	}
	var out []Interval
	j := 0
	for _, iv := range r.intervals {
		// live is whether iv (or its trimmed remainder) is still
		// pending emission.
		live := true
		for live && j < len(other.intervals) {
			o := other.intervals[j]
			switch {
			case o.EntirelyBefore(iv):
				// o is entirely before iv, skip it.
				//
				//    o          iv
				// f------t   f-------t
				j++
			case iv.EntirelyBefore(o):
				// iv is entirely before o, it survives whole.
				//
				//    iv         o
				// f------t   f-------t
				out = append(out, iv)
				live = false
			case iv.CoveredBy(o):
				// o entirely covers iv, nothing survives.
				//
				//        o
				// f-------------t
				//    f------t
				//       iv
				live = false
			case o.InMiddleOf(iv):
				// iv entirely covers o, both remainders survive. The
				// right one may still be trimmed by a later o.
				//
				//       iv
				// f-------------t
				//    f------t
				//        o
				out = append(out, Interval{from: iv.from, to: o.from - 1})
				iv = Interval{from: o.to + 1, to: iv.to}
				j++
			case o.OverlapsStartOf(iv):
				// o overlaps the start of iv, keep the right
				// remainder.
				//
				//    o
				// f------t
				//     f------t
				//        iv
				iv = Interval{from: o.to + 1, to: iv.to}
				j++
			case o.OverlapsEndOf(iv):
				// o overlaps the end of iv, keep the left remainder.
				//
				//            o
				//         f------t
				//     f------t
				//        iv
				out = append(out, Interval{from: iv.from, to: o.from - 1})
				live = false
			default:
				// The above accounts for all overlap combinations,
				// but insert a panic to be sure.
				panic("unexpected overlap scenario during difference")
			}
		}
		if live && j >= len(other.intervals) {
			out = append(out, iv)
		}
	}
	return &Set{intervals: coalesceSorted(out)}
}

// DifferenceInPlace replaces r's interval sequence with the difference
// of r and other.
func (r *Set) DifferenceInPlace(other *Set) {
	r.intervals = r.Difference(other).intervals
}

// SymmetricDifference returns a new set holding the values in exactly
// one of r and other, composed as (r ∪ other) − (r ∩ other). Still
// O(n1+n2) overall. Neither operand is mutated.
func (r *Set) SymmetricDifference(other *Set) *Set {
	return r.Union(other).Difference(r.Intersect(other))
}

// SymmetricDifferenceInPlace replaces r's interval sequence with the
// symmetric difference of r and other.
func (r *Set) SymmetricDifferenceInPlace(other *Set) {
	r.intervals = r.SymmetricDifference(other).intervals
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
