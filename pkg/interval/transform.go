package interval

// Feather returns a new set in which every interval [from, to] is
// widened to [from-amount, to+amount]. A negative amount shrinks
// instead; intervals whose bounds cross are dropped. Expanded runs
// that now overlap or touch are re-merged, so the result is
// canonical.
func (r *Set) Feather(amount int64) *Set {
	out := make([]Interval, 0, len(r.intervals))
	for _, iv := range r.intervals {
		f := Interval{from: iv.from - amount, to: iv.to + amount}
		if !f.IsValid() {
			continue
		}
		out = append(out, f)
	}
	// Widening preserves the From order, so the merge pass suffices.
	return &Set{intervals: coalesceSorted(out)}
}

// FeatherInPlace replaces r's interval sequence with the feathered
// sequence.
func (r *Set) FeatherInPlace(amount int64) {
	r.intervals = r.Feather(amount).intervals
}
