package interval

// Iterator walks every value of a Set in ascending order. It reads
// the interval sequence it was created from; an in-place operation on
// the source Set during iteration is not supported.
type Iterator struct {
	intervals []Interval
	idx       int
	current   int64
	started   bool
}

// Next advances the iterator and returns whether a value is
// available.
func (r *Iterator) Next() bool {
	if r.idx >= len(r.intervals) {
		return false
	}
	if !r.started {
		r.started = true
		r.current = r.intervals[r.idx].from
		return true
	}
	if r.current < r.intervals[r.idx].to {
		r.current++
		return true
	}
	r.idx++
	if r.idx >= len(r.intervals) {
		return false
	}
	r.current = r.intervals[r.idx].from
	return true
}

// Value returns the value at the current position. Only valid after a
// call to Next that returned true.
func (r *Iterator) Value() int64 {
	return r.current
}
