// Package rangetable provides a claim table for an inclusive span of
// integer IDs. Claimed entries carry a label set; occupancy is
// tracked as an interval set, so free-space queries are interval
// algebra instead of per-ID scans.
package rangetable

import (
	"fmt"
	"sync"

	"github.com/ndryden/IntIntervals/pkg/interval"
	"k8s.io/apimachinery/pkg/labels"
)

type Table interface {
	Get(id int64) (labels.Set, error)
	Claim(id int64, lbls labels.Set) error
	ClaimFree(lbls labels.Set) (int64, error)
	ClaimRange(start, size int64, lbls labels.Set) error
	Release(id int64) error
	Update(id int64, lbls labels.Set) error

	Count() int
	Has(id int64) bool

	IsFree(id int64) bool
	FindFree() (int64, error)

	Claimed() *interval.Set
	Free() *interval.Set

	GetAll() map[int64]labels.Set
	GetByLabel(selector labels.Selector) map[int64]labels.Set
}

// New creates a table over the inclusive span [from, to].
func New(from, to int64) (Table, error) {
	span, err := interval.FromIntervals([]interval.Interval{interval.MakeInterval(from, to)})
	if err != nil {
		return nil, fmt.Errorf("invalid span from %d to %d: %w", from, to, err)
	}
	return &table{
		m:       new(sync.RWMutex),
		span:    span,
		claimed: interval.New(),
		data:    map[int64]labels.Set{},
	}, nil
}

type table struct {
	m       *sync.RWMutex
	span    *interval.Set
	claimed *interval.Set
	data    map[int64]labels.Set
}

func (r *table) validate(id int64) error {
	if !r.span.Contains(id) {
		return fmt.Errorf("id %d does not fit in the span %s", id, r.span)
	}
	return nil
}

func (r *table) Get(id int64) (labels.Set, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	if err := r.validate(id); err != nil {
		return nil, err
	}
	d, ok := r.data[id]
	if !ok {
		return nil, fmt.Errorf("no match found for: %d", id)
	}
	return d, nil
}

func (r *table) Claim(id int64, lbls labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	return r.claim(id, lbls)
}

func (r *table) claim(id int64, lbls labels.Set) error {
	if err := r.validate(id); err != nil {
		return err
	}
	if r.claimed.Contains(id) {
		return fmt.Errorf("claim failed id %d already claimed", id)
	}
	r.claimed.UnionInPlace(interval.Single(id))
	r.data[id] = lbls
	return nil
}

func (r *table) ClaimFree(lbls labels.Set) (int64, error) {
	r.m.Lock()
	defer r.m.Unlock()

	id, err := r.findFree()
	if err != nil {
		return 0, err
	}
	if err := r.claim(id, lbls); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *table) ClaimRange(start, size int64, lbls labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	if size < 1 {
		return fmt.Errorf("invalid size %d, must be at least 1", size)
	}
	rng, err := interval.FromIntervals([]interval.Interval{interval.MakeInterval(start, start+size-1)})
	if err != nil {
		return err
	}
	if !rng.IsSubsetOf(r.span) {
		return fmt.Errorf("range start %d size %d does not fit in the span %s", start, size, r.span)
	}
	if !rng.IsDisjointFrom(r.claimed) {
		return fmt.Errorf("entries in use in range start %d size %d", start, size)
	}
	r.claimed.UnionInPlace(rng)
	iter := rng.Values()
	for iter.Next() {
		r.data[iter.Value()] = lbls
	}
	return nil
}

func (r *table) Release(id int64) error {
	r.m.Lock()
	defer r.m.Unlock()

	if err := r.validate(id); err != nil {
		return err
	}
	r.claimed.DifferenceInPlace(interval.Single(id))
	delete(r.data, id)
	return nil
}

func (r *table) Update(id int64, lbls labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()

	if err := r.validate(id); err != nil {
		return err
	}
	if !r.claimed.Contains(id) {
		return fmt.Errorf("entry %d not found", id)
	}
	r.data[id] = lbls
	return nil
}

func (r *table) Count() int {
	r.m.RLock()
	defer r.m.RUnlock()

	return len(r.data)
}

func (r *table) Has(id int64) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.claimed.Contains(id)
}

func (r *table) IsFree(id int64) bool {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.span.Contains(id) && !r.claimed.Contains(id)
}

func (r *table) FindFree() (int64, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.findFree()
}

func (r *table) findFree() (int64, error) {
	id, ok := r.span.Difference(r.claimed).Smallest()
	if !ok {
		return 0, fmt.Errorf("no free entry found")
	}
	return id, nil
}

// Claimed returns a copy of the claimed ID set.
func (r *table) Claimed() *interval.Set {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.claimed.Copy()
}

// Free returns the IDs of the span that are not claimed.
func (r *table) Free() *interval.Set {
	r.m.RLock()
	defer r.m.RUnlock()

	return r.span.Difference(r.claimed)
}

func (r *table) GetAll() map[int64]labels.Set {
	r.m.RLock()
	defer r.m.RUnlock()

	entries := make(map[int64]labels.Set, len(r.data))
	for id, d := range r.data {
		entries[id] = d
	}
	return entries
}

func (r *table) GetByLabel(selector labels.Selector) map[int64]labels.Set {
	r.m.RLock()
	defer r.m.RUnlock()

	entries := map[int64]labels.Set{}
	for id, d := range r.data {
		if selector.Matches(d) {
			entries[id] = d
		}
	}
	return entries
}
