package interval

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

// TestDifferentialRandomized compares every algebra operation against
// a plain map-backed integer set across randomized trials. Dense
// draws from a narrow universe force plenty of run merges and exact
// tie cases in the sweeps.
func TestDifferentialRandomized(t *testing.T) {
	const (
		trials   = 250
		universe = 1000
		draws    = 700
	)
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < trials; trial++ {
		vals1 := genRandomValues(rng, universe, draws)
		vals2 := genRandomValues(rng, universe, draws)

		a, b := FromValues(vals1), FromValues(vals2)
		ref1, ref2 := toRefSet(vals1), toRefSet(vals2)

		// Round trip: enumeration yields the sorted deduplicated
		// input.
		require.Equal(t, refValues(ref1), a.AppendValues(nil), "trial %d round trip", trial)

		checks := []struct {
			op   string
			got  *Set
			want map[int64]struct{}
		}{
			{"union", a.Union(b), refUnion(ref1, ref2)},
			{"intersection", a.Intersect(b), refIntersection(ref1, ref2)},
			{"difference", a.Difference(b), refDifference(ref1, ref2)},
			{"symmetric difference", a.SymmetricDifference(b), refSymmetricDifference(ref1, ref2)},
		}
		for _, c := range checks {
			requireCanonical(t, c.got, c.op, trial)
			if diff := cmp.Diff(refValues(c.want), c.got.AppendValues(nil), cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("trial %d %s with\n%s\nand\n%s\n-want +got:\n%s", trial, c.op, a, b, diff)
			}
		}

		// Ordering relations against the oracle results.
		inter := a.Intersect(b)
		union := a.Union(b)
		require.True(t, inter.IsSubsetOf(a), "trial %d intersection not a subset", trial)
		require.True(t, union.IsSupersetOf(b), "trial %d union not a superset", trial)
		require.True(t, a.Difference(b).IsDisjointFrom(b), "trial %d difference not disjoint", trial)

		// Hash stability under equality.
		require.Equal(t, a.Hash(), FromValues(vals1).Hash(), "trial %d hash not stable", trial)
	}
}

func genRandomValues(rng *rand.Rand, universe, draws int) []int64 {
	vals := make([]int64, 0, draws)
	for i := 0; i < draws; i++ {
		vals = append(vals, int64(rng.Intn(universe)))
	}
	return vals
}

func toRefSet(vals []int64) map[int64]struct{} {
	m := make(map[int64]struct{}, len(vals))
	for _, v := range vals {
		m[v] = struct{}{}
	}
	return m
}

func refValues(m map[int64]struct{}) []int64 {
	vals := make([]int64, 0, len(m))
	for v := range m {
		vals = append(vals, v)
	}
	sort.Slice(vals, func(i, j int) bool { return vals[i] < vals[j] })
	return vals
}

func refUnion(a, b map[int64]struct{}) map[int64]struct{} {
	m := make(map[int64]struct{}, len(a)+len(b))
	for v := range a {
		m[v] = struct{}{}
	}
	for v := range b {
		m[v] = struct{}{}
	}
	return m
}

func refIntersection(a, b map[int64]struct{}) map[int64]struct{} {
	m := map[int64]struct{}{}
	for v := range a {
		if _, ok := b[v]; ok {
			m[v] = struct{}{}
		}
	}
	return m
}

func refDifference(a, b map[int64]struct{}) map[int64]struct{} {
	m := map[int64]struct{}{}
	for v := range a {
		if _, ok := b[v]; !ok {
			m[v] = struct{}{}
		}
	}
	return m
}

func refSymmetricDifference(a, b map[int64]struct{}) map[int64]struct{} {
	return refUnion(refDifference(a, b), refDifference(b, a))
}

func requireCanonical(t *testing.T, s *Set, op string, trial int) {
	t.Helper()
	ivs := s.Intervals()
	for i, iv := range ivs {
		require.True(t, iv.IsValid(), "trial %d %s produced invalid interval %s", trial, op, iv)
		if i > 0 {
			require.True(t, ivs[i-1].To()+1 < iv.From(),
				"trial %d %s produced non-canonical intervals %s and %s", trial, op, ivs[i-1], iv)
		}
	}
}
