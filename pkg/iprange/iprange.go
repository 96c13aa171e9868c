// Package iprange converts between IPv4 address ranges and interval
// sets, so address pools can be manipulated with interval algebra.
// Addresses map to their big-endian uint32 index.
package iprange

import (
	"encoding/binary"
	"fmt"
	"math"
	"net/netip"

	"github.com/hansthienpondt/nipam/pkg/table"
	"github.com/ndryden/IntIntervals/pkg/interval"
	"go4.org/netipx"
)

// FromRange returns the interval set covering the IPv4 range r.
func FromRange(r netipx.IPRange) (*interval.Set, error) {
	iv, err := rangeToInterval(r)
	if err != nil {
		return nil, err
	}
	return interval.FromIntervals([]interval.Interval{iv})
}

// FromPrefix returns the interval set covering the IPv4 prefix pfx.
func FromPrefix(pfx netip.Prefix) (*interval.Set, error) {
	r := netipx.RangeOfPrefix(pfx)
	if !r.IsValid() {
		return nil, fmt.Errorf("%w: invalid prefix %s", interval.ErrInvalidInput, pfx)
	}
	return FromRange(r)
}

// FromRoutes returns the interval set covering every route's prefix.
// Overlapping or adjacent prefixes end up merged.
func FromRoutes(routes table.Routes) (*interval.Set, error) {
	var b interval.SetBuilder
	for _, route := range routes {
		r := netipx.RangeOfPrefix(route.Prefix())
		iv, err := rangeToInterval(r)
		if err != nil {
			return nil, err
		}
		b.AddInterval(iv)
	}
	return b.Set()
}

// Ranges converts s back to the minimal list of IPv4 ranges. It fails
// when an interval bound falls outside the IPv4 index space.
func Ranges(s *interval.Set) ([]netipx.IPRange, error) {
	ivs := s.Intervals()
	out := make([]netipx.IPRange, 0, len(ivs))
	for _, iv := range ivs {
		from, err := indexToAddr(iv.From())
		if err != nil {
			return nil, err
		}
		to, err := indexToAddr(iv.To())
		if err != nil {
			return nil, err
		}
		out = append(out, netipx.IPRangeFrom(from, to))
	}
	return out, nil
}

func rangeToInterval(r netipx.IPRange) (interval.Interval, error) {
	if !r.IsValid() || !r.From().Is4() {
		return interval.Interval{}, fmt.Errorf("%w: %s is not a valid IPv4 range", interval.ErrInvalidInput, r)
	}
	return interval.MakeInterval(addrToIndex(r.From()), addrToIndex(r.To())), nil
}

func addrToIndex(a netip.Addr) int64 {
	a4 := a.As4()
	return int64(binary.BigEndian.Uint32(a4[:]))
}

func indexToAddr(id int64) (netip.Addr, error) {
	if id < 0 || id > math.MaxUint32 {
		return netip.Addr{}, fmt.Errorf("%w: index %d is outside the IPv4 address space", interval.ErrInvalidInput, id)
	}
	var a4 [4]byte
	binary.BigEndian.PutUint32(a4[:], uint32(id))
	return netip.AddrFrom4(a4), nil
}
