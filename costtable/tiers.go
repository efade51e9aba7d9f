package costtable

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sort"
)

var (
	// ErrDuplicateTier is returned if two tiers start at the same counter.
	ErrDuplicateTier = errors.New("duplicate tier start")
	// ErrUnsortedTiers is returned if tiers are not in strictly increasing order of their start.
	ErrUnsortedTiers = errors.New("tiers are not sorted")
)

// Tier is a per-unit cost that applies from Start until the start of the next tier.
type Tier struct {
	Start uint64
	Cost  uint64
}

// Tiers maps a monotonically increasing counter to a per-unit cost.
// Counters below the lowest start are charged the default of the dimension
// the tiers belong to, see Table.
type Tiers struct {
	tiers []Tier
}

// NewTiers builds tiers from a start -> cost mapping.
func NewTiers(costs map[uint64]uint64) Tiers {
	tiers := make([]Tier, 0, len(costs))
	for _, start := range slices.Sorted(maps.Keys(costs)) {
		tiers = append(tiers, Tier{Start: start, Cost: costs[start]})
	}
	return Tiers{tiers: tiers}
}

// NewTiersFromSlice builds tiers from a slice in any order.
// The slice is copied, and an error is returned if two tiers share a start.
func NewTiersFromSlice(tiers []Tier) (Tiers, error) {
	sorted := slices.Clone(tiers)
	slices.SortFunc(sorted, func(a, b Tier) int {
		switch {
		case a.Start < b.Start:
			return -1
		case a.Start > b.Start:
			return 1
		}
		return 0
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Start == sorted[i-1].Start {
			return Tiers{}, fmt.Errorf("%w: %d", ErrDuplicateTier, sorted[i].Start)
		}
	}
	return Tiers{tiers: sorted}, nil
}

// Len returns number of defined tiers.
func (t Tiers) Len() int {
	return len(t.tiers)
}

// Entries returns a copy of the tiers sorted by start.
func (t Tiers) Entries() []Tier {
	return slices.Clone(t.tiers)
}

// Map returns tiers as a start -> cost mapping.
func (t Tiers) Map() map[uint64]uint64 {
	rst := make(map[uint64]uint64, len(t.tiers))
	for _, tier := range t.tiers {
		rst[tier.Start] = tier.Cost
	}
	return rst
}

// Equal returns true if both tiers charge the same for every counter.
func (t Tiers) Equal(o Tiers) bool {
	return slices.Equal(t.tiers, o.tiers)
}

// lookup returns the cost for counter and the start of the next tier.
//
// The cost is taken from the tier with the greatest start that is less than or equal
// to counter, or def if there is no such tier. If counter is in the last tier
// bounded is false and the cost applies to every larger counter.
func (t Tiers) lookup(def, counter uint64) (cost, next uint64, bounded bool) {
	cost, _, next, bounded = t.locate(def, counter)
	return cost, next, bounded
}

// locate additionally returns the start of the tier counter belongs to,
// zero if counter is below the lowest tier.
func (t Tiers) locate(def, counter uint64) (cost, start, next uint64, bounded bool) {
	// index of the first tier that starts after counter
	i := sort.Search(len(t.tiers), func(i int) bool {
		return t.tiers[i].Start > counter
	})
	cost = def
	if i > 0 {
		cost = t.tiers[i-1].Cost
		start = t.tiers[i-1].Start
	}
	if i < len(t.tiers) {
		return cost, start, t.tiers[i].Start, true
	}
	return cost, start, 0, false
}
