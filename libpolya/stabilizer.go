package libpolya

import (
	"sort"
	"strconv"
	"strings"

	"github.com/polyasystems/gopolya/gopolya"
)

// StabilizerLevel is one step of a StabilizerChain: a base point and its orbit under the
// subgroup fixing all previous base points.
type StabilizerLevel struct {
	Point int
	Orbit []int
}

// StabilizerChain is a base and strong generating structure of a Group, reduced to what is needed here:
// the base points and their basic orbits.  The product of the orbit lengths is the group order.
type StabilizerChain struct {
	Levels []StabilizerLevel
}

// NewStabilizerChain computes the chain of G over base points chosen in ascending order,
// skipping points fixed by the whole of the current subgroup.
func NewStabilizerChain(G gopolya.PermutationGroup) *StabilizerChain {
	chain := &StabilizerChain{}

	n := G.N()
	sub := make([]gopolya.Perm, G.Order())
	for i := range sub {
		sub[i] = G.Element(i)
	}

	for b := 0; b < n && len(sub) > 1; b++ {
		var orbit []int
		seen := make([]bool, n)
		for _, g := range sub {
			if !seen[g[b]] {
				seen[g[b]] = true
				orbit = append(orbit, g[b])
			}
		}
		if len(orbit) == 1 {
			continue
		}
		sort.Ints(orbit)
		chain.Levels = append(chain.Levels, StabilizerLevel{
			Point: b,
			Orbit: orbit,
		})

		stab := sub[:0:0]
		for _, g := range sub {
			if g[b] == b {
				stab = append(stab, g)
			}
		}
		sub = stab
	}

	return chain
}

// Order returns the product of the basic orbit lengths.
func (chain *StabilizerChain) Order() int64 {
	order := int64(1)
	for _, level := range chain.Levels {
		order *= int64(len(level.Orbit))
	}
	return order
}

// Base returns the base points of this chain.
func (chain *StabilizerChain) Base() []int {
	base := make([]int, len(chain.Levels))
	for i, level := range chain.Levels {
		base[i] = level.Point
	}
	return base
}

// OrbitLengths returns the length of each basic orbit.
func (chain *StabilizerChain) OrbitLengths() []int {
	lens := make([]int, len(chain.Levels))
	for i, level := range chain.Levels {
		lens[i] = len(level.Orbit)
	}
	return lens
}

// String returns a summary such as "base [0 1] orbits [20 3]".
func (chain *StabilizerChain) String() string {
	b := strings.Builder{}
	b.WriteString("base [")
	for i, level := range chain.Levels {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(level.Point))
	}
	b.WriteString("] orbits [")
	for i, level := range chain.Levels {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(len(level.Orbit)))
	}
	b.WriteString("]")
	return b.String()
}
