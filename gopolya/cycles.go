package gopolya

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Cycles is a disjoint cycle decomposition of a permutation.
//
// Every index of 0..n-1 appears in exactly one cycle and fixed points appear as singleton cycles,
// so the sum of the cycle lengths is n.
type Cycles [][]int

// NumElements returns the sum of the cycle lengths.
func (cycles Cycles) NumElements() int {
	N := 0
	for _, ci := range cycles {
		N += len(ci)
	}
	return N
}

// Lengths returns the length of each cycle, in cycle order.
func (cycles Cycles) Lengths() []int {
	lens := make([]int, len(cycles))
	for i, ci := range cycles {
		lens[i] = len(ci)
	}
	return lens
}

// CycleType returns the cycle lengths sorted in descending order.
// Two permutations that are conjugate in the symmetric group have the same CycleType.
func (cycles Cycles) CycleType() []int {
	lens := cycles.Lengths()
	sort.Sort(sort.Reverse(sort.IntSlice(lens)))
	return lens
}

// Validate checks that these cycles partition 0..n-1.
func (cycles Cycles) Validate(n int) error {
	if cycles.NumElements() != n {
		return errors.Wrapf(ErrBadPerm, "cycle lengths sum to %d, expected %d", cycles.NumElements(), n)
	}
	seen := make([]bool, n)
	for _, ci := range cycles {
		if len(ci) == 0 {
			return errors.Wrap(ErrBadPerm, "empty cycle")
		}
		for _, j := range ci {
			if j < 0 || j >= n {
				return errors.Wrapf(ErrBadPerm, "index %d is out of range", j)
			}
			if seen[j] {
				return errors.Wrapf(ErrBadPerm, "index %d appears in more than one cycle", j)
			}
			seen[j] = true
		}
	}
	return nil
}

// Perm returns the permutation on n elements described by these cycles, where each element of a cycle maps to the next.
//
// Indices not in any cycle are fixed, so a decomposition that omits its fixed points is still accepted here.
func (cycles Cycles) Perm(n int) (Perm, error) {
	p := IdentityPerm(n)
	seen := make([]bool, n)
	for _, ci := range cycles {
		k := len(ci)
		for idx, i := range ci {
			if i < 0 || i >= n {
				return nil, errors.Wrapf(ErrBadPerm, "index %d is out of range", i)
			}
			if seen[i] {
				return nil, errors.Wrapf(ErrBadPerm, "index %d appears more than once", i)
			}
			seen[i] = true
			p[i] = ci[(idx+1)%k]
		}
	}
	return p, nil
}

// String returns these cycles in (0 1 2)(3) notation.
func (cycles Cycles) String() string {
	b := strings.Builder{}
	for _, ci := range cycles {
		b.WriteByte('(')
		for j, idx := range ci {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.Itoa(idx))
		}
		b.WriteByte(')')
	}
	return b.String()
}
