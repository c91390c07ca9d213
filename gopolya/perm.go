package gopolya

import (
	"github.com/pkg/errors"
)

// Perm is a bijection on 0..len(p)-1 mapping an element index to its image index.
type Perm []int

// IdentityPerm returns the identity permutation on n elements.
func IdentityPerm(n int) Perm {
	p := make(Perm, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// Validate returns an error if p is not a bijection on 0..len(p)-1.
func (p Perm) Validate() error {
	N := len(p)
	if N == 0 || N > MaxElements {
		return errors.Wrapf(ErrBadPerm, "permutation size %d is out of range", N)
	}
	var seen [MaxElements]bool
	for i, pi := range p {
		if pi < 0 || pi >= N {
			return errors.Wrapf(ErrBadPerm, "image %d of %d is out of range", pi, i)
		}
		if seen[pi] {
			return errors.Wrapf(ErrBadPerm, "image %d appears more than once", pi)
		}
		seen[pi] = true
	}
	return nil
}

// IsIdentity returns true if p maps every index to itself.
func (p Perm) IsIdentity() bool {
	for i, pi := range p {
		if pi != i {
			return false
		}
	}
	return true
}

// Equals returns true if p and q are the same permutation.
func (p Perm) Equals(q Perm) bool {
	if len(p) != len(q) {
		return false
	}
	for i, pi := range p {
		if pi != q[i] {
			return false
		}
	}
	return true
}

// Compose returns p∘q, the permutation that applies q first and then p: (p∘q)[i] = p[q[i]].
func (p Perm) Compose(q Perm) Perm {
	pq := make(Perm, len(q))
	for i, qi := range q {
		pq[i] = p[qi]
	}
	return pq
}

// Inverse returns the unique permutation pinv where pinv[p[i]] = i.
func (p Perm) Inverse() Perm {
	pinv := make(Perm, len(p))
	for i, pi := range p {
		pinv[pi] = i
	}
	return pinv
}

// Copy returns a copy of p that can be modified safely.
func (p Perm) Copy() Perm {
	dup := make(Perm, len(p))
	copy(dup, p)
	return dup
}

// AppendKey appends the byte encoding of p to the given buffer.
//
// Keys compare lexicographically in the same order as the permutations themselves,
// so the identity has the smallest key of all permutations of the same size.
func (p Perm) AppendKey(key []byte) []byte {
	for _, pi := range p {
		key = append(key, byte(pi))
	}
	return key
}

// Key returns the byte encoding of p as a string (suitable as a map key).
func (p Perm) Key() string {
	var buf [MaxElements]byte
	return string(p.AppendKey(buf[:0]))
}

// PermFromKey is the inverse of Perm.AppendKey.
func PermFromKey(key []byte) Perm {
	p := make(Perm, len(key))
	for i, b := range key {
		p[i] = int(b)
	}
	return p
}

// Cycles returns the disjoint cycle decomposition of p.
//
// Cycles are emitted in order of their lowest index, each starting at that index.
// Fixed points are emitted as singleton cycles; omitting them would undercount the colorings fixed by p.
func (p Perm) Cycles() Cycles {
	N := len(p)
	visited := make([]bool, N)
	cycles := make(Cycles, 0, N)

	for i := 0; i < N; i++ {
		if visited[i] {
			continue
		}
		var cycle []int
		for j := i; !visited[j]; j = p[j] {
			visited[j] = true
			cycle = append(cycle, j)
		}
		cycles = append(cycles, cycle)
	}
	return cycles
}
