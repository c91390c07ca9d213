package libpolya

import (
	"time"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"github.com/polyasystems/gopolya/gopolya"
)

// MaxClosureOrder bounds a closure when the expected group order is not known.
const MaxClosureOrder = 1 << 20

// Group is an immutable, closed set of permutations over 0..N()-1.
//
// Elements are held in ascending order of their keys, so the identity is always element 0
// and the element order doesn't depend on how the group was discovered.
type Group struct {
	n        int
	elems    []gopolya.Perm
	inverses []gopolya.Perm
	cycles   []gopolya.Cycles
	index    map[string]int
	chain    *StabilizerChain
}

// BuildGroup computes the closure of the given generators over n elements.
//
// Inverses of the generators are derived, so only one of each pair needs to be given.
// If expectedOrder > 0 and the closure's order differs, ErrGroupOrderMismatch is returned.
func BuildGroup(n int, generators []gopolya.Perm, expectedOrder int) (*Group, error) {
	if n <= 0 || n > gopolya.MaxElements {
		return nil, errors.Wrapf(gopolya.ErrBadPerm, "group size %d is out of range", n)
	}

	startTime := time.Now()

	gens := make([]gopolya.Perm, 0, 2*len(generators))
	{
		seen := make(map[string]struct{}, 2*len(generators))
		addGen := func(g gopolya.Perm) {
			key := g.Key()
			if _, exists := seen[key]; !exists && !g.IsIdentity() {
				seen[key] = struct{}{}
				gens = append(gens, g)
			}
		}
		for i, g := range generators {
			if len(g) != n {
				return nil, errors.Wrapf(gopolya.ErrSizeMismatch, "generator %d has size %d, expected %d", i, len(g), n)
			}
			if err := g.Validate(); err != nil {
				return nil, errors.Wrapf(err, "generator %d", i)
			}
			addGen(g)
			addGen(g.Inverse())
		}
	}

	limit := MaxClosureOrder
	if expectedOrder > 0 {
		limit = expectedOrder
	}

	// Breadth-first closure: every element discovered is composed with every generator
	// until a pass produces nothing new.
	found := redblacktree.NewWithStringComparator()
	identity := gopolya.IdentityPerm(n)
	found.Put(identity.Key(), identity)
	frontier := []gopolya.Perm{identity}

	for len(frontier) > 0 {
		var next []gopolya.Perm
		for _, g := range frontier {
			for _, s := range gens {
				h := s.Compose(g)
				key := h.Key()
				if _, exists := found.Get(key); exists {
					continue
				}
				if found.Size() >= limit {
					return nil, errors.Wrapf(gopolya.ErrGroupOrderMismatch, "closure exceeds %d elements", limit)
				}
				found.Put(key, h)
				next = append(next, h)
			}
		}
		frontier = next
	}

	elems := make([]gopolya.Perm, 0, found.Size())
	for it := found.Iterator(); it.Next(); {
		elems = append(elems, it.Value().(gopolya.Perm))
	}

	if expectedOrder > 0 && len(elems) != expectedOrder {
		return nil, errors.Wrapf(gopolya.ErrGroupOrderMismatch, "closure has %d elements, expected %d", len(elems), expectedOrder)
	}

	G, err := newGroup(n, elems)
	if err != nil {
		return nil, err
	}

	klog.V(2).Infof("built group of order %d on %d elements from %d generators in %v", G.Order(), n, len(generators), time.Since(startTime))
	return G, nil
}

// NewGroupFromElements forms a Group from a complete list of elements (e.g. as loaded from a catalog).
//
// The elements are verified to form a group: the identity is present, and the set is closed
// under composition and inversion.  If expectedOrder > 0, the number of elements must match it.
func NewGroupFromElements(n int, elements []gopolya.Perm, expectedOrder int) (*Group, error) {
	if expectedOrder > 0 && len(elements) != expectedOrder {
		return nil, errors.Wrapf(gopolya.ErrGroupOrderMismatch, "%d elements given, expected %d", len(elements), expectedOrder)
	}
	if len(elements) == 0 {
		return nil, gopolya.ErrEmptyGroup
	}

	found := redblacktree.NewWithStringComparator()
	for i, g := range elements {
		if len(g) != n {
			return nil, errors.Wrapf(gopolya.ErrSizeMismatch, "element %d has size %d, expected %d", i, len(g), n)
		}
		if err := g.Validate(); err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		found.Put(g.Key(), g.Copy())
	}
	if found.Size() != len(elements) {
		return nil, errors.Wrap(gopolya.ErrBadPerm, "duplicate elements")
	}

	elems := make([]gopolya.Perm, 0, found.Size())
	for it := found.Iterator(); it.Next(); {
		elems = append(elems, it.Value().(gopolya.Perm))
	}

	G, err := newGroup(n, elems)
	if err != nil {
		return nil, err
	}
	if err = G.VerifyClosure(); err != nil {
		return nil, err
	}
	return G, nil
}

func newGroup(n int, elems []gopolya.Perm) (*Group, error) {
	G := &Group{
		n:        n,
		elems:    elems,
		inverses: make([]gopolya.Perm, len(elems)),
		cycles:   make([]gopolya.Cycles, len(elems)),
		index:    make(map[string]int, len(elems)),
	}
	for i, g := range elems {
		G.index[g.Key()] = i
	}
	for i, g := range elems {
		G.inverses[i] = g.Inverse()
		G.cycles[i] = g.Cycles()
	}

	G.chain = NewStabilizerChain(G)
	if order := G.chain.Order(); order != int64(len(elems)) {
		return nil, errors.Wrapf(gopolya.ErrGroupOrderMismatch, "stabilizer chain order %d does not match %d elements", order, len(elems))
	}
	return G, nil
}

func (G *Group) N() int {
	return G.n
}

func (G *Group) Order() int {
	return len(G.elems)
}

func (G *Group) Element(i int) gopolya.Perm {
	return G.elems[i]
}

func (G *Group) Inverse(i int) gopolya.Perm {
	return G.inverses[i]
}

func (G *Group) Cycles(i int) gopolya.Cycles {
	return G.cycles[i]
}

// Elements returns copies of all elements, in key order.
func (G *Group) Elements() []gopolya.Perm {
	elems := make([]gopolya.Perm, len(G.elems))
	for i, g := range G.elems {
		elems[i] = g.Copy()
	}
	return elems
}

// IndexOf returns the index of p in this group or -1 if p is not an element.
func (G *Group) IndexOf(p gopolya.Perm) int {
	if len(p) != G.n {
		return -1
	}
	if i, exists := G.index[p.Key()]; exists {
		return i
	}
	return -1
}

// Contains returns true if p is an element of this group.
func (G *Group) Contains(p gopolya.Perm) bool {
	return G.IndexOf(p) >= 0
}

// Chain returns the stabilizer chain of this group.
func (G *Group) Chain() *StabilizerChain {
	return G.chain
}

// VerifyClosure checks the group axioms over every pair of elements.
func (G *Group) VerifyClosure() error {
	if G.IndexOf(gopolya.IdentityPerm(G.n)) < 0 {
		return errors.Wrap(gopolya.ErrGroupOrderMismatch, "identity is missing")
	}
	for i, g := range G.elems {
		if !G.Contains(G.inverses[i]) {
			return errors.Wrapf(gopolya.ErrGroupOrderMismatch, "inverse of element %d is missing", i)
		}
		for j, h := range G.elems {
			if !G.Contains(g.Compose(h)) {
				return errors.Wrapf(gopolya.ErrGroupOrderMismatch, "product of elements %d and %d is missing", i, j)
			}
		}
	}
	return nil
}

// CycleDecompositions returns the precomputed cycle decomposition of every element, in element order.
func (G *Group) CycleDecompositions() []gopolya.Cycles {
	return G.cycles
}
