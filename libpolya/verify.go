package libpolya

import (
	"context"

	"github.com/pkg/errors"
	"github.com/polyasystems/gopolya/gopolya"
)

// CountOrbitsBruteForce counts orbits by canonizing every coloring meeting spec and counting distinct canonical forms.
//
// This is exponential in G.N() and exists to cross-check CountColorings and EnumerateColorings on small instances.
func CountOrbitsBruteForce(ctx context.Context, spec gopolya.ColorSpec, G gopolya.PermutationGroup) (int, error) {
	if G == nil {
		return 0, gopolya.ErrEmptyGroup
	}
	if err := spec.Validate(G.N()); err != nil {
		return 0, err
	}
	if G.Order() == 0 {
		return 0, gopolya.ErrEmptyGroup
	}

	all, err := StreamAllColorings(ctx, spec)
	if err != nil {
		return 0, err
	}

	set := NewCanonicSet(G)
	defer set.Close()

	count := all.AddTo(set).PullAll()
	if err = ctx.Err(); err != nil {
		return 0, errors.Wrap(err, "brute force count cancelled")
	}
	if err = set.Err(); err != nil {
		return 0, err
	}
	return count, nil
}
