package gopolya_test

import (
	"math/rand"
	"testing"

	"github.com/polyasystems/gopolya/gopolya"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomPerm(rng *rand.Rand, n int) gopolya.Perm {
	p := gopolya.Perm(rng.Perm(n))
	return p
}

func TestPermBasics(t *testing.T) {
	id := gopolya.IdentityPerm(5)
	require.NoError(t, id.Validate())
	assert.True(t, id.IsIdentity())

	p := gopolya.Perm{1, 2, 0, 4, 3}
	require.NoError(t, p.Validate())
	assert.False(t, p.IsIdentity())

	// (p∘q)[i] = p[q[i]]
	q := gopolya.Perm{0, 1, 2, 4, 3}
	assert.Equal(t, gopolya.Perm{1, 2, 0, 3, 4}, p.Compose(q))

	assert.True(t, p.Compose(p.Inverse()).IsIdentity())
	assert.True(t, p.Inverse().Compose(p).IsIdentity())
	assert.True(t, p.Equals(p.Copy()))
	assert.False(t, p.Equals(q))
}

func TestPermValidate(t *testing.T) {
	for _, p := range []gopolya.Perm{
		{},
		{0, 0},
		{0, 2},
		{-1, 0},
	} {
		assert.ErrorIs(t, p.Validate(), gopolya.ErrBadPerm, "%v", p)
	}
}

func TestPermKey(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		p := randomPerm(rng, 1+rng.Intn(30))
		assert.Equal(t, p, gopolya.PermFromKey([]byte(p.Key())))
	}

	// The identity has the least key of all permutations of its size
	id := gopolya.IdentityPerm(6)
	for i := 0; i < 50; i++ {
		p := randomPerm(rng, 6)
		if !p.IsIdentity() {
			assert.Less(t, id.Key(), p.Key())
		}
	}
}

func TestPermCycles(t *testing.T) {
	p := gopolya.Perm{1, 2, 0, 3, 5, 4}
	cycles := p.Cycles()
	assert.Equal(t, gopolya.Cycles{{0, 1, 2}, {3}, {4, 5}}, cycles)
	assert.Equal(t, "(0 1 2)(3)(4 5)", cycles.String())
	assert.Equal(t, []int{3, 2, 1}, cycles.CycleType())

	// Fixed points are kept as singleton cycles
	id := gopolya.IdentityPerm(4)
	assert.Len(t, id.Cycles(), 4)
}

func TestCyclePartition(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		n := 1 + rng.Intn(60)
		p := randomPerm(rng, n)
		cycles := p.Cycles()

		require.NoError(t, cycles.Validate(n))
		assert.Equal(t, n, cycles.NumElements())

		// Each cycle follows p and closes on itself
		for _, ci := range cycles {
			for j, idx := range ci {
				assert.Equal(t, ci[(j+1)%len(ci)], p[idx])
			}
		}

		back, err := cycles.Perm(n)
		require.NoError(t, err)
		assert.Equal(t, p, back)
	}
}

func TestCyclesPerm(t *testing.T) {
	p, err := gopolya.Cycles{{0, 2}}.Perm(4)
	require.NoError(t, err)
	assert.Equal(t, gopolya.Perm{2, 1, 0, 3}, p)

	_, err = gopolya.Cycles{{0, 4}}.Perm(4)
	assert.ErrorIs(t, err, gopolya.ErrBadPerm)

	_, err = gopolya.Cycles{{0, 1}, {1, 2}}.Perm(4)
	assert.ErrorIs(t, err, gopolya.ErrBadPerm)

	assert.ErrorIs(t, gopolya.Cycles{{0, 1}}.Validate(3), gopolya.ErrBadPerm)
}
