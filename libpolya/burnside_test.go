package libpolya_test

import (
	"math/big"
	"testing"

	"github.com/polyasystems/gopolya/gopolya"
	"github.com/polyasystems/gopolya/libpolya"
	"github.com/polyasystems/gopolya/libpolya/solids"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSpec(t testing.TB, str string) gopolya.ColorSpec {
	spec, err := libpolya.ParseColorSpec(str)
	require.NoError(t, err)
	return spec
}

func TestCountColorings(t *testing.T) {
	tests := []struct {
		id    gopolya.SolidID
		kind  gopolya.ElementKind
		spec  string
		count int64
	}{
		{solids.Tetrahedron, gopolya.Vertex, "a:1, b:1, c:1, d:1", 2},
		{solids.Tetrahedron, gopolya.Vertex, "a:4", 1},
		{solids.Cube, gopolya.Vertex, "a:4, b:4", 7},
		{solids.Cube, gopolya.Face, "a:3, b:3", 2},
		{solids.Cube, gopolya.Face, "a:2, b:2, c:2", 6},
		{solids.Octahedron, gopolya.Vertex, "a:3, b:3", 2},
		{solids.Icosahedron, gopolya.Vertex, "X:6, Y:6", 24},
		{solids.Dodecahedron, gopolya.Vertex, "A:20", 1},
		{solids.Dodecahedron, gopolya.Vertex, "red:9, blue:6, green:5", 1293312},
	}

	for _, tt := range tests {
		t.Run(string(tt.id)+"/"+tt.spec, func(t *testing.T) {
			G := mustGroup(t, tt.id, tt.kind)
			count, err := libpolya.CountColorings(mustSpec(t, tt.spec), G)
			require.NoError(t, err)
			assert.Equal(t, big.NewInt(tt.count), count)
		})
	}
}

func TestCountUnconstrained(t *testing.T) {
	G := mustGroup(t, solids.Dodecahedron, gopolya.Face)
	ci := libpolya.CycleIndexOf(G)

	for c, expect := range []int64{1, 96, 9099, 280832} {
		count, err := libpolya.CountUnconstrained(c+1, G)
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(expect), count)

		eval, err := ci.Evaluate(c + 1)
		require.NoError(t, err)
		assert.Equal(t, count, eval)

		// Closed form (c^12 + 15c^6 + 44c^4)/60
		x := int64(c + 1)
		assert.Equal(t, expect, (pow(x, 12)+15*pow(x, 6)+44*pow(x, 4))/60)
	}

	count, err := libpolya.CountUnconstrained(2, mustGroup(t, solids.Cube, gopolya.Vertex))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(23), count)

	_, err = libpolya.CountUnconstrained(0, G)
	assert.ErrorIs(t, err, gopolya.ErrBadColorSpec)
}

func pow(x int64, e int) int64 {
	p := int64(1)
	for ; e > 0; e-- {
		p *= x
	}
	return p
}

func TestCycleIndex(t *testing.T) {
	assert.Equal(t, "(x1^12 + 15 x2^6 + 20 x3^4 + 24 x1^2 x5^2)/60",
		libpolya.CycleIndexOf(mustGroup(t, solids.Dodecahedron, gopolya.Face)).String())
	assert.Equal(t, "(x1^12 + 15 x2^6 + 20 x3^4 + 24 x1^2 x5^2)/60",
		libpolya.CycleIndexOf(mustGroup(t, solids.Icosahedron, gopolya.Vertex)).String())
	assert.Equal(t, "(x1^4 + 3 x2^2 + 8 x1 x3)/12",
		libpolya.CycleIndexOf(mustGroup(t, solids.Tetrahedron, gopolya.Vertex)).String())
	assert.Equal(t, "(x1^8 + 9 x2^4 + 8 x1^2 x3^2 + 6 x4^2)/24",
		libpolya.CycleIndexOf(mustGroup(t, solids.Cube, gopolya.Vertex)).String())
}

func TestFixedColorings(t *testing.T) {
	spec := mustSpec(t, "a:1, b:1, c:1")
	assert.Equal(t, big.NewInt(6), libpolya.FixedColorings(spec, []int{1, 1, 1}))
	assert.Equal(t, big.NewInt(0), libpolya.FixedColorings(spec, []int{2, 1}))
	assert.Equal(t, big.NewInt(0), libpolya.FixedColorings(spec, []int{3}))

	spec = mustSpec(t, "a:2, b:1")
	assert.Equal(t, big.NewInt(1), libpolya.FixedColorings(spec, []int{2, 1}))

	// 20 vertices under a 3-fold turn: x1^2 x3^6 with 9, 6, 5
	spec = mustSpec(t, "red:9, blue:6, green:5")
	assert.Equal(t, big.NewInt(60), libpolya.FixedColorings(spec, []int{3, 3, 3, 3, 3, 3, 1, 1}))
}

// elemList is a PermutationGroup over an arbitrary (possibly non-closed) list of permutations.
type elemList []gopolya.Perm

func (L elemList) N() int                      { return len(L[0]) }
func (L elemList) Order() int                  { return len(L) }
func (L elemList) Element(i int) gopolya.Perm  { return L[i] }
func (L elemList) Inverse(i int) gopolya.Perm  { return L[i].Inverse() }
func (L elemList) Cycles(i int) gopolya.Cycles { return L[i].Cycles() }

type emptyGroup struct{ n int }

func (G emptyGroup) N() int                      { return G.n }
func (G emptyGroup) Order() int                  { return 0 }
func (G emptyGroup) Element(i int) gopolya.Perm  { return nil }
func (G emptyGroup) Inverse(i int) gopolya.Perm  { return nil }
func (G emptyGroup) Cycles(i int) gopolya.Cycles { return nil }

func TestCountColoringsErrors(t *testing.T) {
	G := mustGroup(t, solids.Dodecahedron, gopolya.Vertex)

	_, err := libpolya.CountColorings(mustSpec(t, "red:9, blue:6, green:4"), G)
	assert.ErrorIs(t, err, gopolya.ErrBadColorSpec)

	_, err = libpolya.CountColorings(mustSpec(t, "a:3"), emptyGroup{3})
	assert.ErrorIs(t, err, gopolya.ErrEmptyGroup)

	// The spec is checked before the group
	_, err = libpolya.CountColorings(mustSpec(t, "a:2"), emptyGroup{3})
	assert.ErrorIs(t, err, gopolya.ErrBadColorSpec)

	_, err = libpolya.CountColorings(mustSpec(t, "a:3"), nil)
	assert.ErrorIs(t, err, gopolya.ErrEmptyGroup)

	// Not a group: 3 + 1 + 1 fixed colorings over 3 elements
	notGroup := elemList{{0, 1, 2}, {1, 0, 2}, {2, 1, 0}}
	_, err = libpolya.CountColorings(mustSpec(t, "a:2, b:1"), notGroup)
	assert.ErrorIs(t, err, gopolya.ErrNonIntegralQuotient)
}
