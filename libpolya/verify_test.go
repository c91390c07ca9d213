package libpolya_test

import (
	"context"
	"testing"

	"github.com/polyasystems/gopolya/gopolya"
	"github.com/polyasystems/gopolya/libpolya"
	"github.com/polyasystems/gopolya/libpolya/solids"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountOrbitsBruteForce(t *testing.T) {
	ctx := context.Background()

	for _, tt := range consistencyCases[:11] {
		t.Run(string(tt.id)+"/"+tt.kind.String()+"/"+tt.spec, func(t *testing.T) {
			G := mustGroup(t, tt.id, tt.kind)
			spec := mustSpec(t, tt.spec)

			count, err := libpolya.CountColorings(spec, G)
			require.NoError(t, err)

			brute, err := libpolya.CountOrbitsBruteForce(ctx, spec, G)
			require.NoError(t, err)
			assert.Equal(t, count.Int64(), int64(brute))
		})
	}
}

func TestCanonicSet(t *testing.T) {
	G := mustGroup(t, solids.Cube, gopolya.Face)
	set := libpolya.NewCanonicSet(G)
	defer set.Close()

	c := gopolya.Coloring{0, 0, 0, 1, 1, 1}
	assert.True(t, set.TryAddColoring(c))
	assert.False(t, set.TryAddColoring(c))

	// Every image of c is in the same orbit
	for i := 0; i < G.Order(); i++ {
		assert.False(t, set.TryAddColoring(c.Permuted(G.Inverse(i))))
	}
	assert.Equal(t, 1, set.Len())
	assert.NoError(t, set.Err())

	set.Close()
	assert.Equal(t, 0, set.Len())
	assert.True(t, set.TryAddColoring(c))
}

func TestCanonicSetStorageError(t *testing.T) {
	// An empty coloring canonizes to an empty key, which badger refuses.
	set := libpolya.NewCanonicSet(emptyGroup{0})
	defer set.Close()

	assert.False(t, set.TryAddColoring(gopolya.Coloring{}))
	require.Error(t, set.Err())
	assert.False(t, set.TryAddColoring(gopolya.Coloring{}))
	assert.Equal(t, 0, set.Len())

	set.Close()
	assert.NoError(t, set.Err())
}

func TestCountOrbitsBruteForceCancel(t *testing.T) {
	G := mustGroup(t, solids.Icosahedron, gopolya.Vertex)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := libpolya.CountOrbitsBruteForce(ctx, mustSpec(t, "X:6, Y:6"), G)
	assert.ErrorIs(t, err, context.Canceled)
}
