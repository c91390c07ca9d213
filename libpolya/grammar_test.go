package libpolya_test

import (
	"testing"

	"github.com/polyasystems/gopolya/gopolya"
	"github.com/polyasystems/gopolya/libpolya"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColorSpec(t *testing.T) {
	spec, err := libpolya.ParseColorSpec("red:9, blue:6, green:5")
	require.NoError(t, err)
	assert.Equal(t, []gopolya.ColorCount{{Label: "red", Count: 9}, {Label: "blue", Count: 6}, {Label: "green", Count: 5}}, spec.Colors)

	spec, err = libpolya.ParseColorSpec("X=6 Y=6")
	require.NoError(t, err)
	assert.Equal(t, []gopolya.ColorCount{{Label: "X", Count: 6}, {Label: "Y", Count: 6}}, spec.Colors)

	spec, err = libpolya.ParseColorSpec(`"light blue":3, 2:1`)
	require.NoError(t, err)
	assert.Equal(t, []gopolya.ColorCount{{Label: "light blue", Count: 3}, {Label: "2", Count: 1}}, spec.Colors)

	for _, bad := range []string{"", "red", "red:", "red:x", "red:-1"} {
		_, err = libpolya.ParseColorSpec(bad)
		assert.ErrorIs(t, err, gopolya.ErrBadColorSpec, "%q", bad)
	}
}

func TestParseCycles(t *testing.T) {
	cycles, err := libpolya.ParseCycles("(0 1 2)(3 4)")
	require.NoError(t, err)
	assert.Equal(t, gopolya.Cycles{{0, 1, 2}, {3, 4}}, cycles)

	p, err := libpolya.ParsePerm("(0 1 2)", 4)
	require.NoError(t, err)
	assert.Equal(t, gopolya.Perm{1, 2, 0, 3}, p)

	p, err = libpolya.ParsePerm("(0, 3)", 4)
	require.NoError(t, err)
	assert.Equal(t, gopolya.Perm{3, 1, 2, 0}, p)

	_, err = libpolya.ParsePerm("(0 5)", 3)
	assert.ErrorIs(t, err, gopolya.ErrBadPerm)

	_, err = libpolya.ParseCycles("(0 1")
	assert.ErrorIs(t, err, gopolya.ErrBadPerm)

	gens, err := libpolya.ParseGenerators("(0 1 2 3); (0 1)", 4)
	require.NoError(t, err)
	assert.Equal(t, []gopolya.Perm{{1, 2, 3, 0}, {1, 0, 2, 3}}, gens)
}

func TestCyclesRoundTrip(t *testing.T) {
	G := mustGroup(t, "icosahedron", gopolya.Face)
	for i := 0; i < G.Order(); i++ {
		p, err := libpolya.ParsePerm(G.Cycles(i).String(), G.N())
		require.NoError(t, err)
		assert.Equal(t, G.Element(i), p)
	}
}
