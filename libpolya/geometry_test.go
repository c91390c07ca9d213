package libpolya_test

import (
	"math"
	"testing"

	"github.com/polyasystems/gopolya/gopolya"
	"github.com/polyasystems/gopolya/libpolya"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotate(t *testing.T) {
	z := libpolya.Vec3{0, 0, 1}
	v := libpolya.Rotate(libpolya.Vec3{1, 0, 0}, z, math.Pi/2)
	assert.InDelta(t, 0, v[0], 1e-12)
	assert.InDelta(t, 1, v[1], 1e-12)
	assert.InDelta(t, 0, v[2], 1e-12)
}

func TestMatchPoint(t *testing.T) {
	points := []libpolya.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

	i, err := libpolya.MatchPoint(points, libpolya.Vec3{0, 1 + 1e-9, 0}, 1e-6)
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	_, err = libpolya.MatchPoint(points, libpolya.Vec3{0.5, 0.5, 0}, 1e-6)
	assert.ErrorIs(t, err, gopolya.ErrCentroidMatch)

	// Ambiguous if two points are within tolerance
	_, err = libpolya.MatchPoint(points, libpolya.Vec3{0.5, 0.5, 0}, 1)
	assert.ErrorIs(t, err, gopolya.ErrCentroidMatch)
}

func TestPermFromTransform(t *testing.T) {
	square := []libpolya.Vec3{{1, 0, 0}, {0, 1, 0}, {-1, 0, 0}, {0, -1, 0}}
	z := libpolya.Vec3{0, 0, 1}

	p, err := libpolya.PermFromTransform(square, func(v libpolya.Vec3) libpolya.Vec3 {
		return libpolya.Rotate(v, z, math.Pi/2)
	}, 1e-6)
	require.NoError(t, err)
	assert.Equal(t, gopolya.Perm{1, 2, 3, 0}, p)

	_, err = libpolya.PermFromTransform(square, func(v libpolya.Vec3) libpolya.Vec3 {
		return libpolya.Rotate(v, z, math.Pi/4)
	}, 1e-6)
	assert.ErrorIs(t, err, gopolya.ErrCentroidMatch)
}
