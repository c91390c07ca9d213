package libpolya

import (
	"math"

	"github.com/pkg/errors"
	"github.com/polyasystems/gopolya/gopolya"
)

type Vec3 = gopolya.Vec3

func Add(a, b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func Sub(a, b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func Scale(a Vec3, s float64) Vec3 {
	return Vec3{a[0] * s, a[1] * s, a[2] * s}
}

func Dot(a, b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func Cross(a, b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func Norm(a Vec3) float64 {
	return math.Sqrt(Dot(a, a))
}

// Normalize returns a scaled to unit length (or a itself if a is zero).
func Normalize(a Vec3) Vec3 {
	n := Norm(a)
	if n == 0 {
		return a
	}
	return Scale(a, 1/n)
}

// Centroid returns the mean of the points at the given indices.
func Centroid(points []Vec3, indices []int) Vec3 {
	var c Vec3
	for _, i := range indices {
		c = Add(c, points[i])
	}
	if len(indices) > 0 {
		c = Scale(c, 1/float64(len(indices)))
	}
	return c
}

// Rotate rotates v about the unit axis k by theta radians (Rodrigues' formula).
func Rotate(v, k Vec3, theta float64) Vec3 {
	cos, sin := math.Cos(theta), math.Sin(theta)
	r := Scale(v, cos)
	r = Add(r, Scale(Cross(k, v), sin))
	r = Add(r, Scale(k, Dot(k, v)*(1-cos)))
	return r
}

// MatchPoint returns the index of the point nearest to p.
//
// The match must be unique and within tol: if no point is within tol, or if more than one is,
// ErrCentroidMatch is returned since the points or the transformation that produced p are inconsistent.
func MatchPoint(points []Vec3, p Vec3, tol float64) (int, error) {
	best, bestDist := -1, math.Inf(1)
	within := 0
	for i, pi := range points {
		d := Norm(Sub(pi, p))
		if d <= tol {
			within++
		}
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	if within == 0 {
		return -1, errors.Wrapf(gopolya.ErrCentroidMatch, "nearest point is %g away (tolerance %g)", bestDist, tol)
	}
	if within > 1 {
		return -1, errors.Wrapf(gopolya.ErrCentroidMatch, "%d points lie within tolerance %g", within, tol)
	}
	return best, nil
}

// PermFromTransform maps each point through xform and matches the result to the original points,
// returning the induced permutation.
func PermFromTransform(points []Vec3, xform func(Vec3) Vec3, tol float64) (gopolya.Perm, error) {
	p := make(gopolya.Perm, len(points))
	for i, pi := range points {
		j, err := MatchPoint(points, xform(pi), tol)
		if err != nil {
			return nil, errors.Wrapf(err, "point %d", i)
		}
		p[i] = j
	}
	if err := p.Validate(); err != nil {
		return nil, errors.Wrap(gopolya.ErrCentroidMatch, err.Error())
	}
	return p, nil
}
