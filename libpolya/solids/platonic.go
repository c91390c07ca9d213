package solids

import (
	"math"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/polyasystems/gopolya/gopolya"
	"github.com/polyasystems/gopolya/libpolya"
)

// Platonic solid IDs
const (
	Tetrahedron  gopolya.SolidID = "tetrahedron"
	Cube         gopolya.SolidID = "cube"
	Octahedron   gopolya.SolidID = "octahedron"
	Dodecahedron gopolya.SolidID = "dodecahedron"
	Icosahedron  gopolya.SolidID = "icosahedron"
)

// PlatonicIDs lists the five Platonic solids in order of face count.
var PlatonicIDs = []gopolya.SolidID{
	Tetrahedron,
	Cube,
	Octahedron,
	Dodecahedron,
	Icosahedron,
}

var aliases = map[string]gopolya.SolidID{
	"tetra":      Tetrahedron,
	"hexahedron": Cube,
	"octa":       Octahedron,
	"dodeca":     Dodecahedron,
	"icosa":      Icosahedron,
}

// LookupSolid resolves a solid name (or a common abbreviation such as "dodeca") into a SolidID.
func LookupSolid(name string) (gopolya.SolidID, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, id := range PlatonicIDs {
		if string(id) == name {
			return id, nil
		}
	}
	if id, exists := aliases[name]; exists {
		return id, nil
	}
	return "", errors.Wrapf(gopolya.ErrUnknownSolid, "%q", name)
}

// Solid is a convex polyhedron given by its vertex coordinates and the order of its rotation group.
// Faces and rotation generators are derived from the coordinates.
type Solid struct {
	id         gopolya.SolidID
	order      int
	coords     []gopolya.Vec3
	faces      [][]int
	generators []gopolya.Perm
}

func (S *Solid) Solid() gopolya.SolidID           { return S.id }
func (S *Solid) NumVertices() int                 { return len(S.coords) }
func (S *Solid) NumFaces() int                    { return len(S.faces) }
func (S *Solid) GroupOrder() int                  { return S.order }
func (S *Solid) VertexGenerators() []gopolya.Perm { return S.generators }
func (S *Solid) Faces() [][]int                   { return S.faces }
func (S *Solid) VertexCoords() []gopolya.Vec3     { return S.coords }

// NumElements returns the number of elements of the given kind.
func (S *Solid) NumElements(kind gopolya.ElementKind) (int, error) {
	switch kind {
	case gopolya.Vertex:
		return S.NumVertices(), nil
	case gopolya.Face:
		return S.NumFaces(), nil
	}
	return 0, errors.Wrapf(gopolya.ErrUnsupportedKind, "element kind %d", kind)
}

// Platonic returns the geometry of the given Platonic solid.
func Platonic(id gopolya.SolidID) (*Solid, error) {
	phi := (1 + math.Sqrt(5)) / 2
	var coords []gopolya.Vec3
	var order int

	switch id {
	case Tetrahedron:
		order = 12
		coords = []gopolya.Vec3{
			{1, 1, 1}, {1, -1, -1}, {-1, 1, -1}, {-1, -1, 1},
		}
	case Cube:
		order = 24
		for _, x := range signs(1) {
			for _, y := range signs(1) {
				for _, z := range signs(1) {
					coords = append(coords, gopolya.Vec3{x, y, z})
				}
			}
		}
	case Octahedron:
		order = 24
		coords = []gopolya.Vec3{
			{1, 0, 0}, {-1, 0, 0},
			{0, 1, 0}, {0, -1, 0},
			{0, 0, 1}, {0, 0, -1},
		}
	case Dodecahedron:
		order = 60
		for _, x := range signs(1) {
			for _, y := range signs(1) {
				for _, z := range signs(1) {
					coords = append(coords, gopolya.Vec3{x, y, z})
				}
			}
		}
		for _, a := range signs(1 / phi) {
			for _, b := range signs(phi) {
				coords = append(coords, gopolya.Vec3{0, a, b})
			}
		}
		for _, a := range signs(1 / phi) {
			for _, b := range signs(phi) {
				coords = append(coords, gopolya.Vec3{a, b, 0})
			}
		}
		for _, a := range signs(phi) {
			for _, b := range signs(1 / phi) {
				coords = append(coords, gopolya.Vec3{a, 0, b})
			}
		}
	case Icosahedron:
		order = 60
		for _, a := range signs(1) {
			for _, b := range signs(phi) {
				coords = append(coords, gopolya.Vec3{0, a, b})
			}
		}
		for _, a := range signs(1) {
			for _, b := range signs(phi) {
				coords = append(coords, gopolya.Vec3{a, b, 0})
			}
		}
		for _, a := range signs(phi) {
			for _, b := range signs(1) {
				coords = append(coords, gopolya.Vec3{a, 0, b})
			}
		}
	default:
		return nil, errors.Wrapf(gopolya.ErrUnknownSolid, "%q", id)
	}

	return NewSolid(id, coords, order, gopolya.DefaultTolerance)
}

// NewSolid derives the faces and rotation generators of the convex polyhedron with the given vertices.
//
// Coordinates are normalized onto the unit sphere, so the polyhedron must be centered on the origin
// with all vertices equidistant from it.
func NewSolid(id gopolya.SolidID, coords []gopolya.Vec3, order int, tol float64) (*Solid, error) {
	if len(coords) < 4 || len(coords) > gopolya.MaxElements {
		return nil, errors.Wrapf(gopolya.ErrUnknownSolid, "%s: %d vertices is out of range", id, len(coords))
	}

	S := &Solid{
		id:     id,
		order:  order,
		coords: make([]gopolya.Vec3, len(coords)),
	}
	for i, v := range coords {
		S.coords[i] = libpolya.Normalize(v)
	}

	S.faces = hullFaces(S.coords, tol)
	if len(S.faces) < 4 {
		return nil, errors.Wrapf(gopolya.ErrUnknownSolid, "%s: vertices do not span a solid", id)
	}

	var err error
	S.generators, err = S.rotationGenerators(tol)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", id)
	}
	return S, nil
}

// rotationGenerators returns the rotation about vertex 0 and the rotation about the centroid of
// the first face containing vertex 0, each by the least angle that maps the solid onto itself.
func (S *Solid) rotationGenerators(tol float64) ([]gopolya.Perm, error) {
	degree := 0
	var face0 []int
	for _, face := range S.faces {
		for _, v := range face {
			if v == 0 {
				degree++
				if face0 == nil {
					face0 = face
				}
			}
		}
	}

	vtxAxis := S.coords[0]
	faceAxis := libpolya.Normalize(libpolya.Centroid(S.coords, face0))

	vtxTurn, err := libpolya.PermFromTransform(S.coords, func(v gopolya.Vec3) gopolya.Vec3 {
		return libpolya.Rotate(v, vtxAxis, 2*math.Pi/float64(degree))
	}, tol)
	if err != nil {
		return nil, errors.Wrap(err, "vertex rotation")
	}

	faceTurn, err := libpolya.PermFromTransform(S.coords, func(v gopolya.Vec3) gopolya.Vec3 {
		return libpolya.Rotate(v, faceAxis, 2*math.Pi/float64(len(face0)))
	}, tol)
	if err != nil {
		return nil, errors.Wrap(err, "face rotation")
	}

	return []gopolya.Perm{vtxTurn, faceTurn}, nil
}

// hullFaces returns the vertex sets of the faces of the convex hull of the given points.
//
// Every plane through three points that has no point strictly on its far side is a face plane;
// the face is every point lying on that plane.  Faces are returned in order of their lowest vertex sets.
func hullFaces(coords []gopolya.Vec3, tol float64) [][]int {
	N := len(coords)
	seen := make(map[string]struct{})
	var faces [][]int

	for i := 0; i < N; i++ {
		for j := i + 1; j < N; j++ {
			for k := j + 1; k < N; k++ {
				normal := libpolya.Cross(libpolya.Sub(coords[j], coords[i]), libpolya.Sub(coords[k], coords[i]))
				if libpolya.Norm(normal) <= tol {
					continue
				}
				normal = libpolya.Normalize(normal)

				var face []int
				above, below := false, false
				for m := 0; m < N && !(above && below); m++ {
					d := libpolya.Dot(normal, libpolya.Sub(coords[m], coords[i]))
					switch {
					case d > tol:
						above = true
					case d < -tol:
						below = true
					default:
						face = append(face, m)
					}
				}
				if above && below {
					continue
				}

				key := string(gopolya.Perm(face).AppendKey(nil))
				if _, exists := seen[key]; !exists {
					seen[key] = struct{}{}
					faces = append(faces, face)
				}
			}
		}
	}

	sort.Slice(faces, func(a, b int) bool {
		fa, fb := faces[a], faces[b]
		for i := 0; i < len(fa) && i < len(fb); i++ {
			if fa[i] != fb[i] {
				return fa[i] < fb[i]
			}
		}
		return len(fa) < len(fb)
	})
	return faces
}

func signs(x float64) []float64 {
	return []float64{x, -x}
}
