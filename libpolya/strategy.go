package libpolya

import (
	"github.com/pkg/errors"
	"github.com/polyasystems/gopolya/gopolya"
)

// NativeStrategy builds the rotation group acting on vertices directly from a solid's vertex generators.
type NativeStrategy struct{}

func (NativeStrategy) Kind() gopolya.ElementKind {
	return gopolya.Vertex
}

func (NativeStrategy) BuildGroup(geom gopolya.GeometryProvider) (gopolya.PermutationGroup, error) {
	return buildVertexGroup(geom)
}

func buildVertexGroup(geom gopolya.GeometryProvider) (*Group, error) {
	G, err := BuildGroup(geom.NumVertices(), geom.VertexGenerators(), geom.GroupOrder())
	if err != nil {
		return nil, errors.Wrapf(err, "%s vertex group", geom.Solid())
	}
	return G, nil
}

// InducedStrategy builds the rotation group acting on faces.
//
// Each vertex generator is carried over to faces: the vertex permutation is applied to every face's
// vertex set and the centroid of the image is matched to the nearest face centroid of the solid.
type InducedStrategy struct {
	Tolerance float64 // max centroid match distance; 0 denotes gopolya.DefaultTolerance
}

func (InducedStrategy) Kind() gopolya.ElementKind {
	return gopolya.Face
}

func (strat InducedStrategy) BuildGroup(geom gopolya.GeometryProvider) (gopolya.PermutationGroup, error) {
	faces := geom.Faces()
	coords := geom.VertexCoords()
	if len(faces) == 0 || len(coords) != geom.NumVertices() {
		return nil, errors.Wrapf(gopolya.ErrUnsupportedKind, "%s has no face geometry", geom.Solid())
	}

	tol := strat.Tolerance
	if tol <= 0 {
		tol = gopolya.DefaultTolerance
	}

	// The vertex closure validates the generators before they are carried over to faces.
	if _, err := buildVertexGroup(geom); err != nil {
		return nil, err
	}

	gens, err := InduceFacePerms(faces, coords, geom.VertexGenerators(), tol)
	if err != nil {
		return nil, errors.Wrapf(err, "%s face generators", geom.Solid())
	}

	G, err := BuildGroup(len(faces), gens, geom.GroupOrder())
	if err != nil {
		return nil, errors.Wrapf(err, "%s face group", geom.Solid())
	}
	return G, nil
}

// FaceCentroids returns the centroid of each face.
func FaceCentroids(faces [][]int, coords []Vec3) []Vec3 {
	centroids := make([]Vec3, len(faces))
	for i, face := range faces {
		centroids[i] = Centroid(coords, face)
	}
	return centroids
}

// InduceFacePerms converts vertex permutations into the face permutations they induce.
func InduceFacePerms(faces [][]int, coords []Vec3, vertexPerms []gopolya.Perm, tol float64) ([]gopolya.Perm, error) {
	centroids := FaceCentroids(faces, coords)
	facePerms := make([]gopolya.Perm, 0, len(vertexPerms))

	var image []int
	for gi, g := range vertexPerms {
		if len(g) != len(coords) {
			return nil, errors.Wrapf(gopolya.ErrSizeMismatch, "vertex permutation %d has size %d, expected %d", gi, len(g), len(coords))
		}
		fp := make(gopolya.Perm, len(faces))
		for fi, face := range faces {
			image = image[:0]
			for _, v := range face {
				image = append(image, g[v])
			}
			fj, err := MatchPoint(centroids, Centroid(coords, image), tol)
			if err != nil {
				return nil, errors.Wrapf(err, "face %d under vertex permutation %d", fi, gi)
			}
			fp[fi] = fj
		}
		if err := fp.Validate(); err != nil {
			return nil, errors.Wrapf(gopolya.ErrCentroidMatch, "vertex permutation %d does not induce a face permutation", gi)
		}
		facePerms = append(facePerms, fp)
	}
	return facePerms, nil
}

// StrategyFor returns the strategy that builds groups acting on the given element kind.
func StrategyFor(kind gopolya.ElementKind, tol float64) (gopolya.GroupStrategy, error) {
	switch kind {
	case gopolya.Vertex:
		return NativeStrategy{}, nil
	case gopolya.Face:
		return InducedStrategy{Tolerance: tol}, nil
	}
	return nil, errors.Wrapf(gopolya.ErrUnsupportedKind, "element kind %d", kind)
}
