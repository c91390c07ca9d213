package solids

import (
	"github.com/pkg/errors"
	"github.com/polyasystems/gopolya/gopolya"
	"github.com/polyasystems/gopolya/libpolya"
)

// Custom is a GeometryProvider given only by vertex generators, e.g. as read from cycle notation.
// Since it has no coordinates, only its vertex group can be built.
type Custom struct {
	id         gopolya.SolidID
	n          int
	order      int
	generators []gopolya.Perm
}

// NewCustom returns a provider for a group on n elements generated by the given permutations.
// order is the expected group order (0 if unknown).
func NewCustom(id gopolya.SolidID, n int, generators []gopolya.Perm, order int) (*Custom, error) {
	if n <= 0 || n > gopolya.MaxElements {
		return nil, errors.Wrapf(gopolya.ErrBadPerm, "%s: %d elements is out of range", id, n)
	}
	for i, g := range generators {
		if len(g) != n {
			return nil, errors.Wrapf(gopolya.ErrSizeMismatch, "%s: generator %d has size %d, expected %d", id, i, len(g), n)
		}
		if err := g.Validate(); err != nil {
			return nil, errors.Wrapf(err, "%s: generator %d", id, i)
		}
	}
	return &Custom{
		id:         id,
		n:          n,
		order:      order,
		generators: generators,
	}, nil
}

// ParseCustom reads ";" separated generators in cycle notation, such as `(0 1 2 3); (0 4 5)(1 7 2)(3 6 ...)`.
func ParseCustom(id gopolya.SolidID, n int, generators string, order int) (*Custom, error) {
	gens, err := libpolya.ParseGenerators(generators, n)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", id)
	}
	return NewCustom(id, n, gens, order)
}

func (C *Custom) Solid() gopolya.SolidID           { return C.id }
func (C *Custom) NumVertices() int                 { return C.n }
func (C *Custom) GroupOrder() int                  { return C.order }
func (C *Custom) VertexGenerators() []gopolya.Perm { return C.generators }
func (C *Custom) Faces() [][]int                   { return nil }
func (C *Custom) VertexCoords() []gopolya.Vec3     { return nil }
