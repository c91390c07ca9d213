package gopolya

const (

	// MaxElements is the max number of elements (vertices or faces) a group may act on.
	// Permutation keys and colorings are byte encoded, so this must fit in a byte.
	MaxElements = 255

	// MaxColors is the max number of distinct colors in a ColorSpec.
	MaxColors = 255

	// DefaultTolerance is the max distance allowed when matching a rotated point (vertex or face centroid)
	// to a known point of the same solid.  Coordinates are normalized to the unit sphere.
	DefaultTolerance = 1e-6

	// DefaultMaxResults is the default cap on the number of representatives returned by an enumeration.
	DefaultMaxResults = 5000
)

// ElementKind identifies which elements of a solid are being colored.
type ElementKind int32

const (
	Vertex ElementKind = iota + 1
	Face
)

func (kind ElementKind) String() string {
	switch kind {
	case Vertex:
		return "vertex"
	case Face:
		return "face"
	}
	return "unknown"
}

// SolidID names a solid known to a GeometryProvider, e.g. "dodecahedron".
type SolidID string

// GroupKey identifies a built PermutationGroup: one per (solid, element kind) pair.
type GroupKey struct {
	Solid SolidID
	Kind  ElementKind
}

func (key GroupKey) String() string {
	return string(key.Solid) + "/" + key.Kind.String()
}

// Vec3 is a point or direction in 3-space.
type Vec3 [3]float64

// GeometryProvider supplies the structure of a solid needed to build its rotation group.
type GeometryProvider interface {

	// Solid returns the identifier of this solid.
	Solid() SolidID

	// NumVertices returns the number of vertices of this solid.
	NumVertices() int

	// GroupOrder returns the theoretically known order of the rotation group (0 if unknown).
	GroupOrder() int

	// VertexGenerators returns vertex permutations that generate the rotation group.
	VertexGenerators() []Perm

	// Faces returns the vertex index set of each face.  May be nil if faces are not known.
	Faces() [][]int

	// VertexCoords returns the coordinates of each vertex.  May be nil if faces are not known.
	VertexCoords() []Vec3
}

// PermutationGroup is a finite group of permutations over 0..N()-1.
// Once built, a PermutationGroup is immutable and safe to share across goroutines.
type PermutationGroup interface {

	// N is the number of elements the group acts on.
	N() int

	// Order is the number of permutations in the group.
	Order() int

	// Element returns the i-th permutation (0 <= i < Order()).  The caller must not modify it.
	Element(i int) Perm

	// Inverse returns the inverse of the i-th permutation.  The caller must not modify it.
	Inverse(i int) Perm

	// Cycles returns the cycle decomposition of the i-th permutation.  The caller must not modify it.
	Cycles(i int) Cycles
}

// GroupStrategy derives the rotation group acting on one kind of element of a solid.
type GroupStrategy interface {

	// Kind returns the element kind the produced groups act on.
	Kind() ElementKind

	// BuildGroup derives the rotation group for the given solid.
	BuildGroup(geom GeometryProvider) (PermutationGroup, error)
}

// GroupCatalog persists built groups so they don't need to be rebuilt each session.
type GroupCatalog interface {

	// LoadGroup returns the stored elements for the given key, or nil if none are stored.
	LoadGroup(key GroupKey) ([]Perm, error)

	// StoreGroup stores the elements of the given group under the given key.
	StoreGroup(key GroupKey, G PermutationGroup) error

	// Returns true if this catalog was opened for read-only access.
	IsReadOnly() bool

	Close() error
}

// CatalogContext is a container for open / active GroupCatalog instances.
type CatalogContext interface {

	// Attaches the given GroupCatalog to this context.
	AttachCatalog(cat GroupCatalog)

	// Detaches the given GroupCatalog from this context.
	DetachCatalog(cat GroupCatalog)

	// Closes all open catalogs to be closed then closes.
	Close()

	// Signals when Close() completed and all open catalogs have been closed
	Done() <-chan struct{}
}

// CatalogOpts specifies params for opening a GroupCatalog
type CatalogOpts struct {
	DbPathName string // omit for in-memory db
	ReadOnly   bool   // open in read-only mode
}

// EnumMethod selects how orbit representatives are searched for.
type EnumMethod int32

const (

	// MethodPruned runs a backtracking search that cuts any branch whose assigned prefix
	// already has a lexicographically smaller image under some group element.
	MethodPruned EnumMethod = iota

	// MethodFilter generates every coloring meeting the ColorSpec and keeps the ones that are
	// the minimum of their orbit.  Exponential; intended for cross-validation on small instances.
	MethodFilter
)

func (method EnumMethod) String() string {
	switch method {
	case MethodPruned:
		return "pruned"
	case MethodFilter:
		return "filter"
	}
	return "unknown"
}

// EnumOpts specifies params for an orbit representative enumeration.
type EnumOpts struct {
	MaxResults int        // 0 denotes no cap
	Method     EnumMethod // search method
}

// EnumResult is the output of an orbit representative enumeration.
type EnumResult struct {
	Colorings []Coloring // one canonical coloring per orbit, in increasing lex order
	Truncated bool       // set if more representatives exist beyond opts.MaxResults
}

// PrintOpts specifies what is printed when writing colorings
type PrintOpts struct {
	Kind      ElementKind // Element kind used in the header line
	Header    bool        // If set, a "<Kind> colorings with N classes" line is written first
	Truncated bool        // If set, the colorings stopped at a result cap and are marked as incomplete
}

// DefaultPrintOpts{}
var DefaultPrintOpts = PrintOpts{
	Kind:   Vertex,
	Header: true,
}
