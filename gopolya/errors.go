package gopolya

import "errors"

// Errors
var (
	ErrBadPerm             = errors.New("bad permutation")
	ErrSizeMismatch        = errors.New("permutation sizes do not match")
	ErrGroupOrderMismatch  = errors.New("generator closure does not reach the expected group order")
	ErrCentroidMatch       = errors.New("ambiguous or out of tolerance centroid match")
	ErrBadColorSpec        = errors.New("bad color spec")
	ErrEmptyGroup          = errors.New("empty group")
	ErrNonIntegralQuotient = errors.New("burnside sum is not divisible by the group order")
	ErrUnknownSolid        = errors.New("unknown solid")
	ErrUnsupportedKind     = errors.New("unsupported element kind")
	ErrBadGroupRecord      = errors.New("bad group record")
	ErrBadCatalogParam     = errors.New("bad catalog param")
	ErrBadEnumMethod       = errors.New("bad enumeration method")
)
