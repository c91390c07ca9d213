package libpolya

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"github.com/polyasystems/gopolya/gopolya"
)

// GroupCache holds built groups keyed by (solid, element kind).
//
// Entries are built on first use and never invalidated.  If a catalog is given, a miss is first
// looked up there (and re-verified) before the group is rebuilt, and rebuilt groups are stored to it.
// A GroupCache is safe for concurrent use.
type GroupCache struct {
	Tolerance float64

	mu      sync.Mutex
	entries map[gopolya.GroupKey]*cacheEntry
	catalog gopolya.GroupCatalog
}

type cacheEntry struct {
	once  sync.Once
	group *Group
	err   error
}

// NewGroupCache returns an empty cache.  catalog may be nil.
func NewGroupCache(catalog gopolya.GroupCatalog, tol float64) *GroupCache {
	if tol <= 0 {
		tol = gopolya.DefaultTolerance
	}
	return &GroupCache{
		Tolerance: tol,
		entries:   make(map[gopolya.GroupKey]*cacheEntry),
		catalog:   catalog,
	}
}

// Group returns the rotation group of the given solid acting on the given element kind.
func (cache *GroupCache) Group(geom gopolya.GeometryProvider, kind gopolya.ElementKind) (*Group, error) {
	key := gopolya.GroupKey{
		Solid: geom.Solid(),
		Kind:  kind,
	}

	cache.mu.Lock()
	entry := cache.entries[key]
	if entry == nil {
		entry = &cacheEntry{}
		cache.entries[key] = entry
	}
	cache.mu.Unlock()

	entry.once.Do(func() {
		entry.group, entry.err = cache.loadOrBuild(key, geom)
	})

	// Failed builds are not cached so that a later call can retry.
	if entry.err != nil {
		cache.mu.Lock()
		if cache.entries[key] == entry {
			delete(cache.entries, key)
		}
		cache.mu.Unlock()
	}
	return entry.group, entry.err
}

// Len returns the number of groups currently held.
func (cache *GroupCache) Len() int {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	return len(cache.entries)
}

func (cache *GroupCache) loadOrBuild(key gopolya.GroupKey, geom gopolya.GeometryProvider) (*Group, error) {
	if cache.catalog != nil {
		G, err := cache.loadFromCatalog(key, geom)
		if err != nil {
			klog.Warningf("discarding catalog entry for %v: %v", key, err)
		} else if G != nil {
			klog.V(2).Infof("loaded %v (order %d) from catalog", key, G.Order())
			return G, nil
		}
	}

	strat, err := StrategyFor(key.Kind, cache.Tolerance)
	if err != nil {
		return nil, err
	}
	PG, err := strat.BuildGroup(geom)
	if err != nil {
		return nil, err
	}
	G := PG.(*Group)

	if cache.catalog != nil && !cache.catalog.IsReadOnly() {
		if err = cache.catalog.StoreGroup(key, G); err != nil {
			klog.Warningf("failed to store %v: %v", key, err)
		}
	}
	return G, nil
}

func (cache *GroupCache) loadFromCatalog(key gopolya.GroupKey, geom gopolya.GeometryProvider) (*Group, error) {
	elems, err := cache.catalog.LoadGroup(key)
	if err != nil || elems == nil {
		return nil, err
	}

	var n int
	switch key.Kind {
	case gopolya.Vertex:
		n = geom.NumVertices()
	case gopolya.Face:
		n = len(geom.Faces())
	default:
		return nil, errors.Wrapf(gopolya.ErrUnsupportedKind, "element kind %d", key.Kind)
	}
	return NewGroupFromElements(n, elems, geom.GroupOrder())
}
