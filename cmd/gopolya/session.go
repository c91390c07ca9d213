package main

import (
	"github.com/pkg/errors"
	"github.com/polyasystems/gopolya/gopolya"
	"github.com/polyasystems/gopolya/libpolya"
	"github.com/polyasystems/gopolya/libpolya/catalog"
	"github.com/polyasystems/gopolya/libpolya/solids"
)

// session holds what a single command invocation needs: settings, the group cache, and any open catalog.
type session struct {
	cfg        gopolya.Config
	catalogCtx gopolya.CatalogContext
	groups     *libpolya.GroupCache
}

func openSession(cfg gopolya.Config) (*session, error) {
	sess := &session{
		cfg:        cfg,
		catalogCtx: gopolya.NewCatalogContext(),
	}

	var cat gopolya.GroupCatalog
	if cfg.CatalogPath != "" {
		var err error
		cat, err = catalog.OpenCatalog(sess.catalogCtx, gopolya.CatalogOpts{
			DbPathName: cfg.CatalogPath,
		})
		if err != nil {
			sess.Close()
			return nil, errors.Wrapf(err, "opening catalog %q", cfg.CatalogPath)
		}
	}
	sess.groups = libpolya.NewGroupCache(cat, cfg.Tolerance)
	return sess, nil
}

func (sess *session) Close() {
	sess.catalogCtx.Close()
	<-sess.catalogCtx.Done()
}

// group resolves a solid name and element kind into a built group.
func (sess *session) group(solidName, kindName string) (*libpolya.Group, gopolya.ElementKind, error) {
	kind, err := gopolya.ParseElementKind(kindName)
	if err != nil {
		return nil, 0, err
	}
	id, err := solids.LookupSolid(solidName)
	if err != nil {
		return nil, 0, err
	}
	geom, err := solids.Platonic(id)
	if err != nil {
		return nil, 0, err
	}
	G, err := sess.groups.Group(geom, kind)
	return G, kind, err
}

// customGroup builds the vertex group of a user-supplied generator set.
func (sess *session) customGroup(n int, generators string, order int) (*libpolya.Group, error) {
	geom, err := solids.ParseCustom("custom", n, generators, order)
	if err != nil {
		return nil, err
	}
	PG, err := libpolya.NativeStrategy{}.BuildGroup(geom)
	if err != nil {
		return nil, err
	}
	return PG.(*libpolya.Group), nil
}
