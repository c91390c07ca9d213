package catalog_test

import (
	"sync"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/polyasystems/gopolya/gopolya"
	"github.com/polyasystems/gopolya/libpolya"
	"github.com/polyasystems/gopolya/libpolya/catalog"
	"github.com/polyasystems/gopolya/libpolya/solids"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildGroup(t *testing.T, id gopolya.SolidID, kind gopolya.ElementKind) *libpolya.Group {
	geom, err := solids.Platonic(id)
	require.NoError(t, err)
	G, err := libpolya.NewGroupCache(nil, 0).Group(geom, kind)
	require.NoError(t, err)
	return G
}

func closeCtx(catCtx gopolya.CatalogContext) {
	catCtx.Close()
	<-catCtx.Done()
}

func TestCatalogRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cube := buildGroup(t, solids.Cube, gopolya.Face)
	icosa := buildGroup(t, solids.Icosahedron, gopolya.Vertex)

	cubeKey := gopolya.GroupKey{Solid: solids.Cube, Kind: gopolya.Face}
	icosaKey := gopolya.GroupKey{Solid: solids.Icosahedron, Kind: gopolya.Vertex}

	{
		catCtx := gopolya.NewCatalogContext()
		cat, err := catalog.OpenCatalog(catCtx, gopolya.CatalogOpts{DbPathName: dir})
		require.NoError(t, err)
		assert.False(t, cat.IsReadOnly())

		elems, err := cat.LoadGroup(cubeKey)
		require.NoError(t, err)
		assert.Nil(t, elems)

		require.NoError(t, cat.StoreGroup(cubeKey, cube))
		require.NoError(t, cat.StoreGroup(icosaKey, icosa))
		require.NoError(t, cat.StoreGroup(cubeKey, cube)) // already present
		require.NoError(t, cat.Close())
		closeCtx(catCtx)
	}

	catCtx := gopolya.NewCatalogContext()
	defer closeCtx(catCtx)

	cat, err := catalog.OpenCatalog(catCtx, gopolya.CatalogOpts{DbPathName: dir, ReadOnly: true})
	require.NoError(t, err)
	assert.True(t, cat.IsReadOnly())
	assert.Equal(t, 2, cat.(interface{ NumGroups() int }).NumGroups())

	elems, err := cat.LoadGroup(cubeKey)
	require.NoError(t, err)
	assert.Equal(t, cube.Elements(), elems)

	elems, err = cat.LoadGroup(icosaKey)
	require.NoError(t, err)
	G, err := libpolya.NewGroupFromElements(12, elems, 60)
	require.NoError(t, err)
	assert.Equal(t, libpolya.CycleIndexOf(icosa).String(), libpolya.CycleIndexOf(G).String())

	err = cat.StoreGroup(gopolya.GroupKey{Solid: solids.Cube, Kind: gopolya.Vertex}, cube)
	assert.ErrorIs(t, err, gopolya.ErrBadCatalogParam)
}

func TestCatalogParams(t *testing.T) {
	catCtx := gopolya.NewCatalogContext()
	defer closeCtx(catCtx)

	_, err := catalog.OpenCatalog(catCtx, gopolya.CatalogOpts{ReadOnly: true})
	assert.ErrorIs(t, err, gopolya.ErrBadCatalogParam)
}

func TestCatalogContextClosesCatalogs(t *testing.T) {
	catCtx := gopolya.NewCatalogContext()
	_, err := catalog.OpenCatalog(catCtx, gopolya.CatalogOpts{})
	require.NoError(t, err)
	_, err = catalog.OpenCatalog(catCtx, gopolya.CatalogOpts{})
	require.NoError(t, err)

	// Done is only signaled once every attached catalog has closed.
	closeCtx(catCtx)
}

func TestCatalogUseAfterClose(t *testing.T) {
	G := buildGroup(t, solids.Cube, gopolya.Vertex)
	key := gopolya.GroupKey{Solid: solids.Cube, Kind: gopolya.Vertex}

	catCtx := gopolya.NewCatalogContext()
	cat, err := catalog.OpenCatalog(catCtx, gopolya.CatalogOpts{})
	require.NoError(t, err)
	require.NoError(t, cat.StoreGroup(key, G))

	// Loads racing the context's close either succeed or report a closed catalog.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				elems, err := cat.LoadGroup(key)
				if err != nil {
					assert.ErrorIs(t, err, gopolya.ErrBadCatalogParam)
					return
				}
				assert.Len(t, elems, 24)
			}
		}()
	}
	closeCtx(catCtx)
	wg.Wait()

	_, err = cat.LoadGroup(key)
	assert.ErrorIs(t, err, gopolya.ErrBadCatalogParam)
	err = cat.StoreGroup(key, G)
	assert.ErrorIs(t, err, gopolya.ErrBadCatalogParam)
}

func TestGroupRecord(t *testing.T) {
	G := buildGroup(t, solids.Tetrahedron, gopolya.Vertex)
	rec := catalog.NewGroupRecord(gopolya.GroupKey{Solid: solids.Tetrahedron, Kind: gopolya.Vertex}, G)
	assert.Len(t, rec.Elements, 4*12)

	buf, err := proto.Marshal(rec)
	require.NoError(t, err)

	var rec2 catalog.GroupRecord
	require.NoError(t, proto.Unmarshal(buf, &rec2))
	perms, err := rec2.Perms()
	require.NoError(t, err)
	assert.Equal(t, G.Elements(), perms)

	rec2.Elements = rec2.Elements[:len(rec2.Elements)-1]
	_, err = rec2.Perms()
	assert.ErrorIs(t, err, gopolya.ErrBadGroupRecord)

	rec2.Elements = append(rec2.Elements[:0], make([]byte, 4*12)...)
	_, err = rec2.Perms()
	assert.ErrorIs(t, err, gopolya.ErrBadGroupRecord)
}
