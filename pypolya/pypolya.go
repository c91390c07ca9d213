package pypolya

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/go-python/gpython/py"
	"github.com/polyasystems/gopolya/gopolya"
	"github.com/polyasystems/gopolya/libpolya"
	"github.com/polyasystems/gopolya/libpolya/catalog"
	"github.com/polyasystems/gopolya/libpolya/solids"
)

var (
	LIB_VERSION = "v1.2024.1"
)

var (
	pyColoringStreamType = py.NewType("ColoringStream", "gopolya.ColoringStream")
	pyWorkspaceType      = py.NewType("Workspace", "collects active session resources and catalogs")
)

const (
	kWorkspaceAttr = "_Workspace"
)

// Workspace holds the groups built during a script session.
//
// Streams started from a workspace run under its context, so closing the workspace stops them.
type Workspace struct {
	CatalogCtx gopolya.CatalogContext
	Groups     *libpolya.GroupCache
	Config     gopolya.Config

	ctx    context.Context
	cancel context.CancelFunc
}

func newWorkspace(cfg gopolya.Config) *Workspace {
	ws := &Workspace{
		CatalogCtx: gopolya.NewCatalogContext(),
		Groups:     libpolya.NewGroupCache(nil, cfg.Tolerance),
		Config:     cfg,
	}
	ws.ctx, ws.cancel = context.WithCancel(context.Background())
	return ws
}

// Context ends when this workspace closes.
func (ws *Workspace) Context() context.Context {
	return ws.ctx
}

func (ws *Workspace) Close() {
	ws.cancel()
	ws.CatalogCtx.Close()
	<-ws.CatalogCtx.Done()
}

func (ws *Workspace) Type() *py.Type {
	return pyWorkspaceType
}

func getWorkspace(module py.Object) *Workspace {
	wsObj, _ := py.GetAttrString(module, kWorkspaceAttr)
	if wsObj == nil {
		wsObj = newWorkspace(gopolya.DefaultConfig())
		py.SetAttrString(module, kWorkspaceAttr, wsObj)
	}
	return wsObj.(*Workspace)
}

func py_GetWorkspace(module py.Object, args py.Tuple) (py.Object, error) {
	return getWorkspace(module), nil
}

// Arg 1 (str): catalog pathname
// Arg 2 (bool): read-only
func py_Workspace_OpenCatalog(self py.Object, args py.Tuple) (py.Object, error) {
	ws := self.(*Workspace)

	var pathname string
	var readOnly bool
	err := py.LoadTuple(args, []interface{}{&pathname, &readOnly})
	if err != nil {
		return nil, err
	}

	opts := gopolya.CatalogOpts{
		ReadOnly:   readOnly,
		DbPathName: pathname,
	}
	cat, err := catalog.OpenCatalog(ws.CatalogCtx, opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}

	// Groups built so far are dropped so that subsequent lookups go through the catalog.
	ws.Groups = libpolya.NewGroupCache(cat, ws.Config.Tolerance)
	return py.None, nil
}

func loadGroup(module py.Object, solidName, kindName string) (*libpolya.Group, error) {
	id, err := solids.LookupSolid(solidName)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	kind, err := gopolya.ParseElementKind(kindName)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	geom, err := solids.Platonic(id)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	G, err := getWorkspace(module).Groups.Group(geom, kind)
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return G, nil
}

func loadSpec(specStr string) (gopolya.ColorSpec, error) {
	spec, err := libpolya.ParseColorSpec(specStr)
	if err != nil {
		return spec, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return spec, nil
}

func bigToPy(n *big.Int) py.Object {
	if n.IsInt64() {
		return py.Int(n.Int64())
	}
	return (*py.BigInt)(n)
}

// Arg 1 (str): solid name
// Arg 2 (str): element kind ("vertex" or "face")
// Arg 3 (str): color spec, e.g. "red:9, blue:6, green:5"
func py_Count(module py.Object, args py.Tuple) (py.Object, error) {
	var solidName, kindName, specStr string
	err := py.LoadTuple(args, []interface{}{&solidName, &kindName, &specStr})
	if err != nil {
		return nil, err
	}
	G, err := loadGroup(module, solidName, kindName)
	if err != nil {
		return nil, err
	}
	spec, err := loadSpec(specStr)
	if err != nil {
		return nil, err
	}
	count, err := libpolya.CountColorings(spec, G)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return bigToPy(count), nil
}

// Arg 1 (str): solid name
// Arg 2 (str): element kind
// Arg 3 (int): number of colors
func py_CountUnconstrained(module py.Object, args py.Tuple) (py.Object, error) {
	var solidName, kindName string
	var numColors int32
	err := py.LoadTuple(args, []interface{}{&solidName, &kindName, &numColors})
	if err != nil {
		return nil, err
	}
	G, err := loadGroup(module, solidName, kindName)
	if err != nil {
		return nil, err
	}
	count, err := libpolya.CountUnconstrained(int(numColors), G)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return bigToPy(count), nil
}

// Arg 1 (str): solid name
// Arg 2 (str): element kind
// Arg 3 (str): color spec
// kwarg "max" (int): max number of representatives (default from config)
// kwarg "method" (str): "pruned" or "filter"
//
// Returns a tuple (reps, truncated): reps is a list of strings, each the space-separated labels of
// one representative, and truncated is True if more representatives exist beyond the cap.
func py_Enumerate(module py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	G, spec, opts, err := loadEnumArgs(module, args, kwargs)
	if err != nil {
		return nil, err
	}

	res, err := libpolya.EnumerateColorings(getWorkspace(module).Context(), spec, G, opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}

	items := make([]py.Object, len(res.Colorings))
	for i, c := range res.Colorings {
		items[i] = py.String(strings.Join(c.Labels(spec), " "))
	}
	return py.Tuple{py.NewListFromItems(items), py.NewBool(res.Truncated)}, nil
}

// Same args as py_Enumerate; returns a ColoringStream.
// The stream's search stops when it is drained, cancelled, or the workspace closes.
func py_Stream(module py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	G, spec, opts, err := loadEnumArgs(module, args, kwargs)
	if err != nil {
		return nil, err
	}

	stream, err := libpolya.StreamRepresentatives(getWorkspace(module).Context(), spec, G, opts)
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return wrapColoringStream(stream, spec, module), nil
}

func loadEnumArgs(module py.Object, args py.Tuple, kwargs py.StringDict) (G *libpolya.Group, spec gopolya.ColorSpec, opts gopolya.EnumOpts, err error) {
	var solidName, kindName, specStr string
	if err = py.LoadTuple(args, []interface{}{&solidName, &kindName, &specStr}); err != nil {
		return
	}
	if G, err = loadGroup(module, solidName, kindName); err != nil {
		return
	}
	if spec, err = loadSpec(specStr); err != nil {
		return
	}

	ws := getWorkspace(module)
	opts = ws.Config.EnumOpts()

	if obj, exists := kwargs["max"]; exists {
		var maxResults py.Int
		if maxResults, err = py.GetInt(obj); err != nil {
			return
		}
		opts.MaxResults = int(maxResults)
	}
	if obj, exists := kwargs["method"]; exists {
		if opts.Method, err = gopolya.ParseEnumMethod(kwargString(obj)); err != nil {
			err = py.ExceptionNewf(py.ValueError, "%v", err)
		}
	}
	return
}

func kwargString(obj py.Object) string {
	if str, isStr := obj.(py.String); isStr {
		return string(str)
	}
	return ""
}

// Arg 1 (str): solid name
// Arg 2 (str): element kind
func py_GroupOrder(module py.Object, args py.Tuple) (py.Object, error) {
	var solidName, kindName string
	err := py.LoadTuple(args, []interface{}{&solidName, &kindName})
	if err != nil {
		return nil, err
	}
	G, err := loadGroup(module, solidName, kindName)
	if err != nil {
		return nil, err
	}
	return py.Int(G.Order()), nil
}

// Arg 1 (str): solid name
// Arg 2 (str): element kind
func py_CycleIndex(module py.Object, args py.Tuple) (py.Object, error) {
	var solidName, kindName string
	err := py.LoadTuple(args, []interface{}{&solidName, &kindName})
	if err != nil {
		return nil, err
	}
	G, err := loadGroup(module, solidName, kindName)
	if err != nil {
		return nil, err
	}
	return py.String(libpolya.CycleIndexOf(G).String()), nil
}

func py_Solids(module py.Object, args py.Tuple) (py.Object, error) {
	names := make(py.Tuple, len(solids.PlatonicIDs))
	for i, id := range solids.PlatonicIDs {
		names[i] = py.String(id)
	}
	return names, nil
}

type coloringStream struct {
	*gopolya.ColoringStream
	spec   gopolya.ColorSpec
	module py.Object // resolves groups for DropDupes
}

func (stream coloringStream) Type() *py.Type {
	return pyColoringStreamType
}

func wrapColoringStream(stream *gopolya.ColoringStream, spec gopolya.ColorSpec, module py.Object) py.Object {
	return py.Object(coloringStream{stream, spec, module})
}

func py_ColoringStream_Go(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(coloringStream)
	count := stream.PullAll()
	return py.Int(count), nil
}

// Returns True if the stream stopped at its cap with representatives remaining (known once drained).
func py_ColoringStream_Truncated(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(coloringStream)
	return py.NewBool(stream.Truncated()), nil
}

// Stops the search feeding this stream.
func py_ColoringStream_Cancel(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(coloringStream)
	stream.Cancel()
	return py.None, nil
}

type echoToWriter struct {
	stdout *os.File
	to     io.WriteCloser
}

func (echo *echoToWriter) Write(buf []byte) (int, error) {
	if echo.to == nil {
		return echo.stdout.Write(buf)
	}
	return echo.to.Write(buf)
}

func (echo *echoToWriter) Close() error {
	if echo.to != nil {
		return echo.to.Close()
	}
	return nil
}

var gOutCount = int32(0)

// kwarg "file" (str): if given, class lines are written there instead of stdout
// kwarg "label" (str): a label echoed before the class lines
func py_ColoringStream_Print(self py.Object, args py.Tuple, kwargs py.StringDict) (py.Object, error) {
	stream := self.(coloringStream)
	var pathname, label string

	if len(args) > 0 {
		label = kwargString(args[0])
	}
	if label == "" {
		label = kwargString(kwargs["label"])
	}
	pathname = kwargString(kwargs["file"])

	outNum := atomic.AddInt32(&gOutCount, 1)
	if label == "" {
		label = fmt.Sprintf("out[%d]", outNum)
	}

	writer := &echoToWriter{
		stdout: os.Stdout,
	}
	if len(pathname) > 0 {
		os.MkdirAll(filepath.Dir(pathname), 0700)

		file, err := os.OpenFile(pathname, os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0600)
		if err != nil {
			return nil, py.ExceptionNewf(py.FileNotFoundError, "%v", err)
		}
		writer.to = file
	} else {
		fmt.Fprintf(writer, "%s:\n", label)
	}

	next := stream.Print(writer, stream.spec)
	return wrapColoringStream(next, stream.spec, stream.module), nil
}

// Arg 1 (str): solid name
// Arg 2 (str): element kind
//
// Drops colorings equivalent to one already seen under the given solid's group.
func py_ColoringStream_DropDupes(self py.Object, args py.Tuple) (py.Object, error) {
	stream := self.(coloringStream)

	var solidName, kindName string
	err := py.LoadTuple(args, []interface{}{&solidName, &kindName})
	if err != nil {
		return nil, err
	}
	G, err := loadGroup(stream.module, solidName, kindName)
	if err != nil {
		return nil, err
	}

	set := libpolya.NewCanonicSet(G)
	next := stream.AddTo(set)
	return wrapColoringStream(next, stream.spec, stream.module), nil
}

func init() {

	/////////////////////////////////
	// Workspace
	{
		pyWorkspaceType.Dict["OpenCatalog"] = py.MustNewMethod("OpenCatalog", py_Workspace_OpenCatalog, 0, "routes group lookups through the given catalog")
	}

	/////////////////////////////////
	// ColoringStream
	{
		pyColoringStreamType.Dict["Go"] = py.MustNewMethod("Go", py_ColoringStream_Go, 0, "counts the number of colorings output from the ColoringStream")
		pyColoringStreamType.Dict["Print"] = py.MustNewMethod("Print", py_ColoringStream_Print, 0, "prints a Class line for each coloring from the ColoringStream")
		pyColoringStreamType.Dict["DropDupes"] = py.MustNewMethod("DropDupes", py_ColoringStream_DropDupes, 0, "drops colorings equivalent to one already seen")
		pyColoringStreamType.Dict["Truncated"] = py.MustNewMethod("Truncated", py_ColoringStream_Truncated, 0, "returns True if the stream stopped at its cap with more colorings remaining")
		pyColoringStreamType.Dict["Cancel"] = py.MustNewMethod("Cancel", py_ColoringStream_Cancel, 0, "stops the search feeding the ColoringStream")
	}

	{
		methods := []*py.Method{
			py.MustNewMethod("count", py_Count, 0, "count(solid, kind, spec) -> number of colorings up to rotation"),
			py.MustNewMethod("count_unconstrained", py_CountUnconstrained, 0, "count_unconstrained(solid, kind, c) -> number of c-colorings up to rotation"),
			py.MustNewMethod("enumerate", py_Enumerate, 0, "enumerate(solid, kind, spec, max=, method=) -> (representatives, truncated)"),
			py.MustNewMethod("stream", py_Stream, 0, "stream(solid, kind, spec, max=, method=) -> ColoringStream"),
			py.MustNewMethod("group_order", py_GroupOrder, 0, "group_order(solid, kind) -> order of the rotation group"),
			py.MustNewMethod("cycle_index", py_CycleIndex, 0, "cycle_index(solid, kind) -> cycle index polynomial"),
			py.MustNewMethod("solids", py_Solids, 0, "solids() -> names of the known solids"),
			py.MustNewMethod("GetWorkspace", py_GetWorkspace, 0, ""),
		}

		globals := py.StringDict{
			"LIB_VERSION":  py.String(LIB_VERSION),
			"MAX_ELEMENTS": py.Int(gopolya.MaxElements),
		}

		py.RegisterModule(&py.ModuleImpl{
			Info: py.ModuleInfo{
				Name: "polya",
				Doc:  "polyhedron coloring gpython module",
			},
			Methods: methods,
			Globals: globals,
			OnContextClosed: func(m *py.Module) {
				wsObj, _ := py.GetAttrString(m, kWorkspaceAttr)
				if wsObj != nil {
					wsObj.(*Workspace).Close()
				}
			},
		})
	}
}
