package libpolya

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"github.com/polyasystems/gopolya/gopolya"
)

// EnumerateColorings returns the lex-least coloring of every orbit of colorings meeting spec under G,
// in increasing lex order.
//
// If opts.MaxResults > 0, at most that many are returned and Truncated is set only if another exists.
// ctx is polled during the search; if it ends first, its error is returned.
func EnumerateColorings(ctx context.Context, spec gopolya.ColorSpec, G gopolya.PermutationGroup, opts gopolya.EnumOpts) (gopolya.EnumResult, error) {
	var res gopolya.EnumResult

	search, err := newOrbitSearch(spec, G, opts)
	if err != nil {
		return res, err
	}

	startTime := time.Now()
	search.emit = func(c gopolya.Coloring) bool {
		res.Colorings = append(res.Colorings, c)
		return true
	}
	if err = search.run(ctx); err != nil {
		return gopolya.EnumResult{}, err
	}
	res.Truncated = search.truncated

	klog.V(2).Infof("enumerated %d representatives (%s, %d nodes) in %v", len(res.Colorings), opts.Method, search.nodes, time.Since(startTime))
	if res.Truncated {
		klog.V(2).Infof("enumeration truncated at %d representatives", opts.MaxResults)
	}
	return res, nil
}

// StreamRepresentatives runs EnumerateColorings in its own goroutine, emitting each representative as it is found.
//
// The stream closes when the search completes, reaches opts.MaxResults, ctx ends, or the stream is cancelled.
// If it stopped at opts.MaxResults with more representatives remaining, Truncated() reports true once it closes.
func StreamRepresentatives(ctx context.Context, spec gopolya.ColorSpec, G gopolya.PermutationGroup, opts gopolya.EnumOpts) (*gopolya.ColoringStream, error) {
	search, err := newOrbitSearch(spec, G, opts)
	if err != nil {
		return nil, err
	}
	return search.stream(ctx), nil
}

// StreamAllColorings emits every coloring meeting spec (with no symmetry reduction), in increasing lex order.
func StreamAllColorings(ctx context.Context, spec gopolya.ColorSpec) (*gopolya.ColoringStream, error) {
	n := spec.Total()
	if err := spec.Validate(n); err != nil {
		return nil, err
	}
	search := &orbitSearch{
		numColors: spec.NumColors(),
		budget:    spec.Budget(),
		cur:       make(gopolya.Coloring, n),
	}
	return search.stream(ctx), nil
}

// IsCanonical returns true if c is lexicographically <= each of its images under G.
func IsCanonical(c gopolya.Coloring, G gopolya.PermutationGroup) bool {
	for i := 0; i < G.Order(); i++ {
		if compareImage(c, G.Inverse(i), len(c)-1) > 0 {
			return false
		}
	}
	return true
}

// Canonize returns the lex-least image of c under G (a newly allocated Coloring).
func Canonize(c gopolya.Coloring, G gopolya.PermutationGroup) gopolya.Coloring {
	best := c.Copy()
	for i := 0; i < G.Order(); i++ {
		if d := c.Permuted(G.Inverse(i)); d.Compare(best) < 0 {
			best = d
		}
	}
	return best
}

// compareImage compares c with its image d[i] = c[inv[i]] over the prefix 0..k, returning +1 if the
// image is already smaller than c there, -1 if it is larger, and 0 if they agree or the first
// difference falls on a position past k.
func compareImage(c gopolya.Coloring, inv gopolya.Perm, k int) int {
	for i := 0; i <= k; i++ {
		j := inv[i]
		if j > k {
			return 0
		}
		if d := c[j]; d != c[i] {
			if d < c[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// orbitSearch is a left-to-right backtracking search over colorings meeting a budget.
//
// At each position colors are tried in declared order, so leaves are reached in increasing lex order.
// When invs is empty every leaf is emitted.
type orbitSearch struct {
	numColors  int
	budget     []int
	cur        gopolya.Coloring
	invs       []gopolya.Perm // inverses of the non-identity elements
	prune      bool           // if set, partial prefixes are tested as well as leaves
	maxResults int
	emitted    int
	truncated  bool
	nodes      int64
	emit       func(c gopolya.Coloring) bool
	ctx        context.Context
	err        error
}

func newOrbitSearch(spec gopolya.ColorSpec, G gopolya.PermutationGroup, opts gopolya.EnumOpts) (*orbitSearch, error) {
	if G == nil {
		return nil, gopolya.ErrEmptyGroup
	}
	n := G.N()
	if err := spec.Validate(n); err != nil {
		return nil, err
	}
	if G.Order() == 0 {
		return nil, gopolya.ErrEmptyGroup
	}
	if opts.MaxResults < 0 {
		return nil, errors.Errorf("max results must be >= 0 (got %d)", opts.MaxResults)
	}

	search := &orbitSearch{
		numColors:  spec.NumColors(),
		budget:     spec.Budget(),
		cur:        make(gopolya.Coloring, n),
		maxResults: opts.MaxResults,
	}
	switch opts.Method {
	case gopolya.MethodPruned:
		search.prune = true
	case gopolya.MethodFilter:
	default:
		return nil, errors.Wrapf(gopolya.ErrBadEnumMethod, "method %d", opts.Method)
	}

	for i := 0; i < G.Order(); i++ {
		if inv := G.Inverse(i); !inv.IsIdentity() {
			search.invs = append(search.invs, inv)
		}
	}
	return search, nil
}

func (search *orbitSearch) stream(ctx context.Context) *gopolya.ColoringStream {
	out := gopolya.NewColoringStream()
	search.emit = func(c gopolya.Coloring) bool {
		select {
		case <-out.Quit():
			return false
		default:
		}
		select {
		case out.Outlet <- c:
			return true
		case <-ctx.Done():
		case <-out.Quit():
		}
		return false
	}

	go func() {
		if err := search.run(ctx); err != nil {
			klog.V(2).Infof("coloring stream stopped after %d colorings: %v", search.emitted, err)
		}
		if search.truncated {
			out.MarkTruncated()
		}
		out.Close()
	}()
	return out
}

func (search *orbitSearch) run(ctx context.Context) error {
	search.ctx = ctx
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "enumeration cancelled")
	}
	if len(search.cur) > 0 {
		search.place(0)
	}
	return search.err
}

// place tries each color with remaining budget at position k and returns false once the search must stop.
func (search *orbitSearch) place(k int) bool {
	N := len(search.cur)

	for ci := 0; ci < search.numColors; ci++ {
		if search.budget[ci] == 0 {
			continue
		}

		search.nodes++
		if search.nodes&0xFFF == 0 {
			if err := search.ctx.Err(); err != nil {
				search.err = errors.Wrap(err, "enumeration cancelled")
				return false
			}
		}

		search.cur[k] = uint8(ci)
		if search.prune || k == N-1 {
			if !search.prefixOK(k) {
				continue
			}
		}

		search.budget[ci]--
		keepGoing := true
		if k == N-1 {
			keepGoing = search.accept()
		} else {
			keepGoing = search.place(k + 1)
		}
		search.budget[ci]++

		if !keepGoing {
			return false
		}
	}
	return true
}

// prefixOK returns false if some image of the coloring so far is already smaller over positions 0..k.
func (search *orbitSearch) prefixOK(k int) bool {
	for _, inv := range search.invs {
		if compareImage(search.cur, inv, k) > 0 {
			return false
		}
	}
	return true
}

func (search *orbitSearch) accept() bool {
	if search.maxResults > 0 && search.emitted == search.maxResults {
		search.truncated = true
		return false
	}
	search.emitted++
	if !search.emit(search.cur.Copy()) {
		// A cancelled stream (rather than an ended ctx) leaves err nil.
		search.err = errors.Wrap(search.ctx.Err(), "enumeration cancelled")
		return false
	}
	return true
}
