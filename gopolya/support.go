package gopolya

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// ParseElementKind converts "vertex" / "face" (or their plurals) into an ElementKind.
func ParseElementKind(str string) (ElementKind, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "vertex", "vertices", "v":
		return Vertex, nil
	case "face", "faces", "f":
		return Face, nil
	}
	return 0, errors.Wrapf(ErrUnsupportedKind, "%q", str)
}

// ParseEnumMethod converts "pruned" / "filter" into an EnumMethod.  An empty string yields MethodPruned.
func ParseEnumMethod(str string) (EnumMethod, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "", "pruned":
		return MethodPruned, nil
	case "filter":
		return MethodFilter, nil
	}
	return 0, errors.Wrapf(ErrBadEnumMethod, "%q", str)
}

func NewCatalogContext() CatalogContext {
	ctx := &catalogContext{
		openCatalogs: make(map[GroupCatalog]struct{}),
		closing:      make(chan struct{}),
		closed:       make(chan struct{}),
	}
	ctx.openCount.Add(1)
	go func() {
		<-ctx.Closing()
		ctx.openCount.Done()
		ctx.openCount.Wait()
		close(ctx.closed)
	}()
	return ctx
}

type catalogContext struct {
	mu           sync.Mutex
	openCount    sync.WaitGroup
	openCatalogs map[GroupCatalog]struct{}
	closing      chan struct{}
	closed       chan struct{}
	closeOnce    sync.Once
}

func (ctx *catalogContext) AttachCatalog(cat GroupCatalog) {
	ctx.openCount.Add(1)
	ctx.mu.Lock()
	ctx.openCatalogs[cat] = struct{}{}
	ctx.mu.Unlock()
}

func (ctx *catalogContext) DetachCatalog(cat GroupCatalog) {
	ctx.mu.Lock()
	if _, exists := ctx.openCatalogs[cat]; exists {
		delete(ctx.openCatalogs, cat)
		ctx.openCount.Done()
	}
	ctx.mu.Unlock()
}

func (ctx *catalogContext) Closing() <-chan struct{} {
	return ctx.closing
}

func (ctx *catalogContext) Done() <-chan struct{} {
	return ctx.closed
}

func (ctx *catalogContext) Close() {
	ctx.closeOnce.Do(func() {
		close(ctx.closing)
		ctx.mu.Lock()
		for cat := range ctx.openCatalogs {
			go cat.Close()
		}
		ctx.mu.Unlock()
	})
}
