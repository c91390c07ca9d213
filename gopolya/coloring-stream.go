package gopolya

import (
	"io"
	"strings"
	"sync"
	"sync/atomic"
)

// ColoringAdder is a set of colorings that reports whether a given coloring was newly added.
type ColoringAdder interface {

	// TryAddColoring adds c (or its equivalence class) to this set.
	// If true is returned, c was not already present and was added.
	TryAddColoring(c Coloring) bool
}

// ColoringStream is a pipeline stage passing colorings through a channel.
// Ownership of a Coloring travels through the channel.
//
// A consumer that stops reading before Outlet closes must call Cancel so the producing goroutines exit.
type ColoringStream struct {
	Outlet chan Coloring

	upstream  *ColoringStream
	quit      chan struct{}
	quitOnce  sync.Once
	truncated atomic.Bool
}

func NewColoringStream() *ColoringStream {
	stream := &ColoringStream{
		Outlet: make(chan Coloring, 1),
		quit:   make(chan struct{}),
	}
	return stream
}

// chain returns a new stage fed by this stream.
func (stream *ColoringStream) chain() *ColoringStream {
	next := NewColoringStream()
	next.upstream = stream
	return next
}

// StreamColorings returns a stream that emits copies of the given colorings.
func StreamColorings(colorings []Coloring) *ColoringStream {
	next := NewColoringStream()

	go func() {
		for _, c := range colorings {
			if !next.Send(c.Copy()) {
				break
			}
		}
		next.Close()
	}()

	return next
}

// Close is called by the producer once it has nothing more to send.
func (stream *ColoringStream) Close() {
	if stream.Outlet != nil {
		close(stream.Outlet)
	}
}

// Cancel tells this stage (and every stage feeding it) to stop producing.
// Outlet still closes afterwards, so draining it after Cancel returns promptly.
func (stream *ColoringStream) Cancel() {
	stream.quitOnce.Do(func() {
		close(stream.quit)
	})
	if stream.upstream != nil {
		stream.upstream.Cancel()
	}
}

// Quit is closed once Cancel has been called.
func (stream *ColoringStream) Quit() <-chan struct{} {
	return stream.quit
}

// Send passes c downstream, returning false if the stream was cancelled instead.
func (stream *ColoringStream) Send(c Coloring) bool {
	select {
	case <-stream.quit:
		return false
	default:
	}
	select {
	case stream.Outlet <- c:
		return true
	case <-stream.quit:
		return false
	}
}

// MarkTruncated is called by a producer that stopped at a result cap while more colorings remained.
// It must be called before Close.
func (stream *ColoringStream) MarkTruncated() {
	stream.truncated.Store(true)
}

// Truncated reports whether this stream (or any stage feeding it) stopped at a result cap.
// It is only meaningful once Outlet has closed.
func (stream *ColoringStream) Truncated() bool {
	if stream.truncated.Load() {
		return true
	}
	return stream.upstream != nil && stream.upstream.Truncated()
}

func (stream *ColoringStream) Push(c Coloring) {
	stream.Outlet <- c
}

// Pull returns the next coloring or nil if the stream has closed.
func (stream *ColoringStream) Pull() Coloring {
	c := <-stream.Outlet
	return c
}

// PullAll drains this stream and returns the number of colorings that came through.
func (stream *ColoringStream) PullAll() int {
	count := int(0)
	for range stream.Outlet {
		count++
	}
	return count
}

// Collect drains this stream and returns what came through.
func (stream *ColoringStream) Collect() []Coloring {
	var all []Coloring
	for c := range stream.Outlet {
		all = append(all, c)
	}
	return all
}

// Print writes a "Class <i>: <labels>" line for each coloring passing through and forwards it downstream.
// out is closed when this stream closes.
func (stream *ColoringStream) Print(
	out io.WriteCloser,
	spec ColorSpec) *ColoringStream {

	next := stream.chain()

	go func() {
		buf := strings.Builder{}
		buf.Grow(256)

		count := 0
		for c := range stream.Outlet {
			count++
			writeClassLine(&buf, count, spec, c)
			out.Write([]byte(buf.String()))
			buf.Reset()
			if !next.Send(c) {
				break
			}
		}
		out.Close()
		next.Close()
	}()

	return next
}

// AddTo forwards only the colorings that target reports as newly added.
func (stream *ColoringStream) AddTo(target ColoringAdder) *ColoringStream {
	next := stream.chain()

	go func() {
		for c := range stream.Outlet {
			if target.TryAddColoring(c) && !next.Send(c) {
				break
			}
		}
		next.Close()
	}()

	return next
}

// Select forwards only the colorings for which keep returns true.
func (stream *ColoringStream) Select(keep func(c Coloring) bool) *ColoringStream {
	next := stream.chain()

	go func() {
		for c := range stream.Outlet {
			if keep(c) && !next.Send(c) {
				break
			}
		}
		next.Close()
	}()

	return next
}
