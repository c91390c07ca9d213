package gopolya

import (
	"fmt"
	"io"
	"strings"
)

// Coloring assigns a color index (into a ColorSpec) to each element index.
//
// Since indices follow the ColorSpec's declared order, comparing indices compares colors.
type Coloring []uint8

// Compare returns -1, 0, or +1 depending on whether c is lexicographically less than, equal to, or greater than other.
func (c Coloring) Compare(other Coloring) int {
	N := len(c)
	if len(other) < N {
		N = len(other)
	}
	for i := 0; i < N; i++ {
		if c[i] != other[i] {
			if c[i] < other[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(c) < len(other):
		return -1
	case len(c) > len(other):
		return 1
	}
	return 0
}

// Counts returns how many elements use each of the first numColors colors.
func (c Coloring) Counts(numColors int) []int {
	counts := make([]int, numColors)
	for _, ci := range c {
		if int(ci) < numColors {
			counts[ci]++
		}
	}
	return counts
}

// Matches returns true if c uses every color of spec exactly as many times as spec requires.
func (c Coloring) Matches(spec ColorSpec) bool {
	if len(c) != spec.Total() {
		return false
	}
	for _, ci := range c {
		if int(ci) >= spec.NumColors() {
			return false
		}
	}
	counts := c.Counts(spec.NumColors())
	for i, ci := range spec.Colors {
		if counts[i] != ci.Count {
			return false
		}
	}
	return true
}

// Permuted returns the coloring d where d[i] = c[inv[i]].
//
// If inv is the inverse of a group element g, d is the coloring c carried along by g:
// whatever color sat at index j now sits at g[j].
func (c Coloring) Permuted(inv Perm) Coloring {
	d := make(Coloring, len(c))
	for i, j := range inv {
		d[i] = c[j]
	}
	return d
}

// Copy returns a copy of c that can be modified safely.
func (c Coloring) Copy() Coloring {
	dup := make(Coloring, len(c))
	copy(dup, c)
	return dup
}

// Labels resolves each color index into its label from spec.
func (c Coloring) Labels(spec ColorSpec) []string {
	labels := make([]string, len(c))
	for i, ci := range c {
		if int(ci) < spec.NumColors() {
			labels[i] = spec.Colors[ci].Label
		} else {
			labels[i] = "?"
		}
	}
	return labels
}

// WriteClasses writes the given colorings in the result file format:
//
//	Vertex colorings with 2 classes
//	Class 1: red red blue blue
//	Class 2: red blue red blue
//
// Downstream tooling matches coloring lines by the literal "Class" prefix; the index is one-based.
//
// If opts.Truncated is set, the header reads "<Kind> colorings with at least N classes (truncated)"
// and a closing "Truncated after N classes" line follows the last class.
func WriteClasses(out io.Writer, spec ColorSpec, colorings []Coloring, opts PrintOpts) error {
	if opts.Header {
		kind := opts.Kind.String()
		if len(kind) > 0 {
			kind = strings.ToUpper(kind[:1]) + kind[1:]
		}
		var err error
		if opts.Truncated {
			_, err = fmt.Fprintf(out, "%s colorings with at least %d classes (truncated)\n", kind, len(colorings))
		} else {
			_, err = fmt.Fprintf(out, "%s colorings with %d classes\n", kind, len(colorings))
		}
		if err != nil {
			return err
		}
	}

	buf := strings.Builder{}
	buf.Grow(256)
	for i, c := range colorings {
		buf.Reset()
		writeClassLine(&buf, i+1, spec, c)
		if _, err := io.WriteString(out, buf.String()); err != nil {
			return err
		}
	}
	if opts.Truncated {
		if _, err := fmt.Fprintf(out, "Truncated after %d classes\n", len(colorings)); err != nil {
			return err
		}
	}
	return nil
}

func writeClassLine(buf *strings.Builder, classNum int, spec ColorSpec, c Coloring) {
	fmt.Fprintf(buf, "Class %d:", classNum)
	for _, label := range c.Labels(spec) {
		buf.WriteByte(' ')
		buf.WriteString(label)
	}
	buf.WriteByte('\n')
}
