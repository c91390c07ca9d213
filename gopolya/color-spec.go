package gopolya

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ColorCount pairs a color label with the exact number of elements that must use it.
type ColorCount struct {
	Label string
	Count int
}

// ColorSpec is an ordered list of distinct color labels paired with required usage counts.
//
// The declared order is the order colors compare in: a coloring is lexicographically smaller
// than another if, at the first position they differ, its color is declared earlier.
type ColorSpec struct {
	Colors []ColorCount
}

// NewColorSpec is a convenience function that pairs labels with counts in the given order.
func NewColorSpec(labels []string, counts []int) (ColorSpec, error) {
	if len(labels) != len(counts) {
		return ColorSpec{}, errors.Wrapf(ErrBadColorSpec, "%d labels but %d counts", len(labels), len(counts))
	}
	spec := ColorSpec{
		Colors: make([]ColorCount, len(labels)),
	}
	for i, label := range labels {
		spec.Colors[i] = ColorCount{
			Label: label,
			Count: counts[i],
		}
	}
	return spec, nil
}

// NumColors returns the number of colors declared.
func (spec ColorSpec) NumColors() int {
	return len(spec.Colors)
}

// Total returns the sum of the usage counts.
func (spec ColorSpec) Total() int {
	total := 0
	for _, ci := range spec.Colors {
		total += ci.Count
	}
	return total
}

// Budget returns the usage counts, in declared order, as a newly allocated slice.
func (spec ColorSpec) Budget() []int {
	budget := make([]int, len(spec.Colors))
	for i, ci := range spec.Colors {
		budget[i] = ci.Count
	}
	return budget
}

// Labels returns the color labels in declared order.
func (spec ColorSpec) Labels() []string {
	labels := make([]string, len(spec.Colors))
	for i, ci := range spec.Colors {
		labels[i] = ci.Label
	}
	return labels
}

// Validate checks this ColorSpec against a group acting on n elements.
func (spec ColorSpec) Validate(n int) error {
	if len(spec.Colors) == 0 {
		return errors.Wrap(ErrBadColorSpec, "no colors declared")
	}
	if len(spec.Colors) > MaxColors {
		return errors.Wrapf(ErrBadColorSpec, "%d colors exceeds the max of %d", len(spec.Colors), MaxColors)
	}

	seen := make(map[string]struct{}, len(spec.Colors))
	for _, ci := range spec.Colors {
		if len(ci.Label) == 0 {
			return errors.Wrap(ErrBadColorSpec, "empty color label")
		}
		if _, dupe := seen[ci.Label]; dupe {
			return errors.Wrapf(ErrBadColorSpec, "color %q is declared more than once", ci.Label)
		}
		seen[ci.Label] = struct{}{}
		if ci.Count < 0 {
			return errors.Wrapf(ErrBadColorSpec, "color %q has negative count %d", ci.Label, ci.Count)
		}
	}

	if total := spec.Total(); total != n {
		return errors.Wrapf(ErrBadColorSpec, "color counts sum to %d, expected %d", total, n)
	}
	return nil
}

// String returns this ColorSpec in "red:9, blue:6" form.
func (spec ColorSpec) String() string {
	b := strings.Builder{}
	for i, ci := range spec.Colors {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(ci.Label)
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(ci.Count))
	}
	return b.String()
}
