package libpolya

import (
	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"
	"github.com/polyasystems/gopolya/gopolya"
)

// ColorSpecExpr is a color spec such as `red:9, blue:6, green:5` (or `red=9 ...`).
type ColorSpecExpr struct {
	Colors []*ColorEntry `parser:"@@ (\",\"? @@)*"`
}

type ColorEntry struct {
	Label string `parser:"@(Ident | String | Int)"`
	Count int    `parser:"(\":\" | \"=\") @Int"`
}

// GeneratorsExpr is a list of permutations in cycle notation separated by ";", such as `(0 1 2 3); (0 4)(1 5)`.
type GeneratorsExpr struct {
	Perms []*CyclesExpr `parser:"@@ (\";\" @@)*"`
}

type CyclesExpr struct {
	Cycles []*CycleExpr `parser:"@@*"`
}

type CycleExpr struct {
	Indices []int `parser:"\"(\" (@Int \",\"?)* \")\""`
}

var (
	parseColorSpecExpr  = participle.MustBuild[ColorSpecExpr](participle.Unquote("String"))
	parseCyclesExpr     = participle.MustBuild[CyclesExpr]()
	parseGeneratorsExpr = participle.MustBuild[GeneratorsExpr]()
)

// ParseColorSpec reads a color spec in `label:count, ...` form.  Labels may be quoted.
//
// The result is not validated against any particular element count (see ColorSpec.Validate).
func ParseColorSpec(str string) (gopolya.ColorSpec, error) {
	expr, err := parseColorSpecExpr.ParseString("", str)
	if err != nil {
		return gopolya.ColorSpec{}, errors.Wrap(gopolya.ErrBadColorSpec, err.Error())
	}

	spec := gopolya.ColorSpec{
		Colors: make([]gopolya.ColorCount, len(expr.Colors)),
	}
	for i, entry := range expr.Colors {
		spec.Colors[i] = gopolya.ColorCount{
			Label: entry.Label,
			Count: entry.Count,
		}
	}
	return spec, nil
}

// ParseCycles reads a permutation in cycle notation, e.g. `(0 1 2)(3 4)`.
func ParseCycles(str string) (gopolya.Cycles, error) {
	expr, err := parseCyclesExpr.ParseString("", str)
	if err != nil {
		return nil, errors.Wrap(gopolya.ErrBadPerm, err.Error())
	}
	return expr.toCycles(), nil
}

// ParsePerm reads a permutation on n elements in cycle notation.  Indices not named are fixed.
func ParsePerm(str string, n int) (gopolya.Perm, error) {
	cycles, err := ParseCycles(str)
	if err != nil {
		return nil, err
	}
	return cycles.Perm(n)
}

// ParseGenerators reads a ";" separated list of permutations on n elements in cycle notation.
func ParseGenerators(str string, n int) ([]gopolya.Perm, error) {
	expr, err := parseGeneratorsExpr.ParseString("", str)
	if err != nil {
		return nil, errors.Wrap(gopolya.ErrBadPerm, err.Error())
	}

	gens := make([]gopolya.Perm, 0, len(expr.Perms))
	for i, permExpr := range expr.Perms {
		p, err := permExpr.toCycles().Perm(n)
		if err != nil {
			return nil, errors.Wrapf(err, "generator %d", i)
		}
		gens = append(gens, p)
	}
	return gens, nil
}

func (expr *CyclesExpr) toCycles() gopolya.Cycles {
	cycles := make(gopolya.Cycles, 0, len(expr.Cycles))
	for _, ci := range expr.Cycles {
		if len(ci.Indices) > 0 {
			cycles = append(cycles, ci.Indices)
		}
	}
	return cycles
}
