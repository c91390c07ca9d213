package main

import (
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/polyasystems/gopolya/gopolya"
	"github.com/polyasystems/gopolya/libpolya"
)

var palette = []color.Attribute{
	color.FgRed,
	color.FgBlue,
	color.FgGreen,
	color.FgYellow,
	color.FgMagenta,
	color.FgCyan,
	color.FgWhite,
}

func printSummary(out io.Writer, kind gopolya.ElementKind, spec gopolya.ColorSpec, res gopolya.EnumResult, elapsed time.Duration) {
	fmt.Fprintf(out, "%s %s colorings with %s: %d classes (%v)\n",
		color.CyanString("==="),
		kind,
		spec.String(),
		len(res.Colorings),
		elapsed.Round(time.Millisecond),
	)
	if res.Truncated {
		color.New(color.FgYellow).Fprintf(out, "    truncated: more classes exist beyond %d\n", len(res.Colorings))
	}
}

// printPreview echoes the first few colorings with each label in its own color.
func printPreview(out io.Writer, spec gopolya.ColorSpec, colorings []gopolya.Coloring, preview int) {
	if preview > len(colorings) {
		preview = len(colorings)
	}

	painters := make([]*color.Color, spec.NumColors())
	for i := range painters {
		painters[i] = color.New(palette[i%len(palette)])
	}

	b := strings.Builder{}
	for i, c := range colorings[:preview] {
		b.Reset()
		fmt.Fprintf(&b, "Class %d:", i+1)
		for _, ci := range c {
			b.WriteByte(' ')
			b.WriteString(painters[ci].Sprint(spec.Colors[ci].Label))
		}
		fmt.Fprintln(out, b.String())
	}
	if preview < len(colorings) {
		fmt.Fprintln(out, color.HiBlackString("... (%d more)", len(colorings)-preview))
	}
}

func printGroup(out io.Writer, G *libpolya.Group, elements bool) {
	chain := G.Chain()
	fmt.Fprintf(out, "%s %d elements, order %d\n", color.CyanString("group:"), G.N(), G.Order())
	fmt.Fprintf(out, "%s %s\n", color.CyanString("base:"), joinInts(chain.Base()))
	fmt.Fprintf(out, "%s %s\n", color.CyanString("basic orbits:"), joinInts(chain.OrbitLengths()))
	fmt.Fprintf(out, "%s %s\n", color.CyanString("cycle index:"), libpolya.CycleIndexOf(G).String())
	if elements {
		for i := 0; i < G.Order(); i++ {
			fmt.Fprintf(out, "%4d  %s\n", i, G.Cycles(i).String())
		}
	}
}

func printVerify(out io.Writer, burnside *big.Int, enumerated, bruteForce int, ok bool) {
	status := color.GreenString("OK")
	if !ok {
		status = color.RedString("MISMATCH")
	}
	fmt.Fprintf(out, "burnside:    %v\n", burnside)
	fmt.Fprintf(out, "enumerated:  %d\n", enumerated)
	fmt.Fprintf(out, "brute force: %d\n", bruteForce)
	fmt.Fprintln(out, status)
}
