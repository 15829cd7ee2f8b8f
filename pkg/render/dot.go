package render

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/units/pkg/dimension"
	"github.com/matzehuels/units/pkg/unit"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds each atomic unit's name and conversion law to its label.
	// When false, only the symbol is shown.
	Detailed bool
	// Label overrides how atomic units are named, e.g. with display aliases.
	Label unit.Label
}

// ToDOT converts a unit to Graphviz DOT source. The result can be rendered
// with [RenderSVG] or processed with external Graphviz tools.
func ToDOT(u unit.Unit, opts Options) string {
	label := opts.Label
	if label == nil {
		label = func(a *unit.Atomic) string { return a.Symbol() }
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=20, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	root := "unit"
	fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=lightblue];\n", root, u.Format(label, unit.SymbolStyle))

	terms := u.Terms()
	if a, ok := u.Atomic(); ok {
		// The root is the atomic unit itself.
		writeDimensions(&buf, root, a.Dimension())
		buf.WriteString("}\n")
		return buf.String()
	}

	dims := make(map[dimension.ID]struct{})
	for _, t := range terms {
		id := atomID(t.Atomic)
		fmt.Fprintf(&buf, "  %q [label=%q];\n", id, atomLabel(t.Atomic, label, opts.Detailed))
		for _, d := range t.Atomic.Dimension().IDs() {
			dims[d] = struct{}{}
		}
	}
	for _, d := range slices.Sorted(maps.Keys(dims)) {
		fmt.Fprintf(&buf, "  %q [label=%q, shape=ellipse, fillcolor=lightgrey];\n", dimID(d), string(d))
	}

	buf.WriteString("\n")
	for _, t := range terms {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", root, atomID(t.Atomic), strconv.Itoa(t.Exp))
	}
	for _, t := range terms {
		dim := t.Atomic.Dimension()
		for _, d := range dim.IDs() {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q, style=dashed];\n", atomID(t.Atomic), dimID(d), strconv.Itoa(dim.Exponent(d)))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeDimensions(buf *bytes.Buffer, from string, dim dimension.Vector) {
	for _, d := range dim.IDs() {
		fmt.Fprintf(buf, "  %q [label=%q, shape=ellipse, fillcolor=lightgrey];\n", dimID(d), string(d))
	}
	buf.WriteString("\n")
	for _, d := range dim.IDs() {
		fmt.Fprintf(buf, "  %q -> %q [label=%q, style=dashed];\n", from, dimID(d), strconv.Itoa(dim.Exponent(d)))
	}
}

func atomID(a *unit.Atomic) string { return "atom:" + a.Symbol() }
func dimID(d dimension.ID) string  { return "dim:" + string(d) }

func atomLabel(a *unit.Atomic, label unit.Label, detailed bool) string {
	if !detailed {
		return label(a)
	}
	parts := []string{label(a), a.Name(), "x" + strconv.FormatFloat(a.Coefficient(), 'g', -1, 64)}
	if !a.IsLinear() {
		parts = append(parts, "+"+strconv.FormatFloat(a.Constant(), 'g', -1, 64))
	}
	return strings.Join(parts, "\n")
}
