// Package tikz writes graphs as TikZ pictures for inclusion in LaTeX
// documents.
//
// The picture uses inch units (x=1in, y=1in) and is centred on the origin.
// Screen y grows downwards while TikZ y grows upwards, so y is negated.
// Colours with a TikZ name (see [colour.Lookup]) are referenced by name;
// every other colour gets one \definecolor at the top of the picture.
//
// Node labels are wrapped in math mode with a trailing "^{}" strut so that
// labels with and without superscripts share a baseline. The strut is left
// out when the label already has a superscript.
package tikz

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/graphic/pkg/colour"
	"github.com/matzehuels/graphic/pkg/errors"
	"github.com/matzehuels/graphic/pkg/graph"
)

// Options configures the writer.
type Options struct {
	XDPI, YDPI float64 // pixel density of the node positions
}

func (o Options) dpi() (float64, float64) {
	x, y := o.XDPI, o.YDPI
	if x <= 0 {
		x = 96
	}
	if y <= 0 {
		y = 96
	}
	return x, y
}

// Write emits g as a tikzpicture. Node ids are reassigned in insertion order
// and used as TikZ node names v0, v1, …
func Write(w io.Writer, g *graph.Graph, opts Options) error {
	xdpi, ydpi := opts.dpi()
	g.AssignIDs()
	names := newPalette()
	for _, n := range g.Nodes() {
		names.add(n.Fill)
		names.add(n.Outline)
	}
	for _, e := range g.Edges() {
		names.add(e.Colour)
	}

	c := g.Centre()
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, `\begin{tikzpicture}[x=1in, y=1in]`)
	for _, d := range names.defs {
		fmt.Fprintf(bw, "\\definecolor{%s}{RGB}{%d,%d,%d}\n", names.name(d), d.R, d.G, d.B)
	}
	for _, n := range g.Nodes() {
		fmt.Fprintf(bw, "\\node (v%d) at (%s, %s) [inner sep=0, shape=circle, minimum size=%.4fin, fill=%s, draw=%s, line width=%.4fin, font=%s] {%s};\n",
			n.ID,
			coord((n.Pos.X-c.X)/xdpi), coord(-(n.Pos.Y-c.Y)/ydpi),
			n.Diameter,
			names.name(n.Fill), names.name(n.Outline),
			n.OutlineThickness,
			font(n.LabelSize),
			nodeLabel(n.Label))
	}
	for _, e := range g.Edges() {
		s, d := g.Node(e.Source).ID, g.Node(e.Dest).ID
		if s > d {
			s, d = d, s
		}
		attrs := fmt.Sprintf("draw=%s, line width=%.4fin", names.name(e.Colour), e.PenWidth)
		if e.Label == "" {
			fmt.Fprintf(bw, "\\path (v%d) edge[%s] (v%d);\n", s, attrs, d)
			continue
		}
		fmt.Fprintf(bw, "\\path (v%d) edge[%s] node[font=%s] {$%s$} (v%d);\n", s, attrs, font(e.LabelSize), e.Label, d)
	}
	fmt.Fprintln(bw, `\end{tikzpicture}`)
	if err := bw.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write tikz")
	}
	return nil
}

// coord formats a position in inches, never as "-0.0000".
func coord(v float64) string {
	s := strconv.FormatFloat(v, 'f', 4, 64)
	if s == "-0.0000" {
		return "0.0000"
	}
	return s
}

func font(size float64) string {
	return `\fontsize{` + strconv.FormatFloat(size, 'g', -1, 64) + `}{1}\selectfont`
}

func nodeLabel(l string) string {
	if l == "" {
		return ""
	}
	if strings.Contains(l, "^") {
		return "$" + l + "$"
	}
	return "$" + l + "^{}$"
}

// palette names every colour used by a picture.
type palette struct {
	defs  []colour.RGB
	local map[colour.RGB]string
}

func newPalette() *palette {
	return &palette{local: make(map[colour.RGB]string)}
}

func (p *palette) add(c colour.RGB) {
	if _, ok := colour.Lookup(c.R, c.G, c.B); ok {
		return
	}
	if _, ok := p.local[c]; ok {
		return
	}
	p.local[c] = "graphic" + strconv.Itoa(len(p.defs))
	p.defs = append(p.defs, c)
}

func (p *palette) name(c colour.RGB) string {
	if n, ok := p.local[c]; ok {
		return n
	}
	n, _ := colour.Lookup(c.R, c.G, c.B)
	return n
}
