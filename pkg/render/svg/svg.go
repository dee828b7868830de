// Package svg draws graphs as standalone SVG documents.
//
// Coordinates are written in hundredths of a pixel inside a viewBox so that
// integer SVG attributes keep sub-pixel precision. Labels become <text>
// elements whose runs carry the Computer Modern face chosen by the label
// renderer, with superscripts and subscripts shifted by dy offsets.
package svg

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"

	svgo "github.com/ajstarks/svgo"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/graphic/pkg/colour"
	"github.com/matzehuels/graphic/pkg/errors"
	"github.com/matzehuels/graphic/pkg/graph"
	"github.com/matzehuels/graphic/pkg/label"
)

// sub is the number of viewBox units per pixel.
const sub = 100

// Margin is the blank border around the drawing, in pixels.
const Margin = 4

// Options configures the writer.
type Options struct {
	XDPI, YDPI float64     // pixel density of the node positions
	Background *colour.RGB // nil for a transparent background
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

// Write draws g as SVG. Edges are painted first, then nodes, then labels.
func Write(w io.Writer, g *graph.Graph, opts Options) error {
	xdpi, ydpi := opts.dpi()
	ew := &errWriter{w: w}
	canvas := svgo.New(ew)

	box := g.Extent(xdpi, ydpi)
	width := int(math.Ceil(box.Max.X-box.Min.X)) + 2*Margin
	height := int(math.Ceil(box.Max.Y-box.Min.Y)) + 2*Margin
	origin := r2.Vec{X: box.Min.X - Margin, Y: box.Min.Y - Margin}
	at := func(p r2.Vec) (int, int) {
		return units(p.X - origin.X), units(p.Y - origin.Y)
	}

	canvas.Startview(width, height, 0, 0, width*sub, height*sub)
	if g.Kind != "" {
		canvas.Title(g.Kind)
	}
	if opts.Background != nil {
		canvas.Rect(0, 0, width*sub, height*sub, "fill:"+opts.Background.Hex())
	}

	canvas.Gstyle("stroke-linecap:round")
	for _, e := range g.Edges() {
		if e.SourcePoint == e.DestPoint {
			continue
		}
		x1, y1 := at(e.SourcePoint)
		x2, y2 := at(e.DestPoint)
		canvas.Line(x1, y1, x2, y2, fmt.Sprintf("stroke:%s;stroke-width:%d", e.Colour.Hex(), units(e.PenWidth*xdpi)))
	}
	canvas.Gend()

	for _, n := range g.Nodes() {
		cx, cy := at(n.Pos)
		canvas.Circle(cx, cy, units(n.Diameter*xdpi/2), fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%d",
			n.Fill.Hex(), n.Outline.Hex(), units(n.OutlineThickness*xdpi)))
	}

	for _, e := range g.Edges() {
		if e.Label == "" {
			continue
		}
		x, y := at(r2.Scale(0.5, r2.Add(g.Node(e.Source).Pos, g.Node(e.Dest).Pos)))
		text(ew, x, y, units(e.LabelSize*ydpi/72), e.Label)
	}
	for _, n := range g.Nodes() {
		if n.Label == "" {
			continue
		}
		x, y := at(n.Pos)
		text(ew, x, y, units(n.LabelSize*ydpi/72), n.Label)
	}
	canvas.End()

	if ew.err != nil {
		return errors.Wrap(errors.ErrCodeIO, ew.err, "write svg")
	}
	return nil
}

func units(px float64) int { return int(math.Round(px * sub)) }

// scriptScale is the size of each script level relative to its parent.
const scriptScale = 0.7

// text writes a label centred on (x, y). Unparseable labels are drawn
// verbatim in the typewriter face.
func text(w io.Writer, x, y, size int, src string) {
	spans := label.SpansOf(src)
	fmt.Fprintf(w, `<text x="%d" y="%d" font-size="%d" text-anchor="middle" dominant-baseline="central">`, x, y, size)
	prev := 0
	for _, s := range spans {
		fs := int(float64(size) * math.Pow(scriptScale, float64(s.Depth)))
		off := -s.Shift * size * 2 / 5
		fmt.Fprintf(w, `<tspan font-family="%s, serif" font-size="%d"`, s.Font, fs)
		if off != prev {
			fmt.Fprintf(w, ` dy="%d"`, off-prev)
			prev = off
		}
		io.WriteString(w, ">")
		xml.EscapeText(w, []byte(s.Text))
		io.WriteString(w, "</tspan>")
	}
	io.WriteString(w, "</text>\n")
}

// errWriter keeps the first write error so drawing code can ignore errors.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
