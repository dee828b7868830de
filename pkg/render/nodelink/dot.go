package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/graphic/pkg/errors"
	"github.com/matzehuels/graphic/pkg/graph"
	"github.com/matzehuels/graphic/pkg/label"
)

// pointsPerInch converts inches to Graphviz points.
const pointsPerInch = 72

// Options configures DOT generation.
type Options struct {
	// XDPI and YDPI give the pixel density of node positions.
	XDPI, YDPI float64

	// Pinned fixes every node at its drawing position.
	Pinned bool
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

// ToDOT converts g to Graphviz DOT source. Nodes are named v0, v1, … in
// insertion order.
func ToDOT(g *graph.Graph, opts Options) string {
	xdpi, ydpi := opts.dpi()
	c := g.Centre()

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  node [shape=circle, style=filled, fixedsize=true];\n")
	buf.WriteString("\n")

	for i, n := range g.Nodes() {
		attrs := []string{
			fmt.Sprintf("label=%q", label.Plain(n.Label)),
			"width=" + num(n.Diameter),
			"fillcolor=" + strconv.Quote(n.Fill.Hex()),
			"color=" + strconv.Quote(n.Outline.Hex()),
			"penwidth=" + num(n.OutlineThickness*pointsPerInch),
			"fontsize=" + num(n.LabelSize),
		}
		if opts.Pinned {
			x := (n.Pos.X - c.X) / xdpi * pointsPerInch
			y := -(n.Pos.Y - c.Y) / ydpi * pointsPerInch
			attrs = append(attrs, fmt.Sprintf("pos=\"%s,%s!\"", num(x), num(y)))
		}
		fmt.Fprintf(&buf, "  v%d [%s];\n", i, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		attrs := []string{
			"color=" + strconv.Quote(e.Colour.Hex()),
			"penwidth=" + num(e.PenWidth*pointsPerInch),
		}
		if e.Label != "" {
			attrs = append(attrs, fmt.Sprintf("label=%q", label.Plain(e.Label)), "fontsize="+num(e.LabelSize))
		}
		fmt.Fprintf(&buf, "  v%d -- v%d [%s];\n", e.Source, e.Dest, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// RenderSVG lays out DOT source with neato and renders it to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	gv.SetLayout(graphviz.NEATO)
	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-sized root element with one
// whose size matches its viewBox, so the SVG scales cleanly when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(root))
}
