package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphic/pkg/colour"
	"github.com/matzehuels/graphic/pkg/style"
)

// styleFlags binds the style options shared by generate, render, browse and
// watch. Only flags the user sets override the configured style.
type styleFlags struct {
	width, height, diameter float64
	outlineThickness        float64
	labelSize               float64
	edgeWidth               float64
	edgeLabelSize           float64
	rotation                float64

	fill, outline, edgeColour string
	prefix, bottomPrefix      string
	edgeLabel                 string
	numbers                   bool
	labelStart                int
}

// flagChanges maps each style flag to the change it triggers on an existing
// graph, in the order they are applied.
var flagChanges = []struct {
	flag   string
	change style.Change
}{
	{"diameter", style.NodeSize},
	{"width", style.GraphWidth},
	{"height", style.GraphHeight},
	{"fill", style.NodeFill},
	{"outline", style.NodeOutline},
	{"outline-thickness", style.NodeThickness},
	{"prefix", style.NodeLabel1},
	{"bottom-prefix", style.NodeLabel2},
	{"numbers", style.NumberLabels},
	{"label-start", style.LabelStart},
	{"label-size", style.NodeLabelSize},
	{"edge-width", style.EdgeSize},
	{"edge-label", style.EdgeLabel},
	{"edge-label-size", style.EdgeLabelSize},
	{"edge-colour", style.EdgeColour},
	{"rotation", style.Rotation},
}

func (f *styleFlags) register(cmd *cobra.Command) {
	d := style.DefaultParams()
	fs := cmd.Flags()
	fs.Float64Var(&f.width, "width", d.Width, "drawing width in inches")
	fs.Float64Var(&f.height, "height", d.Height, "drawing height in inches")
	fs.Float64Var(&f.diameter, "diameter", d.Diameter, "node diameter in inches")
	fs.Float64Var(&f.outlineThickness, "outline-thickness", d.OutlineThickness, "node outline in inches")
	fs.Float64Var(&f.labelSize, "label-size", d.NodeLabelSize, "node label size in points")
	fs.Float64Var(&f.edgeWidth, "edge-width", d.EdgeWidth, "edge width in inches")
	fs.Float64Var(&f.edgeLabelSize, "edge-label-size", d.EdgeLabelSize, "edge label size in points")
	fs.Float64Var(&f.rotation, "rotation", 0, "rotation in degrees, counter-clockwise")
	fs.StringVar(&f.fill, "fill", d.Fill.String(), "node fill colour (name or #rrggbb)")
	fs.StringVar(&f.outline, "outline", d.Outline.String(), "node outline colour")
	fs.StringVar(&f.edgeColour, "edge-colour", d.EdgeColour.String(), "edge colour")
	fs.StringVar(&f.prefix, "prefix", "", "node label prefix, e.g. v gives v_{0}, v_{1}, ...")
	fs.StringVar(&f.bottomPrefix, "bottom-prefix", "", "label prefix for the second part of a bipartite graph")
	fs.StringVar(&f.edgeLabel, "edge-label", "", "label for every edge")
	fs.BoolVar(&f.numbers, "numbers", false, "label nodes with their index")
	fs.IntVar(&f.labelStart, "label-start", 0, "first label index")
}

// params overlays the flags the user set on base.
func (f *styleFlags) params(cmd *cobra.Command, base style.Params) (style.Params, error) {
	p := base
	fs := cmd.Flags()
	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}
	set("width", func() { p.Width = f.width })
	set("height", func() { p.Height = f.height })
	set("diameter", func() { p.Diameter = f.diameter })
	set("outline-thickness", func() { p.OutlineThickness = f.outlineThickness })
	set("label-size", func() { p.NodeLabelSize = f.labelSize })
	set("edge-width", func() { p.EdgeWidth = f.edgeWidth })
	set("edge-label-size", func() { p.EdgeLabelSize = f.edgeLabelSize })
	set("rotation", func() { p.Rotation = f.rotation })
	set("prefix", func() { p.TopPrefix = f.prefix })
	set("bottom-prefix", func() { p.BottomPrefix = f.bottomPrefix })
	set("edge-label", func() { p.EdgeLabel = f.edgeLabel })
	set("numbers", func() { p.NumberLabels = f.numbers })
	set("label-start", func() { p.LabelStart = f.labelStart })

	for _, c := range []struct {
		name string
		src  string
		dst  *colour.RGB
	}{
		{"fill", f.fill, &p.Fill},
		{"outline", f.outline, &p.Outline},
		{"edge-colour", f.edgeColour, &p.EdgeColour},
	} {
		if !fs.Changed(c.name) {
			continue
		}
		v, err := colour.Parse(c.src)
		if err != nil {
			return p, err
		}
		*c.dst = v
	}
	return p, p.Validate()
}

// changes lists the style changes implied by the flags the user set.
func (f *styleFlags) changes(cmd *cobra.Command) []style.Change {
	var out []style.Change
	for _, fc := range flagChanges {
		if cmd.Flags().Changed(fc.flag) {
			out = append(out, fc.change)
		}
	}
	return out
}
