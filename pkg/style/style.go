// Package style applies drawing attributes to generated graphs.
//
// [Apply] maps preview coordinates to pixels, sets node and edge styles,
// assigns labels and rotates the drawing. Each [Change] touches only the
// attributes it names; [All] applies everything and is used after
// generating or loading a graph.
//
// # Coordinate Mapping
//
// With requested size W×H inches and node diameter d, node centres span
// Wc = max(0.1, W−d) by Hc = max(0.1, H−d) inches, so the discs fit inside
// W×H. A node at preview (x, y) lands at (x·Wc·XDPI, y·Hc·YDPI) pixels before
// the graph rotation is applied.
//
// # Labels
//
// With NumberLabels set, nodes are numbered from LabelStart in insertion
// order. Otherwise a non-empty TopPrefix produces labels like "v_{3}". On
// bipartite graphs the rows count independently, using BottomPrefix for the
// bottom row when it is set and TopPrefix otherwise.
package style

import (
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/graphic/pkg/colour"
	"github.com/matzehuels/graphic/pkg/errors"
	"github.com/matzehuels/graphic/pkg/graph"
)

// Change names the attribute group a call to Apply updates.
type Change int

const (
	All Change = iota
	NodeSize
	NodeFill
	NodeOutline
	NodeThickness
	NodeLabel1
	NodeLabel2
	NumberLabels
	NodeLabelSize
	EdgeSize
	EdgeLabel
	EdgeLabelSize
	EdgeColour
	Rotation
	GraphHeight
	GraphWidth
	LabelStart
)

var changeNames = [...]string{
	All:           "all",
	NodeSize:      "node_size",
	NodeFill:      "node_fill",
	NodeOutline:   "node_outline",
	NodeThickness: "node_thickness",
	NodeLabel1:    "node_label_1",
	NodeLabel2:    "node_label_2",
	NumberLabels:  "number_labels",
	NodeLabelSize: "node_label_size",
	EdgeSize:      "edge_size",
	EdgeLabel:     "edge_label",
	EdgeLabelSize: "edge_label_size",
	EdgeColour:    "edge_colour",
	Rotation:      "rotation",
	GraphHeight:   "graph_height",
	GraphWidth:    "graph_width",
	LabelStart:    "label_start",
}

func (c Change) String() string {
	if c >= 0 && int(c) < len(changeNames) {
		return changeNames[c]
	}
	return "change(" + strconv.Itoa(int(c)) + ")"
}

// Changes lists every change in declaration order.
func Changes() []Change {
	out := make([]Change, len(changeNames))
	for i := range out {
		out[i] = Change(i)
	}
	return out
}

// ParseChange accepts names like "node_size", "NODE_SIZE" or "node-size".
func ParseChange(s string) (Change, error) {
	key := strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToLower(strings.TrimSpace(s)))
	for i, name := range changeNames {
		if name == key {
			return Change(i), nil
		}
	}
	return All, errors.New(errors.ErrCodeInvalidChange, "unknown style change %q", s)
}

// Params holds every styleable attribute. Sizes are in inches, label sizes
// in points and Rotation in degrees.
type Params struct {
	Width    float64 `toml:"width" json:"width"`
	Height   float64 `toml:"height" json:"height"`
	Diameter float64 `toml:"diameter" json:"diameter"`

	XDPI float64 `toml:"-" json:"-"`
	YDPI float64 `toml:"-" json:"-"`

	Fill             colour.RGB `toml:"fill" json:"fill"`
	Outline          colour.RGB `toml:"outline" json:"outline"`
	OutlineThickness float64    `toml:"outline_thickness" json:"outline_thickness"`

	TopPrefix     string  `toml:"top_prefix" json:"top_prefix,omitempty"`
	BottomPrefix  string  `toml:"bottom_prefix" json:"bottom_prefix,omitempty"`
	NumberLabels  bool    `toml:"number_labels" json:"number_labels,omitempty"`
	LabelStart    int     `toml:"label_start" json:"label_start,omitempty"`
	NodeLabelSize float64 `toml:"node_label_size" json:"node_label_size"`

	EdgeWidth     float64    `toml:"edge_width" json:"edge_width"`
	EdgeColour    colour.RGB `toml:"edge_colour" json:"edge_colour"`
	EdgeLabel     string     `toml:"edge_label" json:"edge_label,omitempty"`
	EdgeLabelSize float64    `toml:"edge_label_size" json:"edge_label_size"`

	Rotation float64 `toml:"rotation" json:"rotation,omitempty"`
}

// DefaultDPI is the display density assumed when none is configured.
const DefaultDPI = 96

// Upper bounds enforced by Validate. They keep a drawing within what the
// raster and SVG writers can allocate.
const (
	MaxSize      = 40   // inches, for width, height, diameter and thicknesses
	MaxLabelSize = 144  // points
	MaxDPI       = 1200 // display density
)

// DefaultParams returns a 2×2 inch drawing with the graph package's default
// node and edge styles.
func DefaultParams() Params {
	return Params{
		Width:            2,
		Height:           2,
		Diameter:         graph.DefaultDiameter,
		XDPI:             DefaultDPI,
		YDPI:             DefaultDPI,
		Fill:             colour.White,
		Outline:          colour.Black,
		OutlineThickness: graph.DefaultOutlineThickness,
		NodeLabelSize:    graph.DefaultLabelSize,
		EdgeWidth:        graph.DefaultPenWidth,
		EdgeColour:       colour.Black,
		EdgeLabelSize:    graph.DefaultLabelSize,
	}
}

// Validate reports the first parameter that Apply would have to clamp.
func (p Params) Validate() error {
	for _, v := range []float64{p.Width, p.Height, p.Diameter, p.XDPI, p.YDPI, p.NodeLabelSize,
		p.EdgeLabelSize, p.OutlineThickness, p.EdgeWidth, p.Rotation} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New(errors.ErrCodeInvalidInput, "style values must be finite numbers")
		}
	}
	switch {
	case p.Width <= 0 || p.Height <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "width and height must be positive")
	case p.Diameter <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "diameter must be positive")
	case p.XDPI <= 0 || p.YDPI <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "dpi must be positive")
	case p.NodeLabelSize < 1 || p.EdgeLabelSize < 1:
		return errors.New(errors.ErrCodeInvalidInput, "label sizes must be at least 1pt")
	case p.OutlineThickness < 0 || p.EdgeWidth < 0:
		return errors.New(errors.ErrCodeInvalidInput, "thicknesses must not be negative")
	case max(p.Width, p.Height, p.Diameter, p.OutlineThickness, p.EdgeWidth) > MaxSize:
		return errors.New(errors.ErrCodeInvalidInput, "sizes must be at most %d inches", MaxSize)
	case max(p.NodeLabelSize, p.EdgeLabelSize) > MaxLabelSize:
		return errors.New(errors.ErrCodeInvalidInput, "label sizes must be at most %dpt", MaxLabelSize)
	case max(p.XDPI, p.YDPI) > MaxDPI:
		return errors.New(errors.ErrCodeInvalidInput, "dpi must be at most %d", MaxDPI)
	}
	if err := errors.ValidateLabel(p.TopPrefix); err != nil {
		return err
	}
	if err := errors.ValidateLabel(p.BottomPrefix); err != nil {
		return err
	}
	return errors.ValidateLabel(p.EdgeLabel)
}

// sanitized replaces values Apply cannot use with defaults.
func (p Params) sanitized() Params {
	d := DefaultParams()
	if p.Width <= 0 {
		p.Width = d.Width
	}
	if p.Height <= 0 {
		p.Height = d.Height
	}
	if p.Diameter <= 0 {
		p.Diameter = d.Diameter
	}
	if p.XDPI <= 0 {
		p.XDPI = d.XDPI
	}
	if p.YDPI <= 0 {
		p.YDPI = d.YDPI
	}
	p.NodeLabelSize = max(p.NodeLabelSize, 1)
	p.EdgeLabelSize = max(p.EdgeLabelSize, 1)
	p.OutlineThickness = max(p.OutlineThickness, 0)
	p.EdgeWidth = max(p.EdgeWidth, 0)
	return p
}

// Apply updates g in place.
func Apply(g *graph.Graph, c Change, p Params) {
	p = p.sanitized()
	switch c {
	case All:
		sizeNodes(g, p)
		fillNodes(g, p)
		outlineNodes(g, p)
		thickenNodes(g, p)
		labelNodes(g, p)
		sizeNodeLabels(g, p)
		sizeEdges(g, p)
		labelEdges(g, p)
		sizeEdgeLabels(g, p)
		colourEdges(g, p)
		place(g, p)
		g.Rotate(radians(p.Rotation), false)
	case NodeSize:
		sizeNodes(g, p)
		g.Rotate(place(g, p), false)
	case NodeFill:
		fillNodes(g, p)
	case NodeOutline:
		outlineNodes(g, p)
	case NodeThickness:
		thickenNodes(g, p)
	case NodeLabel1, NodeLabel2, NumberLabels, LabelStart:
		labelNodes(g, p)
	case NodeLabelSize:
		sizeNodeLabels(g, p)
	case EdgeSize:
		sizeEdges(g, p)
		g.AdjustAll()
	case EdgeLabel:
		labelEdges(g, p)
	case EdgeLabelSize:
		sizeEdgeLabels(g, p)
	case EdgeColour:
		colourEdges(g, p)
	case Rotation:
		g.Rotate(radians(p.Rotation), false)
	case GraphHeight, GraphWidth:
		g.Rotate(place(g, p), false)
	}
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// place maps preview coordinates to unrotated pixel positions. It resets the
// graph rotation to zero and returns the previous value.
func place(g *graph.Graph, p Params) float64 {
	wc := math.Max(0.1, p.Width-p.Diameter)
	hc := math.Max(0.1, p.Height-p.Diameter)
	nodes := g.Nodes()
	for i := range nodes {
		nodes[i].Pos = r2.Vec{
			X: nodes[i].Preview.X * wc * p.XDPI,
			Y: nodes[i].Preview.Y * hc * p.YDPI,
		}
	}
	prev := g.Rotation
	g.Rotation = 0
	return prev
}

func sizeNodes(g *graph.Graph, p Params) {
	g.DPI = p.XDPI
	nodes := g.Nodes()
	for i := range nodes {
		nodes[i].Diameter = p.Diameter
	}
	r := p.Diameter * p.XDPI / 2
	edges := g.Edges()
	for i := range edges {
		edges[i].SourceRadius = r
		edges[i].DestRadius = r
	}
}

func fillNodes(g *graph.Graph, p Params) {
	nodes := g.Nodes()
	for i := range nodes {
		nodes[i].Fill = p.Fill
	}
}

func outlineNodes(g *graph.Graph, p Params) {
	nodes := g.Nodes()
	for i := range nodes {
		nodes[i].Outline = p.Outline
	}
}

func thickenNodes(g *graph.Graph, p Params) {
	nodes := g.Nodes()
	for i := range nodes {
		nodes[i].OutlineThickness = p.OutlineThickness
	}
}

func sizeNodeLabels(g *graph.Graph, p Params) {
	nodes := g.Nodes()
	for i := range nodes {
		nodes[i].LabelSize = p.NodeLabelSize
	}
}

func sizeEdges(g *graph.Graph, p Params) {
	edges := g.Edges()
	for i := range edges {
		edges[i].PenWidth = p.EdgeWidth
	}
}

func labelEdges(g *graph.Graph, p Params) {
	edges := g.Edges()
	for i := range edges {
		edges[i].Label = p.EdgeLabel
	}
}

func sizeEdgeLabels(g *graph.Graph, p Params) {
	edges := g.Edges()
	for i := range edges {
		edges[i].LabelSize = p.EdgeLabelSize
	}
}

func colourEdges(g *graph.Graph, p Params) {
	edges := g.Edges()
	for i := range edges {
		edges[i].Colour = p.EdgeColour
	}
}

// Subscripted returns the raw label prefix_{i}.
func Subscripted(prefix string, i int) string {
	return prefix + "_{" + strconv.Itoa(i) + "}"
}

func labelNodes(g *graph.Graph, p Params) {
	nodes := g.Nodes()
	switch {
	case p.NumberLabels:
		for i := range nodes {
			nodes[i].Label = strconv.Itoa(i + p.LabelStart)
		}
	case g.Roles.IsBipartite() && p.TopPrefix != "":
		bottomPrefix := p.BottomPrefix
		if bottomPrefix == "" {
			bottomPrefix = p.TopPrefix
		}
		bottom := make(map[graph.NodeID]bool, len(g.Roles.BipartiteBottom))
		for _, id := range g.Roles.BipartiteBottom {
			bottom[id] = true
		}
		top, bot := p.LabelStart, p.LabelStart
		for i := range nodes {
			if bottom[graph.NodeID(i)] {
				nodes[i].Label = Subscripted(bottomPrefix, bot)
				bot++
			} else {
				nodes[i].Label = Subscripted(p.TopPrefix, top)
				top++
			}
		}
	case p.TopPrefix != "":
		for i := range nodes {
			nodes[i].Label = Subscripted(p.TopPrefix, i+p.LabelStart)
		}
	default:
		for i := range nodes {
			nodes[i].Label = ""
		}
	}
}
