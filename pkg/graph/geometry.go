package graph

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// SelectionMargin is the half-width in pixels of an edge's selection
// rectangle beyond half its pen width.
const SelectionMargin = 3.0

// DefaultDPI is the pixel density assumed for graphs whose DPI is unset.
const DefaultDPI = 96.0

func (g *Graph) dpi() float64 {
	if g.DPI > 0 {
		return g.DPI
	}
	return DefaultDPI
}

// Adjust recomputes the cached geometry of edge id from its endpoints.
//
// When the centres are further apart than twice the destination radius, the
// segment runs from the rim of the source disc to the rim of the destination
// disc. Otherwise both points collapse onto the source centre. The selection
// rectangle converts the pen width to pixels at the graph's DPI.
func (g *Graph) Adjust(id EdgeID) {
	e := &g.edges[id]
	s := g.nodes[e.Source].Pos
	d := g.nodes[e.Dest].Pos

	delta := r2.Sub(d, s)
	dist := r2.Norm(delta)
	dir := r2.Vec{X: 1}
	if dist > e.DestRadius*2 && dist > 0 {
		dir = r2.Scale(1/dist, delta)
		e.SourcePoint = r2.Add(s, r2.Scale(e.SourceRadius, dir))
		e.DestPoint = r2.Sub(d, r2.Scale(e.DestRadius, dir))
	} else {
		e.SourcePoint = s
		e.DestPoint = s
	}

	half := e.PenWidth*g.dpi()/2 + SelectionMargin
	normal := r2.Scale(half, r2.Vec{X: -dir.Y, Y: dir.X})
	e.Selection = [4]r2.Vec{
		r2.Add(e.SourcePoint, normal),
		r2.Add(e.DestPoint, normal),
		r2.Sub(e.DestPoint, normal),
		r2.Sub(e.SourcePoint, normal),
	}
}

// AdjustAll adjusts every edge.
func (g *Graph) AdjustAll() {
	for i := range g.edges {
		g.Adjust(EdgeID(i))
	}
}

// AdjustNode adjusts the edges incident to n, e.g. after it was moved.
func (g *Graph) AdjustNode(n NodeID) {
	for _, id := range g.Incident(n) {
		g.Adjust(id)
	}
}

// MoveNode sets the drawing position of n and re-adjusts its edges.
func (g *Graph) MoveNode(n NodeID, p r2.Vec) {
	g.nodes[n].Pos = p
	g.AdjustNode(n)
}

// Rotate turns the drawing about the origin. With keep set, theta is added to
// the current rotation; otherwise the rotation becomes theta. Nodes and edges
// are counter-rotated so their labels stay upright.
func (g *Graph) Rotate(theta float64, keep bool) {
	target := theta
	if keep {
		target = g.Rotation + theta
	}
	delta := target - g.Rotation
	if delta != 0 {
		rot := r2.NewRotation(delta, r2.Vec{})
		for i := range g.nodes {
			g.nodes[i].Pos = rot.Rotate(g.nodes[i].Pos)
		}
	}
	g.Rotation = target

	deg := -target * 180 / math.Pi
	for i := range g.nodes {
		g.nodes[i].Rotation = deg
	}
	for i := range g.edges {
		g.edges[i].Rotation = deg
	}
	g.AdjustAll()
}

// Bounds returns the axis-aligned box around the node centres. The box of an
// empty graph is zero.
func (g *Graph) Bounds() r2.Box {
	if len(g.nodes) == 0 {
		return r2.Box{}
	}
	b := r2.Box{Min: g.nodes[0].Pos, Max: g.nodes[0].Pos}
	for _, n := range g.nodes[1:] {
		b.Min.X = math.Min(b.Min.X, n.Pos.X)
		b.Min.Y = math.Min(b.Min.Y, n.Pos.Y)
		b.Max.X = math.Max(b.Max.X, n.Pos.X)
		b.Max.Y = math.Max(b.Max.Y, n.Pos.Y)
	}
	return b
}

// Extent returns the box around the node discs, given the pixel density used
// to convert diameters.
func (g *Graph) Extent(xdpi, ydpi float64) r2.Box {
	if len(g.nodes) == 0 {
		return r2.Box{}
	}
	b := r2.Box{Min: r2.Vec{X: math.Inf(1), Y: math.Inf(1)}, Max: r2.Vec{X: math.Inf(-1), Y: math.Inf(-1)}}
	for _, n := range g.nodes {
		rx := (n.Diameter + n.OutlineThickness) * xdpi / 2
		ry := (n.Diameter + n.OutlineThickness) * ydpi / 2
		b.Min.X = math.Min(b.Min.X, n.Pos.X-rx)
		b.Min.Y = math.Min(b.Min.Y, n.Pos.Y-ry)
		b.Max.X = math.Max(b.Max.X, n.Pos.X+rx)
		b.Max.Y = math.Max(b.Max.Y, n.Pos.Y+ry)
	}
	return b
}

// Centre returns the midpoint of Bounds.
func (g *Graph) Centre() r2.Vec {
	return g.Bounds().Center()
}
