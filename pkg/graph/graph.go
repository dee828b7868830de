package graph

import (
	"errors"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/graphic/pkg/colour"
)

var (
	// ErrSelfLoop is returned by [Graph.AddEdge] when both endpoints are the
	// same node. Drawings never contain self-loops.
	ErrSelfLoop = errors.New("edge endpoints must differ")

	// ErrUnknownNode is returned by [Graph.AddEdge] when an endpoint is not a
	// node of the graph.
	ErrUnknownNode = errors.New("unknown node")
)

// Style defaults.
const (
	DefaultDiameter         = 0.2  // inches
	DefaultOutlineThickness = 0.01 // inches
	DefaultLabelSize        = 10   // points
	DefaultPenWidth         = 0.01 // inches
)

// NodeID indexes a node within its graph.
type NodeID int

// EdgeID indexes an edge within its graph.
type EdgeID int

// NoNode marks an absent node, e.g. a family without a centre.
const NoNode NodeID = -1

// Node is a disc with an optional label.
type Node struct {
	Pos     r2.Vec // drawing position, pixels
	Preview r2.Vec // generator layout, [-0.5, 0.5]²

	Diameter         float64 // inches, > 0
	OutlineThickness float64 // inches
	Fill             colour.RGB
	Outline          colour.RGB

	Label     string  // raw markup, e.g. "v_{3}"
	LabelSize float64 // points, >= 1

	Rotation float64 // degrees; counter-rotation of the graph
	ID       int     // export id, see AssignIDs
}

// NewNode returns a node with default style placed at p, both as preview and
// as drawing position.
func NewNode(p r2.Vec) Node {
	return Node{
		Pos:              p,
		Preview:          p,
		Diameter:         DefaultDiameter,
		OutlineThickness: DefaultOutlineThickness,
		Fill:             colour.White,
		Outline:          colour.Black,
		LabelSize:        DefaultLabelSize,
	}
}

// Edge is an undirected segment between two nodes.
type Edge struct {
	Source, Dest NodeID

	PenWidth  float64 // inches
	Colour    colour.RGB
	Label     string
	LabelSize float64 // points

	// Disc radii in pixels, used to clip the drawn segment.
	SourceRadius, DestRadius float64

	// Cached geometry, recomputed by Adjust.
	SourcePoint, DestPoint r2.Vec
	Selection              [4]r2.Vec

	Rotation float64 // degrees
}

// NewEdge returns an edge between u and v with default style.
func NewEdge(u, v NodeID) Edge {
	return Edge{
		Source:    u,
		Dest:      v,
		PenWidth:  DefaultPenWidth,
		Colour:    colour.Black,
		LabelSize: DefaultLabelSize,
	}
}

// Other returns the endpoint of e that is not n.
func (e Edge) Other(n NodeID) NodeID {
	if e.Source == n {
		return e.Dest
	}
	return e.Source
}

// Graph owns the nodes and edges of one drawing.
//
// The zero value is not usable; use New.
type Graph struct {
	Kind     string  // generator family, "" for hand-built or loaded graphs
	Rotation float64 // radians
	Moved    bool    // placed on a canvas by the user
	DPI      float64 // pixels per inch of node positions; 0 means DefaultDPI
	Roles    Roles

	nodes []Node
	edges []Edge
	adj   [][]EdgeID // node -> incident edges in insertion order
}

// New creates an empty graph of the given kind.
func New(kind string) *Graph {
	return &Graph{Kind: kind, Roles: Roles{Center: NoNode}}
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Nodes returns the node arena in insertion order. Callers may modify
// fields in place but must not append or reslice; use AddNode and RemoveNode.
// Call AdjustAll after moving nodes this way.
func (g *Graph) Nodes() []Node { return g.nodes }

// Edges returns the edge arena in insertion order, with the same rules as
// Nodes.
func (g *Graph) Edges() []Edge { return g.edges }

// Node returns a pointer to node id. It is invalidated by AddNode.
func (g *Graph) Node(id NodeID) *Node { return &g.nodes[id] }

// Edge returns a pointer to edge id. It is invalidated by AddEdge.
func (g *Graph) Edge(id EdgeID) *Edge { return &g.edges[id] }

// HasNode reports whether id addresses a node.
func (g *Graph) HasNode(id NodeID) bool { return id >= 0 && int(id) < len(g.nodes) }

// AddNode appends n and returns its id.
func (g *Graph) AddNode(n Node) NodeID {
	g.nodes = append(g.nodes, n)
	g.adj = append(g.adj, nil)
	return NodeID(len(g.nodes) - 1)
}

// AddEdge appends e, records it on both endpoints and adjusts its geometry.
// Parallel edges are accepted; generators check HasEdge first.
func (g *Graph) AddEdge(e Edge) (EdgeID, error) {
	if !g.HasNode(e.Source) || !g.HasNode(e.Dest) {
		return -1, ErrUnknownNode
	}
	if e.Source == e.Dest {
		return -1, ErrSelfLoop
	}
	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, e)
	g.adj[e.Source] = append(g.adj[e.Source], id)
	g.adj[e.Dest] = append(g.adj[e.Dest], id)
	g.Adjust(id)
	return id, nil
}

// Connect adds a default-styled edge between u and v unless the pair is
// already joined or u == v. It reports whether an edge was added.
func (g *Graph) Connect(u, v NodeID) bool {
	if u == v || g.HasEdge(u, v) {
		return false
	}
	_, err := g.AddEdge(NewEdge(u, v))
	return err == nil
}

// HasEdge reports whether u and v are joined, in either direction.
func (g *Graph) HasEdge(u, v NodeID) bool {
	if !g.HasNode(u) || !g.HasNode(v) {
		return false
	}
	for _, id := range g.adj[u] {
		if g.edges[id].Other(u) == v {
			return true
		}
	}
	return false
}

// Incident returns the edges touching n in insertion order. The slice must
// not be modified.
func (g *Graph) Incident(n NodeID) []EdgeID {
	if !g.HasNode(n) {
		return nil
	}
	return g.adj[n]
}

// Neighbors returns the nodes adjacent to n.
func (g *Graph) Neighbors(n NodeID) []NodeID {
	ids := g.Incident(n)
	out := make([]NodeID, len(ids))
	for i, id := range ids {
		out[i] = g.edges[id].Other(n)
	}
	return out
}

// RemoveEdge deletes edge id. Edge ids above it shift down by one.
// No-op if id is out of range.
func (g *Graph) RemoveEdge(id EdgeID) {
	if id < 0 || int(id) >= len(g.edges) {
		return
	}
	g.edges = slices.Delete(g.edges, int(id), int(id)+1)
	g.reindex()
}

// RemoveNode severs every edge touching n, then deletes n. Node and edge ids
// above the removed ones shift down; role buckets are updated to match.
func (g *Graph) RemoveNode(n NodeID) {
	if !g.HasNode(n) {
		return
	}
	g.edges = slices.DeleteFunc(g.edges, func(e Edge) bool {
		return e.Source == n || e.Dest == n
	})
	shift := func(id NodeID) NodeID {
		if id > n {
			return id - 1
		}
		return id
	}
	for i := range g.edges {
		g.edges[i].Source = shift(g.edges[i].Source)
		g.edges[i].Dest = shift(g.edges[i].Dest)
	}
	g.nodes = slices.Delete(g.nodes, int(n), int(n)+1)
	g.Roles.remap(func(id NodeID) (NodeID, bool) {
		if id == n {
			return NoNode, false
		}
		return shift(id), true
	})
	g.reindex()
}

// reindex rebuilds the adjacency from the edge arena.
func (g *Graph) reindex() {
	g.adj = make([][]EdgeID, len(g.nodes))
	for i, e := range g.edges {
		g.adj[e.Source] = append(g.adj[e.Source], EdgeID(i))
		g.adj[e.Dest] = append(g.adj[e.Dest], EdgeID(i))
	}
}

// AssignIDs numbers nodes 0..n-1 in insertion order for export.
func (g *Graph) AssignIDs() {
	for i := range g.nodes {
		g.nodes[i].ID = i
	}
}

// Clone returns a deep copy.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		Kind:     g.Kind,
		Rotation: g.Rotation,
		Moved:    g.Moved,
		DPI:      g.DPI,
		Roles:    g.Roles.clone(),
		nodes:    slices.Clone(g.nodes),
		edges:    slices.Clone(g.edges),
	}
	c.reindex()
	return c
}

// Join returns a new graph holding a's nodes and edges followed by b's, with
// b's indices shifted past a's. Neither input is modified. Role buckets are
// carried over with the same shift; the centre is a's if it has one.
func Join(a, b *Graph) *Graph {
	off := NodeID(len(a.nodes))
	j := &Graph{
		Rotation: a.Rotation,
		Moved:    a.Moved || b.Moved,
		DPI:      a.DPI,
		nodes:    slices.Concat(a.nodes, b.nodes),
		edges:    slices.Concat(a.edges, b.edges),
	}
	for i := len(a.edges); i < len(j.edges); i++ {
		j.edges[i].Source += off
		j.edges[i].Dest += off
	}
	rb := b.Roles.clone()
	rb.remap(func(id NodeID) (NodeID, bool) { return id + off, true })
	j.Roles = a.Roles.clone()
	j.Roles.merge(rb)
	j.reindex()
	return j
}
