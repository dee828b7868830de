package graph

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func nearVec(a, b r2.Vec) bool { return near(a.X, b.X) && near(a.Y, b.Y) }

// triangle builds three nodes joined in a cycle.
func triangle() *Graph {
	g := New("test")
	a := g.AddNode(NewNode(r2.Vec{X: 0, Y: 0}))
	b := g.AddNode(NewNode(r2.Vec{X: 100, Y: 0}))
	c := g.AddNode(NewNode(r2.Vec{X: 0, Y: 100}))
	g.Connect(a, b)
	g.Connect(b, c)
	g.Connect(c, a)
	g.Roles.Cycle = []NodeID{a, b, c}
	return g
}

func checkIncidence(t *testing.T, g *Graph) {
	t.Helper()
	for i, e := range g.Edges() {
		id := EdgeID(i)
		for _, end := range []NodeID{e.Source, e.Dest} {
			found := false
			for _, x := range g.Incident(end) {
				if x == id {
					found = true
				}
			}
			if !found {
				t.Errorf("edge %d missing from incident list of node %d", id, end)
			}
		}
	}
	total := 0
	for n := range g.Nodes() {
		for _, id := range g.Incident(NodeID(n)) {
			e := g.Edges()[id]
			if e.Source != NodeID(n) && e.Dest != NodeID(n) {
				t.Errorf("node %d lists edge %d which does not touch it", n, id)
			}
			total++
		}
	}
	if total != 2*g.EdgeCount() {
		t.Errorf("incident entries = %d, want %d", total, 2*g.EdgeCount())
	}
}

func TestAddEdge(t *testing.T) {
	g := New("")
	a := g.AddNode(NewNode(r2.Vec{}))
	b := g.AddNode(NewNode(r2.Vec{X: 1}))

	tests := []struct {
		name    string
		edge    Edge
		wantErr error
	}{
		{"valid", NewEdge(a, b), nil},
		{"self loop", NewEdge(a, a), ErrSelfLoop},
		{"unknown source", NewEdge(7, b), ErrUnknownNode},
		{"unknown dest", NewEdge(a, -2), ErrUnknownNode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.AddEdge(tt.edge)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddEdge() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
	checkIncidence(t, g)
}

func TestConnect(t *testing.T) {
	g := triangle()
	if g.Connect(0, 1) {
		t.Error("Connect(0, 1) added a duplicate")
	}
	if g.Connect(1, 0) {
		t.Error("Connect(1, 0) added a reversed duplicate")
	}
	if g.Connect(2, 2) {
		t.Error("Connect(2, 2) added a self-loop")
	}
	if !g.HasEdge(2, 1) {
		t.Error("HasEdge(2, 1) = false")
	}
	if g.EdgeCount() != 3 {
		t.Errorf("EdgeCount() = %d, want 3", g.EdgeCount())
	}
}

func TestRemoveEdge(t *testing.T) {
	g := triangle()
	g.RemoveEdge(0)
	g.RemoveEdge(99)
	if g.EdgeCount() != 2 {
		t.Fatalf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
	if g.HasEdge(0, 1) {
		t.Error("edge 0-1 still present")
	}
	checkIncidence(t, g)
}

func TestRemoveNode(t *testing.T) {
	g := triangle()
	d := g.AddNode(NewNode(r2.Vec{X: 50, Y: 50}))
	g.Connect(d, 2)
	g.Roles.Center = d

	g.RemoveNode(1)

	if g.NodeCount() != 3 {
		t.Fatalf("NodeCount() = %d, want 3", g.NodeCount())
	}
	// Edges 0-1 and 1-2 are severed; 2-0 and d-2 remain with shifted ids.
	if g.EdgeCount() != 2 {
		t.Fatalf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
	if !g.HasEdge(1, 0) || !g.HasEdge(2, 1) {
		t.Errorf("remaining edges not remapped: %+v", g.Edges())
	}
	if got := g.Roles.Cycle; len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("Roles.Cycle = %v, want [0 1]", got)
	}
	if g.Roles.Center != 2 {
		t.Errorf("Roles.Center = %d, want 2", g.Roles.Center)
	}
	checkIncidence(t, g)

	g.RemoveNode(2)
	if g.Roles.Center != NoNode {
		t.Errorf("Roles.Center = %d, want NoNode", g.Roles.Center)
	}
}

func TestAdjustSelectionDPI(t *testing.T) {
	for _, dpi := range []float64{0, 72, 300} {
		g := New("")
		g.DPI = dpi
		a := g.AddNode(NewNode(r2.Vec{}))
		b := g.AddNode(NewNode(r2.Vec{X: 1000}))
		id, err := g.AddEdge(NewEdge(a, b))
		if err != nil {
			t.Fatal(err)
		}
		want := dpi
		if want == 0 {
			want = DefaultDPI
		}
		half := DefaultPenWidth*want/2 + SelectionMargin
		if got := g.Edge(id).Selection[0].Y; !near(got, half) {
			t.Errorf("DPI %v: selection half-width = %v, want %v", dpi, got, half)
		}
		if c := g.Clone(); c.DPI != dpi {
			t.Errorf("Clone DPI = %v, want %v", c.DPI, dpi)
		}
	}
}

func TestAdjust(t *testing.T) {
	g := New("")
	a := g.AddNode(NewNode(r2.Vec{X: 0, Y: 0}))
	b := g.AddNode(NewNode(r2.Vec{X: 100, Y: 0}))
	e := NewEdge(a, b)
	e.SourceRadius, e.DestRadius = 10, 20
	id, err := g.AddEdge(e)
	if err != nil {
		t.Fatal(err)
	}

	got := g.Edge(id)
	if !nearVec(got.SourcePoint, r2.Vec{X: 10}) || !nearVec(got.DestPoint, r2.Vec{X: 80}) {
		t.Errorf("points = %v, %v; want (10,0), (80,0)", got.SourcePoint, got.DestPoint)
	}
	half := DefaultPenWidth*DefaultDPI/2 + SelectionMargin
	if !near(got.Selection[0].Y, half) || !near(got.Selection[2].Y, -half) {
		t.Errorf("selection = %v, want half-width %v", got.Selection, half)
	}

	// Closer than twice the destination radius: the segment collapses.
	g.MoveNode(b, r2.Vec{X: 30})
	got = g.Edge(id)
	if got.SourcePoint != got.DestPoint {
		t.Errorf("points = %v, %v; want coincident", got.SourcePoint, got.DestPoint)
	}
}

func TestRotate(t *testing.T) {
	g := New("")
	g.AddNode(NewNode(r2.Vec{X: 10, Y: 0}))

	g.Rotate(math.Pi/2, false)
	if p := g.Node(0).Pos; !nearVec(p, r2.Vec{X: 0, Y: 10}) {
		t.Errorf("Pos = %v, want (0,10)", p)
	}
	if r := g.Node(0).Rotation; !near(r, -90) {
		t.Errorf("node Rotation = %v, want -90", r)
	}

	g.Rotate(math.Pi/2, true)
	if !near(g.Rotation, math.Pi) {
		t.Errorf("Rotation = %v, want π", g.Rotation)
	}
	if p := g.Node(0).Pos; !nearVec(p, r2.Vec{X: -10, Y: 0}) {
		t.Errorf("Pos = %v, want (-10,0)", p)
	}

	// Setting an absolute rotation undoes the accumulated one.
	g.Rotate(0, false)
	if p := g.Node(0).Pos; !nearVec(p, r2.Vec{X: 10, Y: 0}) {
		t.Errorf("Pos = %v, want (10,0)", p)
	}
}

func TestBounds(t *testing.T) {
	if b := New("").Bounds(); b != (r2.Box{}) {
		t.Errorf("empty Bounds() = %v", b)
	}
	g := triangle()
	b := g.Bounds()
	if b.Min != (r2.Vec{}) || b.Max != (r2.Vec{X: 100, Y: 100}) {
		t.Errorf("Bounds() = %v", b)
	}
	if c := g.Centre(); c != (r2.Vec{X: 50, Y: 50}) {
		t.Errorf("Centre() = %v", c)
	}
}

func TestJoin(t *testing.T) {
	a := triangle()
	b := triangle()
	b.Roles.Center = 1

	j := Join(a, b)
	if j.NodeCount() != 6 || j.EdgeCount() != 6 {
		t.Fatalf("Join() = %d nodes, %d edges; want 6, 6", j.NodeCount(), j.EdgeCount())
	}
	if !j.HasEdge(3, 4) || j.HasEdge(2, 3) {
		t.Error("edges of b not remapped")
	}
	if len(j.Roles.Cycle) != 6 || j.Roles.Cycle[3] != 3 {
		t.Errorf("Roles.Cycle = %v", j.Roles.Cycle)
	}
	if j.Roles.Center != 4 {
		t.Errorf("Roles.Center = %d, want 4", j.Roles.Center)
	}
	if a.NodeCount() != 3 || b.Roles.Cycle[0] != 0 {
		t.Error("inputs were modified")
	}
	checkIncidence(t, j)
}

func TestClone(t *testing.T) {
	g := triangle()
	c := g.Clone()
	c.Node(0).Label = "x"
	c.Roles.Cycle[0] = 2
	c.RemoveEdge(0)
	if g.Node(0).Label != "" || g.Roles.Cycle[0] != 0 || g.EdgeCount() != 3 {
		t.Error("Clone shares state with the original")
	}
	checkIncidence(t, c)
}

func TestItems(t *testing.T) {
	g := triangle()
	g.Node(1).Label = "v"
	g.Edge(2).Label = "w"

	items := g.Items()
	if len(items) != 3+3+2 {
		t.Fatalf("len(Items()) = %d, want 8", len(items))
	}
	if items[0].Kind != ItemEdge || items[3].Kind != ItemNode {
		t.Errorf("paint order wrong: %v, %v", items[0].Kind, items[3].Kind)
	}
	if last := items[7]; last.Kind != ItemLabel || last.Node != 1 {
		t.Errorf("last item = %+v, want label of node 1", last)
	}
	if items[6].Edge != 2 {
		t.Errorf("edge label item = %+v", items[6])
	}
	for _, it := range items {
		if it.Root() != g {
			t.Fatal("Root() is not the owning graph")
		}
	}
}

func TestAssignIDs(t *testing.T) {
	g := triangle()
	g.AssignIDs()
	for i, n := range g.Nodes() {
		if n.ID != i {
			t.Errorf("node %d ID = %d", i, n.ID)
		}
	}
}
