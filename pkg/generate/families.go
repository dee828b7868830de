package generate

import (
	"math"
	"math/bits"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/graphic/pkg/graph"
)

// Cycle lays n nodes on the unit circle, starting at the top.
func Cycle(n int, edges bool) *graph.Graph {
	n = max(n, 1)
	g := graph.New(FamilyCycle)
	ids := ring(g, n, 1)
	g.Roles.Cycle = ids
	if edges {
		connectCycle(g, ids)
	}
	return g
}

// Complete uses the cycle layout and joins every pair.
func Complete(n int, edges bool) *graph.Graph {
	n = max(n, 1)
	g := graph.New(FamilyComplete)
	ids := ring(g, n, 1)
	g.Roles.Cycle = ids
	if edges {
		for i := range ids {
			for j := i + 1; j < len(ids); j++ {
				g.Connect(ids[i], ids[j])
			}
		}
	}
	return g
}

// star adds a centre and n-1 peripheral nodes.
func star(g *graph.Graph, n int) (graph.NodeID, []graph.NodeID) {
	c := g.AddNode(graph.NewNode(r2.Vec{}))
	g.Roles.Center = c
	rim := ring(g, n-1, 1)
	g.Roles.Cycle = rim
	return c, rim
}

// Star has a centre joined to n-1 nodes on the unit circle.
func Star(n int, edges bool) *graph.Graph {
	n = max(n, 1)
	g := graph.New(FamilyStar)
	c, rim := star(g, n)
	if edges {
		for _, v := range rim {
			g.Connect(c, v)
		}
	}
	return g
}

// Wheel is a star whose peripheral nodes also form a cycle.
func Wheel(n int, edges bool) *graph.Graph {
	n = max(n, 1)
	g := graph.New(FamilyWheel)
	c, rim := star(g, n)
	if edges {
		for _, v := range rim {
			g.Connect(c, v)
		}
		connectCycle(g, rim)
	}
	return g
}

// Gear places n nodes (n-1 if n is odd) on a circle and pulls every
// odd-indexed node onto the chord between its neighbours. An odd n adds a
// centre joined to the even-indexed nodes.
func Gear(n int, edges bool) *graph.Graph {
	n = max(n, 6)
	m := n
	if n%2 == 1 {
		m = n - 1
	}
	pts := MakeCycle(m, unit, unit, 0)
	for i := 1; i < m; i += 2 {
		pts[i] = r2.Scale(0.5, r2.Add(pts[i-1], pts[(i+1)%m]))
	}

	g := graph.New(FamilyGear)
	rim := place(g, pts)
	g.Roles.Cycle = rim
	if n%2 == 1 {
		g.Roles.Center = g.AddNode(graph.NewNode(r2.Vec{}))
	}
	if edges {
		connectCycle(g, rim)
		if c := g.Roles.Center; c != graph.NoNode {
			for i := 0; i < m; i += 2 {
				g.Connect(c, rim[i])
			}
		}
	}
	return g
}

// sunlet adds pendant nodes on the unit circle and a ring at 0.65 whose
// nodes each hold one pendant.
func sunlet(g *graph.Graph, n int, edges bool) (outer []graph.NodeID) {
	inner := ring(g, n, 1)
	outer = ring(g, n, 0.65)
	g.Roles.DoubleCycle = [2][]graph.NodeID{outer, inner}
	if edges {
		for i := range outer {
			g.Connect(outer[i], inner[i])
			g.Connect(outer[i], outer[(i+1)%n])
		}
	}
	return outer
}

// Helm is a wheel with a pendant node on every rim node.
func Helm(n int, edges bool) *graph.Graph {
	n = max(n, 1)
	g := graph.New(FamilyHelm)
	outer := sunlet(g, n, edges)
	c := g.AddNode(graph.NewNode(r2.Vec{}))
	g.Roles.Center = c
	if edges {
		for _, v := range outer {
			g.Connect(v, c)
		}
	}
	return g
}

// Crown is a helm without its centre.
func Crown(n int, edges bool) *graph.Graph {
	n = max(n, 1)
	g := graph.New(FamilyCrown)
	sunlet(g, n, edges)
	return g
}

// doubleRing adds an outer cycle at radius 1 and an inner cycle at 0.5,
// joined by spokes.
func doubleRing(g *graph.Graph, n int, edges bool) (outer, inner []graph.NodeID) {
	outer = ring(g, n, 1)
	inner = ring(g, n, 0.5)
	g.Roles.DoubleCycle = [2][]graph.NodeID{outer, inner}
	if edges {
		connectCycle(g, outer)
		for i := range outer {
			g.Connect(outer[i], inner[i])
		}
	}
	return outer, inner
}

// Prism joins two concentric n-cycles with spokes.
func Prism(n int, edges bool) *graph.Graph {
	n = max(n, 1)
	g := graph.New(FamilyPrism)
	_, inner := doubleRing(g, n, edges)
	if edges {
		connectCycle(g, inner)
	}
	return g
}

// Antiprism alternates nodes between radius 1 and 0.25 and joins each node
// to the next two. n is forced even and at least 6.
func Antiprism(n int, edges bool) *graph.Graph {
	n = normalizeAntiprism(n)
	pts := MakeCycle(n, unit, unit, 0)
	for i := 1; i < n; i += 2 {
		pts[i] = r2.Scale(0.25, pts[i])
	}

	g := graph.New(FamilyAntiprism)
	ids := place(g, pts)
	g.Roles.Cycle = ids
	if edges {
		for i := range ids {
			g.Connect(ids[i], ids[(i+1)%n])
			g.Connect(ids[i], ids[(i+2)%n])
		}
	}
	return g
}

// Petersen builds the generalized Petersen graph G(n, k): an outer n-cycle,
// an inner star polygon stepping by k, and spokes. k is reset to 1 when it
// is out of range.
func Petersen(n, k int, edges bool) *graph.Graph {
	n, k = normalizePetersen(n, k)
	g := graph.New(FamilyPetersen)
	_, inner := doubleRing(g, n, edges)
	if edges && k%n != 0 {
		for i := range inner {
			g.Connect(inner[i], inner[(i+k)%n])
		}
	}
	return g
}

// Bipartite places p nodes on a top row and q on a bottom row. The longer
// row spans the full width; the shorter one is centred between its
// neighbours. With edges, every top node is joined to every bottom node.
func Bipartite(p, q int, edges bool) *graph.Graph {
	p, q = max(p, 1), max(q, 1)
	long := max(p, q)
	xs := func(n int) []float64 {
		if n == long {
			return spread(n)
		}
		return centred(n, long)
	}

	g := graph.New(FamilyBipartite)
	for _, x := range xs(p) {
		g.Roles.BipartiteTop = append(g.Roles.BipartiteTop, g.AddNode(graph.NewNode(r2.Vec{X: x, Y: -unit})))
	}
	for _, x := range xs(q) {
		g.Roles.BipartiteBottom = append(g.Roles.BipartiteBottom, g.AddNode(graph.NewNode(r2.Vec{X: x, Y: unit})))
	}
	if edges {
		for _, u := range g.Roles.BipartiteTop {
			for _, v := range g.Roles.BipartiteBottom {
				g.Connect(u, v)
			}
		}
	}
	return g
}

// Grid lays out a rows×cols lattice in row-major order with 4-neighbour
// edges.
func Grid(rows, cols int, edges bool) *graph.Graph {
	rows, cols = max(rows, 1), max(cols, 1)
	ys, xs := spread(rows), spread(cols)

	g := graph.New(FamilyGrid)
	g.Roles.Grid = make([][]graph.NodeID, rows)
	for i, y := range ys {
		g.Roles.Grid[i] = place(g, func() []r2.Vec {
			row := make([]r2.Vec, cols)
			for j, x := range xs {
				row[j] = r2.Vec{X: x, Y: y}
			}
			return row
		}())
	}
	if edges {
		for i := range rows {
			for j := range cols {
				if j+1 < cols {
					g.Connect(g.Roles.Grid[i][j], g.Roles.Grid[i][j+1])
				}
				if i+1 < rows {
					g.Connect(g.Roles.Grid[i][j], g.Roles.Grid[i+1][j])
				}
			}
		}
	}
	return g
}

// Path places n nodes evenly along the horizontal axis.
func Path(n int, edges bool) *graph.Graph {
	n = max(n, 1)
	g := graph.New(FamilyPath)
	pts := make([]r2.Vec, n)
	for i, x := range spread(n) {
		pts[i] = r2.Vec{X: x}
	}
	g.Roles.Path = place(g, pts)
	if edges {
		connectPath(g, g.Roles.Path)
	}
	return g
}

// depth returns ⌊log₂ n⌋ for n >= 1.
func depth(n int) int { return bits.Len(uint(n)) - 1 }

// treePos returns the unit-square position of heap index i in a tree of
// depth d. Leaves of a full tree span [0, 1]; parents sit midway between
// their children.
func treePos(i, d int) r2.Vec {
	p := depth(i + 1)
	if d == 0 {
		return r2.Vec{X: 0.5, Y: 0.5}
	}
	y := float64(p) / float64(d)
	if p == 0 {
		return r2.Vec{X: 0.5, Y: y}
	}
	first := 1<<p - 1
	num := (i-first)*(1<<(d-p+1)) + (1<<(d-p) - 1)
	den := 2 * (1<<d - 1)
	return r2.Vec{X: float64(num) / float64(den), Y: y}
}

// Tree is the balanced binary tree on n nodes in heap order. Missing leaves
// of a partial last level leave gaps.
func Tree(n int, edges bool) *graph.Graph {
	n = max(n, 1)
	d := depth(n)
	g := graph.New(FamilyTree)
	for i := range n {
		p := treePos(i, d)
		g.Roles.BinaryHeap = append(g.Roles.BinaryHeap,
			g.AddNode(graph.NewNode(r2.Vec{X: p.X - unit, Y: p.Y - unit})))
	}
	if edges {
		heap := g.Roles.BinaryHeap
		for i := range heap {
			for _, c := range []int{2*i + 1, 2*i + 2} {
				if c < n {
					g.Connect(heap[i], heap[c])
				}
			}
		}
	}
	return g
}

// BladeWidth is the angular width a windmill blade occupies in its wedge.
func BladeWidth(blades int) float64 {
	b := float64(blades)
	return (2 * math.Pi / b) * (0.9 - 0.786*math.Exp(-0.135*b))
}

// Windmill builds the Dutch windmill: b cycles of s nodes sharing one
// centre. Each blade is an ellipse whose bottom node is the centre.
func Windmill(b, s int, edges bool) *graph.Graph {
	b, s = max(b, 2), max(s, 3)
	g := graph.New(FamilyWindmill)
	c := g.AddNode(graph.NewNode(r2.Vec{}))
	g.Roles.Center = c

	const vr = unit / 2
	ratio := BladeWidth(b) * float64(s) / (float64(s-2) * math.Pi)
	shape := MakeCycle(s, ratio*vr, vr, math.Pi)[1:]

	for i := range b {
		rot := r2.NewRotation(float64(i)*2*math.Pi/float64(b), r2.Vec{})
		pts := make([]r2.Vec, len(shape))
		for j, p := range shape {
			pts[j] = rot.Rotate(r2.Vec{X: p.X, Y: p.Y - vr})
		}
		blade := place(g, pts)
		g.Roles.ListOfCycles = append(g.Roles.ListOfCycles, blade)
		if edges {
			connectPath(g, blade)
			g.Connect(c, blade[0])
			g.Connect(c, blade[len(blade)-1])
		}
	}
	return g
}
