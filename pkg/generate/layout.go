package generate

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/graphic/pkg/graph"
)

// unit is the preview-space radius of a unit circle. Generators describe
// radii relative to 1; preview coordinates live in [-0.5, 0.5]².
const unit = 0.5

// MakeCycle returns n points at (hRadius·sin θ, −vRadius·cos θ) for
// θ = start + i·2π/n. With start 0 the first point is at the top.
func MakeCycle(n int, hRadius, vRadius, start float64) []r2.Vec {
	pts := make([]r2.Vec, n)
	for i := range pts {
		theta := start + float64(i)*2*math.Pi/float64(n)
		sin, cos := math.Sincos(theta)
		pts[i] = r2.Vec{X: hRadius * sin, Y: -vRadius * cos}
	}
	return pts
}

// place adds a default node at each point and returns their ids.
func place(g *graph.Graph, pts []r2.Vec) []graph.NodeID {
	ids := make([]graph.NodeID, len(pts))
	for i, p := range pts {
		ids[i] = g.AddNode(graph.NewNode(p))
	}
	return ids
}

// ring adds n nodes on a circle of the given relative radius.
func ring(g *graph.Graph, n int, radius float64) []graph.NodeID {
	return place(g, MakeCycle(n, radius*unit, radius*unit, 0))
}

// connectCycle joins consecutive ids and closes the loop. Degenerate rings
// (one or two nodes) produce no self-loop and no duplicate edge.
func connectCycle(g *graph.Graph, ids []graph.NodeID) {
	for i := range ids {
		g.Connect(ids[i], ids[(i+1)%len(ids)])
	}
}

// connectPath joins consecutive ids.
func connectPath(g *graph.Graph, ids []graph.NodeID) {
	for i := 1; i < len(ids); i++ {
		g.Connect(ids[i-1], ids[i])
	}
}

// spread returns n evenly spaced offsets across [-0.5, 0.5], or {0} for a
// single point.
func spread(n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		return out
	}
	for i := range out {
		out[i] = -unit + float64(i)/float64(n-1)
	}
	return out
}

// centred returns n offsets spaced 1/slots apart, centred on zero.
func centred(n, slots int) []float64 {
	out := make([]float64, n)
	mid := float64(n-1) / 2
	for i := range out {
		out[i] = (float64(i) - mid) / float64(slots)
	}
	return out
}
