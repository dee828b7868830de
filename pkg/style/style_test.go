package style

import (
	"math"
	"reflect"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/graphic/pkg/colour"
	"github.com/matzehuels/graphic/pkg/errors"
	"github.com/matzehuels/graphic/pkg/generate"
	"github.com/matzehuels/graphic/pkg/graph"
)

const eps = 1e-9

func nearVec(a, b r2.Vec) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func TestCycleScenario(t *testing.T) {
	g := generate.Cycle(4, true)
	p := DefaultParams()
	p.Width, p.Height, p.Diameter = 2, 2, 0.2
	p.NumberLabels = true
	Apply(g, All, p)

	s := (2 - 0.2) * DefaultDPI
	want := []r2.Vec{{X: 0, Y: -0.5 * s}, {X: 0.5 * s, Y: 0}, {X: 0, Y: 0.5 * s}, {X: -0.5 * s, Y: 0}}
	for i, n := range g.Nodes() {
		if !nearVec(n.Pos, want[i]) {
			t.Errorf("node %d at %v, want %v", i, n.Pos, want[i])
		}
		if n.Label != []string{"0", "1", "2", "3"}[i] {
			t.Errorf("node %d label = %q", i, n.Label)
		}
	}
	r := 0.2 * DefaultDPI / 2
	for i, e := range g.Edges() {
		if math.Abs(e.SourceRadius-r) > eps || math.Abs(e.DestRadius-r) > eps {
			t.Errorf("edge %d radii = %v, %v; want %v", i, e.SourceRadius, e.DestRadius, r)
		}
		span := r2.Norm(r2.Sub(e.DestPoint, e.SourcePoint))
		centres := r2.Norm(r2.Sub(g.Node(e.Dest).Pos, g.Node(e.Source).Pos))
		if math.Abs(span-(centres-2*r)) > eps {
			t.Errorf("edge %d drawn length = %v, want %v", i, span, centres-2*r)
		}
	}
}

func TestBipartiteLabels(t *testing.T) {
	tests := []struct {
		name        string
		top, bottom string
		start       int
		wantTop     []string
		wantBottom  []string
	}{
		{"both prefixes", "u", "v", 0, []string{"u_{0}", "u_{1}", "u_{2}"}, []string{"v_{0}", "v_{1}"}},
		{"shared prefix", "u", "", 0, []string{"u_{0}", "u_{1}", "u_{2}"}, []string{"u_{0}", "u_{1}"}},
		{"label start", "a", "b", 1, []string{"a_{1}", "a_{2}", "a_{3}"}, []string{"b_{1}", "b_{2}"}},
		{"no prefix", "", "v", 0, []string{"", "", ""}, []string{"", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := generate.Bipartite(3, 2, true)
			p := DefaultParams()
			p.TopPrefix, p.BottomPrefix, p.LabelStart = tt.top, tt.bottom, tt.start
			Apply(g, All, p)
			for i, id := range g.Roles.BipartiteTop {
				if got := g.Node(id).Label; got != tt.wantTop[i] {
					t.Errorf("top %d = %q, want %q", i, got, tt.wantTop[i])
				}
			}
			for i, id := range g.Roles.BipartiteBottom {
				if got := g.Node(id).Label; got != tt.wantBottom[i] {
					t.Errorf("bottom %d = %q, want %q", i, got, tt.wantBottom[i])
				}
			}
		})
	}
}

func TestPrefixLabels(t *testing.T) {
	g := generate.Path(3, true)
	p := DefaultParams()
	p.TopPrefix = "v"
	p.LabelStart = 1
	Apply(g, All, p)
	for i, n := range g.Nodes() {
		if want := Subscripted("v", i+1); n.Label != want {
			t.Errorf("node %d = %q, want %q", i, n.Label, want)
		}
	}

	p.TopPrefix = ""
	Apply(g, NodeLabel1, p)
	for i, n := range g.Nodes() {
		if n.Label != "" {
			t.Errorf("node %d label not cleared: %q", i, n.Label)
		}
	}
}

func TestPetersenRadius(t *testing.T) {
	g := generate.Petersen(5, 2, true)
	p := DefaultParams()
	p.Width, p.Height, p.Diameter = 3, 3, 0.3
	Apply(g, All, p)

	want := (3 - 0.3) * DefaultDPI / 2
	for _, id := range g.Roles.DoubleCycle[0] {
		if r := r2.Norm(g.Node(id).Pos); math.Abs(r-want) > 1e-6 {
			t.Errorf("outer node %d radius = %v, want %v", id, r, want)
		}
	}
}

func TestSelectionFollowsDPI(t *testing.T) {
	g := generate.Cycle(4, true)
	p := DefaultParams()
	p.XDPI, p.YDPI = 200, 200
	Apply(g, All, p)

	if g.DPI != 200 {
		t.Fatalf("graph DPI = %v, want 200", g.DPI)
	}
	e := g.Edge(0)
	half := r2.Norm(r2.Sub(e.Selection[0], e.SourcePoint))
	want := e.PenWidth*200/2 + graph.SelectionMargin
	if math.Abs(half-want) > 1e-6 {
		t.Errorf("selection half-width = %v, want %v", half, want)
	}
}

func TestApplyIdempotent(t *testing.T) {
	p := DefaultParams()
	p.TopPrefix = "x"
	p.Rotation = 30
	p.Fill = colour.RGB{R: 10, G: 20, B: 30}

	for _, f := range generate.Families() {
		once, _ := generate.Generate(f.Name, f.Defaults())
		twice, _ := generate.Generate(f.Name, f.Defaults())
		Apply(once, All, p)
		Apply(twice, All, p)
		Apply(twice, All, p)
		if !reflect.DeepEqual(once.Nodes(), twice.Nodes()) || !reflect.DeepEqual(once.Edges(), twice.Edges()) {
			t.Errorf("%s: applying All twice differs from once", f.Name)
		}
	}
}

func TestSingleChanges(t *testing.T) {
	base := DefaultParams()
	g := generate.Cycle(3, true)
	Apply(g, All, base)
	before := g.Clone()

	p := base
	p.Fill = colour.RGB{R: 255}
	p.EdgeColour = colour.RGB{B: 255}
	Apply(g, NodeFill, p)
	for i, n := range g.Nodes() {
		if n.Fill != p.Fill {
			t.Errorf("node %d fill = %v", i, n.Fill)
		}
		if n.Pos != before.Node(graph.NodeID(i)).Pos {
			t.Errorf("NodeFill moved node %d", i)
		}
	}
	for i, e := range g.Edges() {
		if e.Colour != colour.Black {
			t.Errorf("NodeFill changed edge %d colour", i)
		}
	}

	Apply(g, EdgeColour, p)
	if g.Edge(0).Colour != p.EdgeColour {
		t.Errorf("edge colour = %v", g.Edge(0).Colour)
	}
}

func TestRotationSurvivesResize(t *testing.T) {
	p := DefaultParams()
	p.Rotation = 90
	g := generate.Path(2, true)
	Apply(g, All, p)

	p.Width = 4
	Apply(g, GraphWidth, p)
	if math.Abs(g.Rotation-math.Pi/2) > eps {
		t.Fatalf("Rotation = %v after resize", g.Rotation)
	}
	// Path(2) spans x; after a quarter turn the nodes lie on the y axis.
	half := 0.5 * (4 - p.Diameter) * DefaultDPI
	if a := g.Node(0).Pos; !nearVec(a, r2.Vec{X: 0, Y: -half}) {
		t.Errorf("node 0 at %v, want (0, %v)", a, -half)
	}
	if r := g.Node(0).Rotation; math.Abs(r+90) > eps {
		t.Errorf("node rotation = %v, want -90", r)
	}
}

func TestParseChange(t *testing.T) {
	tests := []struct {
		in   string
		want Change
	}{
		{"all", All},
		{"NODE_SIZE", NodeSize},
		{"node-label-1", NodeLabel1},
		{" edge colour ", EdgeColour},
		{"label_start", LabelStart},
	}
	for _, tt := range tests {
		got, err := ParseChange(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseChange(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseChange("sparkle"); !errors.Is(err, errors.ErrCodeInvalidChange) {
		t.Errorf("ParseChange(sparkle) error = %v", err)
	}
	for _, c := range Changes() {
		if back, err := ParseChange(c.String()); err != nil || back != c {
			t.Errorf("ParseChange(%q) = %v, %v", c.String(), back, err)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("DefaultParams().Validate() = %v", err)
	}
	bad := []func(*Params){
		func(p *Params) { p.Width = 0 },
		func(p *Params) { p.Diameter = -1 },
		func(p *Params) { p.XDPI = 0 },
		func(p *Params) { p.NodeLabelSize = 0.5 },
		func(p *Params) { p.EdgeWidth = -0.1 },
		func(p *Params) { p.TopPrefix = "a\nb" },
		func(p *Params) { p.Width = MaxSize + 1 },
		func(p *Params) { p.Height = 100000 },
		func(p *Params) { p.Diameter = MaxSize * 2 },
		func(p *Params) { p.EdgeWidth = MaxSize + 0.5 },
		func(p *Params) { p.NodeLabelSize = MaxLabelSize + 1 },
		func(p *Params) { p.XDPI = MaxDPI * 10 },
		func(p *Params) { p.Width = math.NaN() },
		func(p *Params) { p.Rotation = math.Inf(1) },
	}
	for i, mutate := range bad {
		p := DefaultParams()
		mutate(&p)
		if err := p.Validate(); !errors.Is(err, errors.ErrCodeInvalidInput) && !errors.Is(err, errors.ErrCodeInvalidLabel) {
			t.Errorf("case %d: Validate() = %v", i, err)
		}
	}

	p := DefaultParams()
	p.Width, p.Height, p.Diameter = MaxSize, MaxSize, MaxSize
	if err := p.Validate(); err != nil {
		t.Errorf("sizes at the limit rejected: %v", err)
	}
}

func TestApplySanitizes(t *testing.T) {
	g := generate.Cycle(3, false)
	Apply(g, All, Params{})
	for i, n := range g.Nodes() {
		if n.Diameter != graph.DefaultDiameter || n.LabelSize < 1 {
			t.Errorf("node %d = %+v", i, n)
		}
	}
}
