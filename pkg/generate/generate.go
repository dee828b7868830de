// Package generate builds graphs of named families with preview layouts.
//
// Every generator returns a fresh [graph.Graph] whose node Preview (and Pos)
// coordinates lie in [-0.5, 0.5]². Node insertion order is part of each
// family's contract: labelling and file output follow it. Generators never
// emit self-loops or parallel edges, and they never fail: out-of-range
// parameters are coerced to the nearest legal value (see [Normalize]).
//
// Families are registered by name so the CLI, the TUI browser and the HTTP
// API share one catalogue:
//
//	g, err := generate.Generate("petersen", generate.Params{N: 5, M: 2, DrawEdges: true})
package generate

import (
	"slices"
	"strings"

	"github.com/matzehuels/graphic/pkg/errors"
	"github.com/matzehuels/graphic/pkg/graph"
)

// Family names.
const (
	FamilyCycle     = "cycle"
	FamilyComplete  = "complete"
	FamilyStar      = "star"
	FamilyWheel     = "wheel"
	FamilyGear      = "gear"
	FamilyHelm      = "helm"
	FamilyCrown     = "crown"
	FamilyPrism     = "prism"
	FamilyAntiprism = "antiprism"
	FamilyPetersen  = "petersen"
	FamilyBipartite = "bipartite"
	FamilyGrid      = "grid"
	FamilyPath      = "path"
	FamilyTree      = "tree"
	FamilyWindmill  = "windmill"
)

// MaxParam bounds every family parameter at the outer surfaces (CLI, HTTP)
// so that a request cannot allocate millions of nodes.
const MaxParam = 256

// Params are the inputs shared by all generators. Single-parameter families
// read only N.
type Params struct {
	N         int  `json:"n" toml:"n"`
	M         int  `json:"m,omitempty" toml:"m"`
	DrawEdges bool `json:"draw_edges" toml:"draw_edges"`
}

// Param describes one integer input of a family.
type Param struct {
	Name    string `json:"name"`
	Min     int    `json:"min"`
	Default int    `json:"default"`
}

// Family is a registry entry.
type Family struct {
	Name   string  `json:"name"`
	Title  string  `json:"title"`
	Params []Param `json:"params"`

	build func(Params) *graph.Graph
}

// Defaults returns the family's default parameters with edges drawn.
func (f Family) Defaults() Params {
	p := Params{DrawEdges: true}
	if len(f.Params) > 0 {
		p.N = f.Params[0].Default
	}
	if len(f.Params) > 1 {
		p.M = f.Params[1].Default
	}
	return p
}

func one(name string, min, def int) []Param {
	return []Param{{Name: name, Min: min, Default: def}}
}

func two(a string, amin, adef int, b string, bmin, bdef int) []Param {
	return []Param{{Name: a, Min: amin, Default: adef}, {Name: b, Min: bmin, Default: bdef}}
}

var families = []Family{
	{FamilyCycle, "Cycle", one("n", 1, 5), func(p Params) *graph.Graph { return Cycle(p.N, p.DrawEdges) }},
	{FamilyComplete, "Complete", one("n", 1, 5), func(p Params) *graph.Graph { return Complete(p.N, p.DrawEdges) }},
	{FamilyStar, "Star", one("n", 1, 6), func(p Params) *graph.Graph { return Star(p.N, p.DrawEdges) }},
	{FamilyWheel, "Wheel", one("n", 1, 6), func(p Params) *graph.Graph { return Wheel(p.N, p.DrawEdges) }},
	{FamilyGear, "Gear", one("n", 6, 7), func(p Params) *graph.Graph { return Gear(p.N, p.DrawEdges) }},
	{FamilyHelm, "Helm", one("n", 1, 5), func(p Params) *graph.Graph { return Helm(p.N, p.DrawEdges) }},
	{FamilyCrown, "Crown", one("n", 1, 5), func(p Params) *graph.Graph { return Crown(p.N, p.DrawEdges) }},
	{FamilyPrism, "Prism", one("n", 1, 5), func(p Params) *graph.Graph { return Prism(p.N, p.DrawEdges) }},
	{FamilyAntiprism, "Antiprism", one("n", 6, 8), func(p Params) *graph.Graph { return Antiprism(p.N, p.DrawEdges) }},
	{FamilyPetersen, "Generalized Petersen", two("n", 3, 5, "k", 1, 2), func(p Params) *graph.Graph { return Petersen(p.N, p.M, p.DrawEdges) }},
	{FamilyBipartite, "Complete bipartite", two("p", 1, 3, "q", 1, 2), func(p Params) *graph.Graph { return Bipartite(p.N, p.M, p.DrawEdges) }},
	{FamilyGrid, "Grid", two("rows", 1, 3, "cols", 1, 4), func(p Params) *graph.Graph { return Grid(p.N, p.M, p.DrawEdges) }},
	{FamilyPath, "Path", one("n", 1, 5), func(p Params) *graph.Graph { return Path(p.N, p.DrawEdges) }},
	{FamilyTree, "Balanced binary tree", one("n", 1, 7), func(p Params) *graph.Graph { return Tree(p.N, p.DrawEdges) }},
	{FamilyWindmill, "Dutch windmill", two("blades", 2, 3, "size", 3, 3), func(p Params) *graph.Graph { return Windmill(p.N, p.M, p.DrawEdges) }},
}

// Families returns the registry in display order.
func Families() []Family { return slices.Clone(families) }

// Names returns the registered family names in display order.
func Names() []string {
	out := make([]string, len(families))
	for i, f := range families {
		out[i] = f.Name
	}
	return out
}

// Lookup finds a family by name, case-insensitively.
func Lookup(name string) (Family, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, f := range families {
		if f.Name == name {
			return f, true
		}
	}
	return Family{}, false
}

// Generate builds the named family after coercing p with Normalize.
func Generate(name string, p Params) (*graph.Graph, error) {
	f, ok := Lookup(name)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFamily, "unknown family %q (want one of %s)", name, strings.Join(Names(), ", "))
	}
	p, _ = Normalize(f.Name, p)
	return f.build(p), nil
}

// Normalize coerces p into the legal range of the named family. Counts are at
// least each parameter's minimum; antiprism sizes are rounded down to even;
// a Petersen step outside 1..⌊(n−1)/2⌋ becomes 1.
func Normalize(name string, p Params) (Params, error) {
	f, ok := Lookup(name)
	if !ok {
		return p, errors.New(errors.ErrCodeInvalidFamily, "unknown family %q", name)
	}
	if len(f.Params) > 0 {
		p.N = max(p.N, f.Params[0].Min)
	}
	if len(f.Params) > 1 {
		p.M = max(p.M, f.Params[1].Min)
	} else {
		p.M = 0
	}
	switch f.Name {
	case FamilyAntiprism:
		p.N = normalizeAntiprism(p.N)
	case FamilyPetersen:
		p.N, p.M = normalizePetersen(p.N, p.M)
	}
	return p, nil
}

func normalizeAntiprism(n int) int {
	if n%2 == 1 {
		n--
	}
	return max(n, 6)
}

func normalizePetersen(n, k int) (int, int) {
	n = max(n, 3)
	if k < 1 || k > (n-1)/2 {
		k = 1
	}
	return n, k
}
