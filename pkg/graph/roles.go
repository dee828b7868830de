package graph

import "slices"

// Roles records the structural part each node plays in the family that
// produced the graph. Buckets hold node ids in generator order.
type Roles struct {
	Cycle           []NodeID
	DoubleCycle     [2][]NodeID // outer, inner
	ListOfCycles    [][]NodeID
	BipartiteTop    []NodeID
	BipartiteBottom []NodeID
	Grid            [][]NodeID // row-major
	Path            []NodeID
	BinaryHeap      []NodeID
	Center          NodeID // NoNode if absent
}

// IsBipartite reports whether the graph carries bipartite rows.
func (r *Roles) IsBipartite() bool {
	return len(r.BipartiteTop) > 0 || len(r.BipartiteBottom) > 0
}

// IsTop reports whether n is in the top bipartite row.
func (r *Roles) IsTop(n NodeID) bool { return slices.Contains(r.BipartiteTop, n) }

func remapList(ids []NodeID, f func(NodeID) (NodeID, bool)) []NodeID {
	if ids == nil {
		return nil
	}
	out := ids[:0]
	for _, id := range ids {
		if m, ok := f(id); ok {
			out = append(out, m)
		}
	}
	return out
}

func remapLists(lists [][]NodeID, f func(NodeID) (NodeID, bool)) [][]NodeID {
	for i := range lists {
		lists[i] = remapList(lists[i], f)
	}
	return lists
}

// remap rewrites every id through f, dropping ids for which f reports false.
func (r *Roles) remap(f func(NodeID) (NodeID, bool)) {
	r.Cycle = remapList(r.Cycle, f)
	r.DoubleCycle[0] = remapList(r.DoubleCycle[0], f)
	r.DoubleCycle[1] = remapList(r.DoubleCycle[1], f)
	r.ListOfCycles = remapLists(r.ListOfCycles, f)
	r.BipartiteTop = remapList(r.BipartiteTop, f)
	r.BipartiteBottom = remapList(r.BipartiteBottom, f)
	r.Grid = remapLists(r.Grid, f)
	r.Path = remapList(r.Path, f)
	r.BinaryHeap = remapList(r.BinaryHeap, f)
	if r.Center != NoNode {
		if m, ok := f(r.Center); ok {
			r.Center = m
		} else {
			r.Center = NoNode
		}
	}
}

func cloneLists(lists [][]NodeID) [][]NodeID {
	if lists == nil {
		return nil
	}
	out := make([][]NodeID, len(lists))
	for i, l := range lists {
		out[i] = slices.Clone(l)
	}
	return out
}

func (r Roles) clone() Roles {
	return Roles{
		Cycle:           slices.Clone(r.Cycle),
		DoubleCycle:     [2][]NodeID{slices.Clone(r.DoubleCycle[0]), slices.Clone(r.DoubleCycle[1])},
		ListOfCycles:    cloneLists(r.ListOfCycles),
		BipartiteTop:    slices.Clone(r.BipartiteTop),
		BipartiteBottom: slices.Clone(r.BipartiteBottom),
		Grid:            cloneLists(r.Grid),
		Path:            slices.Clone(r.Path),
		BinaryHeap:      slices.Clone(r.BinaryHeap),
		Center:          r.Center,
	}
}

// merge appends o's buckets to r's. The centre of r wins when both have one.
func (r *Roles) merge(o Roles) {
	r.Cycle = append(r.Cycle, o.Cycle...)
	r.DoubleCycle[0] = append(r.DoubleCycle[0], o.DoubleCycle[0]...)
	r.DoubleCycle[1] = append(r.DoubleCycle[1], o.DoubleCycle[1]...)
	r.ListOfCycles = append(r.ListOfCycles, o.ListOfCycles...)
	r.BipartiteTop = append(r.BipartiteTop, o.BipartiteTop...)
	r.BipartiteBottom = append(r.BipartiteBottom, o.BipartiteBottom...)
	r.Grid = append(r.Grid, o.Grid...)
	r.Path = append(r.Path, o.Path...)
	r.BinaryHeap = append(r.BinaryHeap, o.BinaryHeap...)
	if r.Center == NoNode {
		r.Center = o.Center
	}
}
