package graph

// ItemKind discriminates an [Item].
type ItemKind int

const (
	ItemEdge ItemKind = iota
	ItemNode
	ItemLabel
)

func (k ItemKind) String() string {
	switch k {
	case ItemEdge:
		return "edge"
	case ItemNode:
		return "node"
	case ItemLabel:
		return "label"
	}
	return "unknown"
}

// Item is one drawable element of a graph: a node disc, an edge segment, or
// the label of either.
type Item struct {
	Kind ItemKind
	Node NodeID // set for nodes and node labels, NoNode otherwise
	Edge EdgeID // set for edges and edge labels, -1 otherwise

	root *Graph
}

// Root returns the graph that owns the item.
func (it Item) Root() *Graph { return it.root }

// Items lists every element in paint order: edges, then nodes, then the
// labels of edges and nodes that have one.
func (g *Graph) Items() []Item {
	out := make([]Item, 0, 2*len(g.edges)+2*len(g.nodes))
	for i := range g.edges {
		out = append(out, Item{Kind: ItemEdge, Node: NoNode, Edge: EdgeID(i), root: g})
	}
	for i := range g.nodes {
		out = append(out, Item{Kind: ItemNode, Node: NodeID(i), Edge: -1, root: g})
	}
	for i, e := range g.edges {
		if e.Label != "" {
			out = append(out, Item{Kind: ItemLabel, Node: NoNode, Edge: EdgeID(i), root: g})
		}
	}
	for i, n := range g.nodes {
		if n.Label != "" {
			out = append(out, Item{Kind: ItemLabel, Node: NodeID(i), Edge: -1, root: g})
		}
	}
	return out
}
