// Package graph is the in-memory model for styled drawings of graphs.
//
// A [Graph] is an arena: it owns a slice of [Node] values and a slice of
// [Edge] values addressed by [NodeID] and [EdgeID]. Edges refer to their
// endpoints by index, and the per-node incident lists are an adjacency index
// maintained by the arena itself. Joining two drawings ([Join]) concatenates
// the arenas and remaps indices.
//
// # Coordinates
//
// Every node has two positions:
//
//   - Preview: the layout emitted by a generator, inside [-0.5, 0.5]²
//   - Pos: the drawing position in pixels, set by the styler
//
// Screen coordinates grow downwards. Diameters, outline thicknesses and pen
// widths are in inches; edge disc radii and cached endpoints are in pixels.
//
// # Edge Geometry
//
// Each edge caches the segment that is actually drawn. [Graph.Adjust] clips
// the centre-to-centre line to the rims of the endpoint discs and rebuilds a
// thin selection rectangle around it. Any operation that moves nodes through
// the Graph API re-adjusts the affected edges.
//
// # Rotation
//
// [Graph.Rotate] turns node positions about the origin while counter-rotating
// the nodes and edges themselves, so labels stay upright.
//
// # Roles
//
// Generators record which structural part each node plays in [Roles] (the
// outer cycle, the bipartite rows, the grid lattice, ...). The styler uses
// roles for bipartite labelling; other consumers may use them for selection.
//
// A Graph is not safe for concurrent use.
package graph
