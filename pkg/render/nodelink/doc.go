// Package nodelink converts graphs to Graphviz and renders them with neato.
//
// # Overview
//
// [ToDOT] writes an undirected DOT graph with one circle per node, styled
// with the node's fill, outline and diameter. Labels are flattened to plain
// text with [label.Plain], since Graphviz cannot set the label markup.
//
// # Positions
//
// With [Options.Pinned] set, every node carries a pinned pos attribute in
// points (y pointing up), so neato reproduces the styled drawing exactly.
// Without it, neato computes its own spring layout, which is useful for
// hand-built or loaded graphs that have no meaningful positions.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{XDPI: 96, YDPI: 96, Pinned: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is needed.
package nodelink
