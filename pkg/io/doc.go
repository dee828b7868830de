// Package io reads and writes graphs in the text formats graphic supports.
//
// # .grphc
//
// The native format is line oriented. Blank lines and lines whose first
// non-white character is '#' are comments. The first significant line holds
// the node count N, the next N lines describe nodes and every remaining line
// describes an edge. Fields are separated by ", ":
//
//	# nodes: x, y, diameter, rotation, fill r, g, b, outline r, g, b[, label, label size]
//	2
//	-0.5, 0, 0.2, 0, 1, 1, 1, 0, 0, 0, v_{1}, 10
//	0.5, 0, 0.2, 0, 1, 1, 1, 0, 0, 0
//	# edges: u, v, dest radius, source radius, rotation, pen width, r, g, b[, label, label size]
//	0, 1, 0.1, 0.1, 0, 0.01, 0, 0, 0
//
// Lengths are in inches and colour channels are fractions in [0,1]. Edge
// endpoints index nodes in file order. The label pair is optional on both
// node and edge rows; labels containing a comma or a double quote are quoted
// CSV-style. The writer centres the drawing on the origin.
//
// Use [WriteGrphc] and [ReadGrphc] with any io.Writer or io.Reader, or
// [SaveGrphc] and [LoadGrphc] for files. Malformed input is reported as an
// [*errors.FormatError] carrying the physical line number; no partial graph
// is returned.
//
// # Edge Lists
//
// [WriteEdgeList] writes the node count followed by one "u,v" line per edge,
// for tools that only need the topology.
//
// # JSON
//
// [WriteJSON] and [ReadJSON] use a node-link document with pixel positions
// and full styles. The HTTP API and the cache store graphs this way:
//
//	{
//	  "kind": "cycle",
//	  "nodes": [{"id": 0, "x": 0, "y": -86.4, "diameter": 0.2, ...}],
//	  "edges": [{"from": 0, "to": 1, "pen_width": 0.01, ...}]
//	}
package io
