package io

import (
	"bufio"
	"fmt"
	"io"

	"github.com/matzehuels/graphic/pkg/errors"
	"github.com/matzehuels/graphic/pkg/graph"
)

// WriteEdgeList writes the node count and then one "u,v" line per edge in
// insertion order.
func WriteEdgeList(w io.Writer, g *graph.Graph) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, g.NodeCount())
	for _, e := range g.Edges() {
		fmt.Fprintf(bw, "%d,%d\n", e.Source, e.Dest)
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write edge list")
	}
	return nil
}
