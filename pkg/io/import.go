package io

import (
	"encoding/json"
	"io"
	"os"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/graphic/pkg/errors"
	"github.com/matzehuels/graphic/pkg/graph"
)

// ReadJSON decodes a node-link document written by [WriteJSON].
//
// Nodes are added in array order; their "id" fields must run 0..n-1 so that
// edges can reference them. Missing sizes fall back to the graph defaults.
//
// ReadJSON returns an error if:
//   - The JSON is malformed (code INVALID_FORMAT)
//   - A node id is out of sequence or an edge references an unknown node
//   - An edge joins a node to itself
//   - A label is too long or contains control characters (code INVALID_LABEL)
//
// Edge geometry is recomputed from the node positions. ReadJSON does not
// close r.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode")
	}

	g := graph.New(data.Kind)
	g.Rotation = data.Rotation
	for i, n := range data.Nodes {
		if n.ID != i {
			return nil, errors.New(errors.ErrCodeInvalidInput, "node %d has id %d", i, n.ID)
		}
		nd := graph.NewNode(r2.Vec{X: n.X, Y: n.Y})
		nd.Preview = r2.Vec{X: n.Preview[0], Y: n.Preview[1]}
		if n.Diameter > 0 {
			nd.Diameter = n.Diameter
		}
		nd.OutlineThickness = max(n.OutlineThickness, 0)
		nd.Fill, nd.Outline = n.Fill, n.Outline
		if err := errors.ValidateLabel(n.Label); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidLabel, err, "node %d", i)
		}
		nd.Label = n.Label
		if n.LabelSize >= 1 {
			nd.LabelSize = n.LabelSize
		}
		nd.Rotation = n.Rotation
		g.AddNode(nd)
	}
	for i, e := range data.Edges {
		ed := graph.NewEdge(graph.NodeID(e.From), graph.NodeID(e.To))
		ed.PenWidth = max(e.PenWidth, 0)
		ed.Colour = e.Colour
		if err := errors.ValidateLabel(e.Label); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidLabel, err, "edge %d", i)
		}
		ed.Label = e.Label
		if e.LabelSize >= 1 {
			ed.LabelSize = e.LabelSize
		}
		ed.SourceRadius, ed.DestRadius = e.SourceRadius, e.DestRadius
		ed.Rotation = e.Rotation
		if _, err := g.AddEdge(ed); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "edge %d (%d-%d)", i, e.From, e.To)
		}
	}
	return g, nil
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
func ImportJSON(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
