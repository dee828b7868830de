package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/graphic/pkg/colour"
	"github.com/matzehuels/graphic/pkg/errors"
	"github.com/matzehuels/graphic/pkg/graph"
)

type document struct {
	Kind     string  `json:"kind,omitempty"`
	Rotation float64 `json:"rotation,omitempty"`
	Nodes    []node  `json:"nodes"`
	Edges    []edge  `json:"edges"`
}

type node struct {
	ID               int        `json:"id"`
	X                float64    `json:"x"`
	Y                float64    `json:"y"`
	Preview          [2]float64 `json:"preview"`
	Diameter         float64    `json:"diameter"`
	OutlineThickness float64    `json:"outline_thickness"`
	Fill             colour.RGB `json:"fill"`
	Outline          colour.RGB `json:"outline"`
	Label            string     `json:"label,omitempty"`
	LabelSize        float64    `json:"label_size"`
	Rotation         float64    `json:"rotation,omitempty"`
}

type edge struct {
	From         int        `json:"from"`
	To           int        `json:"to"`
	PenWidth     float64    `json:"pen_width"`
	Colour       colour.RGB `json:"colour"`
	Label        string     `json:"label,omitempty"`
	LabelSize    float64    `json:"label_size"`
	SourceRadius float64    `json:"source_radius"`
	DestRadius   float64    `json:"dest_radius"`
	Rotation     float64    `json:"rotation,omitempty"`
}

// WriteJSON encodes g as an indented node-link document. Positions are in
// pixels and node ids follow insertion order. The output can be read back
// with [ReadJSON].
func WriteJSON(g *graph.Graph, w io.Writer) error {
	out := document{
		Kind:     g.Kind,
		Rotation: g.Rotation,
		Nodes:    make([]node, g.NodeCount()),
		Edges:    make([]edge, g.EdgeCount()),
	}

	for i, n := range g.Nodes() {
		out.Nodes[i] = node{
			ID:               i,
			X:                n.Pos.X,
			Y:                n.Pos.Y,
			Preview:          [2]float64{n.Preview.X, n.Preview.Y},
			Diameter:         n.Diameter,
			OutlineThickness: n.OutlineThickness,
			Fill:             n.Fill,
			Outline:          n.Outline,
			Label:            n.Label,
			LabelSize:        n.LabelSize,
			Rotation:         n.Rotation,
		}
	}
	for i, e := range g.Edges() {
		out.Edges[i] = edge{
			From:         int(e.Source),
			To:           int(e.Dest),
			PenWidth:     e.PenWidth,
			Colour:       e.Colour,
			Label:        e.Label,
			LabelSize:    e.LabelSize,
			SourceRadius: e.SourceRadius,
			DestRadius:   e.DestRadius,
			Rotation:     e.Rotation,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "encode")
	}
	return nil
}

// ExportJSON writes g to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(g, f)
}
