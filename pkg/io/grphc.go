package io

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/graphic/pkg/colour"
	"github.com/matzehuels/graphic/pkg/errors"
	"github.com/matzehuels/graphic/pkg/graph"
)

// Resolution is the pixel density used to convert between the in-memory
// pixel positions and the inches stored in files.
type Resolution struct {
	X, Y float64
}

// DefaultResolution is used when a Resolution has a non-positive component.
var DefaultResolution = Resolution{X: 96, Y: 96}

func (r Resolution) orDefault() Resolution {
	if r.X <= 0 {
		r.X = DefaultResolution.X
	}
	if r.Y <= 0 {
		r.Y = DefaultResolution.Y
	}
	return r
}

const (
	nodeFields      = 10
	edgeFields      = 9
	labelledExtra   = 2
	grphcSeparator  = ", "
	grphcNodeLegend = "# nodes: x, y, diameter, rotation, fill r, g, b, outline r, g, b[, label, label size]"
	grphcEdgeLegend = "# edges: u, v, dest radius, source radius, rotation, pen width, r, g, b[, label, label size]"
)

// WriteGrphc encodes g in .grphc form. Node positions are written relative to
// the midpoint of their bounding box. Labels that cannot be stored on one
// line are rejected before anything is written.
func WriteGrphc(w io.Writer, g *graph.Graph, res Resolution) error {
	if err := checkLabels(g); err != nil {
		return err
	}
	res = res.orDefault()
	c := g.Centre()

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# graphic")
	fmt.Fprintln(bw, grphcNodeLegend)
	fmt.Fprintln(bw, g.NodeCount())
	for _, n := range g.Nodes() {
		fields := []string{
			num((n.Pos.X - c.X) / res.X),
			num((n.Pos.Y - c.Y) / res.Y),
			num(n.Diameter),
			num(n.Rotation),
		}
		fields = appendColour(fields, n.Fill)
		fields = appendColour(fields, n.Outline)
		if n.Label != "" {
			fields = append(fields, quote(n.Label), num(n.LabelSize))
		}
		fmt.Fprintln(bw, strings.Join(fields, grphcSeparator))
	}
	fmt.Fprintln(bw, grphcEdgeLegend)
	for _, e := range g.Edges() {
		fields := []string{
			strconv.Itoa(int(e.Source)),
			strconv.Itoa(int(e.Dest)),
			num(e.DestRadius / res.X),
			num(e.SourceRadius / res.X),
			num(e.Rotation),
			num(e.PenWidth),
		}
		fields = appendColour(fields, e.Colour)
		if e.Label != "" {
			fields = append(fields, quote(e.Label), num(e.LabelSize))
		}
		fmt.Fprintln(bw, strings.Join(fields, grphcSeparator))
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write grphc")
	}
	return nil
}

func checkLabels(g *graph.Graph) error {
	for i, n := range g.Nodes() {
		if err := errors.ValidateLabel(n.Label); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidLabel, err, "node %d", i)
		}
	}
	for i, e := range g.Edges() {
		if err := errors.ValidateLabel(e.Label); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidLabel, err, "edge %d", i)
		}
	}
	return nil
}

// SaveGrphc writes g to a .grphc file at path.
func SaveGrphc(path string, g *graph.Graph, res Resolution) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	if err := WriteGrphc(f, g, res); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "close %s", path)
	}
	return nil
}

// ReadGrphc decodes a .grphc document. The returned graph has no kind, and
// its preview coordinates are the node positions scaled into the unit square.
func ReadGrphc(r io.Reader, res Resolution) (*graph.Graph, error) {
	res = res.orDefault()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	g := graph.New("")
	g.DPI = res.X
	want, line := -1, 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if want < 0 {
			n, err := strconv.Atoi(text)
			if err != nil || n < 0 {
				return nil, errors.Formatf(line, "bad node count %q", text)
			}
			want = n
			continue
		}
		rec, err := split(text)
		if err != nil {
			return nil, errors.Formatf(line, "%v", err)
		}
		if g.NodeCount() < want {
			n, err := parseNode(rec, res)
			if err != nil {
				return nil, errors.Formatf(line, "node %d: %v", g.NodeCount(), err)
			}
			g.AddNode(n)
			continue
		}
		e, err := parseEdge(rec, want, res)
		if err != nil {
			return nil, errors.Formatf(line, "edge %d: %v", g.EdgeCount(), err)
		}
		if _, err := g.AddEdge(e); err != nil {
			return nil, errors.Formatf(line, "edge %d: %v", g.EdgeCount(), err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read grphc")
	}
	if want < 0 {
		return nil, errors.Formatf(0, "missing node count")
	}
	if g.NodeCount() < want {
		return nil, errors.Formatf(line, "expected %d nodes, found %d", want, g.NodeCount())
	}
	setPreviews(g)
	return g, nil
}

// LoadGrphc reads the .grphc file at path.
func LoadGrphc(path string, res Resolution) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer f.Close()
	return ReadGrphc(f, res)
}

func split(line string) ([]string, error) {
	cr := csv.NewReader(strings.NewReader(line))
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	rec, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("split fields: %w", err)
	}
	return rec, nil
}

func parseNode(rec []string, res Resolution) (graph.Node, error) {
	if len(rec) != nodeFields && len(rec) != nodeFields+labelledExtra {
		return graph.Node{}, fmt.Errorf("got %d fields, want %d or %d", len(rec), nodeFields, nodeFields+labelledExtra)
	}
	v, err := floats(rec[:nodeFields])
	if err != nil {
		return graph.Node{}, err
	}
	if v[2] <= 0 {
		return graph.Node{}, fmt.Errorf("diameter %v must be positive", v[2])
	}
	n := graph.NewNode(r2.Vec{X: v[0] * res.X, Y: v[1] * res.Y})
	n.Diameter = v[2]
	n.Rotation = v[3]
	n.Fill = colour.FromFractions(v[4], v[5], v[6])
	n.Outline = colour.FromFractions(v[7], v[8], v[9])
	if len(rec) > nodeFields {
		n.Label, n.LabelSize, err = labelPair(rec[nodeFields:])
	}
	return n, err
}

func parseEdge(rec []string, nodes int, res Resolution) (graph.Edge, error) {
	if len(rec) != edgeFields && len(rec) != edgeFields+labelledExtra {
		return graph.Edge{}, fmt.Errorf("got %d fields, want %d or %d", len(rec), edgeFields, edgeFields+labelledExtra)
	}
	var ends [2]graph.NodeID
	for i := range ends {
		id, err := strconv.Atoi(strings.TrimSpace(rec[i]))
		if err != nil {
			return graph.Edge{}, fmt.Errorf("bad node index %q", rec[i])
		}
		if id < 0 || id >= nodes {
			return graph.Edge{}, fmt.Errorf("node index %d out of range [0, %d)", id, nodes)
		}
		ends[i] = graph.NodeID(id)
	}
	v, err := floats(rec[2:edgeFields])
	if err != nil {
		return graph.Edge{}, err
	}
	e := graph.NewEdge(ends[0], ends[1])
	e.DestRadius = v[0] * res.X
	e.SourceRadius = v[1] * res.X
	e.Rotation = v[2]
	e.PenWidth = v[3]
	e.Colour = colour.FromFractions(v[4], v[5], v[6])
	if len(rec) > edgeFields {
		e.Label, e.LabelSize, err = labelPair(rec[edgeFields:])
	}
	return e, err
}

func labelPair(rec []string) (string, float64, error) {
	size, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
	if err != nil {
		return "", 0, fmt.Errorf("bad label size %q", rec[1])
	}
	if err := errors.ValidateLabel(rec[0]); err != nil {
		return "", 0, fmt.Errorf("%s", errors.UserMessage(err))
	}
	return rec[0], max(size, 1), nil
}

func floats(rec []string) ([]float64, error) {
	out := make([]float64, len(rec))
	for i, s := range rec {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", s)
		}
		out[i] = v
	}
	return out, nil
}

// setPreviews maps node positions into [-0.5, 0.5]² keeping the aspect ratio.
func setPreviews(g *graph.Graph) {
	b := g.Bounds()
	c := b.Center()
	span := max(b.Max.X-b.Min.X, b.Max.Y-b.Min.Y)
	nodes := g.Nodes()
	for i := range nodes {
		if span == 0 {
			nodes[i].Preview = r2.Vec{}
			continue
		}
		nodes[i].Preview = r2.Scale(1/span, r2.Sub(nodes[i].Pos, c))
	}
}

func appendColour(fields []string, c colour.RGB) []string {
	r, g, b := c.Fractions()
	return append(fields, num(r), num(g), num(b))
}

// num formats v with six decimals and no trailing zeros.
func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func quote(s string) string {
	if !strings.ContainsAny(s, `,"`) && s == strings.TrimSpace(s) {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
