package svg

import (
	"bytes"
	"encoding/xml"
	stderrors "errors"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/graphic/pkg/colour"
	"github.com/matzehuels/graphic/pkg/errors"
	"github.com/matzehuels/graphic/pkg/generate"
	"github.com/matzehuels/graphic/pkg/graph"
	"github.com/matzehuels/graphic/pkg/style"
)

func styled(n int, p style.Params) *graph.Graph {
	g := generate.Cycle(n, true)
	style.Apply(g, style.All, p)
	return g
}

// elements counts start elements by local name and fails on malformed XML.
func elements(t *testing.T, doc string) map[string]int {
	t.Helper()
	counts := make(map[string]int)
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return counts
		}
		if err != nil {
			t.Fatalf("malformed SVG: %v\n%s", err, doc)
		}
		if se, ok := tok.(xml.StartElement); ok {
			counts[se.Name.Local]++
		}
	}
}

func TestWrite(t *testing.T) {
	p := style.DefaultParams()
	p.TopPrefix = "v"
	p.EdgeLabel = "e"
	g := styled(4, p)

	var buf bytes.Buffer
	if err := Write(&buf, g, Options{XDPI: 96, YDPI: 96}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got := elements(t, buf.String())
	want := map[string]int{"svg": 1, "title": 1, "g": 1, "line": 4, "circle": 4, "text": 8}
	for name, n := range want {
		if got[name] != n {
			t.Errorf("%d <%s> elements, want %d", got[name], name, n)
		}
	}
	if got["rect"] != 0 {
		t.Error("transparent drawing has a background rect")
	}
	out := buf.String()
	for _, s := range []string{`font-family="cmmi10, serif"`, `font-family="cmr10, serif"`, `fill:#ffffff;stroke:#000000`} {
		if !strings.Contains(out, s) {
			t.Errorf("output lacks %q", s)
		}
	}
}

func TestBackground(t *testing.T) {
	bg := colour.RGB{R: 1, G: 2, B: 3}
	var buf bytes.Buffer
	if err := Write(&buf, styled(3, style.DefaultParams()), Options{Background: &bg}); err != nil {
		t.Fatal(err)
	}
	if got := elements(t, buf.String()); got["rect"] != 1 {
		t.Errorf("%d background rects, want 1", got["rect"])
	}
	if !strings.Contains(buf.String(), "fill:#010203") {
		t.Error("background colour missing")
	}
}

func TestCollapsedEdgeSkipped(t *testing.T) {
	g := generate.Path(2, true)
	g.Edge(0).SourceRadius, g.Edge(0).DestRadius = 9.6, 9.6
	g.AdjustAll()
	var buf bytes.Buffer
	if err := Write(&buf, g, Options{}); err != nil {
		t.Fatal(err)
	}
	// Unstyled previews are a pixel apart, closer than the disc radii.
	if got := elements(t, buf.String()); got["line"] != 0 {
		t.Errorf("%d lines drawn for overlapping nodes", got["line"])
	}
}

func TestEscapesLabels(t *testing.T) {
	g := generate.Path(1, false)
	g.Node(0).Label = "a<b"
	var buf bytes.Buffer
	if err := Write(&buf, g, Options{}); err != nil {
		t.Fatal(err)
	}
	elements(t, buf.String())
	if !strings.Contains(buf.String(), "&lt;") {
		t.Errorf("label not escaped:\n%s", buf.String())
	}
}

type failWriter struct{}

var errDisk = stderrors.New("disk full")

func (failWriter) Write([]byte) (int, error) { return 0, errDisk }

func TestWriteError(t *testing.T) {
	err := Write(failWriter{}, styled(3, style.DefaultParams()), Options{})
	if !errors.Is(err, errors.ErrCodeIO) || !stderrors.Is(err, errDisk) {
		t.Errorf("Write error = %v", err)
	}
}
