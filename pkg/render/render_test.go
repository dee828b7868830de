package render

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"image/jpeg"
	"image/png"
	"io"
	"os/exec"
	"strings"
	"testing"

	"github.com/matzehuels/graphic/pkg/config"
	"github.com/matzehuels/graphic/pkg/errors"
	"github.com/matzehuels/graphic/pkg/generate"
	"github.com/matzehuels/graphic/pkg/graph"
	"github.com/matzehuels/graphic/pkg/style"
)

func styled(t *testing.T) *graph.Graph {
	t.Helper()
	g := generate.Cycle(4, true)
	p := style.DefaultParams()
	p.Width, p.Height, p.Diameter = 2, 2, 0.2
	p.TopPrefix = "v"
	style.Apply(g, style.All, p)
	return g
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"tikz", FormatTikZ},
		{"tex", FormatTikZ},
		{".grphc", FormatGrphc},
		{"JPEG", FormatJPG},
		{"jpg", FormatJPG},
		{"edgelist", FormatEdges},
		{" svg ", FormatSVG},
		{"gv", FormatDOT},
		{"neato", FormatNeato},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseFormat("gif"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ParseFormat(gif) error = %v", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("out/graph.JPEG")
	if err != nil || f != FormatJPG {
		t.Errorf("FormatFromPath = %q, %v", f, err)
	}
	if _, err := FormatFromPath("graph"); err == nil {
		t.Error("FormatFromPath without extension succeeded")
	}
}

func TestFormatsMetadata(t *testing.T) {
	for _, f := range Formats() {
		if f.Ext() == "" || f.ContentType() == "" {
			t.Errorf("%s: missing metadata", f)
		}
		back, err := ParseFormat(string(f))
		if err != nil || back != f {
			t.Errorf("ParseFormat(%q) = %q, %v", f, back, err)
		}
	}
	if !FormatPNG.Binary() || FormatTikZ.Binary() {
		t.Error("Binary flags wrong")
	}
}

func TestRenderText(t *testing.T) {
	ctx := context.Background()
	cfg := config.DefaultExportConfig()

	tests := []struct {
		format Format
		check  func(t *testing.T, out string)
	}{
		{FormatTikZ, func(t *testing.T, out string) {
			if n := strings.Count(out, `\node`); n != 4 {
				t.Errorf("%d nodes", n)
			}
			if !strings.HasSuffix(strings.TrimSpace(out), `\end{tikzpicture}`) {
				t.Error("unterminated picture")
			}
		}},
		{FormatGrphc, func(t *testing.T, out string) {
			if !strings.HasPrefix(out, "# graphic\n") {
				t.Errorf("header = %q", strings.SplitN(out, "\n", 2)[0])
			}
		}},
		{FormatEdges, func(t *testing.T, out string) {
			if out != "4\n0,1\n1,2\n2,3\n3,0\n" {
				t.Errorf("edges = %q", out)
			}
		}},
		{FormatJSON, func(t *testing.T, out string) {
			var doc map[string]any
			if err := json.Unmarshal([]byte(out), &doc); err != nil {
				t.Fatal(err)
			}
			if doc["kind"] != "cycle" {
				t.Errorf("kind = %v", doc["kind"])
			}
		}},
		{FormatDOT, func(t *testing.T, out string) {
			if !strings.HasPrefix(out, "graph G {") || strings.Count(out, " -- ") != 4 {
				t.Errorf("dot = %s", out)
			}
		}},
		{FormatSVG, func(t *testing.T, out string) {
			wellFormed(t, out)
		}},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Render(ctx, styled(t), tt.format, &buf, cfg); err != nil {
				t.Fatalf("Render: %v", err)
			}
			tt.check(t, buf.String())
		})
	}
}

func TestRenderNeato(t *testing.T) {
	out, err := Bytes(context.Background(), styled(t), FormatNeato, config.DefaultExportConfig())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	wellFormed(t, string(out))
}

func TestRenderImages(t *testing.T) {
	ctx := context.Background()
	cfg := config.DefaultExportConfig()

	out, err := Bytes(ctx, styled(t), FormatPNG, cfg)
	if err != nil {
		t.Fatalf("png: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(out)); err != nil {
		t.Errorf("png decode: %v", err)
	}

	out, err = Bytes(ctx, styled(t), FormatJPG, cfg)
	if err != nil {
		t.Fatalf("jpg: %v", err)
	}
	if _, err := jpeg.Decode(bytes.NewReader(out)); err != nil {
		t.Errorf("jpeg decode: %v", err)
	}
}

func TestRenderScale(t *testing.T) {
	ctx := context.Background()
	cfg := config.DefaultExportConfig()
	small, err := Bytes(ctx, styled(t), FormatPNG, cfg)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Resolution = 2 * cfg.XDPI
	large, err := Bytes(ctx, styled(t), FormatPNG, cfg)
	if err != nil {
		t.Fatal(err)
	}
	a, _ := png.DecodeConfig(bytes.NewReader(small))
	b, _ := png.DecodeConfig(bytes.NewReader(large))
	if b.Width <= a.Width {
		t.Errorf("width at double resolution = %d, base %d", b.Width, a.Width)
	}
}

func TestRenderPDF(t *testing.T) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		t.Skip("rsvg-convert not installed")
	}
	out, err := Bytes(context.Background(), styled(t), FormatPDF, config.DefaultExportConfig())
	if err != nil {
		t.Fatalf("pdf: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("pdf header = %q", out[:min(8, len(out))])
	}
}

func TestRenderErrors(t *testing.T) {
	cfg := config.DefaultExportConfig()
	if err := Render(context.Background(), styled(t), Format("gif"), io.Discard, cfg); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("unknown format error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Render(ctx, styled(t), FormatTikZ, io.Discard, cfg); err != context.Canceled {
		t.Errorf("cancelled render error = %v", err)
	}
}

func wellFormed(t *testing.T, doc string) {
	t.Helper()
	d := xml.NewDecoder(strings.NewReader(doc))
	d.Strict = false
	for {
		_, err := d.Token()
		if err == io.EOF {
			return
		}
		if err != nil {
			t.Fatalf("malformed svg: %v", err)
		}
	}
}
