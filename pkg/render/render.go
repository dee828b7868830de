package render

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/matzehuels/graphic/pkg/colour"
	"github.com/matzehuels/graphic/pkg/config"
	"github.com/matzehuels/graphic/pkg/errors"
	"github.com/matzehuels/graphic/pkg/graph"
	graphio "github.com/matzehuels/graphic/pkg/io"
	"github.com/matzehuels/graphic/pkg/render/nodelink"
	"github.com/matzehuels/graphic/pkg/render/raster"
	"github.com/matzehuels/graphic/pkg/render/svg"
	"github.com/matzehuels/graphic/pkg/render/tikz"
)

// Format names an export format.
type Format string

// Supported formats.
const (
	FormatTikZ  Format = "tikz"
	FormatGrphc Format = "grphc"
	FormatEdges Format = "edges"
	FormatJSON  Format = "json"
	FormatDOT   Format = "dot"
	FormatSVG   Format = "svg"
	FormatNeato Format = "neato"
	FormatPNG   Format = "png"
	FormatJPG   Format = "jpg"
	FormatPDF   Format = "pdf"
)

type formatInfo struct {
	ext         string
	contentType string
	binary      bool
}

var formats = map[Format]formatInfo{
	FormatTikZ:  {".tex", "application/x-tex", false},
	FormatGrphc: {".grphc", "text/plain; charset=utf-8", false},
	FormatEdges: {".txt", "text/plain; charset=utf-8", false},
	FormatJSON:  {".json", "application/json", false},
	FormatDOT:   {".dot", "text/vnd.graphviz", false},
	FormatSVG:   {".svg", "image/svg+xml", false},
	FormatNeato: {".svg", "image/svg+xml", false},
	FormatPNG:   {".png", "image/png", true},
	FormatJPG:   {".jpg", "image/jpeg", true},
	FormatPDF:   {".pdf", "application/pdf", true},
}

var aliases = map[string]Format{
	"tex":      FormatTikZ,
	"edgelist": FormatEdges,
	"txt":      FormatEdges,
	"gv":       FormatDOT,
	"jpeg":     FormatJPG,
}

// Formats lists every format in a stable order.
func Formats() []Format {
	return []Format{
		FormatTikZ, FormatGrphc, FormatEdges, FormatJSON, FormatDOT,
		FormatSVG, FormatNeato, FormatPNG, FormatJPG, FormatPDF,
	}
}

// ParseFormat accepts a format name or a common alias such as "jpeg".
func ParseFormat(s string) (Format, error) {
	key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, ".")))
	if f, ok := aliases[key]; ok {
		return f, nil
	}
	if _, ok := formats[Format(key)]; ok {
		return Format(key), nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown format %q", s)
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidInput, "no extension on %q", path)
	}
	return ParseFormat(ext)
}

// Ext returns the file extension, including the dot.
func (f Format) Ext() string { return formats[f].ext }

// ContentType returns the MIME type of the encoded output.
func (f Format) ContentType() string { return formats[f].contentType }

// Binary reports whether the output is not text.
func (f Format) Binary() bool { return formats[f].binary }

// Render encodes g in format f and writes it to w. Some writers assign
// export ids to g, so callers sharing g across goroutines must pass a clone.
func Render(ctx context.Context, g *graph.Graph, f Format, w io.Writer, cfg config.ExportConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch f {
	case FormatTikZ:
		return tikz.Write(w, g, tikz.Options{XDPI: cfg.XDPI, YDPI: cfg.YDPI})
	case FormatGrphc:
		return graphio.WriteGrphc(w, g, graphio.Resolution{X: cfg.XDPI, Y: cfg.YDPI})
	case FormatEdges:
		return graphio.WriteEdgeList(w, g)
	case FormatJSON:
		return graphio.WriteJSON(g, w)
	case FormatDOT:
		return write(w, []byte(toDOT(g, cfg)))
	case FormatSVG:
		return svg.Write(w, g, svgOptions(cfg))
	case FormatNeato:
		out, err := nodelink.RenderSVG(ctx, toDOT(g, cfg))
		if err != nil {
			return err
		}
		return write(w, out)
	case FormatPNG:
		return raster.WritePNG(w, g, rasterOptions(cfg, cfg.ImageBackground))
	case FormatJPG:
		return raster.WriteJPEG(w, g, rasterOptions(cfg, cfg.JPGBackground))
	case FormatPDF:
		var buf bytes.Buffer
		if err := svg.Write(&buf, g, svgOptions(cfg)); err != nil {
			return err
		}
		out, err := ToPDF(ctx, buf.Bytes())
		if err != nil {
			return err
		}
		return write(w, out)
	}
	return errors.New(errors.ErrCodeUnsupported, "format %q", f)
}

// Bytes is Render into memory.
func Bytes(ctx context.Context, g *graph.Graph, f Format, cfg config.ExportConfig) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(ctx, g, f, &buf, cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toDOT(g *graph.Graph, cfg config.ExportConfig) string {
	return nodelink.ToDOT(g, nodelink.Options{XDPI: cfg.XDPI, YDPI: cfg.YDPI, Pinned: true})
}

func svgOptions(cfg config.ExportConfig) svg.Options {
	return svg.Options{XDPI: cfg.XDPI, YDPI: cfg.YDPI, Background: background(cfg.ImageBackground)}
}

func rasterOptions(cfg config.ExportConfig, bg config.Background) raster.Options {
	return raster.Options{XDPI: cfg.XDPI, YDPI: cfg.YDPI, Scale: cfg.Scale(), Background: background(bg)}
}

func background(b config.Background) *colour.RGB {
	if b.Transparent {
		return nil
	}
	c := b.Colour
	return &c
}

func write(w io.Writer, b []byte) error {
	if _, err := w.Write(b); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write output")
	}
	return nil
}
