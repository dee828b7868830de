// Package raster draws graphs as PNG or JPEG images.
//
// Drawing uses fogleman/gg. Output size follows the export resolution: a
// graph styled for a 96 dpi display and exported at 300 dpi is scaled by
// 300/96. Labels are set in the faces of package fonts.
package raster

import (
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/graphic/pkg/colour"
	"github.com/matzehuels/graphic/pkg/errors"
	"github.com/matzehuels/graphic/pkg/fonts"
	"github.com/matzehuels/graphic/pkg/graph"
	"github.com/matzehuels/graphic/pkg/label"
)

// Margin is the blank border around the drawing, in drawing pixels.
const Margin = 4

// MaxDimension caps the width and height of an image in pixels.
const MaxDimension = 16384

// JPEGQuality is the encoder quality used by WriteJPEG.
const JPEGQuality = 92

// Options configures the renderer.
type Options struct {
	XDPI, YDPI float64     // pixel density of the node positions
	Scale      float64     // output pixels per drawing pixel; 0 means 1
	Background *colour.RGB // nil for transparent
}

func (o Options) normalized() Options {
	if o.XDPI <= 0 {
		o.XDPI = 96
	}
	if o.YDPI <= 0 {
		o.YDPI = 96
	}
	if o.Scale <= 0 {
		o.Scale = 1
	}
	return o
}

// Draw renders g into a new image. Drawings whose output would exceed
// MaxDimension on either side are rejected before any pixel is allocated.
func Draw(g *graph.Graph, opts Options) (image.Image, error) {
	opts = opts.normalized()
	k := opts.Scale
	box := g.Extent(opts.XDPI, opts.YDPI)
	fw := math.Ceil((box.Max.X - box.Min.X + 2*Margin) * k)
	fh := math.Ceil((box.Max.Y - box.Min.Y + 2*Margin) * k)
	if !(fw <= MaxDimension && fh <= MaxDimension) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"image would be %.0f×%.0f pixels, more than %d on a side; reduce the size or resolution", fw, fh, MaxDimension)
	}
	w, h := int(fw), int(fh)
	origin := r2.Vec{X: box.Min.X - Margin, Y: box.Min.Y - Margin}
	at := func(p r2.Vec) r2.Vec { return r2.Scale(k, r2.Sub(p, origin)) }

	dc := gg.NewContext(max(w, 1), max(h, 1))
	if opts.Background != nil {
		setColour(dc, *opts.Background)
		dc.Clear()
	}

	dc.SetLineCapRound()
	for _, e := range g.Edges() {
		if e.SourcePoint == e.DestPoint {
			continue
		}
		a, b := at(e.SourcePoint), at(e.DestPoint)
		setColour(dc, e.Colour)
		dc.SetLineWidth(e.PenWidth * opts.XDPI * k)
		dc.DrawLine(a.X, a.Y, b.X, b.Y)
		dc.Stroke()
	}
	for _, n := range g.Nodes() {
		c := at(n.Pos)
		dc.DrawCircle(c.X, c.Y, n.Diameter*opts.XDPI*k/2)
		setColour(dc, n.Fill)
		if n.OutlineThickness <= 0 {
			dc.Fill()
			continue
		}
		dc.FillPreserve()
		setColour(dc, n.Outline)
		dc.SetLineWidth(n.OutlineThickness * opts.XDPI * k)
		dc.Stroke()
	}

	dc.SetRGB(0, 0, 0)
	faces := make(faceCache)
	dpi := opts.YDPI * k
	for _, e := range g.Edges() {
		if e.Label != "" {
			mid := r2.Scale(0.5, r2.Add(g.Node(e.Source).Pos, g.Node(e.Dest).Pos))
			drawLabel(dc, faces, at(mid), e.LabelSize, dpi, e.Label)
		}
	}
	for _, n := range g.Nodes() {
		if n.Label != "" {
			drawLabel(dc, faces, at(n.Pos), n.LabelSize, dpi, n.Label)
		}
	}
	return dc.Image(), nil
}

// WritePNG encodes the drawing as PNG.
func WritePNG(w io.Writer, g *graph.Graph, opts Options) error {
	img, err := Draw(g, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "encode png")
	}
	return nil
}

// WriteJPEG encodes the drawing as JPEG. JPEG has no alpha channel, so a
// transparent background is drawn white.
func WriteJPEG(w io.Writer, g *graph.Graph, opts Options) error {
	if opts.Background == nil {
		white := colour.White
		opts.Background = &white
	}
	img, err := Draw(g, opts)
	if err != nil {
		return err
	}
	if err := jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "encode jpeg")
	}
	return nil
}

func setColour(dc *gg.Context, c colour.RGB) {
	r, g, b := c.Fractions()
	dc.SetRGB(r, g, b)
}

// drawLabel centres the label's runs on p, in output pixels. Scripts shrink
// by 0.7 per level and shift by 0.4 of the base size.
func drawLabel(dc *gg.Context, faces faceCache, p r2.Vec, points, dpi float64, src string) {
	spans := label.SpansOf(src)
	size := points * dpi / 72
	widths := make([]float64, len(spans))
	total := 0.0
	for i, s := range spans {
		dc.SetFontFace(faces.get(s.Font, points*math.Pow(0.7, float64(s.Depth)), dpi))
		widths[i], _ = dc.MeasureString(s.Text)
		total += widths[i]
	}
	x := p.X - total/2
	for i, s := range spans {
		dc.SetFontFace(faces.get(s.Font, points*math.Pow(0.7, float64(s.Depth)), dpi))
		dc.DrawStringAnchored(s.Text, x, p.Y-float64(s.Shift)*0.4*size, 0, 0.35)
		x += widths[i]
	}
}

type faceKey struct {
	font      label.Font
	size, dpi float64
}

// faceCache holds the faces of one drawing. Faces are not safe for
// concurrent use, so caches are never shared between drawings.
type faceCache map[faceKey]font.Face

// get returns the face for a label font at size points and dpi output
// density.
func (c faceCache) get(f label.Font, size, dpi float64) font.Face {
	key := faceKey{f, size, dpi}
	if face, ok := c[key]; ok {
		return face
	}
	face := truetype.NewFace(fonts.For(f), &truetype.Options{Size: size, DPI: dpi, Hinting: font.HintingFull})
	c[key] = face
	return face
}
