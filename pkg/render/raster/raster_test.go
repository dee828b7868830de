package raster

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"math"
	"testing"

	"github.com/matzehuels/graphic/pkg/colour"
	"github.com/matzehuels/graphic/pkg/errors"
	"github.com/matzehuels/graphic/pkg/generate"
	"github.com/matzehuels/graphic/pkg/graph"
	"github.com/matzehuels/graphic/pkg/style"
)

func styled(labelled bool) *graph.Graph {
	g := generate.Cycle(3, true)
	p := style.DefaultParams()
	if labelled {
		p.TopPrefix = "v"
		p.EdgeLabel = "w^2"
	}
	p.Fill = colour.RGB{R: 255}
	style.Apply(g, style.All, p)
	return g
}

func rgb8(img image.Image, x, y int) (uint8, uint8, uint8, uint8) {
	r, g, b, a := img.At(x, y).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)
}

func mustDraw(t *testing.T, g *graph.Graph, opts Options) image.Image {
	t.Helper()
	img, err := Draw(g, opts)
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	return img
}

func TestDraw(t *testing.T) {
	g := styled(false)
	box := g.Extent(96, 96)

	tests := []struct {
		name  string
		scale float64
	}{
		{"unscaled", 0},
		{"double", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := tt.scale
			if k == 0 {
				k = 1
			}
			img := mustDraw(t, g, Options{Scale: tt.scale})
			wantW := int(math.Ceil((box.Max.X - box.Min.X + 2*Margin) * k))
			if w := img.Bounds().Dx(); w != wantW {
				t.Errorf("width = %d, want %d", w, wantW)
			}
			if _, _, _, a := rgb8(img, 0, 0); a != 0 {
				t.Errorf("corner alpha = %d, want transparent", a)
			}
			// Sample inside the disc, between centre and rim.
			p := g.Node(0).Pos
			x := int((p.X - box.Min.X + Margin - 0.06*96) * k)
			y := int((p.Y - box.Min.Y + Margin) * k)
			if r, gr, b, a := rgb8(img, x, y); r != 255 || gr != 0 || b != 0 || a != 255 {
				t.Errorf("disc pixel = (%d,%d,%d,%d), want opaque red", r, gr, b, a)
			}
		})
	}
}

func TestBackground(t *testing.T) {
	bg := colour.RGB{R: 10, G: 20, B: 30}
	img := mustDraw(t, styled(true), Options{Background: &bg})
	if r, g, b, a := rgb8(img, 0, 0); r != 10 || g != 20 || b != 30 || a != 255 {
		t.Errorf("corner = (%d,%d,%d,%d), want background", r, g, b, a)
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, styled(true), Options{Scale: 1.5}); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if img.Bounds().Empty() {
		t.Error("empty image")
	}
}

func TestWriteJPEG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJPEG(&buf, styled(true), Options{}); err != nil {
		t.Fatalf("WriteJPEG: %v", err)
	}
	img, err := jpeg.Decode(&buf)
	if err != nil {
		t.Fatalf("jpeg.Decode: %v", err)
	}
	if r, g, b, _ := rgb8(img, 0, 0); r < 240 || g < 240 || b < 240 {
		t.Errorf("corner = (%d,%d,%d), want white", r, g, b)
	}
}

func TestDrawEmpty(t *testing.T) {
	img := mustDraw(t, graph.New(""), Options{})
	if b := img.Bounds(); b.Dx() != 2*Margin || b.Dy() != 2*Margin {
		t.Errorf("empty graph bounds = %v", b)
	}
}

func TestDrawTooLarge(t *testing.T) {
	g := styled(false)
	tests := []struct {
		name  string
		scale float64
	}{
		{"huge scale", 1e4},
		{"infinite scale", math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Draw(g, Options{Scale: tt.scale})
			if img != nil || !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Draw() = %v, %v; want INVALID_INPUT", img, err)
			}
			if err := WritePNG(&bytes.Buffer{}, g, Options{Scale: tt.scale}); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("WritePNG() error = %v", err)
			}
		})
	}
}
