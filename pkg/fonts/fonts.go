// Package fonts provides the parsed TrueType fonts used to set labels in
// raster output.
//
// The fonts are the Go font family, compiled into the binary by
// golang.org/x/image, so raster export needs no system fonts. Each label
// font maps to the closest Go face: italic for math, monospace for the
// typewriter fallback and regular for everything else.
package fonts

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/matzehuels/graphic/pkg/label"
)

// Parsed fonts (computed once on first access).
var (
	parseOnce sync.Once
	byLabel   map[label.Font]*truetype.Font
)

func parse() {
	regular := mustParse(goregular.TTF)
	byLabel = map[label.Font]*truetype.Font{
		label.Roman:      regular,
		label.Italic:     mustParse(goitalic.TTF),
		label.Symbol:     regular,
		label.Typewriter: mustParse(gomono.TTF),
	}
}

func mustParse(ttf []byte) *truetype.Font {
	f, err := truetype.Parse(ttf)
	if err != nil {
		panic("fonts: bundled font does not parse: " + err.Error())
	}
	return f
}

// For returns the font that sets text of the given label font. Unknown
// fonts fall back to the regular face. The result is shared and safe for
// concurrent use; faces built from it are not.
func For(f label.Font) *truetype.Font {
	parseOnce.Do(parse)
	if tt, ok := byLabel[f]; ok {
		return tt
	}
	return byLabel[label.Roman]
}
