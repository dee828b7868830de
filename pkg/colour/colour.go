// Package colour provides the RGB colour type shared by the graph model and
// its exporters, plus the table of colour names TikZ knows without a
// \definecolor.
//
// Colours are stored as 8-bit channels. The .grphc format writes them as
// fractions in [0,1]; [FromFractions] and [RGB.Fractions] convert between the
// two representations with rounding so that a save/load cycle is lossless.
package colour

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/graphic/pkg/errors"
)

// RGB is an opaque 24-bit colour.
type RGB struct {
	R, G, B uint8
}

// Common colours.
var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

// Hex returns the colour as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// String implements fmt.Stringer. The canonical values of known TikZ colours
// print by name; everything else prints as hex.
func (c RGB) String() string {
	if name, ok := Lookup(c.R, c.G, c.B); ok && byName[name] == c {
		return name
	}
	return c.Hex()
}

// Fractions returns the channels scaled to [0,1].
func (c RGB) Fractions() (r, g, b float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255
}

// FromFractions builds a colour from channels in [0,1]. Values outside the
// range are clamped.
func FromFractions(r, g, b float64) RGB {
	return RGB{channel(r), channel(g), channel(b)}
}

func channel(f float64) uint8 {
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(math.Round(f * 255))
}

// Parse accepts "#rrggbb", "#rgb" or one of the TikZ colour names returned by
// [Names]. Matching of names is case-insensitive.
func Parse(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RGB{}, errors.New(errors.ErrCodeInvalidColour, "empty colour")
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return RGB{}, errors.Wrap(errors.ErrCodeInvalidColour, err, "parse %q", s)
		}
		r, g, b := c.RGB255()
		return RGB{r, g, b}, nil
	}
	if c, ok := byName[strings.ToLower(s)]; ok {
		return c, nil
	}
	return RGB{}, errors.New(errors.ErrCodeInvalidColour, "unknown colour %q", s)
}

// MustParse is like Parse but panics on error. Intended for package-level
// defaults only.
func MustParse(s string) RGB {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// MarshalText encodes the colour as its name or hex code.
func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText accepts anything Parse does.
func (c *RGB) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
