package cielab

import (
	"errors"
	"fmt"
	"image/color"
	"regexp"

	"github.com/lucasb-eyer/go-colorful"
)

var ErrInvalidColor = errors.New("invalid color")

var hexLiteral = regexp.MustCompile(`^#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// RGB is an opaque 8 bit per channel color.
type RGB struct {
	R, G, B uint8
}

var _ color.Color = RGB{}

func (c RGB) RGBA() (uint32, uint32, uint32, uint32) {
	r, g, b := uint32(c.R), uint32(c.G), uint32(c.B)
	return r | r<<8, g | g<<8, b | b<<8, 0xFFFF
}

// Hex returns the lowercase #rrggbb form.
func (c RGB) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// ParseHex reads a #RGB or #RRGGBB literal, hex digits in any case.
func ParseHex(s string) (RGB, error) {
	if !hexLiteral.MatchString(s) {
		return RGB{}, fmt.Errorf("%w: %q, should be #RGB or #RRGGBB", ErrInvalidColor, s)
	}

	col, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q: %w", ErrInvalidColor, s, err)
	}

	r, g, b := col.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}
