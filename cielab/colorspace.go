// based on:
// http://www.easyrgb.com/en/math.php (sRGB -> XYZ -> CIE-L*ab, D65/2° reference white)

package cielab

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
)

// reference white, D65 2°
const (
	refX = 95.047
	refY = 100.0
	refZ = 108.883
)

type Lab struct {
	L float64 // lightness
	A float64 // green (-) to red (+)
	B float64 // blue (-) to yellow (+)
}

func (lc Lab) String() string {
	return fmt.Sprintf("Lab(%.4f, %.4f, %.4f)", lc.L, lc.A, lc.B)
}

// FromRGB converts 8 bit channels given as plain integers, rejecting anything outside [0,255].
func FromRGB(r, g, b int) (Lab, error) {
	for _, v := range [...]int{r, g, b} {
		if v < 0 || v > 255 {
			return Lab{}, fmt.Errorf("%w: channel value %d out of range [0,255]", ErrInvalidColor, v)
		}
	}

	return Convert(RGB{R: uint8(r), G: uint8(g), B: uint8(b)}), nil
}

// FromHex parses a #RGB or #RRGGBB literal and converts it.
func FromHex(s string) (Lab, error) {
	c, err := ParseHex(s)
	if err != nil {
		return Lab{}, err
	}

	return Convert(c), nil
}

// FromColor converts any color.Color, ignoring alpha.
func FromColor(c color.Color) Lab {
	if rgb, ok := c.(RGB); ok {
		return Convert(rgb)
	}

	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Convert(RGB{R: nc.R, G: nc.G, B: nc.B})
}

// Convert maps c to CIE L*a*b*. Every coordinate is rounded to 4 decimal digits, so the
// same input always yields the same value.
func Convert(c RGB) Lab {
	r := float64(c.R) / 255 * 100
	g := float64(c.G) / 255 * 100
	b := float64(c.B) / 255 * 100

	x := r*0.4124 + g*0.3576 + b*0.1805
	y := r*0.2126 + g*0.7152 + b*0.0722
	z := r*0.0193 + g*0.1192 + b*0.9505

	fx := labTransfer(round4(x) / refX)
	fy := labTransfer(round4(y) / refY)
	fz := labTransfer(round4(z) / refZ)

	return Lab{
		L: round4(116*fy - 16),
		A: round4(500 * (fx - fy)),
		B: round4(200 * (fy - fz)),
	}
}

// Distance is the Euclidean distance between two colors (CIE76 delta E).
func Distance(c1, c2 Lab) float64 {
	dL := c1.L - c2.L
	da := c1.A - c2.A
	db := c1.B - c2.B
	return math.Sqrt(dL*dL + da*da + db*db)
}

const third float64 = 1.0 / 3.0

func labTransfer(v float64) float64 {
	if v > 0.008856 {
		return math.Pow(v, third)
	} else {
		return 7.787*v + 16.0/116.0
	}
}

// round4 rounds half to even on the exact binary value, like decimal formatting does.
func round4(x float64) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 4, 64), 64)
	if err != nil {
		return math.Round(x*1e4) / 1e4
	}
	return v
}
