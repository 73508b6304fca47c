package cielab

import (
	"errors"
	"image/color"
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestFromHex_References(t *testing.T) {
	tests := []struct {
		hex  string
		want Lab
	}{
		{"#000000", Lab{0, 0, 0}},
		{"#FFFFFF", Lab{100, 0.0054, -0.0104}},
		{"#FF0000", Lab{53.2329, 80.1093, 67.2201}},
		{"#0000FF", Lab{32.3026, 79.1967, -107.8637}},
		{"#888888", Lab{78.0714, 0.0043, -0.0085}},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			got, err := FromHex(tt.hex)
			if err != nil {
				t.Fatalf("FromHex(%q) error: %v", tt.hex, err)
			}
			if !almostEqual(got.L, tt.want.L, 0.0002) ||
				!almostEqual(got.A, tt.want.A, 0.0002) ||
				!almostEqual(got.B, tt.want.B, 0.0002) {
				t.Errorf("FromHex(%q) = %v, want %v", tt.hex, got, tt.want)
			}
		})
	}
}

func TestConvert_Deterministic(t *testing.T) {
	for _, c := range []RGB{{0, 0, 0}, {255, 255, 255}, {17, 200, 93}, {230, 109, 118}} {
		first := Convert(c)
		for range 5 {
			if got := Convert(c); got != first {
				t.Fatalf("Convert(%v) not deterministic: %v != %v", c, got, first)
			}
		}
	}
}

func TestConvert_RoundedToFourDecimals(t *testing.T) {
	lc := Convert(RGB{R: 0xE6, G: 0x6D, B: 0x76})
	for _, v := range []float64{lc.L, lc.A, lc.B} {
		scaled := v * 1e4
		if !almostEqual(scaled, math.Round(scaled), 1e-6) {
			t.Errorf("coordinate %v has more than 4 decimals", v)
		}
	}
}

func TestFromHex_ShortAndLongFormsAgree(t *testing.T) {
	pairs := [][2]string{
		{"#F00", "#FF0000"},
		{"#fff", "#FFFFFF"},
		{"#8a3", "#88aa33"},
	}
	for _, p := range pairs {
		short, err := FromHex(p[0])
		if err != nil {
			t.Fatalf("FromHex(%q) error: %v", p[0], err)
		}
		long, err := FromHex(p[1])
		if err != nil {
			t.Fatalf("FromHex(%q) error: %v", p[1], err)
		}
		if short != long {
			t.Errorf("FromHex(%q) = %v, FromHex(%q) = %v", p[0], short, p[1], long)
		}
	}
}

func TestParseHex_Invalid(t *testing.T) {
	for _, s := range []string{"", "#", "FF0000", "#FF00", "#FF00000", "#GG0000", "#12345z", "# FF000"} {
		if _, err := ParseHex(s); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseHex(%q) error = %v, want ErrInvalidColor", s, err)
		}
	}
}

func TestParseHex_Channels(t *testing.T) {
	got, err := ParseHex("#1a2B3c")
	if err != nil {
		t.Fatal(err)
	}
	if want := (RGB{0x1a, 0x2b, 0x3c}); got != want {
		t.Errorf("ParseHex = %v, want %v", got, want)
	}
	if got.Hex() != "#1a2b3c" {
		t.Errorf("Hex() = %q, want %q", got.Hex(), "#1a2b3c")
	}
}

func TestFromRGB_OutOfRange(t *testing.T) {
	for _, c := range [][3]int{{-1, 0, 0}, {0, 256, 0}, {0, 0, 1000}} {
		if _, err := FromRGB(c[0], c[1], c[2]); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("FromRGB(%v) error = %v, want ErrInvalidColor", c, err)
		}
	}

	lc, err := FromRGB(255, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if want := Convert(RGB{R: 255}); lc != want {
		t.Errorf("FromRGB(255,0,0) = %v, want %v", lc, want)
	}
}

func TestFromColor(t *testing.T) {
	want := Convert(RGB{R: 0x73, G: 0xA3, B: 0xDE})
	if got := FromColor(color.RGBA{R: 0x73, G: 0xA3, B: 0xDE, A: 0xFF}); got != want {
		t.Errorf("FromColor = %v, want %v", got, want)
	}
}

func TestDistance(t *testing.T) {
	a := Lab{L: 1, A: 2, B: 3}
	b := Lab{L: 4, A: 6, B: 3}
	if got := Distance(a, b); !almostEqual(got, 5, 1e-12) {
		t.Errorf("Distance = %v, want 5", got)
	}
	if Distance(a, a) != 0 {
		t.Error("Distance to self should be 0")
	}
}
